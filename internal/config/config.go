package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		ListenAddr string `mapstructure:"listen_addr"`
	} `mapstructure:"server"`
	LevelDB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"leveldb"`
	Logging struct {
		Level  string `mapstructure:"level"`
		Output string `mapstructure:"output"`
		File   string `mapstructure:"file"`
	} `mapstructure:"logging"`
	Client struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"client"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.listen_addr", ":8080")
	v.SetDefault("leveldb.path", "data/calc-admin")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file", "logs/calc-admin.log")
	v.SetDefault("client.base_url", "http://localhost:8080/api")
	v.SetDefault("client.timeout", "10s")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// LoadConfig reads configPath and applies CALC_* environment overrides.
// A missing file leaves every key at its default.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("CALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Client.Timeout <= 0 {
		cfg.Client.Timeout = 10 * time.Second
	}

	return &cfg, nil
}
