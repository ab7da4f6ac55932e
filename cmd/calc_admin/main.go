package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/sivaram/calc-admin/internal/client"
	"github.com/sivaram/calc-admin/internal/config"
	"github.com/sivaram/calc-admin/internal/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string
	baseURL    string

	cfg  *config.Config
	logr *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "calc_admin",
	Short: "Administer nodes, formulars and calculations",
	Long: `calc_admin manages three linked entities: nodes, formulars (ordered
lists of nodes) and calculations (ordered lists of formulars).

Run "calc_admin serve" to start the API service, "calc_admin tui" for the
interactive admin, or use the entity commands for scripting.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if baseURL != "" {
			cfg.Client.BaseURL = baseURL
		}
		logr, err = logger.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&baseURL, "api", "", "API base URL (overrides client.base_url)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(nodeCmd)
	rootCmd.AddCommand(formularCmd)
	rootCmd.AddCommand(calculationCmd)
	rootCmd.AddCommand(exportCmd)
}

// apiClient builds a client from the loaded config. Scripted commands print
// to stdout, so stdout logging is moved to stderr.
func apiClient() *client.Client {
	if cfg.Logging.Output != "file" {
		logr.SetOutput(os.Stderr)
	}
	return client.New(cfg.Client.BaseURL,
		client.WithTimeout(cfg.Client.Timeout),
		client.WithLogger(logr),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
