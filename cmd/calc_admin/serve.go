package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	apihttp "github.com/sivaram/calc-admin/api/http"
	"github.com/sivaram/calc-admin/internal/catalog"
	"github.com/sivaram/calc-admin/internal/metrics"
	"github.com/sivaram/calc-admin/internal/store"
	"github.com/sivaram/calc-admin/routes"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := store.New(cfg.LevelDB.Path)
	if err != nil {
		logr.Errorf("Failed to initialize store: %v", err)
		return err
	}
	defer st.Close()

	m := metrics.New("calc_admin")
	handler := apihttp.NewHandler(catalog.New(st, logr), m)

	r := mux.NewRouter()
	routes.RegisterRoutes(r, handler, m, logr)

	srv := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           routes.WithCORS(r, cfg.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logr.Infof("Server listening on %s", cfg.Server.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logr.Errorf("Failed to start server: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logr.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
