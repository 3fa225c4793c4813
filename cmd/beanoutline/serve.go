package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ev2geny/beanoutline/internal/api"
	"github.com/Ev2geny/beanoutline/internal/config"
	"github.com/Ev2geny/beanoutline/internal/pipeline"
	"github.com/Ev2geny/beanoutline/internal/stats"
	"github.com/Ev2geny/beanoutline/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the beanoutline HTTP server",
	Long: `Start the beanoutline HTTP server.

Configuration is read from the environment (BEANOUTLINE_API_KEY,
BEANOUTLINE_DB, PORT, ...). The server shuts down gracefully on
Ctrl+C or SIGTERM.

Examples:
  BEANOUTLINE_API_KEY=secret beanoutline serve
  PORT=3000 BEANOUTLINE_API_KEY=secret beanoutline serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		scans := stats.NewScanStats(cfg.StatsWindow)

		orch := pipeline.NewOrchestrator(cfg, st, scans, log)
		orch.Start(ctx)

		srv := api.NewServer(orch, scans, log, cfg)
		httpServer := &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      srv,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		go func() {
			<-ctx.Done()
			log.Info("shutting down...")
			orch.Stop()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting beanoutline server", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}
