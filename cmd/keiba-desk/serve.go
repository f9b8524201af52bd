package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/keiba-desk/internal/api"
	"github.com/yourusername/keiba-desk/internal/datasource"
	"github.com/yourusername/keiba-desk/internal/health"
	"github.com/yourusername/keiba-desk/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d, err := setupDependencies(ctx, true)
		if err != nil {
			return err
		}
		defer d.Close()

		healthCfg := health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Commit:      GitCommit,
			Logger:      appLog,
			Checks: map[string]health.CheckFunc{
				"entries": func(ctx context.Context) error {
					_, err := d.provider.Entries(ctx)
					return err
				},
			},
		}
		if d.db != nil {
			healthCfg.DB = d.db
		}
		healthHandler := health.NewHandler(healthCfg)

		var sched *scheduler.Scheduler
		if cached, ok := d.provider.(*datasource.CachedProvider); ok && cfg.Entries.RefreshSchedule != "" {
			sched = scheduler.NewScheduler(appLog)
			if err := sched.ScheduleRefresh(cfg.Entries.RefreshSchedule, cached); err != nil {
				return err
			}
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()
		}

		server := api.NewServer(cfg, d.desk, healthHandler, appLog)
		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		healthHandler.SetReady(true)
		appLog.WithFields(logrus.Fields{
			"environment":   cfg.App.Environment,
			"entries":       d.provider.Name(),
			"database":      d.db != nil,
			"refresh_sched": sched != nil,
			"version":       Version,
		}).Info("keiba-desk started")

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		healthHandler.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	},
}
