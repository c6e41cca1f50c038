package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tokenworks/atlas/pkg/config"
	"tokenworks/atlas/pkg/hardware"
	"tokenworks/atlas/pkg/license"
	"tokenworks/atlas/pkg/pricing"
	"tokenworks/atlas/pkg/pricing/history"
	"tokenworks/atlas/pkg/telemetry/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the background pricing service",
	Long: `Run the long-lived pricing service: a scheduled cache refresher,
optional quote history recording, Prometheus metrics, and hot reload of
rate overrides when the config file changes.

Examples:
  # Default configuration
  atlas serve

  # Explicit config
  atlas serve --config /etc/atlas/atlas.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	lic := license.NewManager(license.Tier(cfg.License.Tier))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	source := newPricingSource(cfg, lic, logger, collector.Pricing())

	var classes []hardware.Class
	for _, spec := range hardware.List() {
		classes = append(classes, spec.Class)
	}
	refresher := pricing.NewRefresher(source, classes, cfg.Pricing.RefreshSchedule, logger)

	if cfg.History.Enabled {
		if dir := filepath.Dir(cfg.History.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create history directory: %w", err)
			}
		}
		store, err := history.NewStore(history.StoreConfig{DBPath: cfg.History.DBPath})
		if err != nil {
			return fmt.Errorf("failed to open quote history: %w", err)
		}
		defer store.Close()

		if pruned, err := store.Prune(ctx, cfg.History.Retention); err != nil {
			logger.Warn("history prune failed", "error", err)
		} else if pruned > 0 {
			logger.Info("pruned quote history", "rows", pruned)
		}

		refresher.Recorder = func(q pricing.Quote) {
			recordCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := store.Record(recordCtx, q); err != nil {
				logger.Warn("failed to record quote", "provider", q.Provider, "error", err)
			}
		}
		logger.Info("quote history enabled", "path", cfg.History.DBPath)
	}

	refresher.RunOnce()
	if err := refresher.Start(); err != nil {
		return fmt.Errorf("failed to start refresher: %w", err)
	}
	defer refresher.Stop()

	// Hot-reload rate overrides when the config file changes on disk.
	if _, err := os.Stat(cfgFile); err == nil {
		watcher, err := config.NewWatcher(cfgFile, 0, logger)
		if err != nil {
			return fmt.Errorf("failed to create config watcher: %w", err)
		}
		go func() {
			if err := watcher.Watch(ctx, func(next *config.Config) {
				source.SetOverrides(next.Pricing.Overrides)
			}); err != nil {
				logger.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	errChan := make(chan error, 1)
	var srv *http.Server
	if cfg.Telemetry.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok\n"))
		})

		srv = &http.Server{
			Addr:              cfg.Telemetry.Metrics.ListenAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics endpoint started", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	logger.Info("pricing service started",
		"schedule", cfg.Pricing.RefreshSchedule,
		"providers", source.Providers(),
	)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", "error", err)
		}
	}
	return nil
}
