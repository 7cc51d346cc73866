package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	apihttp "github.com/stonefield/jiraSOAP/adapters/http"
	"github.com/stonefield/jiraSOAP/adapters/metrics"
	"github.com/stonefield/jiraSOAP/config"
)

var serveProbeInterval time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Expose health and call metrics over HTTP",
	Long: `Run a small HTTP server exposing /health, /health/ready and the
Prometheus metrics of remote calls.

The readiness probe makes an authenticated call to the server. With
--probe-interval the probe also runs in the background so the call
metrics stay fresh.

The config file is watched; logging.level changes apply immediately.
SIGHUP forces a reload.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().DurationVar(&serveProbeInterval, "probe-interval", 0, "background probe interval (0 disables)")
}

func runServe(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	bootLogger := setupLogger(config.LoggingConfig{Level: "info", Format: "console"})
	holder, err := config.NewHolder(path, bootLogger)
	if err != nil {
		return err
	}
	defer holder.Stop()

	cfg := holder.Get()
	logger := setupLogger(cfg.Logging)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewWithRegistry(reg)

	holder.ObserveReloads(collector.ObserveReload)
	holder.OnChange(func(c *config.Config) {
		if level, err := zerolog.ParseLevel(c.Logging.Level); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	})
	if err := holder.WatchFile(); err != nil {
		logger.Warn().Err(err).Msg("config file watch disabled")
	}
	holder.WatchSignals()

	rt, err := newRuntime(cfg, logger, collector)
	if err != nil {
		return err
	}
	defer rt.Close()
	rt.live = holder.Get

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rt.ensureLogin(ctx); err != nil {
		logger.Warn().Err(err).Msg("not logged in; readiness will fail until a session exists")
	}

	router := apihttp.NewRouter(apihttp.NewHealthHandler(rt.client, cfg.Endpoint.Timeout), logger, apihttp.RouterConfig{
		Gatherer:    reg,
		MetricsPath: cfg.Metrics.Path,
		Version:     version,
	})
	srv := &http.Server{
		Addr:              cfg.Metrics.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if serveProbeInterval > 0 {
		go probe(ctx, rt, serveProbeInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("metrics", cfg.Metrics.Path).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// probe keeps the session warm and the call metrics populated.
func probe(ctx context.Context, rt *runtime, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := rt.ensureLogin(ctx); err != nil {
				rt.logger.Warn().Err(err).Msg("probe login failed")
				continue
			}
			if err := rt.client.HealthCheck(ctx); err != nil {
				rt.logger.Warn().Err(err).Msg("probe failed")
			}
		}
	}
}

