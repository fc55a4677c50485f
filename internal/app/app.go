package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/appshell/internal/api"
	"github.com/five82/appshell/internal/config"
	"github.com/five82/appshell/internal/kv"
	"github.com/five82/appshell/internal/logging"
	"github.com/five82/appshell/internal/settings"
	"github.com/five82/appshell/internal/state"
	"github.com/five82/appshell/internal/ui"
)

const shutdownTimeout = 5 * time.Second

// Options configure the application.
type Options struct {
	ConfigPath string
	PollEvery  int // seconds; zero uses default
}

// Run boots the application and blocks until the UI exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat, logFile)
	slog.SetDefault(logger)
	logger.Info("starting", "base_url", cfg.BaseURL, "store", string(cfg.Store))

	store, err := openKV(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open settings store: %w", err)
	}
	defer func() { _ = store.Close() }()

	prefs, err := settings.Open(ctx, store, settings.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := prefs.Close(flushCtx); err != nil {
			logger.Error("settings flush failed", "error", err)
		}
	}()

	reg := newRegistry()
	metrics, err := api.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	if cfg.MetricsAddr != "" {
		ms, err := startMetricsServer(cfg.MetricsAddr, reg, logger)
		if err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = ms.Shutdown(shutdownCtx)
		}()
	}

	activity := &state.Activity{}
	client, err := api.NewClient(api.Config{
		BaseURL:         cfg.BaseURL,
		RequestTimeout:  cfg.RequestTimeout,
		ResourceTimeout: cfg.ResourceTimeout,
	},
		api.WithLogger(logger),
		api.WithTracker(activity),
		api.WithMetrics(metrics),
	)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	items := api.NewItems(client)

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	snapshots := &state.Store{}
	poller := NewPoller(snapshots, items, interval, nil, logger)
	poller.Start(ctx)

	return ui.Run(ui.Options{
		Context:  ctx,
		Items:    items,
		Refresh:  poller.Refresh,
		Store:    snapshots,
		Activity: activity,
		Settings: prefs,
		Logger:   logger,
		LogPath:  cfg.LogFile,
	})
}

// openKV builds the persistence backend named by cfg.Store.
func openKV(ctx context.Context, cfg config.Config, logger *slog.Logger) (kv.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return kv.NewMemoryStore(), nil
	case config.StoreRedis:
		return kv.OpenRedis(ctx, cfg.RedisURL, "")
	case config.StoreFile, "":
		return kv.OpenFile(cfg.StorePath, logger)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
