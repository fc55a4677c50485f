package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/five82/appshell/internal/api"
	"github.com/five82/appshell/internal/state"
)

const defaultPollInterval = 15 * time.Second

// Poller refreshes the item list into a state.Store at a fixed cadence.
// Failures are recorded in the store and the next tick tries again.
type Poller struct {
	store    *state.Store
	items    api.ItemService
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
}

// NewPoller builds a poller. A non-positive interval uses the default, a nil
// clock the real clock and a nil logger slog.Default().
func NewPoller(store *state.Store, items api.ItemService, interval time.Duration, clock clockwork.Clock, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{store: store, items: items, interval: interval, clock: clock, logger: logger}
}

// Start launches the refresh loop and returns immediately. The first refresh
// runs right away.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := p.clock.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			_ = p.Refresh(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.Chan():
			}
		}
	}()
}

// Refresh fetches the item list once and records the outcome.
func (p *Poller) Refresh(ctx context.Context) error {
	items, err := p.items.ListItems(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		p.store.Update(nil, err)
		p.logger.Warn("item refresh failed", "kind", api.KindOf(err).String(), "error", err)
		return err
	}
	p.store.Update(items, nil)
	p.logger.Debug("items refreshed", "count", len(items))
	return nil
}
