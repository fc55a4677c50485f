package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/five82/appshell/internal/api"
	"github.com/five82/appshell/internal/state"
)

// fakeItems serves ListItems from a queue of canned results.
type fakeItems struct {
	api.ItemService

	mu      sync.Mutex
	results []listResult
	calls   int
}

type listResult struct {
	items []api.Item
	err   error
}

func (f *fakeItems) ListItems(context.Context) ([]api.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.results) == 0 {
		return nil, nil
	}
	r := f.results[0]
	if len(f.results) > 1 {
		f.results = f.results[1:]
	}
	return r.items, r.err
}

func (f *fakeItems) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPollerRefresh_StoresItems(t *testing.T) {
	item := api.NewItem("First", "sub", "general")
	items := &fakeItems{results: []listResult{{items: []api.Item{item}}}}
	store := &state.Store{}

	p := NewPoller(store, items, time.Second, clockwork.NewFakeClock(), nil)
	if err := p.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	snap := store.Snapshot()
	if !snap.HasItems || len(snap.Items) != 1 || snap.Items[0].ID != item.ID {
		t.Fatalf("snapshot = %+v, want one item %s", snap, item.ID)
	}
}

func TestPollerRefresh_FailureKeepsPreviousItems(t *testing.T) {
	item := api.Item{ID: uuid.New(), Title: "kept"}
	items := &fakeItems{results: []listResult{
		{items: []api.Item{item}},
		{err: api.ErrTimeout},
	}}
	store := &state.Store{}
	p := NewPoller(store, items, time.Second, clockwork.NewFakeClock(), nil)

	_ = p.Refresh(context.Background())
	err := p.Refresh(context.Background())
	if !errors.Is(err, api.ErrTimeout) {
		t.Fatalf("Refresh error = %v, want timeout", err)
	}

	snap := store.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Title != "kept" {
		t.Fatalf("items = %+v, want previous list kept", snap.Items)
	}
	if snap.ConsecutiveFailures != 1 || snap.LastError == nil {
		t.Fatalf("failures = %d err = %v, want 1 and non-nil", snap.ConsecutiveFailures, snap.LastError)
	}
}

func TestPollerRefresh_CancelledContextIsNotRecorded(t *testing.T) {
	items := &fakeItems{results: []listResult{{err: context.Canceled}}}
	store := &state.Store{}
	p := NewPoller(store, items, time.Second, clockwork.NewFakeClock(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Refresh(ctx); err == nil {
		t.Fatalf("Refresh returned nil error, want cancellation")
	}
	if snap := store.Snapshot(); snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil for a cancelled refresh", snap.LastError)
	}
}

func TestPollerStart_RefreshesOnEveryTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	items := &fakeItems{}
	store := &state.Store{}
	p := NewPoller(store, items, 10*time.Second, clock, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p.Start(ctx)

	waitFor(t, func() bool { return items.callCount() == 1 })

	blockCtx, blockCancel := context.WithTimeout(context.Background(), time.Second)
	defer blockCancel()
	if err := clock.BlockUntilContext(blockCtx, 1); err != nil {
		t.Fatalf("ticker never created: %v", err)
	}

	clock.Advance(10 * time.Second)
	waitFor(t, func() bool { return items.callCount() == 2 })

	clock.Advance(10 * time.Second)
	waitFor(t, func() bool { return items.callCount() == 3 })
}

func TestNewPoller_Defaults(t *testing.T) {
	p := NewPoller(&state.Store{}, &fakeItems{}, 0, nil, nil)
	if p.interval != defaultPollInterval {
		t.Fatalf("interval = %s, want %s", p.interval, defaultPollInterval)
	}
	if p.clock == nil || p.logger == nil {
		t.Fatalf("clock/logger not defaulted")
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}
