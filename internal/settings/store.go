package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/five82/appshell/internal/kv"
)

const (
	// DefaultWindow is the quiescence window before a group is written.
	DefaultWindow = 500 * time.Millisecond

	persistTimeout = 5 * time.Second
)

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the real clock, mainly for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// WithWindow overrides DefaultWindow.
func WithWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithLogger sets the logger used for load and persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPersistHook registers fn to run after every group write attempt. fn runs
// outside the store's write lock and may call back into the store.
func WithPersistHook(fn func(Group, error)) Option {
	return func(s *Store) { s.onPersist = fn }
}

// pendingWrite is the PendingWrite state of one group.
type pendingWrite struct {
	timer       clockwork.Timer
	scheduledAt time.Time
}

// Store holds the in-memory settings and debounces their persistence per
// group. Safe for concurrent use.
type Store struct {
	kv        kv.Store
	clock     clockwork.Clock
	window    time.Duration
	logger    *slog.Logger
	onPersist func(Group, error)

	// writeMu serializes snapshots with their kv writes so writes land in
	// snapshot order. Acquire before mu.
	writeMu sync.Mutex

	mu         sync.RWMutex
	values     Values
	pending    [numGroups]*pendingWrite
	gens       [numGroups]uint64
	closed     bool
	persistErr error
}

// Open loads every field from store. Missing or corrupt values fall back to
// their defaults. Loading never schedules a write.
func Open(ctx context.Context, store kv.Store, opts ...Option) (*Store, error) {
	if store == nil {
		return nil, errors.New("settings: nil kv store")
	}
	s := &Store{
		kv:     store,
		clock:  clockwork.NewRealClock(),
		window: DefaultWindow,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	values := Defaults()
	for _, f := range fields {
		raw, ok, err := store.Get(ctx, f.key())
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("load settings: %w", ctx.Err())
			}
			s.logger.Debug("settings value unreadable, using default", "key", f.key(), "error", err)
			continue
		}
		if !ok {
			continue
		}
		if err := f.decode(&values, raw); err != nil {
			s.logger.Debug("settings value corrupt, using default", "key", f.key(), "error", err)
		}
	}
	s.values = values.normalize()
	return s, nil
}

// Values returns a copy of every field.
func (s *Store) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

// Pending reports whether g has a write scheduled and when it fires.
func (s *Store) Pending(g Group) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.pending[g]
	if p == nil {
		return time.Time{}, false
	}
	return p.scheduledAt, true
}

// LastPersistError returns the error from the most recent write attempt, or
// nil if it succeeded.
func (s *Store) LastPersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistErr
}

// mutate applies fn and (re)arms the group's timer. Every call counts as a
// mutation even when fn leaves the value unchanged.
func (s *Store) mutate(g Group, fn func(*Values)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.values)
	s.values = s.values.normalize()
	if s.closed {
		return
	}
	s.schedule(g)
}

// schedule restarts g's debounce timer. Caller holds mu.
func (s *Store) schedule(g Group) {
	if p := s.pending[g]; p != nil {
		p.timer.Stop()
	}
	s.gens[g]++
	gen := s.gens[g]
	s.pending[g] = &pendingWrite{
		timer:       s.clock.AfterFunc(s.window, func() { s.fire(g, gen) }),
		scheduledAt: s.clock.Now().Add(s.window),
	}
}

// cancel drops g's pending write. Caller holds mu.
func (s *Store) cancel(g Group) bool {
	p := s.pending[g]
	if p == nil {
		return false
	}
	p.timer.Stop()
	s.pending[g] = nil
	s.gens[g]++
	return true
}

// fire persists g if gen is still the current schedule.
func (s *Store) fire(g Group, gen uint64) {
	s.writeMu.Lock()
	s.mu.Lock()
	if s.gens[g] != gen || s.pending[g] == nil {
		s.mu.Unlock()
		s.writeMu.Unlock()
		return
	}
	s.pending[g] = nil
	entries := encodeGroup(s.values, g)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	err := s.persist(ctx, g, entries)
	cancel()
	s.writeMu.Unlock()

	s.notify(g, err)
}

// persist writes entries and records the outcome. Caller holds writeMu.
func (s *Store) persist(ctx context.Context, g Group, entries map[string][]byte) error {
	err := s.kv.SetMany(ctx, entries)
	if err != nil {
		err = fmt.Errorf("persist %s settings: %w", g, err)
		s.logger.Warn("settings write failed", "group", g.String(), "error", err)
	} else {
		s.logger.Debug("settings written", "group", g.String(), "keys", len(entries))
	}

	s.mu.Lock()
	s.persistErr = err
	s.mu.Unlock()
	return err
}

// notify runs the persist hook. Called without writeMu so the hook may use
// the store.
func (s *Store) notify(g Group, err error) {
	if s.onPersist != nil {
		s.onPersist(g, err)
	}
}

// Flush synchronously writes every group with a pending write.
func (s *Store) Flush(ctx context.Context) error {
	s.writeMu.Lock()

	s.mu.Lock()
	batches := make(map[Group]map[string][]byte)
	for _, g := range Groups() {
		if s.cancel(g) {
			batches[g] = encodeGroup(s.values, g)
		}
	}
	s.mu.Unlock()

	results := make(map[Group]error, len(batches))
	var errs []error
	for _, g := range Groups() {
		if entries, ok := batches[g]; ok {
			err := s.persist(ctx, g, entries)
			results[g] = err
			if err != nil {
				errs = append(errs, err)
			}
		}
	}
	s.writeMu.Unlock()

	for _, g := range Groups() {
		if err, ok := results[g]; ok {
			s.notify(g, err)
		}
	}
	return errors.Join(errs...)
}

// Close flushes pending writes. Later mutations change memory only.
func (s *Store) Close(ctx context.Context) error {
	err := s.Flush(ctx)
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return err
}

// ResetToDefaults deletes every persisted key, restores defaults and writes
// all groups immediately, bypassing the debounce window.
//
// Overwriting every key reaches the same state as deleting first, so a failed
// delete is logged and the write still happens. If the write fails too, every
// group is rescheduled so the defaults are retried on the next window.
func (s *Store) ResetToDefaults(ctx context.Context) error {
	s.writeMu.Lock()

	s.mu.Lock()
	for _, g := range Groups() {
		s.cancel(g)
	}
	s.values = Defaults()
	entries := make(map[string][]byte, len(fields))
	for _, g := range Groups() {
		for k, v := range encodeGroup(s.values, g) {
			entries[k] = v
		}
	}
	s.mu.Unlock()

	var deleteErr error
	if err := s.kv.Delete(ctx, Keys()...); err != nil {
		deleteErr = fmt.Errorf("clear settings: %w", err)
		s.logger.Warn("settings reset delete failed, overwriting instead", "error", deleteErr)
	}

	err := s.kv.SetMany(ctx, entries)
	if err != nil {
		err = errors.Join(deleteErr, fmt.Errorf("persist default settings: %w", err))
		s.logger.Warn("settings reset write failed, retrying after window", "error", err)
	}

	s.mu.Lock()
	s.persistErr = err
	if err != nil && !s.closed {
		for _, g := range Groups() {
			s.schedule(g)
		}
	}
	s.mu.Unlock()
	s.writeMu.Unlock()

	for _, g := range Groups() {
		s.notify(g, err)
	}
	return err
}

// ExportSnapshot renders the in-memory values as indented JSON grouped by
// settings group. Fields that fail to encode are left out.
func (s *Store) ExportSnapshot() string {
	v := s.Values()

	out := make(map[string]map[string]json.RawMessage, numGroups)
	for _, f := range fields {
		raw, err := json.Marshal(f.export(v))
		if err != nil {
			continue
		}
		group := f.group.String()
		if out[group] == nil {
			out[group] = make(map[string]json.RawMessage)
		}
		out[group][f.name] = raw
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
