package state

import (
	"fmt"
	"sync"
)

// ActivitySnapshot is a point-in-time view of client request activity.
type ActivitySnapshot struct {
	InFlight  int
	LastError error
}

// Busy reports whether any request was outstanding.
func (a ActivitySnapshot) Busy() bool {
	return a.InFlight > 0
}

// Activity counts outstanding requests and keeps the most recent failure for
// passive display. It implements api.Tracker.
//
// LastError is last-write-wins across overlapping requests and is cleared
// whenever a request begins.
type Activity struct {
	mu       sync.RWMutex
	inFlight int
	lastErr  error
}

// Begin records the start of a request.
func (a *Activity) Begin() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inFlight++
	a.lastErr = nil
}

// End records the end of a request. err is nil on success.
func (a *Activity) End(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.inFlight > 0 {
		a.inFlight--
	}
	if err != nil {
		a.lastErr = err
	}
}

// Snapshot returns a copy of the current activity.
func (a *Activity) Snapshot() ActivitySnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	snap := ActivitySnapshot{InFlight: a.inFlight}
	if a.lastErr != nil {
		snap.LastError = fmt.Errorf("%w", a.lastErr)
	}
	return snap
}
