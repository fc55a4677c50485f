// Package state provides thread-safe state shared between background work and
// the UI.
//
// # Overview
//
// Two containers live here:
//
//   - Store: the latest item list fetched by the refresh poller
//   - Activity: the in-flight request counter and most recent request failure,
//     fed by api.Client through the api.Tracker interface
//
// # Architecture
//
//	Producers:                     Consumer (UI):
//	┌────────────────────┐        ┌────────────────────┐
//	│ poller             │        │                    │
//	│   store.Update()   │───────→│ store.Snapshot()   │
//	│ api.Client         │ (lock) │ activity.Snapshot()│
//	│   Begin()/End()    │───────→│   render           │
//	└────────────────────┘        └────────────────────┘
//
// # Update Semantics
//
// Store.Update keeps the previous items when err is non-nil and records the
// error and the failure count instead, so the UI can keep showing the last
// good list while flagging the problem. Two consecutive failures mark the
// snapshot offline.
//
// Activity counts requests instead of flipping a boolean, so overlapping
// requests do not clear each other's busy state. The recorded error is
// last-write-wins and is cleared whenever a request begins; it is meant for
// passive display only.
//
// # Defensive Copying
//
// Snapshots clone item slices and wrap errors so readers never share mutable
// state with writers. Both types are ready to use as zero values.
package state
