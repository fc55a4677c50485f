// Package app is the composition root of appshell.
//
// # Overview
//
// Run loads configuration, builds every long-lived object exactly once and
// hands them to the UI. Nothing below this package reaches for a global
// client or store; dependencies are passed in explicitly.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()         TOML + env + .env
//	       ├─────> logging.New()         slog to the log file
//	       ├─────> openKV()              file | memory | redis
//	       ├─────> settings.Open()       debounced preferences
//	       ├─────> api.NewClient()       shared HTTP client + metrics
//	       ├─────> Poller.Start()        periodic item refresh
//	       └─────> ui.Run()              TUI (blocks)
//
//	Poller loop:
//	┌─────────────────────────────────────────┐
//	│  ├─> items.ListItems()                  │
//	│  └─> store.Update()                     │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Polling Behavior
//
// The poller refreshes immediately and then on a fixed interval (default 15
// seconds). A failed refresh is recorded in the state store and logged; the
// next tick simply tries again. There is no backoff.
//
// # Shutdown
//
// When the UI exits, pending settings writes are flushed, the metrics server
// (if any) is shut down and the kv backend is closed.
//
// # Error Handling
//
// Configuration, store, metrics registration and client construction errors
// are fatal and returned from Run. Refresh errors are not.
package app
