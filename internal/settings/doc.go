// Package settings holds user preferences in memory and persists them to a
// kv.Store after a quiescence window.
//
// # Groups
//
// Fields belong to one of three groups (general, appearance, advanced). The
// theme is debounced with general. Each group has its own debounce timer:
//
//	Idle --set--> PendingWrite(t+500ms) --set--> PendingWrite(t'+500ms)
//	                     |
//	                     +--timer fires--> write whole group --> Idle
//
// A mutation inside the window restarts the timer, so only the state at the
// end of a burst is written. A write stores every field of the group, one key
// per field ("general.autoSave", "appearance.sidebarWidth", ...).
//
// # Persisted Encoding
//
// Booleans, integers and floats use strconv text, the theme uses its raw tag
// ("Light", "Dark", "System") and colors use #RRGGBBAA. A missing, corrupt or
// unreadable value falls back to the field default on Open; bounded numbers
// are clamped both on load and on set.
//
// # Synchronous Operations
//
// ResetToDefaults, Flush and Close write immediately and cancel any pending
// timers. A reset whose write fails reschedules every group. ExportSnapshot
// reads memory only and never fails.
package settings
