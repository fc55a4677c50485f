// Package ui provides the terminal front end of appshell, built on Bubble Tea.
//
// # Views
//
//   - Items: the most recently updated items (capped by the maxRecentItems
//     setting), with an optional category sidebar
//   - Settings: every preference grouped by section; edits go straight to the
//     settings store, which debounces persistence
//   - Export: the JSON snapshot of the in-memory settings
//   - Logs: the tail of the application log file, colored by level and
//     refreshed on every tick while visible
//
// # Event Flow
//
//  1. Run builds the Model and starts the program
//  2. A tick reads state.Store and state.Activity snapshots
//  3. Key presses mutate settings or start item actions as commands
//  4. Action results arrive as actionDoneMsg and trigger a fresh snapshot
//
// The UI never blocks on the network: item actions run as tea.Cmd functions
// and only report back through messages.
//
// # Theming
//
// Colors follow the selectedTheme setting (System resolves through the
// terminal background) and the custom accent color unless the system accent
// is selected.
package ui
