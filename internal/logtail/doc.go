// Package logtail reads the tail of the application log for display in the
// TUI.
//
// # Reading Log Files
//
// Read uses a ring buffer to extract the last maxLines from a file in one
// sequential pass, so memory stays O(maxLines) regardless of file size. Lines
// come back in chronological order. A missing file is not an error; the log
// may not exist yet on first start.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//
// # Levels
//
// Level extracts the slog level from a line written by either the text
// handler (level=WARN) or the JSON handler ("level":"WARN") so the UI can
// color it.
package logtail
