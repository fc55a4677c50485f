package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/five82/appshell/internal/api"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// humanizeDuration formats a duration as relative time (e.g., "5m ago").
func humanizeDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}

// errorLabel returns a short badge for an error.
func errorLabel(err error) string {
	if err == nil {
		return ""
	}
	switch api.KindOf(err) {
	case api.KindNoInternetConnection:
		return "OFFLINE"
	case api.KindTimeout:
		return "TIMEOUT"
	case api.KindHTTPError:
		return fmt.Sprintf("HTTP %d", api.StatusCode(err))
	case api.KindDecodingError, api.KindInvalidResponse:
		return "BAD RESPONSE"
	default:
		return "ERROR"
	}
}

// errorText returns the user-facing description of err.
func errorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Description()
	}
	return err.Error()
}
