package ui

import (
	"fmt"
	"time"

	"github.com/amonks/agenda/internal/age"
)

const timeLayout = "2006-01-02 15:04"

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	duration = duration.Truncate(time.Second)
	seconds := int64(duration.Seconds())
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd", days)
}

// FormatDuration formats an event length as "45m", "2h" or "1h30m".
func FormatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0m"
	}
	if duration < time.Minute {
		return fmt.Sprintf("%ds", int64(duration.Seconds()))
	}
	minutes := int64(duration / time.Minute)
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes%60 == 0:
		return fmt.Sprintf("%dh", minutes/60)
	default:
		return fmt.Sprintf("%dh%dm", minutes/60, minutes%60)
	}
}

// FormatWhen renders a timestamp in local time, or "-" when unset.
func FormatWhen(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.In(time.Local).Format(timeLayout)
}

// FormatDeadline renders a deadline with its distance from now, such as
// "2026-11-02 17:30 (in 3d)" or "2026-10-01 09:00 (overdue 2w)".
func FormatDeadline(deadline *time.Time, now time.Time) string {
	if deadline == nil {
		return "-"
	}
	when := FormatWhen(deadline)
	distance, overdue := age.Until(*deadline, now)
	if overdue {
		return fmt.Sprintf("%s (overdue %s)", when, FormatDurationShort(distance))
	}
	return fmt.Sprintf("%s (in %s)", when, FormatDurationShort(distance))
}
