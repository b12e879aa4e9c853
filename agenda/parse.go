package agenda

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Accepted deadline and start layouts, tried in order.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseEstimate reads "30m", "1h30m", "90" (minutes), or a range such as
// "30m-1h" or "30m–1h". An empty value returns nil, which clears an estimate.
func ParseEstimate(value string) (*Estimate, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "none" {
		return nil, nil
	}

	low, high, isRange := cutRange(value)
	lowMinutes, err := parseMinutes(low)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidEstimate, value, err)
	}
	highMinutes := lowMinutes
	if isRange {
		highMinutes, err = parseMinutes(high)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidEstimate, value, err)
		}
	}

	estimate := &Estimate{LowMinutes: lowMinutes, HighMinutes: highMinutes}
	if err := ValidateEstimate(estimate); err != nil {
		return nil, err
	}
	return estimate, nil
}

func cutRange(value string) (string, string, bool) {
	for _, sep := range []string{"–", "..", "-"} {
		if low, high, ok := strings.Cut(value, sep); ok {
			return strings.TrimSpace(low), strings.TrimSpace(high), true
		}
	}
	return value, "", false
}

func parseMinutes(value string) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("missing bound")
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d%time.Minute != 0 {
		return 0, fmt.Errorf("%s is not a whole number of minutes", d)
	}
	return int(d / time.Minute), nil
}

// ParseTime reads an RFC 3339 timestamp, "2006-01-02 15:04", or a bare
// date. Layouts without a zone are interpreted in loc. An empty value
// returns nil.
func ParseTime(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "none" {
		return nil, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid time %q: use RFC 3339, YYYY-MM-DD HH:MM, or YYYY-MM-DD", value)
}

// FormatTime renders t as RFC 3339 with any fractional seconds, which
// ParseTime reads back as the same instant. A nil time renders as the empty
// string.
func FormatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

// ParseDuration reads a non-negative Go duration string such as "1h30m".
func ParseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s", ErrNegativeDuration, d)
	}
	return d, nil
}
