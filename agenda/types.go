// Package agenda implements an event-sourced personal agenda.
//
// The agenda is never stored directly. Instead, an append-only log of
// actions is folded, oldest first, into a Snapshot of todos and events:
//   - Todo and Event are the entities the fold produces
//   - Action is one historical change; Reduce applies one to a Snapshot
//   - State wraps the fold for sequential application and point lookups
//   - Store reads and appends the YAML action log
package agenda

import (
	internalstrings "github.com/amonks/agenda/internal/strings"
)

// Status represents the state of a todo.
type Status string

const (
	// StatusReady indicates the todo can be picked up. It is the default.
	StatusReady Status = "ready"

	// StatusInProgress indicates the todo is being worked on.
	StatusInProgress Status = "in-progress"

	// StatusBlocked indicates the todo is waiting on something else.
	StatusBlocked Status = "blocked"

	// StatusComplete indicates the todo is finished.
	StatusComplete Status = "complete"
)

// GlyphUnknown is shown for statuses the renderer does not recognize.
const GlyphUnknown = "?"

// ValidStatuses returns all valid status values in cycle order.
func ValidStatuses() []Status {
	return []Status{StatusReady, StatusInProgress, StatusBlocked, StatusComplete}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// IsResolved returns true when the todo no longer blocks its dependents.
func (s Status) IsResolved() bool {
	return s == StatusComplete
}

// Glyph returns the single-glyph indicator used by every renderer.
func (s Status) Glyph() string {
	switch s {
	case StatusReady:
		return " "
	case StatusInProgress:
		return "…"
	case StatusBlocked:
		return "⌛"
	case StatusComplete:
		return "✓"
	default:
		return GlyphUnknown
	}
}

// Next returns the status after s in ValidStatuses order, wrapping around.
// Unknown statuses restart the cycle at StatusReady.
func (s Status) Next() Status {
	statuses := ValidStatuses()
	for i, status := range statuses {
		if status == s {
			return statuses[(i+1)%len(statuses)]
		}
	}
	return StatusReady
}

// ParseStatus normalizes user input such as "In_Progress" to a Status.
func ParseStatus(value string) (Status, error) {
	status := Status(internalstrings.NormalizeKeyword(value))
	if !status.IsValid() {
		return "", invalidStatusError(value)
	}
	return status, nil
}

func statusRank(s Status) int {
	switch s {
	case StatusInProgress:
		return 0
	case StatusReady:
		return 1
	case StatusBlocked:
		return 2
	case StatusComplete:
		return 3
	default:
		return 4
	}
}
