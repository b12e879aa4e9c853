package agenda

import (
	"fmt"
	"strings"

	"github.com/amonks/agenda/internal/ids"
)

// IDIndex indexes entity IDs for prefix matching and display.
type IDIndex struct {
	ids      []string
	original map[string]string
	notFound error
}

// NewIDIndex builds an IDIndex over the given IDs. Resolve wraps notFound
// when nothing matches.
func NewIDIndex(entityIDs []string, notFound error) IDIndex {
	original := make(map[string]string, len(entityIDs))
	for _, id := range entityIDs {
		if id == "" {
			continue
		}
		lower := strings.ToLower(id)
		if _, ok := original[lower]; !ok {
			original[lower] = id
		}
	}
	return IDIndex{
		ids:      ids.NormalizeUniqueIDs(entityIDs),
		original: original,
		notFound: notFound,
	}
}

// TodoIDIndex indexes the todos of s.
func TodoIDIndex(s Snapshot) IDIndex {
	todoIDs := make([]string, 0, len(s.Todos))
	for id := range s.Todos {
		todoIDs = append(todoIDs, id)
	}
	return NewIDIndex(todoIDs, ErrTodoNotFound)
}

// EventIDIndex indexes the events of s.
func EventIDIndex(s Snapshot) IDIndex {
	eventIDs := make([]string, 0, len(s.Events))
	for id := range s.Events {
		eventIDs = append(eventIDs, id)
	}
	return NewIDIndex(eventIDs, ErrEventNotFound)
}

// Resolve returns the full ID for a case-insensitive prefix.
func (index IDIndex) Resolve(prefix string) (string, error) {
	if prefix == "" {
		return "", index.notFound
	}

	match, found, ambiguous := ids.MatchPrefixNormalized(index.ids, prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", index.notFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousIDPrefix, prefix)
	}

	return index.original[match], nil
}

// PrefixLengths returns the shortest unique prefix length for each
// lowercased ID.
func (index IDIndex) PrefixLengths() map[string]int {
	return ids.UniquePrefixLengthsNormalized(index.ids)
}
