package agenda

import (
	"cmp"
	"maps"
	"slices"
	"strings"
)

// State applies actions one at a time and answers point lookups.
//
// State holds the current Snapshot and replaces it on every step, so a
// Snapshot obtained earlier remains valid. It is not safe for concurrent use.
type State struct {
	snapshot    Snapshot
	applied     int
	initialized bool
}

// NewState returns an initialized, empty state.
func NewState() *State {
	s := &State{}
	s.Initialize()
	return s
}

// Replay folds actions into a new state.
func Replay(actions []Action) *State {
	s := NewState()
	for _, a := range actions {
		s.ApplyAction(a)
	}
	return s
}

// Initialize establishes an empty snapshot. Calling it again is a no-op.
func (s *State) Initialize() {
	if s.initialized {
		return
	}
	s.snapshot = EmptySnapshot()
	s.applied = 0
	s.initialized = true
}

// ApplyAction folds a into the current snapshot.
func (s *State) ApplyAction(a Action) {
	s.Initialize()
	s.snapshot = Reduce(s.snapshot, a)
	s.applied++
}

// Applied returns how many actions have been applied.
func (s *State) Applied() int {
	return s.applied
}

// Snapshot returns the current snapshot.
func (s *State) Snapshot() Snapshot {
	s.Initialize()
	return s.snapshot
}

// ResolveTodo returns the todo with the given id.
func (s *State) ResolveTodo(id string) (Todo, bool) {
	t, ok := s.snapshot.Todos[id]
	if !ok {
		return Todo{}, false
	}
	return t.clone(), true
}

// ResolveEvent returns the event with the given id.
func (s *State) ResolveEvent(id string) (Event, bool) {
	e, ok := s.snapshot.Events[id]
	if !ok {
		return Event{}, false
	}
	return e.clone(), true
}

// Todos returns every todo ordered for display: by status (in progress
// first, complete last), then title, then ID.
func (s *State) Todos() []Todo {
	todos := make([]Todo, 0, len(s.snapshot.Todos))
	for _, id := range slices.Sorted(maps.Keys(s.snapshot.Todos)) {
		todos = append(todos, s.snapshot.Todos[id].clone())
	}
	slices.SortStableFunc(todos, func(a, b Todo) int {
		return cmp.Or(
			cmp.Compare(statusRank(a.Status), statusRank(b.Status)),
			strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)),
			strings.Compare(a.ID, b.ID),
		)
	})
	return todos
}

// Events returns every event ordered by start time. Unscheduled events
// sort last; ties break on title, then ID.
func (s *State) Events() []Event {
	events := make([]Event, 0, len(s.snapshot.Events))
	for _, id := range slices.Sorted(maps.Keys(s.snapshot.Events)) {
		events = append(events, s.snapshot.Events[id].clone())
	}
	slices.SortStableFunc(events, func(a, b Event) int {
		return cmp.Or(
			compareStart(a, b),
			strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)),
			strings.Compare(a.ID, b.ID),
		)
	})
	return events
}

// BlockersOf returns the todos that list id among their dependents and are
// not yet resolved.
func (s *State) BlockersOf(id string) []Todo {
	var blockers []Todo
	for _, t := range s.Todos() {
		if t.Status.IsResolved() {
			continue
		}
		if slices.Contains(t.DependentIDs, id) {
			blockers = append(blockers, t)
		}
	}
	return blockers
}

// EventsCausedBy returns the events that list the todo among their causes.
func (s *State) EventsCausedBy(todoID string) []Event {
	var events []Event
	for _, e := range s.Events() {
		if slices.Contains(e.Causes, TodoCause(todoID)) {
			events = append(events, e)
		}
	}
	return events
}

func compareStart(a, b Event) int {
	switch {
	case a.Start == nil && b.Start == nil:
		return 0
	case a.Start == nil:
		return 1
	case b.Start == nil:
		return -1
	default:
		return a.Start.Compare(*b.Start)
	}
}
