package agenda

import (
	"maps"
	"slices"
)

// Snapshot is the materialized agenda at one point in the log. A snapshot
// is never modified after Reduce returns it; every key equals the ID of
// its value.
type Snapshot struct {
	Todos  map[string]Todo
	Events map[string]Event
}

// EmptySnapshot returns the snapshot before any action was applied.
func EmptySnapshot() Snapshot {
	return Snapshot{
		Todos:  map[string]Todo{},
		Events: map[string]Event{},
	}
}

// Reduce applies one action to s and returns the resulting snapshot.
//
// Reduce is total. Unknown kinds and mutations of missing entities return
// s unchanged, so a log written by a newer version still replays.
func Reduce(s Snapshot, a Action) Snapshot {
	switch a.Type {
	case TodoCreate:
		return s.putTodo(createTodo(a))
	case TodoSetTitle:
		return s.updateTodo(a.TodoID, func(t Todo) (Todo, bool) {
			t.Title = a.Title
			return t, true
		})
	case TodoSetStatus:
		return s.updateTodo(a.TodoID, func(t Todo) (Todo, bool) {
			t.Status = a.Status
			return t, true
		})
	case TodoSetEstimate:
		return s.updateTodo(a.TodoID, func(t Todo) (Todo, bool) {
			t.Estimate = cloneEstimate(a.Estimate)
			return t, true
		})
	case TodoSetDeadline:
		return s.updateTodo(a.TodoID, func(t Todo) (Todo, bool) {
			t.Deadline = cloneTime(a.Deadline)
			return t, true
		})
	case TodoAddDependent:
		return s.updateTodo(a.TodoID, func(t Todo) (Todo, bool) {
			t.DependentIDs = append(t.DependentIDs, a.DependentID)
			return t, true
		})
	case TodoRemoveDependent:
		return s.updateTodo(a.TodoID, func(t Todo) (Todo, bool) {
			if !slices.Contains(t.DependentIDs, a.DependentID) {
				return t, false
			}
			t.DependentIDs = slices.DeleteFunc(t.DependentIDs, func(id string) bool {
				return id == a.DependentID
			})
			return t, true
		})
	case TodoDestroy:
		return s.deleteTodo(a.TodoID)

	case EventCreate:
		return s.putEvent(createEvent(a))
	case EventSetTitle:
		return s.updateEvent(a.EventID, func(e Event) (Event, bool) {
			e.Title = a.Title
			return e, true
		})
	case EventSetStart:
		return s.updateEvent(a.EventID, func(e Event) (Event, bool) {
			e.Start = cloneTime(a.Start)
			return e, true
		})
	case EventSetDuration:
		return s.updateEvent(a.EventID, func(e Event) (Event, bool) {
			e.Duration = a.Duration
			return e, true
		})
	case EventAddCause:
		if a.Cause == nil {
			return s
		}
		return s.updateEvent(a.EventID, func(e Event) (Event, bool) {
			e.Causes = append(e.Causes, *a.Cause)
			return e, true
		})
	case EventRemoveCause:
		if a.Cause == nil {
			return s
		}
		return s.updateEvent(a.EventID, func(e Event) (Event, bool) {
			if !slices.Contains(e.Causes, *a.Cause) {
				return e, false
			}
			e.Causes = slices.DeleteFunc(e.Causes, func(c Cause) bool {
				return c == *a.Cause
			})
			return e, true
		})
	case EventDestroy:
		return s.deleteEvent(a.EventID)

	default:
		return s
	}
}

// ReduceAll folds actions left to right starting from s.
func ReduceAll(s Snapshot, actions []Action) Snapshot {
	for _, a := range actions {
		s = Reduce(s, a)
	}
	return s
}

func createTodo(a Action) Todo {
	var t Todo
	if a.Todo != nil {
		t = a.Todo.clone()
	} else {
		t = Todo{DependentIDs: []string{}}
	}
	if t.Status == "" {
		t.Status = StatusReady
	}
	t.ID = a.TodoID
	return t
}

func createEvent(a Action) Event {
	var e Event
	if a.Event != nil {
		e = a.Event.clone()
	} else {
		e = Event{Causes: []Cause{}}
	}
	e.ID = a.EventID
	return e
}

// updateTodo runs fn on a private copy of the todo with the given id. The
// snapshot is returned unchanged when the todo is missing or fn reports
// that nothing changed.
func (s Snapshot) updateTodo(id string, fn func(Todo) (Todo, bool)) Snapshot {
	current, ok := s.Todos[id]
	if !ok {
		return s
	}
	updated, changed := fn(current.clone())
	if !changed {
		return s
	}
	updated.ID = id
	return s.putTodo(updated)
}

func (s Snapshot) updateEvent(id string, fn func(Event) (Event, bool)) Snapshot {
	current, ok := s.Events[id]
	if !ok {
		return s
	}
	updated, changed := fn(current.clone())
	if !changed {
		return s
	}
	updated.ID = id
	return s.putEvent(updated)
}

func (s Snapshot) putTodo(t Todo) Snapshot {
	todos := make(map[string]Todo, len(s.Todos)+1)
	maps.Copy(todos, s.Todos)
	todos[t.ID] = t
	return Snapshot{Todos: todos, Events: s.Events}
}

func (s Snapshot) putEvent(e Event) Snapshot {
	events := make(map[string]Event, len(s.Events)+1)
	maps.Copy(events, s.Events)
	events[e.ID] = e
	return Snapshot{Todos: s.Todos, Events: events}
}

func (s Snapshot) deleteTodo(id string) Snapshot {
	if _, ok := s.Todos[id]; !ok {
		return s
	}
	todos := maps.Clone(s.Todos)
	delete(todos, id)
	return Snapshot{Todos: todos, Events: s.Events}
}

func (s Snapshot) deleteEvent(id string) Snapshot {
	if _, ok := s.Events[id]; !ok {
		return s
	}
	events := maps.Clone(s.Events)
	delete(events, id)
	return Snapshot{Todos: s.Todos, Events: events}
}
