package agenda

import (
	"slices"
	"time"
)

// CauseKind tags what a Cause refers to.
type CauseKind string

// CauseTodo marks a cause that references a todo.
const CauseTodo CauseKind = "todo"

// IsValid returns true if the kind is a known valid value.
func (k CauseKind) IsValid() bool {
	return k == CauseTodo
}

// Cause explains why an event exists.
type Cause struct {
	Kind   CauseKind `yaml:"kind" json:"kind"`
	TodoID string    `yaml:"todoId,omitempty" json:"todoId,omitempty"`
}

// TodoCause returns a cause referencing the given todo.
func TodoCause(todoID string) Cause {
	return Cause{Kind: CauseTodo, TodoID: todoID}
}

// Event is a scheduled occurrence.
type Event struct {
	ID       string        `yaml:"id,omitempty" json:"id"`
	Title    string        `yaml:"title,omitempty" json:"title"`
	Start    *time.Time    `yaml:"start,omitempty" json:"start"`
	Duration time.Duration `yaml:"duration,omitempty" json:"duration"`
	Causes   []Cause       `yaml:"causes,omitempty" json:"causes"`
}

// NewEvent returns an event with default fields. An empty id is replaced
// with a freshly generated one.
func NewEvent(id, title string) Event {
	if id == "" {
		id = NewID()
	}
	return Event{
		ID:     id,
		Title:  title,
		Causes: []Cause{},
	}
}

// End returns when the event finishes, or false when it has no start.
func (e Event) End() (time.Time, bool) {
	if e.Start == nil {
		return time.Time{}, false
	}
	return e.Start.Add(e.Duration), true
}

func (e Event) clone() Event {
	e.Start = cloneTime(e.Start)
	e.Causes = slices.Clone(e.Causes)
	if e.Causes == nil {
		e.Causes = []Cause{}
	}
	return e
}
