package agenda

import (
	"fmt"
	"slices"
	"time"

	"github.com/amonks/agenda/internal/ids"
)

// Todo is a unit of work.
type Todo struct {
	// ID is assigned at creation and never changes.
	ID string `yaml:"id,omitempty" json:"id"`

	// Title is the display string.
	Title string `yaml:"title,omitempty" json:"title"`

	// Status is the current state of the todo.
	Status Status `yaml:"status,omitempty" json:"status"`

	// Estimate is the advisory effort range (nil when unknown).
	Estimate *Estimate `yaml:"estimate,omitempty" json:"estimate"`

	// Deadline is when the todo is due (nil when there is none).
	Deadline *time.Time `yaml:"deadline,omitempty" json:"deadline"`

	// DependentIDs lists the todos blocked by this one, in insertion order.
	// Duplicates are kept.
	DependentIDs []string `yaml:"dependentIDs,omitempty" json:"dependentIDs"`
}

// Estimate is an effort range in minutes.
type Estimate struct {
	LowMinutes  int `yaml:"lowMinutes" json:"lowMinutes"`
	HighMinutes int `yaml:"highMinutes" json:"highMinutes"`
}

// String formats the estimate as "30m" or "30m–1h30m".
func (e Estimate) String() string {
	low := formatMinutes(e.LowMinutes)
	if e.LowMinutes == e.HighMinutes {
		return low
	}
	return low + "–" + formatMinutes(e.HighMinutes)
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh%dm", minutes/60, minutes%60)
}

// NewTodo returns a todo with default fields. An empty id is replaced with
// a freshly generated one.
func NewTodo(id, title string) Todo {
	if id == "" {
		id = NewID()
	}
	return Todo{
		ID:           id,
		Title:        title,
		Status:       StatusReady,
		DependentIDs: []string{},
	}
}

// NewID returns a fresh identifier for interactive creation flows.
func NewID() string {
	return ids.New(ids.DefaultLength)
}

// DisplayRecord is the serialized projection of a todo.
type DisplayRecord struct {
	ID       string     `yaml:"id" json:"id"`
	Title    string     `yaml:"title" json:"title"`
	Status   Status     `yaml:"status" json:"status"`
	Estimate *Estimate  `yaml:"estimate" json:"estimate"`
	Deadline *time.Time `yaml:"deadline" json:"deadline"`
}

// DisplayRecord projects the todo for serialization.
func (t Todo) DisplayRecord() DisplayRecord {
	return DisplayRecord{
		ID:       t.ID,
		Title:    t.Title,
		Status:   t.Status,
		Estimate: cloneEstimate(t.Estimate),
		Deadline: cloneTime(t.Deadline),
	}
}

// clone returns a copy of t that shares no memory with it.
func (t Todo) clone() Todo {
	t.Estimate = cloneEstimate(t.Estimate)
	t.Deadline = cloneTime(t.Deadline)
	t.DependentIDs = slices.Clone(t.DependentIDs)
	if t.DependentIDs == nil {
		t.DependentIDs = []string{}
	}
	return t
}

func cloneEstimate(e *Estimate) *Estimate {
	if e == nil {
		return nil
	}
	copied := *e
	return &copied
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}
