package agenda

import "time"

// ActionKind names one entry of the action vocabulary.
type ActionKind string

const (
	TodoCreate          ActionKind = "todo.create"
	TodoSetTitle        ActionKind = "todo.set_title"
	TodoSetStatus       ActionKind = "todo.set_status"
	TodoSetEstimate     ActionKind = "todo.set_estimate"
	TodoSetDeadline     ActionKind = "todo.set_deadline"
	TodoAddDependent    ActionKind = "todo.add_dependent"
	TodoRemoveDependent ActionKind = "todo.remove_dependent"
	TodoDestroy         ActionKind = "todo.destroy"

	EventCreate      ActionKind = "event.create"
	EventSetTitle    ActionKind = "event.set_title"
	EventSetStart    ActionKind = "event.set_start"
	EventSetDuration ActionKind = "event.set_duration"
	EventAddCause    ActionKind = "event.add_cause"
	EventRemoveCause ActionKind = "event.remove_cause"
	EventDestroy     ActionKind = "event.destroy"
)

// ActionKinds returns every kind Reduce understands.
func ActionKinds() []ActionKind {
	return []ActionKind{
		TodoCreate, TodoSetTitle, TodoSetStatus, TodoSetEstimate, TodoSetDeadline,
		TodoAddDependent, TodoRemoveDependent, TodoDestroy,
		EventCreate, EventSetTitle, EventSetStart, EventSetDuration,
		EventAddCause, EventRemoveCause, EventDestroy,
	}
}

// IsKnown returns true if Reduce has a transition for the kind.
func (k ActionKind) IsKnown() bool {
	for _, known := range ActionKinds() {
		if k == known {
			return true
		}
	}
	return false
}

// TargetsTodo returns true for kinds whose target is TodoID.
func (k ActionKind) TargetsTodo() bool {
	switch k {
	case TodoCreate, TodoSetTitle, TodoSetStatus, TodoSetEstimate, TodoSetDeadline,
		TodoAddDependent, TodoRemoveDependent, TodoDestroy:
		return true
	default:
		return false
	}
}

// TargetsEvent returns true for kinds whose target is EventID.
func (k ActionKind) TargetsEvent() bool {
	return k.IsKnown() && !k.TargetsTodo()
}

// Action is one immutable record of the log. Only the fields relevant to
// Type are read; the rest stay zero.
type Action struct {
	Type ActionKind `yaml:"type" json:"type"`

	TodoID  string `yaml:"todoId,omitempty" json:"todoId,omitempty"`
	EventID string `yaml:"eventId,omitempty" json:"eventId,omitempty"`

	// Todo and Event carry the fields supplied to a create. Their ID is
	// ignored in favour of TodoID/EventID.
	Todo  *Todo  `yaml:"todo,omitempty" json:"todo,omitempty"`
	Event *Event `yaml:"event,omitempty" json:"event,omitempty"`

	Title       string        `yaml:"title,omitempty" json:"title,omitempty"`
	Status      Status        `yaml:"status,omitempty" json:"status,omitempty"`
	Estimate    *Estimate     `yaml:"estimate,omitempty" json:"estimate,omitempty"`
	Deadline    *time.Time    `yaml:"deadline,omitempty" json:"deadline,omitempty"`
	DependentID string        `yaml:"dependentId,omitempty" json:"dependentId,omitempty"`
	Start       *time.Time    `yaml:"start,omitempty" json:"start,omitempty"`
	Duration    time.Duration `yaml:"duration,omitempty" json:"duration,omitempty"`
	Cause       *Cause        `yaml:"cause,omitempty" json:"cause,omitempty"`
}

// TargetID returns the todo or event ID the action addresses.
func (a Action) TargetID() string {
	if a.Type.TargetsEvent() {
		return a.EventID
	}
	return a.TodoID
}

// CreateTodo builds a todo.create action from the supplied fields.
func CreateTodo(todoID string, fields Todo) Action {
	return Action{Type: TodoCreate, TodoID: todoID, Todo: &fields}
}

// SetTodoTitle builds a todo.set_title action.
func SetTodoTitle(todoID, title string) Action {
	return Action{Type: TodoSetTitle, TodoID: todoID, Title: title}
}

// SetTodoStatus builds a todo.set_status action.
func SetTodoStatus(todoID string, status Status) Action {
	return Action{Type: TodoSetStatus, TodoID: todoID, Status: status}
}

// SetTodoEstimate builds a todo.set_estimate action. A nil estimate clears it.
func SetTodoEstimate(todoID string, estimate *Estimate) Action {
	return Action{Type: TodoSetEstimate, TodoID: todoID, Estimate: estimate}
}

// SetTodoDeadline builds a todo.set_deadline action. A nil deadline clears it.
func SetTodoDeadline(todoID string, deadline *time.Time) Action {
	return Action{Type: TodoSetDeadline, TodoID: todoID, Deadline: deadline}
}

// AddTodoDependent builds a todo.add_dependent action.
func AddTodoDependent(todoID, dependentID string) Action {
	return Action{Type: TodoAddDependent, TodoID: todoID, DependentID: dependentID}
}

// RemoveTodoDependent builds a todo.remove_dependent action.
func RemoveTodoDependent(todoID, dependentID string) Action {
	return Action{Type: TodoRemoveDependent, TodoID: todoID, DependentID: dependentID}
}

// DestroyTodo builds a todo.destroy action.
func DestroyTodo(todoID string) Action {
	return Action{Type: TodoDestroy, TodoID: todoID}
}

// CreateEvent builds an event.create action from the supplied fields.
func CreateEvent(eventID string, fields Event) Action {
	return Action{Type: EventCreate, EventID: eventID, Event: &fields}
}

// SetEventTitle builds an event.set_title action.
func SetEventTitle(eventID, title string) Action {
	return Action{Type: EventSetTitle, EventID: eventID, Title: title}
}

// SetEventStart builds an event.set_start action. A nil start clears it.
func SetEventStart(eventID string, start *time.Time) Action {
	return Action{Type: EventSetStart, EventID: eventID, Start: start}
}

// SetEventDuration builds an event.set_duration action.
func SetEventDuration(eventID string, duration time.Duration) Action {
	return Action{Type: EventSetDuration, EventID: eventID, Duration: duration}
}

// AddEventCause builds an event.add_cause action.
func AddEventCause(eventID string, cause Cause) Action {
	return Action{Type: EventAddCause, EventID: eventID, Cause: &cause}
}

// RemoveEventCause builds an event.remove_cause action.
func RemoveEventCause(eventID string, cause Cause) Action {
	return Action{Type: EventRemoveCause, EventID: eventID, Cause: &cause}
}

// DestroyEvent builds an event.destroy action.
func DestroyEvent(eventID string) Action {
	return Action{Type: EventDestroy, EventID: eventID}
}
