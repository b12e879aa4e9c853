package agenda

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/agenda/internal/validation"
)

// MaxTitleLength is the maximum allowed length for a todo or event title.
const MaxTitleLength = 500

var (
	// ErrUnknownAction is returned when an action kind is not in the vocabulary.
	ErrUnknownAction = errors.New("unknown action type")

	// ErrMissingID is returned when an action does not name its target.
	ErrMissingID = errors.New("action is missing its target ID")

	// ErrEmptyTitle is returned when a title is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidEstimate is returned for negative or inverted estimates.
	ErrInvalidEstimate = errors.New("invalid estimate")

	// ErrNegativeDuration is returned when an event duration is below zero.
	ErrNegativeDuration = errors.New("duration cannot be negative")

	// ErrInvalidCause is returned when a cause has an unknown kind or no reference.
	ErrInvalidCause = errors.New("invalid cause")

	// ErrMissingDependent is returned when a dependent action names no todo.
	ErrMissingDependent = errors.New("dependent ID cannot be empty")

	// ErrTodoNotFound is returned when a todo with the given ID doesn't exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrEventNotFound is returned when an event with the given ID doesn't exist.
	ErrEventNotFound = errors.New("event not found")

	// ErrAmbiguousIDPrefix is returned when an ID prefix matches multiple entities.
	ErrAmbiguousIDPrefix = errors.New("ambiguous ID prefix")
)

func invalidStatusError(value string) error {
	return validation.FormatInvalidValueError(ErrInvalidStatus, Status(value), ValidStatuses())
}

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidateStatus checks that the status is one of ValidStatuses.
func ValidateStatus(status Status) error {
	if !status.IsValid() {
		return invalidStatusError(string(status))
	}
	return nil
}

// ValidateEstimate checks that both bounds are non-negative and ordered.
// A nil estimate is valid.
func ValidateEstimate(e *Estimate) error {
	if e == nil {
		return nil
	}
	if e.LowMinutes < 0 || e.HighMinutes < 0 {
		return fmt.Errorf("%w: bounds must be non-negative, got %d..%d", ErrInvalidEstimate, e.LowMinutes, e.HighMinutes)
	}
	if e.LowMinutes > e.HighMinutes {
		return fmt.Errorf("%w: low %d exceeds high %d", ErrInvalidEstimate, e.LowMinutes, e.HighMinutes)
	}
	return nil
}

// ValidateCause checks the cause kind and reference.
func ValidateCause(c *Cause) error {
	if c == nil {
		return fmt.Errorf("%w: missing", ErrInvalidCause)
	}
	if !c.Kind.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidCause, c.Kind, []CauseKind{CauseTodo})
	}
	if c.TodoID == "" {
		return fmt.Errorf("%w: %s cause has no todo ID", ErrInvalidCause, c.Kind)
	}
	return nil
}

// ValidateAction checks an action before it is written to the log. Reduce
// accepts anything; writers must not.
func ValidateAction(a Action) error {
	if !a.Type.IsKnown() {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	if a.TargetID() == "" {
		return fmt.Errorf("%w: %s", ErrMissingID, a.Type)
	}

	switch a.Type {
	case TodoCreate:
		if a.Todo == nil {
			return fmt.Errorf("%w: %s has no todo", ErrEmptyTitle, a.Type)
		}
		if err := ValidateTitle(a.Todo.Title); err != nil {
			return err
		}
		if a.Todo.Status != "" {
			if err := ValidateStatus(a.Todo.Status); err != nil {
				return err
			}
		}
		return ValidateEstimate(a.Todo.Estimate)
	case TodoSetTitle, EventSetTitle:
		return ValidateTitle(a.Title)
	case TodoSetStatus:
		return ValidateStatus(a.Status)
	case TodoSetEstimate:
		return ValidateEstimate(a.Estimate)
	case TodoAddDependent, TodoRemoveDependent:
		if a.DependentID == "" {
			return ErrMissingDependent
		}
	case EventCreate:
		if a.Event == nil {
			return fmt.Errorf("%w: %s has no event", ErrEmptyTitle, a.Type)
		}
		if err := ValidateTitle(a.Event.Title); err != nil {
			return err
		}
		if a.Event.Duration < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeDuration, a.Event.Duration)
		}
		for i := range a.Event.Causes {
			if err := ValidateCause(&a.Event.Causes[i]); err != nil {
				return err
			}
		}
	case EventSetDuration:
		if a.Duration < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeDuration, a.Duration)
		}
	case EventAddCause, EventRemoveCause:
		return ValidateCause(a.Cause)
	}
	return nil
}

// CheckTarget reports whether the entity a mutates exists in s. Creates
// and destroys need no existing target.
func CheckTarget(s Snapshot, a Action) error {
	switch a.Type {
	case TodoCreate, TodoDestroy, EventCreate, EventDestroy:
		return nil
	}
	if a.Type.TargetsTodo() {
		if _, ok := s.Todos[a.TodoID]; !ok {
			return fmt.Errorf("%w: %s", ErrTodoNotFound, a.TodoID)
		}
		return nil
	}
	if a.Type.TargetsEvent() {
		if _, ok := s.Events[a.EventID]; !ok {
			return fmt.Errorf("%w: %s", ErrEventNotFound, a.EventID)
		}
	}
	return nil
}
