// Package form collects new todos and events interactively with huh.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amonks/agenda/agenda"
	"github.com/charmbracelet/huh"
)

// ErrCancelled is returned when the user aborts a form.
var ErrCancelled = errors.New("cancelled")

// TodoInput holds the raw form values for a new todo.
type TodoInput struct {
	Title    string
	Estimate string
	Deadline string
}

// Todo converts the input into todo fields. Times without a zone are read
// in loc.
func (in TodoInput) Todo(loc *time.Location) (agenda.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if err := agenda.ValidateTitle(title); err != nil {
		return agenda.Todo{}, err
	}
	estimate, err := agenda.ParseEstimate(in.Estimate)
	if err != nil {
		return agenda.Todo{}, err
	}
	deadline, err := agenda.ParseTime(in.Deadline, loc)
	if err != nil {
		return agenda.Todo{}, err
	}
	return agenda.Todo{Title: title, Estimate: estimate, Deadline: deadline}, nil
}

// EventInput holds the raw form values for a new event.
type EventInput struct {
	Title    string
	Start    string
	Duration string
}

// Event converts the input into event fields.
func (in EventInput) Event(loc *time.Location) (agenda.Event, error) {
	title := strings.TrimSpace(in.Title)
	if err := agenda.ValidateTitle(title); err != nil {
		return agenda.Event{}, err
	}
	start, err := agenda.ParseTime(in.Start, loc)
	if err != nil {
		return agenda.Event{}, err
	}
	duration, err := agenda.ParseDuration(in.Duration)
	if err != nil {
		return agenda.Event{}, err
	}
	return agenda.Event{Title: title, Start: start, Duration: duration}, nil
}

// NewTodoForm builds a form bound to in.
func NewTodoForm(in *TodoInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				Value(&in.Title).
				Validate(validateTitle),
			huh.NewInput().
				Title("Estimate").
				Placeholder("30m or 30m-1h (optional)").
				Value(&in.Estimate).
				Validate(validateEstimate),
			huh.NewInput().
				Title("Deadline").
				Placeholder("YYYY-MM-DD or YYYY-MM-DD HH:MM (optional)").
				Value(&in.Deadline).
				Validate(validateTime),
		),
	)
}

// NewEventForm builds a form bound to in.
func NewEventForm(in *EventInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What is happening?").
				Value(&in.Title).
				Validate(validateTitle),
			huh.NewInput().
				Title("Start").
				Placeholder("YYYY-MM-DD HH:MM (optional)").
				Value(&in.Start).
				Validate(validateTime),
			huh.NewInput().
				Title("Duration").
				Placeholder("1h30m (optional)").
				Value(&in.Duration).
				Validate(validateDuration),
		),
	)
}

// RunTodo shows the todo form, starting from in, and returns the fields.
func RunTodo(ctx context.Context, in TodoInput) (agenda.Todo, error) {
	if err := run(ctx, NewTodoForm(&in)); err != nil {
		return agenda.Todo{}, err
	}
	return in.Todo(time.Local)
}

// RunEvent shows the event form, starting from in, and returns the fields.
func RunEvent(ctx context.Context, in EventInput) (agenda.Event, error) {
	if err := run(ctx, NewEventForm(&in)); err != nil {
		return agenda.Event{}, err
	}
	return in.Event(time.Local)
}

func run(ctx context.Context, form *huh.Form) error {
	err := form.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	if err != nil {
		return fmt.Errorf("run form: %w", err)
	}
	return nil
}

func validateTitle(value string) error {
	return agenda.ValidateTitle(strings.TrimSpace(value))
}

func validateEstimate(value string) error {
	_, err := agenda.ParseEstimate(value)
	return err
}

func validateTime(value string) error {
	_, err := agenda.ParseTime(value, time.Local)
	return err
}

func validateDuration(value string) error {
	_, err := agenda.ParseDuration(value)
	return err
}
