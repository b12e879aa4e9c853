package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amonks/agenda/agenda"
	"github.com/amonks/agenda/internal/editor"
	"github.com/amonks/agenda/internal/form"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage events",
}

var eventAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create an event",
	Long: `Create an event.

Without a title, opens a form on a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEventAdd,
}

var (
	eventAddStart    string
	eventAddDuration string
	eventAddID       string
	eventAddCauses   []string
)

var eventTitleCmd = &cobra.Command{
	Use:   "title <id> <title>",
	Short: "Rename an event",
	Args:  cobra.ExactArgs(2),
	RunE:  runEventTitle,
}

var eventStartCmd = &cobra.Command{
	Use:   "start <id> <time>",
	Short: `Set when an event starts ("none" unschedules it)`,
	Args:  cobra.ExactArgs(2),
	RunE:  runEventStart,
}

var eventDurationCmd = &cobra.Command{
	Use:   "duration <id> <duration>",
	Short: `Set how long an event lasts, such as "45m" or "1h30m"`,
	Args:  cobra.ExactArgs(2),
	RunE:  runEventDuration,
}

var eventCauseCmd = &cobra.Command{
	Use:   "cause",
	Short: "Manage the todos that explain an event",
}

var eventCauseAddCmd = &cobra.Command{
	Use:   "add <id> <todo-id>...",
	Short: "Record that todos caused an event",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runEventCauseAdd,
}

var eventCauseRmCmd = &cobra.Command{
	Use:     "rm <id> <todo-id>...",
	Aliases: []string{"remove"},
	Short:   "Remove todos from an event's causes",
	Args:    cobra.MinimumNArgs(2),
	RunE:    runEventCauseRm,
}

var eventDestroyCmd = &cobra.Command{
	Use:   "destroy <id>...",
	Short: "Delete events",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEventDestroy,
}

func init() {
	rootCmd.AddCommand(eventCmd)
	eventCmd.AddCommand(eventAddCmd, eventTitleCmd, eventStartCmd, eventDurationCmd,
		eventCauseCmd, eventDestroyCmd)
	eventCauseCmd.AddCommand(eventCauseAddCmd, eventCauseRmCmd)

	eventAddCmd.Flags().StringVar(&eventAddStart, "start", "", `Start time, such as "2026-03-01 09:30"`)
	eventAddCmd.Flags().StringVar(&eventAddDuration, "duration", "", `Duration, such as "45m"`)
	eventAddCmd.Flags().StringVar(&eventAddID, "id", "", "ID to use instead of a generated one")
	eventAddCmd.Flags().StringArrayVar(&eventAddCauses, "cause", nil, "ID of a todo that caused this event (repeatable)")
	addFlagAliases(eventFlagAliases, eventAddCmd)
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	a, err := openWriter(cmd)
	if err != nil {
		return err
	}
	state, err := a.load()
	if err != nil {
		return err
	}

	id := strings.TrimSpace(eventAddID)
	if id == "" {
		id = agenda.NewID()
	} else if _, exists := state.ResolveEvent(id); exists {
		return fmt.Errorf("event %s already exists", id)
	}

	input := form.EventInput{
		Title:    firstArg(args),
		Start:    eventAddStart,
		Duration: eventAddDuration,
	}
	var fields agenda.Event
	if len(args) == 0 {
		if !editor.IsInteractive() {
			return errors.New("a title is required when not running in a terminal")
		}
		fields, err = form.RunEvent(cmd.Context(), input)
	} else {
		fields, err = input.Event(time.Local)
	}
	if err != nil {
		return err
	}

	causeIDs, err := resolveTodoIDs(state, eventAddCauses)
	if err != nil {
		return err
	}
	for _, todoID := range causeIDs {
		fields.Causes = append(fields.Causes, agenda.TodoCause(todoID))
	}

	if err := a.commit(state, agenda.CreateEvent(id, fields)); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created event %s\n", id)
	return nil
}

// eventUpdate resolves the event named by prefix and commits the actions
// build returns for it.
func eventUpdate(cmd *cobra.Command, prefix string, build func(*agenda.State, agenda.Event) ([]agenda.Action, error)) error {
	a, err := openWriter(cmd)
	if err != nil {
		return err
	}
	state, err := a.load()
	if err != nil {
		return err
	}
	id, err := resolveEventID(state, prefix)
	if err != nil {
		return err
	}
	e, _ := state.ResolveEvent(id)

	actions, err := build(state, e)
	if err != nil {
		return err
	}
	if err := a.commit(state, actions...); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated event %s\n", id)
	return nil
}

func runEventTitle(cmd *cobra.Command, args []string) error {
	return eventUpdate(cmd, args[0], func(_ *agenda.State, e agenda.Event) ([]agenda.Action, error) {
		return []agenda.Action{agenda.SetEventTitle(e.ID, strings.TrimSpace(args[1]))}, nil
	})
}

func runEventStart(cmd *cobra.Command, args []string) error {
	return eventUpdate(cmd, args[0], func(_ *agenda.State, e agenda.Event) ([]agenda.Action, error) {
		start, err := agenda.ParseTime(args[1], time.Local)
		if err != nil {
			return nil, err
		}
		return []agenda.Action{agenda.SetEventStart(e.ID, start)}, nil
	})
}

func runEventDuration(cmd *cobra.Command, args []string) error {
	return eventUpdate(cmd, args[0], func(_ *agenda.State, e agenda.Event) ([]agenda.Action, error) {
		duration, err := agenda.ParseDuration(args[1])
		if err != nil {
			return nil, err
		}
		return []agenda.Action{agenda.SetEventDuration(e.ID, duration)}, nil
	})
}

func runEventCauseAdd(cmd *cobra.Command, args []string) error {
	return eventUpdate(cmd, args[0], func(state *agenda.State, e agenda.Event) ([]agenda.Action, error) {
		todoIDs, err := resolveTodoIDs(state, args[1:])
		if err != nil {
			return nil, err
		}
		actions := make([]agenda.Action, len(todoIDs))
		for i, todoID := range todoIDs {
			actions[i] = agenda.AddEventCause(e.ID, agenda.TodoCause(todoID))
		}
		return actions, nil
	})
}

func runEventCauseRm(cmd *cobra.Command, args []string) error {
	return eventUpdate(cmd, args[0], func(_ *agenda.State, e agenda.Event) ([]agenda.Action, error) {
		causeIDs := make([]string, 0, len(e.Causes))
		for _, cause := range e.Causes {
			causeIDs = append(causeIDs, cause.TodoID)
		}
		index := agenda.NewIDIndex(causeIDs, agenda.ErrTodoNotFound)

		actions := make([]agenda.Action, 0, len(args)-1)
		for _, prefix := range args[1:] {
			todoID, err := index.Resolve(prefix)
			if err != nil {
				return nil, fmt.Errorf("%s is not a cause of %s: %w", prefix, e.ID, err)
			}
			actions = append(actions, agenda.RemoveEventCause(e.ID, agenda.TodoCause(todoID)))
		}
		return actions, nil
	})
}

func runEventDestroy(cmd *cobra.Command, args []string) error {
	a, err := openWriter(cmd)
	if err != nil {
		return err
	}
	state, err := a.load()
	if err != nil {
		return err
	}

	index := agenda.EventIDIndex(state.Snapshot())
	actions := make([]agenda.Action, 0, len(args))
	for _, prefix := range args {
		id, err := index.Resolve(prefix)
		if err != nil {
			return err
		}
		actions = append(actions, agenda.DestroyEvent(id))
	}
	if err := a.commit(state, actions...); err != nil {
		return err
	}
	for _, action := range actions {
		fmt.Fprintf(a.out, "Destroyed event %s\n", action.EventID)
	}
	return nil
}
