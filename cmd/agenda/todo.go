package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/amonks/agenda/agenda"
	"github.com/amonks/agenda/internal/editor"
	"github.com/amonks/agenda/internal/form"
	"github.com/spf13/cobra"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage todos",
}

// todo add
var todoAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a todo",
	Long: `Create a todo.

Without a title, opens a form on a terminal, or $EDITOR with --edit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTodoAdd,
}

var (
	todoAddEstimate string
	todoAddDeadline string
	todoAddID       string
	todoAddStatus   string
	todoAddBlocks   []string
	todoAddEdit     bool
)

// todo title
var todoTitleCmd = &cobra.Command{
	Use:   "title <id> <title>",
	Short: "Rename a todo",
	Args:  cobra.ExactArgs(2),
	RunE:  runTodoTitle,
}

// todo status
var todoStatusCmd = &cobra.Command{
	Use:   "status <id> [status]",
	Short: "Set a todo's status",
	Long: `Set a todo's status to ready, in-progress, blocked, or complete.

Without a status, advances to the next one in that order.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTodoStatus,
}

// todo estimate
var todoEstimateCmd = &cobra.Command{
	Use:   "estimate <id> <estimate>",
	Short: `Set a todo's estimate, such as "30m" or "1h-2h" ("none" clears it)`,
	Args:  cobra.ExactArgs(2),
	RunE:  runTodoEstimate,
}

// todo deadline
var todoDeadlineCmd = &cobra.Command{
	Use:   "deadline <id> <time>",
	Short: `Set a todo's deadline ("none" clears it)`,
	Args:  cobra.ExactArgs(2),
	RunE:  runTodoDeadline,
}

// todo dep
var todoDepCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage which todos a todo blocks",
}

var todoDepAddCmd = &cobra.Command{
	Use:   "add <id> <dependent-id>...",
	Short: "Record that a todo blocks others",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTodoDepAdd,
}

var todoDepRmCmd = &cobra.Command{
	Use:     "rm <id> <dependent-id>...",
	Aliases: []string{"remove"},
	Short:   "Stop a todo blocking others",
	Args:    cobra.MinimumNArgs(2),
	RunE:    runTodoDepRm,
}

// todo destroy
var todoDestroyCmd = &cobra.Command{
	Use:   "destroy <id>...",
	Short: "Delete todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTodoDestroy,
}

// todo edit
var todoEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a todo in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoEdit,
}

func init() {
	rootCmd.AddCommand(todoCmd)
	todoCmd.AddCommand(todoAddCmd, todoTitleCmd, todoStatusCmd, todoEstimateCmd,
		todoDeadlineCmd, todoDepCmd, todoDestroyCmd, todoEditCmd)
	todoDepCmd.AddCommand(todoDepAddCmd, todoDepRmCmd)

	todoAddCmd.Flags().StringVar(&todoAddEstimate, "estimate", "", `Estimate, such as "30m" or "1h-2h"`)
	todoAddCmd.Flags().StringVar(&todoAddDeadline, "deadline", "", `Deadline, such as "2026-03-01" or "2026-03-01 17:00"`)
	todoAddCmd.Flags().StringVar(&todoAddID, "id", "", "ID to use instead of a generated one")
	todoAddCmd.Flags().StringVarP(&todoAddStatus, "status", "s", "", "Initial status (default ready)")
	todoAddCmd.Flags().StringArrayVar(&todoAddBlocks, "blocks", nil, "ID of a todo this one blocks (repeatable)")
	todoAddCmd.Flags().BoolVarP(&todoAddEdit, "edit", "e", false, "Open $EDITOR to fill in the todo")
	addFlagAliases(todoFlagAliases, todoAddCmd)
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	a, err := openWriter(cmd)
	if err != nil {
		return err
	}
	state, err := a.load()
	if err != nil {
		return err
	}

	id := strings.TrimSpace(todoAddID)
	if id == "" {
		id = agenda.NewID()
	} else if _, exists := state.ResolveTodo(id); exists {
		return fmt.Errorf("todo %s already exists", id)
	}

	actions, err := todoAddActions(cmd, state, id, args)
	if err != nil {
		return err
	}
	if err := a.commit(state, actions...); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created todo %s\n", id)
	return nil
}

func todoAddActions(cmd *cobra.Command, state *agenda.State, id string, args []string) ([]agenda.Action, error) {
	if todoAddEdit {
		parsed, err := editor.EditTodoWithData(editor.TodoData{
			Title:      firstArg(args),
			Estimate:   todoAddEstimate,
			Deadline:   todoAddDeadline,
			Dependents: todoAddBlocks,
		})
		if err != nil {
			return nil, err
		}
		dependents, err := resolveTodoIDs(state, parsed.Dependents)
		if err != nil {
			return nil, err
		}
		parsed.Dependents = dependents
		return parsed.CreateActions(id), nil
	}

	if len(args) == 0 {
		if !editor.IsInteractive() {
			return nil, errors.New("a title is required when not running in a terminal")
		}
		fields, err := form.RunTodo(cmd.Context(), form.TodoInput{
			Estimate: todoAddEstimate,
			Deadline: todoAddDeadline,
		})
		if err != nil {
			return nil, err
		}
		return todoCreateActions(state, id, fields)
	}

	fields, err := form.TodoInput{
		Title:    args[0],
		Estimate: todoAddEstimate,
		Deadline: todoAddDeadline,
	}.Todo(time.Local)
	if err != nil {
		return nil, err
	}
	return todoCreateActions(state, id, fields)
}

func todoCreateActions(state *agenda.State, id string, fields agenda.Todo) ([]agenda.Action, error) {
	if todoAddStatus != "" {
		status, err := agenda.ParseStatus(todoAddStatus)
		if err != nil {
			return nil, err
		}
		fields.Status = status
	}
	dependents, err := resolveTodoIDs(state, todoAddBlocks)
	if err != nil {
		return nil, err
	}

	actions := []agenda.Action{agenda.CreateTodo(id, fields)}
	for _, dependent := range dependents {
		actions = append(actions, agenda.AddTodoDependent(id, dependent))
	}
	return actions, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// todoUpdate resolves the todo named by prefix and commits the actions build
// returns for it.
func todoUpdate(cmd *cobra.Command, prefix string, build func(*agenda.State, agenda.Todo) ([]agenda.Action, error)) error {
	a, err := openWriter(cmd)
	if err != nil {
		return err
	}
	state, err := a.load()
	if err != nil {
		return err
	}
	id, err := resolveTodoID(state, prefix)
	if err != nil {
		return err
	}
	t, _ := state.ResolveTodo(id)

	actions, err := build(state, t)
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		fmt.Fprintf(a.out, "Todo %s unchanged\n", id)
		return nil
	}
	if err := a.commit(state, actions...); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated todo %s\n", id)
	return nil
}

func runTodoTitle(cmd *cobra.Command, args []string) error {
	return todoUpdate(cmd, args[0], func(_ *agenda.State, t agenda.Todo) ([]agenda.Action, error) {
		return []agenda.Action{agenda.SetTodoTitle(t.ID, strings.TrimSpace(args[1]))}, nil
	})
}

func runTodoStatus(cmd *cobra.Command, args []string) error {
	return todoUpdate(cmd, args[0], func(_ *agenda.State, t agenda.Todo) ([]agenda.Action, error) {
		status := t.Status.Next()
		if len(args) == 2 {
			parsed, err := agenda.ParseStatus(args[1])
			if err != nil {
				return nil, err
			}
			status = parsed
		}
		return []agenda.Action{agenda.SetTodoStatus(t.ID, status)}, nil
	})
}

func runTodoEstimate(cmd *cobra.Command, args []string) error {
	return todoUpdate(cmd, args[0], func(_ *agenda.State, t agenda.Todo) ([]agenda.Action, error) {
		estimate, err := agenda.ParseEstimate(args[1])
		if err != nil {
			return nil, err
		}
		return []agenda.Action{agenda.SetTodoEstimate(t.ID, estimate)}, nil
	})
}

func runTodoDeadline(cmd *cobra.Command, args []string) error {
	return todoUpdate(cmd, args[0], func(_ *agenda.State, t agenda.Todo) ([]agenda.Action, error) {
		deadline, err := agenda.ParseTime(args[1], time.Local)
		if err != nil {
			return nil, err
		}
		return []agenda.Action{agenda.SetTodoDeadline(t.ID, deadline)}, nil
	})
}

func runTodoDepAdd(cmd *cobra.Command, args []string) error {
	return todoUpdate(cmd, args[0], func(state *agenda.State, t agenda.Todo) ([]agenda.Action, error) {
		dependents, err := resolveTodoIDs(state, args[1:])
		if err != nil {
			return nil, err
		}
		actions := make([]agenda.Action, 0, len(dependents))
		for _, dependent := range dependents {
			if dependent == t.ID {
				return nil, fmt.Errorf("todo %s cannot block itself", t.ID)
			}
			actions = append(actions, agenda.AddTodoDependent(t.ID, dependent))
		}
		return actions, nil
	})
}

func runTodoDepRm(cmd *cobra.Command, args []string) error {
	return todoUpdate(cmd, args[0], func(state *agenda.State, t agenda.Todo) ([]agenda.Action, error) {
		// Dependents may name todos that have since been destroyed, so
		// match against the todo's own list before the live index.
		actions := make([]agenda.Action, 0, len(args)-1)
		for _, prefix := range args[1:] {
			dependent, err := agenda.NewIDIndex(t.DependentIDs, agenda.ErrTodoNotFound).Resolve(prefix)
			if err != nil {
				return nil, fmt.Errorf("%s does not block %s: %w", t.ID, prefix, err)
			}
			actions = append(actions, agenda.RemoveTodoDependent(t.ID, dependent))
		}
		return actions, nil
	})
}

func runTodoDestroy(cmd *cobra.Command, args []string) error {
	a, err := openWriter(cmd)
	if err != nil {
		return err
	}
	state, err := a.load()
	if err != nil {
		return err
	}
	ids, err := resolveTodoIDs(state, args)
	if err != nil {
		return err
	}

	actions := make([]agenda.Action, len(ids))
	for i, id := range ids {
		actions[i] = agenda.DestroyTodo(id)
	}
	if err := a.commit(state, actions...); err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintf(a.out, "Destroyed todo %s\n", id)
	}
	return nil
}

func runTodoEdit(cmd *cobra.Command, args []string) error {
	return todoUpdate(cmd, args[0], func(state *agenda.State, t agenda.Todo) ([]agenda.Action, error) {
		parsed, err := editor.EditTodo(&t)
		if err != nil {
			return nil, err
		}
		dependents, err := resolveEditedDependents(state, t, parsed.Dependents)
		if err != nil {
			return nil, err
		}
		parsed.Dependents = dependents
		return parsed.UpdateActions(t), nil
	})
}

// resolveEditedDependents expands prefixes from the editor. IDs the todo
// already lists are kept as-is even if they no longer resolve.
func resolveEditedDependents(state *agenda.State, t agenda.Todo, prefixes []string) ([]string, error) {
	index := agenda.TodoIDIndex(state.Snapshot())
	resolved := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		id, err := index.Resolve(prefix)
		if err != nil {
			if !slices.Contains(t.DependentIDs, prefix) {
				return nil, err
			}
			id = prefix
		}
		resolved = append(resolved, id)
	}
	return resolved, nil
}
