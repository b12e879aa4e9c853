package main

import (
	"errors"
	"fmt"

	"github.com/amonks/agenda/agenda"
	"github.com/amonks/agenda/internal/markdown"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a todo or event in detail",
	Long: `Show a todo or event in detail.

The ID may be any unique prefix. Todos are searched first, then events.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showRaw bool

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the markdown source instead of rendering it")
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	state, err := a.load()
	if err != nil {
		return err
	}

	doc, err := showMarkdown(state, args[0])
	if err != nil {
		return err
	}
	if showRaw {
		fmt.Fprint(a.out, doc)
		return nil
	}
	fmt.Fprintln(a.out, string(markdown.SafeRender(a.detailWidth(), 0, []byte(doc))))
	return nil
}

// showMarkdown finds the todo or event named by prefix. A prefix that is
// ambiguous among todos is reported rather than retried against events.
func showMarkdown(state *agenda.State, prefix string) (string, error) {
	todoID, todoErr := resolveTodoID(state, prefix)
	if todoErr == nil {
		t, _ := state.ResolveTodo(todoID)
		return todoMarkdown(state, t, nowFunc()), nil
	}
	if !errors.Is(todoErr, agenda.ErrTodoNotFound) {
		return "", todoErr
	}

	eventID, err := resolveEventID(state, prefix)
	if err != nil {
		if errors.Is(err, agenda.ErrEventNotFound) {
			return "", fmt.Errorf("no todo or event matches %q", prefix)
		}
		return "", err
	}
	e, _ := state.ResolveEvent(eventID)
	return eventMarkdown(state, e), nil
}
