package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/amonks/agenda/agenda"
	"github.com/amonks/agenda/internal/editor"
	"github.com/amonks/agenda/internal/listflags"
	"github.com/amonks/agenda/internal/tui"
	"github.com/amonks/agenda/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos and events",
	Long: `List todos and events.

Todos are ordered by status (in-progress, ready, blocked, complete) and then
by title. Events are ordered by start time, with unscheduled events last.

With -i, opens the interactive view, where "s" cycles the selected todo's
status and appends the change to the log.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listJSON        bool
	listInteractive bool
	listScope       listflags.Scope
)

func init() {
	rootCmd.AddCommand(listCmd)
	listflags.AddJSONFlag(listCmd, &listJSON)
	listflags.AddScopeFlags(listCmd, &listScope)
	listCmd.Flags().BoolVarP(&listInteractive, "interactive", "i", false, "Open the interactive view")
	listCmd.MarkFlagsMutuallyExclusive("json", "interactive")
}

// listOutput is the JSON shape of `list --json`.
type listOutput struct {
	Todos  []agenda.DisplayRecord `json:"todos"`
	Events []agenda.Event         `json:"events"`
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	state, err := a.load()
	if err != nil {
		return err
	}

	interactive := listInteractive
	if !cmd.Flags().Changed("interactive") && !listJSON && a.cfg.Display.Interactive {
		interactive = editor.IsInteractive()
	}
	if interactive {
		opts := tui.Options{Now: nowFunc}
		if rootAt < 0 {
			opts.Persist = func(action agenda.Action) error {
				return a.store.Append(action)
			}
		}
		return tui.Run(cmd.Context(), state, opts)
	}

	if listJSON {
		return writeListJSON(a.out, state)
	}

	if listScope.Todos() {
		fmt.Fprint(a.out, formatTodoTable(state, ui.HighlightID, nowFunc()))
	}
	if listScope.Todos() && listScope.Events() {
		fmt.Fprintln(a.out)
	}
	if listScope.Events() {
		fmt.Fprint(a.out, formatEventTable(state, ui.HighlightID))
	}
	return nil
}

func writeListJSON(w io.Writer, state *agenda.State) error {
	output := listOutput{
		Todos:  []agenda.DisplayRecord{},
		Events: []agenda.Event{},
	}
	if listScope.Todos() {
		for _, t := range state.Todos() {
			output.Todos = append(output.Todos, t.DisplayRecord())
		}
	}
	if listScope.Events() {
		output.Events = append(output.Events, state.Events()...)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
