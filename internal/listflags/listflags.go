// Package listflags holds the flags shared by commands that print todos
// and events.
package listflags

import "github.com/spf13/cobra"

// Scope selects which halves of the agenda a listing prints.
type Scope struct {
	TodosOnly  bool
	EventsOnly bool
}

// Todos reports whether todos are printed.
func (s Scope) Todos() bool { return !s.EventsOnly }

// Events reports whether events are printed.
func (s Scope) Events() bool { return !s.TodosOnly }

// AddScopeFlags adds the mutually exclusive --todos and --events flags.
func AddScopeFlags(cmd *cobra.Command, target *Scope) {
	cmd.Flags().BoolVar(&target.TodosOnly, "todos", false, "Only list todos")
	cmd.Flags().BoolVar(&target.EventsOnly, "events", false, "Only list events")
	cmd.MarkFlagsMutuallyExclusive("todos", "events")
}

// AddJSONFlag adds a --json flag.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}
