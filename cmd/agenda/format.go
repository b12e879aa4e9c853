package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/amonks/agenda/agenda"
	"github.com/amonks/agenda/internal/ui"
)

func formatTodoTable(state *agenda.State, highlight func(string, int) string, now time.Time) string {
	todos := state.Todos()
	if len(todos) == 0 {
		return "No todos.\n"
	}

	prefixLengths := agenda.TodoIDIndex(state.Snapshot()).PrefixLengths()
	builder := ui.NewTableBuilder([]string{"", "ID", "TITLE", "ESTIMATE", "DEADLINE", "BLOCKED BY"}, len(todos))
	for _, t := range todos {
		estimate := "-"
		if t.Estimate != nil {
			estimate = t.Estimate.String()
		}
		builder.AddRow([]string{
			t.Status.Glyph(),
			highlight(t.ID, ui.PrefixLength(prefixLengths, t.ID)),
			ui.TruncateTableCell(t.Title),
			estimate,
			ui.FormatDeadline(t.Deadline, now),
			formatBlockers(state.BlockersOf(t.ID)),
		})
	}
	return builder.String()
}

func formatBlockers(blockers []agenda.Todo) string {
	if len(blockers) == 0 {
		return "-"
	}
	ids := make([]string, len(blockers))
	for i, blocker := range blockers {
		ids[i] = blocker.ID
	}
	return strings.Join(ids, ",")
}

func formatEventTable(state *agenda.State, highlight func(string, int) string) string {
	events := state.Events()
	if len(events) == 0 {
		return "No events.\n"
	}

	prefixLengths := agenda.EventIDIndex(state.Snapshot()).PrefixLengths()
	builder := ui.NewTableBuilder([]string{"ID", "START", "DURATION", "TITLE", "CAUSES"}, len(events))
	for _, e := range events {
		builder.AddRow([]string{
			highlight(e.ID, ui.PrefixLength(prefixLengths, e.ID)),
			ui.FormatWhen(e.Start),
			ui.FormatDuration(e.Duration),
			ui.TruncateTableCell(e.Title),
			formatCauses(e.Causes),
		})
	}
	return builder.String()
}

func formatCauses(causes []agenda.Cause) string {
	if len(causes) == 0 {
		return "-"
	}
	parts := make([]string, len(causes))
	for i, cause := range causes {
		parts[i] = fmt.Sprintf("%s:%s", cause.Kind, cause.TodoID)
	}
	return strings.Join(parts, ",")
}

// todoMarkdown describes a todo as a markdown document for `show`.
func todoMarkdown(state *agenda.State, t agenda.Todo, now time.Time) string {
	estimate := "-"
	if t.Estimate != nil {
		estimate = t.Estimate.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	fmt.Fprintf(&b, "- **ID:** %s\n", t.ID)
	fmt.Fprintf(&b, "- **Status:** %s %s\n", t.Status.Glyph(), t.Status)
	fmt.Fprintf(&b, "- **Estimate:** %s\n", estimate)
	fmt.Fprintf(&b, "- **Deadline:** %s\n", ui.FormatDeadline(t.Deadline, now))

	var blocks []string
	for _, id := range t.DependentIDs {
		blocks = append(blocks, todoLine(state, id))
	}
	writeMarkdownList(&b, "Blocks", blocks)

	var blockedBy []string
	for _, blocker := range state.BlockersOf(t.ID) {
		blockedBy = append(blockedBy, todoLine(state, blocker.ID))
	}
	writeMarkdownList(&b, "Blocked by", blockedBy)

	var events []string
	for _, e := range state.EventsCausedBy(t.ID) {
		events = append(events, fmt.Sprintf("%s %s (%s)", e.ID, e.Title, ui.FormatWhen(e.Start)))
	}
	writeMarkdownList(&b, "Events", events)

	return b.String()
}

// eventMarkdown describes an event as a markdown document for `show`.
func eventMarkdown(state *agenda.State, e agenda.Event) string {
	end := "-"
	if finish, ok := e.End(); ok {
		end = ui.FormatWhen(&finish)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", e.Title)
	fmt.Fprintf(&b, "- **ID:** %s\n", e.ID)
	fmt.Fprintf(&b, "- **Start:** %s\n", ui.FormatWhen(e.Start))
	fmt.Fprintf(&b, "- **Duration:** %s\n", ui.FormatDuration(e.Duration))
	fmt.Fprintf(&b, "- **End:** %s\n", end)

	var causes []string
	for _, cause := range e.Causes {
		if cause.Kind != agenda.CauseTodo {
			causes = append(causes, fmt.Sprintf("%s (unknown cause)", cause.Kind))
			continue
		}
		causes = append(causes, todoLine(state, cause.TodoID))
	}
	writeMarkdownList(&b, "Causes", causes)

	return b.String()
}

func todoLine(state *agenda.State, id string) string {
	t, ok := state.ResolveTodo(id)
	if !ok {
		return fmt.Sprintf("%s (missing)", id)
	}
	return fmt.Sprintf("%s %s (%s)", t.ID, t.Title, t.Status)
}

func writeMarkdownList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

// describeAction summarizes an action for the `log` table.
func describeAction(a agenda.Action) string {
	switch a.Type {
	case agenda.TodoCreate, agenda.EventCreate:
		if a.Todo != nil {
			return fmt.Sprintf("%q", a.Todo.Title)
		}
		if a.Event != nil {
			return fmt.Sprintf("%q", a.Event.Title)
		}
	case agenda.TodoSetTitle, agenda.EventSetTitle:
		return fmt.Sprintf("%q", a.Title)
	case agenda.TodoSetStatus:
		return string(a.Status)
	case agenda.TodoSetEstimate:
		if a.Estimate == nil {
			return "cleared"
		}
		return a.Estimate.String()
	case agenda.TodoSetDeadline:
		if a.Deadline == nil {
			return "cleared"
		}
		return ui.FormatWhen(a.Deadline)
	case agenda.TodoAddDependent, agenda.TodoRemoveDependent:
		return a.DependentID
	case agenda.EventSetStart:
		if a.Start == nil {
			return "cleared"
		}
		return ui.FormatWhen(a.Start)
	case agenda.EventSetDuration:
		return ui.FormatDuration(a.Duration)
	case agenda.EventAddCause, agenda.EventRemoveCause:
		if a.Cause != nil {
			return fmt.Sprintf("%s:%s", a.Cause.Kind, a.Cause.TodoID)
		}
	}
	return "-"
}

func formatActionTable(actions []agenda.Action) string {
	if len(actions) == 0 {
		return "No actions.\n"
	}
	builder := ui.NewTableBuilder([]string{"#", "TYPE", "TARGET", "DETAIL"}, len(actions))
	for i, a := range actions {
		typ := string(a.Type)
		if !a.Type.IsKnown() {
			typ += " (ignored)"
		}
		target := a.TargetID()
		if target == "" {
			target = "-"
		}
		builder.AddRow([]string{fmt.Sprint(i + 1), typ, target, ui.TruncateTableCell(describeAction(a))})
	}
	return builder.String()
}
