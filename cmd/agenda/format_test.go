package main

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/amonks/agenda/agenda"
)

func plainID(id string, _ int) string { return id }

func sampleState() *agenda.State {
	deadline := time.Date(2026, 3, 1, 17, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return agenda.Replay([]agenda.Action{
		agenda.CreateTodo("abc123", agenda.Todo{Title: "Write spec", Estimate: &agenda.Estimate{LowMinutes: 30, HighMinutes: 90}}),
		agenda.CreateTodo("abd456", agenda.Todo{Title: "Ship it", Deadline: &deadline}),
		agenda.AddTodoDependent("abc123", "abd456"),
		agenda.SetTodoStatus("abc123", agenda.StatusInProgress),
		agenda.CreateEvent("e1", agenda.Event{Title: "Rehearsal", Start: &start, Duration: 45 * time.Minute}),
		agenda.AddEventCause("e1", agenda.TodoCause("abc123")),
	})
}

func TestFormatTodoTablePreservesAlignmentWithANSI(t *testing.T) {
	state := sampleState()
	now := time.Date(2026, 2, 28, 17, 0, 0, 0, time.UTC)

	plain := formatTodoTable(state, plainID, now)
	ansi := formatTodoTable(state, func(id string, prefix int) string {
		if prefix <= 0 || prefix > len(id) {
			return id
		}
		return "\x1b[1m\x1b[36m" + id[:prefix] + "\x1b[0m" + id[prefix:]
	}, now)

	if stripANSICodes(ansi) != plain {
		t.Fatalf("expected ANSI output to align with plain output\nplain:\n%s\nansi:\n%s", plain, ansi)
	}
}

func TestFormatTodoTableRows(t *testing.T) {
	state := sampleState()
	now := time.Date(2026, 2, 28, 17, 0, 0, 0, time.UTC)

	output := formatTodoTable(state, func(id string, prefix int) string {
		return fmt.Sprintf("%s:%d", id, prefix)
	}, now)
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got:\n%s", output)
	}

	// In-progress sorts before ready.
	if !strings.Contains(lines[1], "abc123:3") || !strings.Contains(lines[1], "30m–1h30m") {
		t.Fatalf("expected first row to be the in-progress todo, got %q", lines[1])
	}
	if !strings.Contains(lines[2], "(in 1d)") {
		t.Fatalf("expected deadline distance in %q", lines[2])
	}
	if !strings.HasSuffix(strings.TrimSpace(lines[2]), "abc123") {
		t.Fatalf("expected blocker column to list abc123, got %q", lines[2])
	}
}

func TestFormatTablesEmpty(t *testing.T) {
	state := agenda.NewState()
	if got := formatTodoTable(state, plainID, time.Now()); got != "No todos.\n" {
		t.Fatalf("unexpected empty todo table %q", got)
	}
	if got := formatEventTable(state, plainID); got != "No events.\n" {
		t.Fatalf("unexpected empty event table %q", got)
	}
	if got := formatActionTable(nil); got != "No actions.\n" {
		t.Fatalf("unexpected empty action table %q", got)
	}
}

func TestFormatEventTable(t *testing.T) {
	output := formatEventTable(sampleState(), plainID)
	if !strings.Contains(output, "45m") || !strings.Contains(output, "todo:abc123") {
		t.Fatalf("expected duration and cause in event table, got:\n%s", output)
	}
}

func TestTodoMarkdown(t *testing.T) {
	state := sampleState()
	todo, _ := state.ResolveTodo("abd456")
	doc := todoMarkdown(state, todo, time.Date(2026, 2, 28, 17, 0, 0, 0, time.UTC))

	for _, want := range []string{
		"# Ship it\n",
		"- **Status:**   ready\n",
		"## Blocked by\n\n- abc123 Write spec (in-progress)\n",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected %q in:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "## Blocks") {
		t.Fatalf("did not expect a Blocks section:\n%s", doc)
	}
}

func TestEventMarkdownListsMissingCauses(t *testing.T) {
	state := sampleState()
	state.ApplyAction(agenda.DestroyTodo("abc123"))
	event, _ := state.ResolveEvent("e1")

	doc := eventMarkdown(state, event)
	if !strings.Contains(doc, "- abc123 (missing)\n") {
		t.Fatalf("expected missing cause marker in:\n%s", doc)
	}
}

func TestFormatActionTable(t *testing.T) {
	actions := []agenda.Action{
		agenda.CreateTodo("t1", agenda.Todo{Title: "Write spec"}),
		{Type: "todo.snooze", TodoID: "t1"},
		agenda.SetTodoEstimate("t1", nil),
	}
	output := formatActionTable(actions)

	for _, want := range []string{`"Write spec"`, "todo.snooze (ignored)", "cleared"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in:\n%s", want, output)
		}
	}
}
