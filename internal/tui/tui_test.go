package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/amonks/agenda/agenda"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"
)

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func useASCIIRenderer(t *testing.T) {
	originalProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(originalProfile)
	})
}

func testState() *agenda.State {
	start := time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC)
	return agenda.Replay([]agenda.Action{
		agenda.CreateTodo("t1", agenda.Todo{Title: "Write spec"}),
		agenda.CreateTodo("t2", agenda.Todo{Title: "Ship it"}),
		agenda.SetTodoStatus("t2", agenda.StatusInProgress),
		agenda.AddTodoDependent("t1", "t2"),
		agenda.CreateEvent("e1", agenda.Event{Title: "Writing block", Start: &start, Duration: 90 * time.Minute}),
		agenda.AddEventCause("e1", agenda.TodoCause("t1")),
	})
}

func keyRunes(value string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
}

func press(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()

	updated, cmd := m.Update(msg)
	m = updated.(model)
	if cmd != nil {
		if next := cmd(); next != nil {
			if _, quit := next.(tea.QuitMsg); !quit {
				updated, _ = m.Update(next)
				m = updated.(model)
			}
		}
	}
	return m
}

func sizedModel(t *testing.T, state *agenda.State, persist PersistFunc) model {
	t.Helper()

	m := newModel(state, Options{Persist: persist, Now: func() time.Time { return testNow }})
	return press(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
}

func TestViewBeforeSize(t *testing.T) {
	m := newModel(testState(), Options{})
	if got := m.View(); got != "Loading agenda..." {
		t.Fatalf("unexpected view %q", got)
	}
}

func TestViewListsTodosAndDetail(t *testing.T) {
	useASCIIRenderer(t)

	m := sizedModel(t, testState(), nil)
	view := m.View()

	for _, want := range []string{"[1] Todos (2)", "[2] Events (1)", "[…] t2  Ship it", "[ ] t1  Write spec", "Blocked by"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestStatusCyclePersistsThenApplies(t *testing.T) {
	useASCIIRenderer(t)

	state := testState()
	var persisted []agenda.Action
	m := sizedModel(t, state, func(a agenda.Action) error {
		persisted = append(persisted, a)
		return nil
	})

	// t2 (in-progress) sorts first; move to t1.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if selected, _ := m.selectedTodo(); selected.ID != "t1" {
		t.Fatalf("expected t1 selected, got %q", selected.ID)
	}

	m = press(t, m, keyRunes("s"))

	want := []agenda.Action{agenda.SetTodoStatus("t1", agenda.StatusInProgress)}
	if diff := cmp.Diff(want, persisted); diff != "" {
		t.Fatalf("persisted actions mismatch (-want +got):\n%s", diff)
	}
	if got, _ := state.ResolveTodo("t1"); got.Status != agenda.StatusInProgress {
		t.Fatalf("expected t1 in-progress in state, got %q", got.Status)
	}
	if selected, _ := m.selectedTodo(); selected.ID != "t1" {
		t.Fatalf("expected selection to follow t1, got %q", selected.ID)
	}
	if !strings.Contains(m.View(), "t1 is now in-progress") {
		t.Fatalf("expected status line, got:\n%s", m.View())
	}
}

func TestStatusCycleWraps(t *testing.T) {
	state := agenda.Replay([]agenda.Action{
		agenda.CreateTodo("t1", agenda.Todo{Title: "Only", Status: agenda.StatusComplete}),
	})
	m := sizedModel(t, state, func(agenda.Action) error { return nil })

	m = press(t, m, keyRunes("s"))

	if got, _ := state.ResolveTodo("t1"); got.Status != agenda.StatusReady {
		t.Fatalf("expected complete to wrap to ready, got %q", got.Status)
	}
}

func TestStatusCycleFailureLeavesStateAlone(t *testing.T) {
	state := testState()
	m := sizedModel(t, state, func(agenda.Action) error { return errors.New("disk full") })

	m = press(t, m, keyRunes("s"))

	if got, _ := state.ResolveTodo("t2"); got.Status != agenda.StatusInProgress {
		t.Fatalf("expected t2 unchanged, got %q", got.Status)
	}
	if m.statusLevel != statusError || !strings.Contains(m.status, "disk full") {
		t.Fatalf("expected error status, got %q", m.status)
	}
}

func TestReadOnlyViewRejectsStatusCycle(t *testing.T) {
	state := testState()
	before := state.Applied()
	m := sizedModel(t, state, nil)

	m = press(t, m, keyRunes("s"))

	if state.Applied() != before {
		t.Fatalf("expected no actions applied in read-only view")
	}
	if m.statusLevel != statusError {
		t.Fatalf("expected error status, got %q", m.status)
	}
}

func TestEventsTab(t *testing.T) {
	useASCIIRenderer(t)

	m := sizedModel(t, testState(), nil)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	if m.activeTab != tabEvents {
		t.Fatalf("expected events tab")
	}
	view := m.View()
	for _, want := range []string{"Writing block", "1h30m", "Causes", "t1  Write spec"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}

	m = press(t, m, keyRunes("s"))
	if m.status != "" {
		t.Fatalf("expected s to do nothing on the events tab, got %q", m.status)
	}

	m = press(t, m, keyRunes("1"))
	if m.activeTab != tabTodos {
		t.Fatalf("expected todos tab after pressing 1")
	}
}

func TestHelpAndQuit(t *testing.T) {
	m := sizedModel(t, testState(), nil)

	m = press(t, m, keyRunes("?"))
	if !m.showHelp {
		t.Fatalf("expected help to open")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Fatalf("expected help to close")
	}

	_, cmd := m.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestEmptyState(t *testing.T) {
	m := sizedModel(t, agenda.NewState(), func(agenda.Action) error { return nil })

	m = press(t, m, keyRunes("s"))
	if m.status != "No todo selected" {
		t.Fatalf("unexpected status %q", m.status)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if _, ok := m.selectedTodo(); ok {
		t.Fatalf("expected no selection in an empty agenda")
	}
}
