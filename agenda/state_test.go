package agenda

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestStateInitializeIsIdempotent(t *testing.T) {
	var s State
	s.Initialize()
	s.ApplyAction(CreateTodo("t1", Todo{Title: "keep me"}))
	s.Initialize()

	if _, ok := s.ResolveTodo("t1"); !ok {
		t.Fatalf("second Initialize must not reset applied state")
	}
	if s.Applied() != 1 {
		t.Fatalf("expected 1 applied action, got %d", s.Applied())
	}
}

func TestStateApplyWithoutInitialize(t *testing.T) {
	var s State
	s.ApplyAction(CreateEvent("e1", Event{Title: "Lunch"}))

	event, ok := s.ResolveEvent("e1")
	if !ok {
		t.Fatalf("expected e1 to resolve")
	}
	if event.Title != "Lunch" {
		t.Fatalf("expected title Lunch, got %q", event.Title)
	}
}

func TestStateResolveMissing(t *testing.T) {
	var s State
	if _, ok := s.ResolveTodo("nope"); ok {
		t.Fatalf("expected missing todo on zero state")
	}

	s.Initialize()
	if _, ok := s.ResolveEvent("nope"); ok {
		t.Fatalf("expected missing event")
	}
}

func TestStateResolveReturnsCopy(t *testing.T) {
	s := Replay([]Action{CreateTodo("t1", Todo{Title: "a", DependentIDs: []string{"t2"}})})

	todo, _ := s.ResolveTodo("t1")
	todo.DependentIDs[0] = "mutated"
	todo.Title = "mutated"

	again, _ := s.ResolveTodo("t1")
	if diff := cmp.Diff([]string{"t2"}, again.DependentIDs); diff != "" {
		t.Fatalf("caller mutation leaked into state (-want +got):\n%s", diff)
	}
	if again.Title != "a" {
		t.Fatalf("expected title a, got %q", again.Title)
	}
}

func TestStateSnapshotsStayValid(t *testing.T) {
	s := NewState()
	s.ApplyAction(CreateTodo("t1", Todo{Title: "before"}))
	old := s.Snapshot()

	s.ApplyAction(SetTodoTitle("t1", "after"))
	s.ApplyAction(DestroyTodo("t1"))

	if got := old.Todos["t1"].Title; got != "before" {
		t.Fatalf("old snapshot changed: title %q", got)
	}
	if _, ok := s.ResolveTodo("t1"); ok {
		t.Fatalf("expected t1 destroyed in current state")
	}
}

func TestStateMatchesReduceAll(t *testing.T) {
	log := []Action{
		CreateTodo("a", Todo{Title: "a"}),
		CreateTodo("b", Todo{Title: "b"}),
		AddTodoDependent("a", "b"),
		{Type: "future.kind"},
		SetTodoStatus("b", StatusBlocked),
	}

	s := Replay(log)
	if diff := cmp.Diff(ReduceAll(EmptySnapshot(), log), s.Snapshot()); diff != "" {
		t.Fatalf("state diverged from ReduceAll (-want +got):\n%s", diff)
	}
	if s.Applied() != len(log) {
		t.Fatalf("expected %d applied, got %d", len(log), s.Applied())
	}
}

func TestStateTodosOrder(t *testing.T) {
	s := Replay([]Action{
		CreateTodo("c", Todo{Title: "Zebra", Status: StatusComplete}),
		CreateTodo("r2", Todo{Title: "beta"}),
		CreateTodo("r1", Todo{Title: "Alpha"}),
		CreateTodo("p", Todo{Title: "Working", Status: StatusInProgress}),
		CreateTodo("b", Todo{Title: "Waiting", Status: StatusBlocked}),
		CreateTodo("u", Todo{Title: "Odd", Status: "someday"}),
	})

	var got []string
	for _, todo := range s.Todos() {
		got = append(got, todo.ID)
	}
	want := []string{"p", "r1", "r2", "b", "c", "u"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("todo order mismatch (-want +got):\n%s", diff)
	}
}

func TestStateEventsOrder(t *testing.T) {
	morning := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	noon := morning.Add(3 * time.Hour)
	s := Replay([]Action{
		CreateEvent("later", Event{Title: "Lunch", Start: &noon}),
		CreateEvent("floating", Event{Title: "Someday"}),
		CreateEvent("early", Event{Title: "Standup", Start: &morning}),
	})

	var got []string
	for _, event := range s.Events() {
		got = append(got, event.ID)
	}
	if diff := cmp.Diff([]string{"early", "later", "floating"}, got); diff != "" {
		t.Fatalf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestStateBlockersOf(t *testing.T) {
	s := Replay([]Action{
		CreateTodo("design", Todo{Title: "Design"}),
		CreateTodo("review", Todo{Title: "Review", Status: StatusComplete}),
		CreateTodo("ship", Todo{Title: "Ship"}),
		AddTodoDependent("design", "ship"),
		AddTodoDependent("review", "ship"),
	})

	blockers := s.BlockersOf("ship")
	if len(blockers) != 1 || blockers[0].ID != "design" {
		t.Fatalf("expected only design to block ship, got %+v", blockers)
	}
	if got := s.BlockersOf("design"); len(got) != 0 {
		t.Fatalf("expected no blockers for design, got %+v", got)
	}
}

func TestStateEventsCausedBy(t *testing.T) {
	s := Replay([]Action{
		CreateTodo("t1", Todo{Title: "Write"}),
		CreateEvent("e1", Event{Title: "Block one"}),
		CreateEvent("e2", Event{Title: "Block two"}),
		AddEventCause("e2", TodoCause("t1")),
	})

	events := s.EventsCausedBy("t1")
	if len(events) != 1 || events[0].ID != "e2" {
		t.Fatalf("expected only e2, got %+v", events)
	}
}
