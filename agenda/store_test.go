package agenda

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenStore(filepath.Join(t.TempDir(), DefaultLogFile))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func TestOpenStoreRejectsEmptyPath(t *testing.T) {
	if _, err := OpenStore(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := newTestStore(t)

	state, report, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if report.Applied != 0 || len(state.Todos()) != 0 {
		t.Fatalf("expected empty state, got %d applied", report.Applied)
	}
}

func TestStoreAppendRoundTrip(t *testing.T) {
	store := newTestStore(t)
	deadline := time.Date(2026, 11, 2, 17, 30, 0, 0, time.UTC)
	start := time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC)

	actions := []Action{
		CreateTodo("t1", Todo{Title: "Write spec"}),
		SetTodoEstimate("t1", &Estimate{LowMinutes: 30, HighMinutes: 90}),
		SetTodoDeadline("t1", &deadline),
		CreateTodo("t2", Todo{Title: "Ship it"}),
		AddTodoDependent("t1", "t2"),
		CreateEvent("e1", Event{Title: "Writing block", Start: &start, Duration: 90 * time.Minute}),
		AddEventCause("e1", TodoCause("t1")),
	}
	if err := store.Append(actions[:3]...); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(actions[3:]...); err != nil {
		t.Fatalf("append: %v", err)
	}

	read, err := store.ReadActions()
	if err != nil {
		t.Fatalf("read actions: %v", err)
	}
	if diff := cmp.Diff(actions, read); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	state, report, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if report.Applied != len(actions) || len(report.Unknown) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if diff := cmp.Diff(Replay(actions).Snapshot(), state.Snapshot()); diff != "" {
		t.Fatalf("loaded state mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreAppendAfterUnterminatedLine(t *testing.T) {
	store := newTestStore(t)
	handWritten := "type: todo.create\ntodoId: t1\ntodo:\n  title: Write spec"
	if err := os.WriteFile(store.Path(), []byte(handWritten), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	if _, _, err := store.Load(); err != nil {
		t.Fatalf("load hand-written log: %v", err)
	}

	if err := store.Append(SetTodoStatus("t1", StatusComplete)); err != nil {
		t.Fatalf("append: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.HasPrefix(string(data), handWritten+"\n---\n") {
		t.Fatalf("expected appended document on its own line, got:\n%s", data)
	}

	state, report, err := store.Load()
	if err != nil {
		t.Fatalf("load after append: %v", err)
	}
	if report.Applied != 2 {
		t.Fatalf("expected 2 actions, got %d", report.Applied)
	}
	todo, ok := state.ResolveTodo("t1")
	if !ok || todo.Title != "Write spec" || todo.Status != StatusComplete {
		t.Fatalf("unexpected todo %+v", todo)
	}
}

func TestStoreAppendRejectsInvalidBatch(t *testing.T) {
	store := newTestStore(t)

	err := store.Append(
		CreateTodo("t1", Todo{Title: "fine"}),
		SetTodoStatus("t1", "done"),
	)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := os.Stat(store.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no log file after rejected batch, got %v", err)
	}
}

func TestStoreLoadAt(t *testing.T) {
	store := newTestStore(t)
	if err := store.Append(
		CreateTodo("t1", Todo{Title: "first"}),
		SetTodoTitle("t1", "second"),
		DestroyTodo("t1"),
	); err != nil {
		t.Fatalf("append: %v", err)
	}

	tests := []struct {
		limit int
		title string
		found bool
	}{
		{limit: 0, found: false},
		{limit: 1, title: "first", found: true},
		{limit: 2, title: "second", found: true},
		{limit: 3, found: false},
		{limit: 10, found: false},
	}

	for _, tt := range tests {
		state, report, err := store.LoadAt(tt.limit)
		if err != nil {
			t.Fatalf("LoadAt(%d): %v", tt.limit, err)
		}
		todo, ok := state.ResolveTodo("t1")
		if ok != tt.found || todo.Title != tt.title {
			t.Fatalf("LoadAt(%d) = (%q, %v), want (%q, %v)", tt.limit, todo.Title, ok, tt.title, tt.found)
		}
		if want := min(tt.limit, 3); report.Applied != want {
			t.Fatalf("LoadAt(%d) applied %d, want %d", tt.limit, report.Applied, want)
		}
	}
}

func TestDecodeActionsHandWritten(t *testing.T) {
	input := `
---
type: todo.create
todoId: t1
todo:
  id: ignored
  title: Write spec
---
---
type: todo.set_status
todoId: t1
status: complete
---
type: todo.snooze
todoId: t1
---
type: event.create
eventId: e1
event:
  title: Review
  start: 2026-10-21T10:00:00Z
  duration: 45m
  causes:
    - kind: todo
      todoId: t1
`
	actions, err := DecodeActions(strings.NewReader(input))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(actions) != 4 {
		t.Fatalf("expected 4 actions, got %d: %+v", len(actions), actions)
	}
	if actions[2].Type != "todo.snooze" {
		t.Fatalf("expected unknown kind to be preserved, got %q", actions[2].Type)
	}

	state := Replay(actions)
	todo, ok := state.ResolveTodo("t1")
	if !ok || todo.Status != StatusComplete || todo.Title != "Write spec" {
		t.Fatalf("unexpected todo: %+v (found %v)", todo, ok)
	}
	event, ok := state.ResolveEvent("e1")
	if !ok {
		t.Fatalf("expected e1")
	}
	if event.Duration != 45*time.Minute {
		t.Fatalf("expected 45m duration, got %s", event.Duration)
	}
	if diff := cmp.Diff([]Cause{TodoCause("t1")}, event.Causes); diff != "" {
		t.Fatalf("causes mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreLoadReportsUnknownKinds(t *testing.T) {
	store := newTestStore(t)
	content := "---\ntype: todo.create\ntodoId: a\ntodo:\n  title: A\n---\ntype: todo.archive\ntodoId: a\n"
	if err := os.WriteFile(store.Path(), []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	state, report, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []UnknownAction{{Index: 2, Type: "todo.archive"}}
	if diff := cmp.Diff(want, report.Unknown); diff != "" {
		t.Fatalf("unknown report mismatch (-want +got):\n%s", diff)
	}
	if _, ok := state.ResolveTodo("a"); !ok {
		t.Fatalf("expected todo a to survive the unknown action")
	}
}

func TestStoreLoadMalformedDocument(t *testing.T) {
	store := newTestStore(t)
	content := "---\ntype: todo.create\ntodoId: a\ntodo:\n  title: A\n---\ntype: [unterminated\n"
	if err := os.WriteFile(store.Path(), []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	_, _, err := store.Load()
	if err == nil {
		t.Fatalf("expected malformed log to fail")
	}
	if !strings.Contains(err.Error(), "document 2") {
		t.Fatalf("expected error to name document 2, got %v", err)
	}
}

func TestStoreLoadWrongShape(t *testing.T) {
	store := newTestStore(t)
	content := "---\ntype: event.set_duration\neventId: e\nduration: [1, 2]\n"
	if err := os.WriteFile(store.Path(), []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	if _, _, err := store.Load(); err == nil {
		t.Fatalf("expected a decode error for a list duration")
	}
}
