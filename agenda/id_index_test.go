package agenda

import (
	"errors"
	"testing"
)

func TestIDIndexResolve(t *testing.T) {
	index := NewIDIndex([]string{"2u3iutfd", "abc12345", "abd99999", "T1"}, ErrTodoNotFound)

	tests := []struct {
		prefix string
		want   string
		err    error
	}{
		{prefix: "2u3iutfd", want: "2u3iutfd"},
		{prefix: "2U", want: "2u3iutfd"},
		{prefix: "abc", want: "abc12345"},
		{prefix: "t1", want: "T1"},
		{prefix: "ab", err: ErrAmbiguousIDPrefix},
		{prefix: "zz", err: ErrTodoNotFound},
		{prefix: "", err: ErrTodoNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, err := index.Resolve(tt.prefix)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v (id %q)", tt.err, err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.prefix, err)
			}
			if got != tt.want {
				t.Fatalf("Resolve(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestEventIDIndexUsesEventError(t *testing.T) {
	s := Reduce(EmptySnapshot(), CreateEvent("e1", Event{Title: "e"}))

	if _, err := EventIDIndex(s).Resolve("x"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if id, err := EventIDIndex(s).Resolve("E"); err != nil || id != "e1" {
		t.Fatalf("expected e1, got %q (%v)", id, err)
	}
}

func TestIDIndexPrefixLengths(t *testing.T) {
	s := ReduceAll(EmptySnapshot(), []Action{
		CreateTodo("abc123", Todo{Title: "a"}),
		CreateTodo("abd456", Todo{Title: "b"}),
		CreateTodo("x", Todo{Title: "c"}),
	})

	lengths := TodoIDIndex(s).PrefixLengths()
	if lengths["abc123"] != 3 || lengths["abd456"] != 3 || lengths["x"] != 1 {
		t.Fatalf("unexpected prefix lengths: %v", lengths)
	}
}
