package agenda

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"go.yaml.in/yaml/v3"
)

// DefaultLogFile is the log file name used when no path is configured.
const DefaultLogFile = "agenda.yaml"

// Store reads and appends the action log: a YAML stream with one action
// per document.
type Store struct {
	path string
}

// UnknownAction records a document whose type Reduce ignored.
type UnknownAction struct {
	// Index is the 1-based document number in the log.
	Index int
	Type  ActionKind
}

// LoadReport describes what a load applied.
type LoadReport struct {
	Applied int
	Unknown []UnknownAction
}

// OpenStore returns a store for the log at path. The file does not need
// to exist yet.
func OpenStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("log path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	return &Store{path: abs}, nil
}

// Path returns the absolute path of the log file.
func (s *Store) Path() string {
	return s.path
}

// ReadActions decodes every action in the log. A missing file is an empty log.
func (s *Store) ReadActions() ([]Action, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	return DecodeActions(f)
}

// DecodeActions reads a YAML document stream into actions. Empty documents
// are skipped.
func DecodeActions(r io.Reader) ([]Action, error) {
	decoder := yaml.NewDecoder(r)
	var actions []Action
	for doc := 1; ; doc++ {
		var node yaml.Node
		err := decoder.Decode(&node)
		if errors.Is(err, io.EOF) {
			return actions, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse document %d: %w", doc, err)
		}
		if isEmptyDocument(&node) {
			continue
		}

		var action Action
		if err := node.Decode(&action); err != nil {
			return nil, fmt.Errorf("decode action in document %d: %w", doc, err)
		}
		actions = append(actions, action)
	}
}

func isEmptyDocument(node *yaml.Node) bool {
	if node.Kind == 0 {
		return true
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 0 {
		return true
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		content := node.Content[0]
		return content.Kind == yaml.ScalarNode && content.ShortTag() == "!!null"
	}
	return false
}

// EncodeActions writes actions as YAML documents, each starting with "---".
func EncodeActions(w io.Writer, actions []Action) error {
	for i, action := range actions {
		data, err := yaml.Marshal(action)
		if err != nil {
			return fmt.Errorf("encode action %d: %w", i, err)
		}
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// Load folds the whole log into a new state.
func (s *Store) Load() (*State, LoadReport, error) {
	return s.LoadAt(-1)
}

// LoadAt folds only the first limit actions, giving the agenda as of that
// point in the log. A negative limit folds everything.
func (s *Store) LoadAt(limit int) (*State, LoadReport, error) {
	actions, err := s.ReadActions()
	if err != nil {
		return nil, LoadReport{}, err
	}
	if limit >= 0 && limit < len(actions) {
		actions = actions[:limit]
	}

	state := NewState()
	var report LoadReport
	for i, action := range actions {
		if !action.Type.IsKnown() {
			report.Unknown = append(report.Unknown, UnknownAction{Index: i + 1, Type: action.Type})
		}
		state.ApplyAction(action)
		report.Applied++
	}
	return state, report, nil
}

// Append validates actions and writes them to the end of the log. Nothing
// is written unless every action is valid.
func (s *Store) Append(actions ...Action) error {
	if len(actions) == 0 {
		return nil
	}
	for _, action := range actions {
		if err := ValidateAction(action); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := EncodeActions(&buf, actions); err != nil {
		return err
	}

	return withFileLock(s.path, func(f *os.File) error {
		// Hand-edited logs may lack a final newline; "---" must start a line.
		terminated, err := endsWithNewline(f)
		if err != nil {
			return err
		}
		data := buf.Bytes()
		if !terminated {
			data = append([]byte("\n"), data...)
		}
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("write log: %w", err)
		}
		if err := f.Sync(); err != nil {
			return fmt.Errorf("sync log: %w", err)
		}
		return nil
	})
}

// endsWithNewline reports whether f is empty or its last byte is '\n'.
func endsWithNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("stat log: %w", err)
	}
	if info.Size() == 0 {
		return true, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, fmt.Errorf("read log: %w", err)
	}
	return last[0] == '\n', nil
}

// withFileLock executes fn while holding an exclusive lock on the file at
// path, opened for reading and appending. Creates the file if it doesn't exist.
func withFileLock(path string, fn func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open log for appending: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn(f)
}
