package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/amonks/agenda/agenda"
	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce  sync.Once
	agendaPath string
	buildErr   error
)

// BuildAgenda builds the agenda binary once and returns its path.
func BuildAgenda(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "agenda-bin-")
		if err != nil {
			buildErr = err
			return
		}

		agendaPath = filepath.Join(binDir, "agenda")
		cmd := exec.Command("go", "build", "-o", agendaPath, "./cmd/agenda")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build agenda: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return agendaPath
}

// SetupScriptEnv configures common environment variables for testscript.
// Scripts run in UTC with no editor and no inherited log override.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("AGENDA", BuildAgenda(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("AGENDA_LOG", "")
	env.Setenv("EDITOR", "false")
	env.Setenv("TZ", "UTC")
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdTodoID finds a todo by title in `agenda list --json` output and stores
// its ID in an env var.
func CmdTodoID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("todoid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: todoid FILE TITLE VAR")
	}

	var listing struct {
		Todos []agenda.DisplayRecord `json:"todos"`
	}
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &listing); err != nil {
		ts.Fatalf("parse todo list: %v", err)
	}

	title := args[1]
	for _, item := range listing.Todos {
		if item.Title == title {
			ts.Setenv(args[2], item.ID)
			return
		}
	}

	ts.Fatalf("todo with title %q not found", title)
}

// CmdEventID is CmdTodoID for events.
func CmdEventID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("eventid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: eventid FILE TITLE VAR")
	}

	var listing struct {
		Events []agenda.Event `json:"events"`
	}
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &listing); err != nil {
		ts.Fatalf("parse event list: %v", err)
	}

	title := args[1]
	for _, item := range listing.Events {
		if item.Title == title {
			ts.Setenv(args[2], item.ID)
			return
		}
	}

	ts.Fatalf("event with title %q not found", title)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
