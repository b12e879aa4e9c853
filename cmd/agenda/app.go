package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/amonks/agenda/agenda"
	"github.com/amonks/agenda/internal/config"
	"github.com/amonks/agenda/internal/paths"
	"github.com/amonks/agenda/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultDetailWidth = 80

// nowFunc is the clock used for deadline distances.
var nowFunc = time.Now

var errReadOnlyAt = errors.New("--at shows a past agenda and cannot be combined with commands that write")

// app bundles what every command needs: configuration, the store, and
// where to write output and diagnostics.
type app struct {
	cfg    *config.Config
	store  *agenda.Store
	logger *ui.Logger
	out    io.Writer
}

func openApp(cmd *cobra.Command) (*app, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}

	store, err := agenda.OpenStore(cfg.LogPath(rootLogPath, cwd, agenda.DefaultLogFile))
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		store:  store,
		logger: ui.NewLogger(cmd.ErrOrStderr()),
		out:    cmd.OutOrStdout(),
	}, nil
}

// openWriter is openApp for commands that append to the log.
func openWriter(cmd *cobra.Command) (*app, error) {
	if rootAt >= 0 {
		return nil, errReadOnlyAt
	}
	return openApp(cmd)
}

// load folds the log, honouring --at, and warns about unknown actions.
func (a *app) load() (*agenda.State, error) {
	state, report, err := a.store.LoadAt(rootAt)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", a.store.Path(), err)
	}
	for _, unknown := range report.Unknown {
		a.logger.Warnf("ignoring action %d: unknown type %q", unknown.Index, unknown.Type)
	}
	return state, nil
}

// commit checks actions against state in order and appends them to the log
// as one batch. Nothing is written if any action is rejected.
func (a *app) commit(state *agenda.State, actions ...agenda.Action) error {
	scratch := state.Snapshot()
	for _, action := range actions {
		if err := agenda.ValidateAction(action); err != nil {
			return err
		}
		if err := agenda.CheckTarget(scratch, action); err != nil {
			return err
		}
		if err := checkReferences(scratch, action); err != nil {
			return err
		}
		scratch = agenda.Reduce(scratch, action)
	}
	if err := a.store.Append(actions...); err != nil {
		return err
	}
	for _, action := range actions {
		state.ApplyAction(action)
	}
	return nil
}

// checkReferences rejects actions that point at todos which don't exist.
func checkReferences(s agenda.Snapshot, action agenda.Action) error {
	var ref string
	switch action.Type {
	case agenda.TodoAddDependent:
		ref = action.DependentID
	case agenda.EventAddCause:
		ref = action.Cause.TodoID
	case agenda.EventCreate:
		for _, cause := range action.Event.Causes {
			if _, ok := s.Todos[cause.TodoID]; !ok {
				return fmt.Errorf("%w: %s", agenda.ErrTodoNotFound, cause.TodoID)
			}
		}
		return nil
	default:
		return nil
	}
	if _, ok := s.Todos[ref]; !ok {
		return fmt.Errorf("%w: %s", agenda.ErrTodoNotFound, ref)
	}
	return nil
}

// detailWidth is the wrap width for detail output.
func (a *app) detailWidth() int {
	if a.cfg != nil && a.cfg.Display.Width > 0 {
		return a.cfg.Display.Width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return width
		}
	}
	return defaultDetailWidth
}

func resolveTodoID(state *agenda.State, prefix string) (string, error) {
	return agenda.TodoIDIndex(state.Snapshot()).Resolve(prefix)
}

func resolveEventID(state *agenda.State, prefix string) (string, error) {
	return agenda.EventIDIndex(state.Snapshot()).Resolve(prefix)
}

func resolveTodoIDs(state *agenda.State, prefixes []string) ([]string, error) {
	index := agenda.TodoIDIndex(state.Snapshot())
	resolved := make([]string, 0, len(prefixes))
	for _, prefix := range prefixes {
		id, err := index.Resolve(prefix)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, id)
	}
	return resolved, nil
}
