package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/amonks/agenda/internal/editor"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the action log in $EDITOR",
	Long: `Open the action log in $EDITOR.

The log is re-read after the editor exits. If it no longer parses, the
previous contents are restored and the rejected edit is saved next to the
log with a .rejected suffix.`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, _ []string) error {
	a, err := openWriter(cmd)
	if err != nil {
		return err
	}
	path := a.store.Path()

	before, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read log: %w", err)
	}

	if err := editor.Edit(path); err != nil {
		return err
	}

	if _, loadErr := a.load(); loadErr != nil {
		rejected := path + ".rejected"
		if edited, err := os.ReadFile(path); err == nil {
			if err := os.WriteFile(rejected, edited, 0o644); err != nil {
				return fmt.Errorf("save rejected edit: %w", err)
			}
		}
		if err := os.WriteFile(path, before, 0o644); err != nil {
			return fmt.Errorf("restore log: %w", err)
		}
		return fmt.Errorf("%w (restored previous log; edit saved to %s)", loadErr, rejected)
	}
	return nil
}
