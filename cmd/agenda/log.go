package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Print the action history",
	Long: `Print every action in the log, oldest first.

Action numbers are the values --at accepts: "agenda list --at 3" shows the
agenda after the first three actions.`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

var logPrintPath bool

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().BoolVar(&logPrintPath, "path", false, "Print the log file path and exit")
}

func runLog(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	if logPrintPath {
		fmt.Fprintln(a.out, a.store.Path())
		return nil
	}

	actions, err := a.store.ReadActions()
	if err != nil {
		return fmt.Errorf("read %s: %w", a.store.Path(), err)
	}
	if rootAt >= 0 && rootAt < len(actions) {
		actions = actions[:rootAt]
	}
	fmt.Fprint(a.out, formatActionTable(actions))
	return nil
}
