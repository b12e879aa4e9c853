// Package main implements the agenda CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	addCommandFlagAliases(rootCmd, logFlagAliases)
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Agenda - an append-only log of todos and events",
	Long: `Agenda keeps todos and events as an append-only YAML log of actions.
Every command either appends actions to the log or folds the log into the
current agenda and prints it.

The log is agenda.yaml in the current directory unless --log, AGENDA_LOG,
or the "log" key of agenda.toml says otherwise.`,
	SilenceUsage: true,
}

var (
	rootLogPath string
	rootAt      int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootLogPath, "log", "l", "", "Path of the action log")
	rootCmd.PersistentFlags().IntVar(&rootAt, "at", -1, "Show the agenda as of the first N actions (read-only)")
}
