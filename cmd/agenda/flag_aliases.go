package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var logFlagAliases = map[string]string{
	"file": "log",
}

var todoFlagAliases = map[string]string{
	"est": "estimate",
	"due": "deadline",
}

var eventFlagAliases = map[string]string{
	"dur":  "duration",
	"when": "start",
}

func addFlagAliases(aliases map[string]string, cmds ...*cobra.Command) {
	for _, cmd := range cmds {
		setFlagAliases(cmd.Flags(), aliases)
	}
}

// addCommandFlagAliases applies aliases to cmd and every command below it.
// Persistent flags are parsed by each subcommand's own flag set, so
// aliases for them must be installed on every command.
func addCommandFlagAliases(cmd *cobra.Command, aliases map[string]string) {
	setFlagAliases(cmd.Flags(), aliases)
	for _, child := range cmd.Commands() {
		addCommandFlagAliases(child, aliases)
	}
}

func setFlagAliases(flags *pflag.FlagSet, aliases map[string]string) {
	if len(aliases) == 0 {
		return
	}

	normalize := flags.GetNormalizeFunc()
	flags.SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		return normalize(f, name)
	})
}
