package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// walkCommands visits every command in the tree depth-first.
func walkCommands(cmd *cobra.Command, fn func(*cobra.Command)) {
	fn(cmd)
	for _, sub := range cmd.Commands() {
		walkCommands(sub, fn)
	}
}

// enrichParentLong appends the list of subcommands to a group command's Long
// description, so "stakeflow encode --help" names every call it can build.
func enrichParentLong(cmd *cobra.Command) {
	if !cmd.HasSubCommands() || cmd == rootCmd {
		return
	}

	var sb strings.Builder
	sb.WriteString(cmd.Long)
	sb.WriteString("\n\nSubcommands:\n")
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			sb.WriteString(fmt.Sprintf("  %-16s %s\n", sub.Name(), sub.Short))
		}
	}
	cmd.Long = sb.String()
}

// finalizeCommands runs once after every init has registered its commands.
func finalizeCommands() {
	walkCommands(rootCmd, enrichParentLong)
}
