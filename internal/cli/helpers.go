package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/spf13/cobra"

	stakeerr "github.com/mrz1836/stakeflow/pkg/errors"
)

// maxSuggestDistance is the largest edit distance still offered as a
// "did you mean" suggestion.
const maxSuggestDistance = 3

// out is a helper for CLI output that ignores write errors (standard pattern for CLI tools).
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func out(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

// outln is a helper for CLI output with newline.
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func outln(w io.Writer, args ...any) {
	fmt.Fprintln(w, args...)
}

// runGroup is the RunE of commands that only hold subcommands. With no
// arguments it prints help; anything else is an unknown operation.
func runGroup(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	return unknownOperation(cmd, args[0])
}

// unknownOperation builds ErrUnknownOperation with the closest subcommand
// name as a suggestion.
func unknownOperation(cmd *cobra.Command, name string) error {
	err := stakeerr.WithDetails(stakeerr.ErrUnknownOperation, map[string]string{
		"command":   cmd.CommandPath(),
		"operation": name,
	})

	candidates := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		if sub.IsAvailableCommand() {
			candidates = append(candidates, sub.Name())
			candidates = append(candidates, sub.Aliases...)
		}
	}
	if s := suggest(name, candidates); s != "" {
		return stakeerr.WithSuggestion(err, fmt.Sprintf("did you mean %q?", cmd.CommandPath()+" "+s))
	}
	return stakeerr.WithSuggestion(err, fmt.Sprintf("run '%s --help' to list operations", cmd.CommandPath()))
}

// suggest returns the candidate closest to input, or "" when none is within
// maxSuggestDistance.
func suggest(input string, candidates []string) string {
	input = strings.ToLower(input)

	best, bestDist := "", math.MaxInt
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, c)
		if dist == 0 {
			return c
		}
		if dist < bestDist {
			best, bestDist = c, dist
		}
	}
	if bestDist <= maxSuggestDistance {
		return best
	}
	return ""
}
