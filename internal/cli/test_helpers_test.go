package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mrz1836/stakeflow/internal/config"
)

// run executes the command tree with args against a fresh home directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runIn(t, t.TempDir(), args...)
}

// runIn executes the command tree with args against home and returns stdout.
// Environment overrides are cleared and logging is disabled.
func runIn(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	finalizeOnce.Do(finalizeCommands)

	for _, name := range []string{config.EnvHome, config.EnvOutputFormat, config.EnvVerbose, config.EnvLocale, config.EnvChainID} {
		t.Setenv(name, "")
	}
	t.Setenv(config.EnvLogLevel, "off")

	walkCommands(rootCmd, resetFlags)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--home", home}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag of cmd to its default between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
}
