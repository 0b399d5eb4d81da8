// Package main is the entry point for the stakeflow CLI.
package main

import (
	"os"

	"github.com/mrz1836/stakeflow/internal/cli"
)

// Set by the release build via -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets must be package variables
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	cli.SetBuildInfo(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
