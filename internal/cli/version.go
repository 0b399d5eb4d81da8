package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo identifies the running binary. It is set from main via ldflags.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
var buildInfo BuildInfo

// SetBuildInfo records the build metadata shown by "stakeflow version".
func SetBuildInfo(info BuildInfo) {
	buildInfo = info
	rootCmd.Version = formatVersion(info)
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Print version information",
	Long:    `Print the stakeflow version, commit and build date.`,
	Example: `  stakeflow version`,
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if formatter.IsJSON() {
			return formatter.Print(buildInfo)
		}
		return formatter.Println("stakeflow " + formatVersion(buildInfo))
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.GroupID = "config"
}

// formatVersion renders build info, substituting placeholders for empty fields.
func formatVersion(info BuildInfo) string {
	version, commit, date := info.Version, info.Commit, info.Date
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	return version + " (commit: " + commit + ", built: " + date + ")"
}
