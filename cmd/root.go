package cmd

import (
	"github.com/spf13/cobra"

	"github.com/updraft-io/updraft/internal/source"
	"github.com/updraft-io/updraft/pkg/logger"
	"github.com/updraft-io/updraft/pkg/version"
)

// Build information, injected by main at startup.
var (
	BuildVersion = "dev"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "updraft",
	Short: "Updraft - update and extension distribution client",
	Long: `Updraft discovers configured publication sources, retrieves their
version manifests and downloads extension bundles (archive, signature,
screenshots) with verification.`,
}

// Execute wires build info and runs the CLI.
func Execute(build, commit, date string) error {
	if build != "" {
		BuildVersion, BuildCommit, BuildDate = build, commit, date
	}
	version.Set(BuildVersion, BuildCommit, BuildDate)
	logger.GetLogger().ConfigureFromEnv()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"source configuration file (default: embedded sources)")
}

// loadRegistry loads the configured sources, falling back to the embedded
// defaults when no --config file was given.
func loadRegistry() (*source.Registry, error) {
	return source.Load(cfgFile)
}
