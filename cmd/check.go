package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/updraft-io/updraft/internal/updater"
	"github.com/updraft-io/updraft/pkg/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configured sources for a newer application version",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Checking %d source(s) for %s %s",
			len(reg.Sources), reg.Application, BuildVersion)))

		newerFound := false
		for _, src := range reg.Sources {
			m, err := fetchManifest(src)
			if err != nil {
				logger.Warn("Source unreachable", "source", src.Name, "error", err)
				fmt.Println(errStyle.Render(fmt.Sprintf("  %s: %v", src.Name, err)))
				continue
			}

			if newer, ok := updater.NewerApplicationVersion(BuildVersion, m); ok {
				newerFound = true
				fmt.Println(okStyle.Render(fmt.Sprintf("  %s: version %s available", src.Name, newer)))
			} else {
				fmt.Printf("  %s: up to date\n", src.Name)
			}
		}

		if !newerFound {
			fmt.Println("No newer application version found.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
