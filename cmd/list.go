package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/updraft-io/updraft/internal/state"
)

var (
	listMajor     int
	listSource    string
	listInstalled bool
	listStatePath string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available extensions and their highest versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listInstalled {
			return listInstalledExtensions()
		}

		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		src, err := pickSource(reg, listSource)
		if err != nil {
			return err
		}

		m, err := fetchManifest(src)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("major") {
			fmt.Println(titleStyle.Render(fmt.Sprintf("Extensions for %s %d.x (source %s)",
				m.Application, listMajor, src.Name)))
			for _, ev := range m.HighestExtensionVersionsForMajor(listMajor) {
				fmt.Printf("  %-24s %s\n", ev.Metadata.Name, ev.Version())
			}
			return nil
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Extensions (source %s)", src.Name)))
		for _, name := range m.ExtensionNames() {
			if ev := m.HighestVersionForExtension(name); ev != nil {
				fmt.Printf("  %-24s %s\n", name, ev.Version())
			} else {
				fmt.Printf("  %-24s (no installable version)\n", name)
			}
		}
		return nil
	},
}

func listInstalledExtensions() error {
	store, err := state.Open(listStatePath)
	if err != nil {
		return err
	}
	defer store.Close()

	installed, err := store.Installed()
	if err != nil {
		return err
	}
	if len(installed) == 0 {
		fmt.Println("No extensions installed.")
		return nil
	}

	fmt.Println(titleStyle.Render("Installed extensions"))
	for _, ext := range installed {
		fmt.Printf("  %-24s %-12s from %s at %s\n",
			ext.Name, ext.Version, ext.Source, ext.InstalledAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listMajor, "major", 0, "only show extensions for this application major version")
	listCmd.Flags().StringVar(&listSource, "source", "", "source name (default: first configured)")
	listCmd.Flags().BoolVar(&listInstalled, "installed", false, "show locally installed extensions instead")
	listCmd.Flags().StringVar(&listStatePath, "state", defaultStatePath(), "install-state database path")
}
