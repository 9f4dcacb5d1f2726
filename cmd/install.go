package cmd

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/updraft-io/updraft/internal/fetch"
	"github.com/updraft-io/updraft/internal/signing"
	"github.com/updraft-io/updraft/internal/source"
	"github.com/updraft-io/updraft/internal/state"
	"github.com/updraft-io/updraft/internal/updater"
	"github.com/updraft-io/updraft/pkg/bytesize"
	"github.com/updraft-io/updraft/pkg/logger"
	"github.com/updraft-io/updraft/pkg/manifest"
	"github.com/updraft-io/updraft/pkg/validation"
	"github.com/updraft-io/updraft/pkg/vercmp"
)

var (
	installVersion   string
	installSource    string
	installOutput    string
	installTimeout   time.Duration
	installStatePath string
	installNoVerify  bool
	installChoose    bool
	installMaxSize   string
)

var installCmd = &cobra.Command{
	Use:   "install <extension>",
	Short: "Download and install an extension bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		src, err := pickSource(reg, installSource)
		if err != nil {
			return err
		}

		m, err := fetchManifest(src)
		if err != nil {
			return err
		}

		ev, err := selectVersion(m, name)
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render(fmt.Sprintf("Installing %s %s from %s",
			ev.Metadata.Name, ev.Version(), src.Name)))

		worker := updater.NewBundleWorker(fetch.NewHTTPFetcher()).WithTimeout(installTimeout)
		bundle, errs := worker.Run(src, *ev, updater.ArchiveAndSignature)
		for _, e := range errs {
			fmt.Println(warnStyle.Render("  " + e.Error()))
		}
		if bundle.Archive == nil {
			return fmt.Errorf("archive download failed")
		}

		if installMaxSize != "" {
			limit, err := bytesize.Parse(installMaxSize)
			if err != nil {
				return fmt.Errorf("invalid --max-size: %w", err)
			}
			if int64(len(bundle.Archive.Data)) > limit {
				return fmt.Errorf("archive is %s, over the %s limit",
					bytesize.Format(int64(len(bundle.Archive.Data))), installMaxSize)
			}
		}

		if err := updater.VerifyChecksum(bundle.Archive.Data, ev.Metadata.Checksum); err != nil {
			return err
		}

		if !installNoVerify {
			if err := verifySignature(src, bundle); err != nil {
				return err
			}
		}

		dest, err := writeBundle(bundle, ev)
		if err != nil {
			return err
		}
		fmt.Println(okStyle.Render(fmt.Sprintf("  archive written to %s (%s)",
			dest, bytesize.Format(int64(len(bundle.Archive.Data))))))

		if err := ensureStateDir(installStatePath); err != nil {
			return err
		}
		store, err := state.Open(installStatePath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.RecordInstall(ev.Metadata.Name, ev.Version(), src.Name); err != nil {
			return err
		}

		fmt.Println(okStyle.Render(fmt.Sprintf("Installed %s %s", ev.Metadata.Name, ev.Version())))
		return nil
	},
}

// selectVersion finds the requested version, prompts when --choose was
// given, and otherwise resolves the highest published version.
func selectVersion(m *manifest.Manifest, name string) (*manifest.ExtensionVersion, error) {
	candidates := availableVersions(m, name)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no installable version of %q found", name)
	}

	if installVersion != "" {
		for i := range candidates {
			if vercmp.IsExactly(candidates[i].Version(), installVersion) {
				return &candidates[i], nil
			}
		}
		return nil, fmt.Errorf("version %s of %q is not published", installVersion, name)
	}

	if installChoose && len(candidates) > 1 {
		options := make([]string, len(candidates))
		for i, ev := range candidates {
			options[i] = ev.Version()
		}
		var chosen string
		prompt := &survey.Select{
			Message: fmt.Sprintf("Multiple versions of %s available:", name),
			Options: options,
			Default: options[len(options)-1],
		}
		if err := survey.AskOne(prompt, &chosen); err != nil {
			return nil, err
		}
		for i := range candidates {
			if candidates[i].Version() == chosen {
				return &candidates[i], nil
			}
		}
		return nil, fmt.Errorf("version %s of %q is not published", chosen, name)
	}

	return &candidates[len(candidates)-1], nil
}

// availableVersions collects every published version of an extension that
// carries usable metadata, ordered ascending.
func availableVersions(m *manifest.Manifest, name string) []manifest.ExtensionVersion {
	seen := make(map[string]bool)
	var out []manifest.ExtensionVersion
	for _, av := range m.Versions {
		for _, entry := range av.Extensions {
			if !strings.EqualFold(entry.Name, name) {
				continue
			}
			for _, ev := range entry.Versions {
				if !ev.HasMetadata() || seen[vercmp.Normalize(ev.Version())] {
					continue
				}
				seen[vercmp.Normalize(ev.Version())] = true
				out = append(out, ev)
			}
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && vercmp.IsOlderThan(out[j].Version(), out[j-1].Version()); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// verifySignature checks the archive against its detached signature using
// the source's published key. A version without a signature, or a source
// without a key, passes with a warning.
func verifySignature(src source.Source, bundle *updater.Bundle) error {
	if bundle.Signature == nil {
		fmt.Println(warnStyle.Render("  no signature published, skipping verification"))
		return nil
	}

	ev, err := fetchPublicKey(src)
	if err != nil {
		return fmt.Errorf("failed to retrieve public key: %w", err)
	}
	if ev.Key == nil {
		fmt.Println(warnStyle.Render("  source has no public key, skipping verification"))
		return nil
	}

	ok, err := signing.Verify(bundle.Archive.Data, bundle.Signature.Data, ev.Key)
	if err != nil || !ok {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	fmt.Println(okStyle.Render("  signature verified"))
	return nil
}

func writeBundle(bundle *updater.Bundle, ev *manifest.ExtensionVersion) (string, error) {
	if err := os.MkdirAll(installOutput, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	// The archive filename comes from the manifest, which is remote input.
	rel, err := validation.ValidateRelativePath(path.Base(ev.Path))
	if err != nil {
		return "", fmt.Errorf("unsafe archive path %q: %w", ev.Path, err)
	}
	dest := filepath.Join(installOutput, rel)
	if err := validation.ValidatePathWithinRoot(installOutput, dest); err != nil {
		return "", fmt.Errorf("unsafe archive path %q: %w", ev.Path, err)
	}
	if err := os.WriteFile(dest, bundle.Archive.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	if bundle.Signature != nil {
		sigDest := dest + ".sig"
		if err := os.WriteFile(sigDest, bundle.Signature.Data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write signature: %w", err)
		}
		logger.Debug("Signature written", "path", sigDest)
	}
	return dest, nil
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().StringVar(&installVersion, "version", "", "exact version to install (default: highest)")
	installCmd.Flags().StringVar(&installSource, "source", "", "source name (default: first configured)")
	installCmd.Flags().StringVarP(&installOutput, "output", "o", ".", "directory to write the bundle into")
	installCmd.Flags().DurationVar(&installTimeout, "timeout", updater.DefaultBundleTimeout, "bundle download budget")
	installCmd.Flags().StringVar(&installStatePath, "state", defaultStatePath(), "install-state database path")
	installCmd.Flags().BoolVar(&installNoVerify, "no-verify", false, "skip signature verification")
	installCmd.Flags().BoolVar(&installChoose, "choose", false, "pick the version interactively")
	installCmd.Flags().StringVar(&installMaxSize, "max-size", "", "reject archives larger than this, e.g. 512MB")
}
