package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/updraft-io/updraft/internal/fetch"
	"github.com/updraft-io/updraft/internal/source"
	"github.com/updraft-io/updraft/internal/updater"
	"github.com/updraft-io/updraft/pkg/manifest"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const manifestWait = 30 * time.Second

// observerFunc adapts a function to the updater.Observer interface.
type observerFunc func(updater.Event)

func (f observerFunc) HandleUpdateEvent(ev updater.Event) { f(ev) }

// fetchManifest retrieves and parses a source's manifest, blocking the CLI
// until the coordinator reports an outcome.
func fetchManifest(src source.Source) (*manifest.Manifest, error) {
	coord := updater.NewCoordinator(fetch.NewHTTPFetcher())
	done := make(chan updater.Event, 1)

	obs := observerFunc(func(ev updater.Event) {
		switch ev.Type {
		case updater.ManifestRetrieved, updater.RetrievalFailed:
			select {
			case done <- ev:
			default:
			}
		}
	})
	coord.Subscribe(obs)
	defer coord.Unsubscribe(obs)

	coord.RetrieveManifest(src)

	select {
	case ev := <-done:
		if ev.Type == updater.RetrievalFailed {
			return nil, fmt.Errorf("%s: %s", ev.Location, ev.Reason)
		}
		return ev.Manifest, nil
	case <-time.After(manifestWait):
		return nil, fmt.Errorf("timed out waiting for manifest from %s", src.Name)
	}
}

// fetchPublicKey retrieves a source's signing key, nil when unconfigured.
func fetchPublicKey(src source.Source) (updater.Event, error) {
	coord := updater.NewCoordinator(fetch.NewHTTPFetcher())
	done := make(chan updater.Event, 1)

	obs := observerFunc(func(ev updater.Event) {
		switch ev.Type {
		case updater.PublicKeyRetrieved, updater.RetrievalFailed:
			select {
			case done <- ev:
			default:
			}
		}
	})
	coord.Subscribe(obs)
	defer coord.Unsubscribe(obs)

	coord.RetrievePublicKey(src)

	select {
	case ev := <-done:
		if ev.Type == updater.RetrievalFailed {
			return ev, fmt.Errorf("%s: %s", ev.Location, ev.Reason)
		}
		return ev, nil
	case <-time.After(manifestWait):
		return updater.Event{}, fmt.Errorf("timed out waiting for public key from %s", src.Name)
	}
}

// pickSource returns the named source, or the first configured one.
func pickSource(reg *source.Registry, name string) (source.Source, error) {
	if name == "" {
		if len(reg.Sources) == 0 {
			return source.Source{}, fmt.Errorf("no sources configured")
		}
		return reg.Sources[0], nil
	}
	src, ok := reg.ByName(name)
	if !ok {
		return source.Source{}, fmt.Errorf("unknown source %q", name)
	}
	return src, nil
}

// defaultStatePath places the install-state database under the user config
// directory.
func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "updraft-state.db"
	}
	return filepath.Join(dir, "updraft", "state.db")
}

func ensureStateDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
