package updater

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/updraft-io/updraft/internal/fetch"
	"github.com/updraft-io/updraft/internal/imaging"
	"github.com/updraft-io/updraft/internal/signing"
	"github.com/updraft-io/updraft/internal/source"
	"github.com/updraft-io/updraft/pkg/logger"
	"github.com/updraft-io/updraft/pkg/manifest"
)

// RestartExitCode is the sentinel exit status the host process should
// terminate with after a RestartRequested event. External launcher scripts
// treat this status as "relaunch" and must stay in sync with it.
const RestartExitCode = 100

// Coordinator turns one-shot asynchronous byte fetches into typed domain
// events and broadcasts them to subscribed observers. All Retrieve methods
// are fire-and-forget: they return immediately and deliver the outcome via
// observer callbacks on a background goroutine. Failures of any kind
// (transport, empty payload, parse, decode) surface as exactly one
// RetrievalFailed event; nothing is thrown past the fetch boundary.
type Coordinator struct {
	fetcher fetch.Fetcher

	mu        sync.RWMutex
	observers []Observer

	hookMu sync.Mutex
	hooks  []func()
}

// NewCoordinator builds a coordinator over the given fetch collaborator.
func NewCoordinator(fetcher fetch.Fetcher) *Coordinator {
	return &Coordinator{fetcher: fetcher}
}

// Subscribe registers an observer for subsequent events.
func (c *Coordinator) Subscribe(obs Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, obs)
}

// Unsubscribe removes a previously registered observer. Removing an
// observer during a dispatch does not affect the dispatch in progress.
func (c *Coordinator) Unsubscribe(obs Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, o := range c.observers {
		if o == obs {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

// notify dispatches over an immutable snapshot of the observer set, so an
// observer that unsubscribes itself (or another) mid-callback cannot
// corrupt the iteration.
func (c *Coordinator) notify(ev Event) {
	ev.ID = uuid.New().String()
	ev.Timestamp = time.Now()

	c.mu.RLock()
	snapshot := make([]Observer, len(c.observers))
	copy(snapshot, c.observers)
	c.mu.RUnlock()

	for _, obs := range snapshot {
		obs.HandleUpdateEvent(ev)
	}
}

func (c *Coordinator) fail(location, reason string) {
	logger.Debug("Retrieval failed", "location", location, "reason", reason)
	c.notify(Event{Type: RetrievalFailed, Location: location, Reason: reason})
}

// RetrieveManifest fetches and parses the source's manifest. On success a
// ManifestRetrieved event carries the manifest location and a freshly
// parsed Manifest; a parse failure or empty payload is reported exactly
// like a transport failure.
func (c *Coordinator) RetrieveManifest(src source.Source) {
	location, err := src.ManifestLocation()
	if err != nil {
		c.fail(src.BaseLocation, err.Error())
		return
	}

	c.fetcher.Fetch(location, fetch.Callbacks{
		OnSuccess: func(loc string, data []byte) {
			m, err := manifest.Parse(data)
			if err != nil {
				c.fail(loc, err.Error())
				return
			}
			logger.Debug("Manifest retrieved", "location", loc, "versions", len(m.Versions))
			c.notify(Event{Type: ManifestRetrieved, Location: loc, Manifest: m})
		},
		OnFailure: func(loc, reason string) { c.fail(loc, reason) },
	})
}

// RetrievePublicKey fetches and decodes the source's signing key. A source
// without a configured key path produces an immediate PublicKeyRetrieved
// event with a nil key, without any network call.
func (c *Coordinator) RetrievePublicKey(src source.Source) {
	location, ok, err := src.PublicKeyLocation()
	if err != nil {
		c.fail(src.BaseLocation, err.Error())
		return
	}
	if !ok {
		c.notify(Event{Type: PublicKeyRetrieved, Key: nil})
		return
	}

	c.fetcher.Fetch(location, fetch.Callbacks{
		OnSuccess: func(loc string, data []byte) {
			key, err := signing.LoadPublicKey(data)
			if err != nil {
				c.fail(loc, err.Error())
				return
			}
			c.notify(Event{Type: PublicKeyRetrieved, Location: loc, Key: key})
		},
		OnFailure: func(loc, reason string) { c.fail(loc, reason) },
	})
}

// RetrieveAsset fetches a single absolute location and reports the raw
// bytes via an AssetRetrieved event.
func (c *Coordinator) RetrieveAsset(location string) {
	c.retrieveBytes(location, AssetRetrieved)
}

// RetrieveSignature fetches a detached signature location.
func (c *Coordinator) RetrieveSignature(location string) {
	c.retrieveBytes(location, SignatureRetrieved)
}

func (c *Coordinator) retrieveBytes(location string, eventType EventType) {
	c.fetcher.Fetch(location, fetch.Callbacks{
		OnSuccess: func(loc string, data []byte) {
			c.notify(Event{Type: eventType, Location: loc, Data: data})
		},
		OnFailure: func(loc, reason string) { c.fail(loc, reason) },
	})
}

// RetrieveScreenshot fetches and decodes a screenshot location.
func (c *Coordinator) RetrieveScreenshot(location string) {
	c.fetcher.Fetch(location, fetch.Callbacks{
		OnSuccess: func(loc string, data []byte) {
			img, _, err := imaging.Decode(data)
			if err != nil {
				c.fail(loc, err.Error())
				return
			}
			c.notify(Event{Type: ScreenshotRetrieved, Location: loc, Image: img})
		},
		OnFailure: func(loc, reason string) { c.fail(loc, reason) },
	})
}

// RegisterShutdownHook adds a hook run synchronously by RequestRestart.
func (c *Coordinator) RegisterShutdownHook(hook func()) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()
	c.hooks = append(c.hooks, hook)
}

// RequestRestart runs every registered shutdown hook synchronously in
// registration order, then notifies observers with RestartRequested. The
// embedding application decides how to terminate; hosts that rely on a
// launcher wrapper should exit with RestartExitCode.
func (c *Coordinator) RequestRestart() {
	c.hookMu.Lock()
	hooks := make([]func(), len(c.hooks))
	copy(hooks, c.hooks)
	c.hookMu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	logger.Info("Restart requested", "exit_code", RestartExitCode)
	c.notify(Event{Type: RestartRequested})
}
