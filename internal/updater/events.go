// Package updater orchestrates manifest, key and asset retrieval from
// configured sources and fans typed results out to registered observers.
package updater

import (
	"image"
	"time"

	"github.com/updraft-io/updraft/internal/signing"
	"github.com/updraft-io/updraft/pkg/manifest"
)

type EventType string

const (
	ManifestRetrieved   EventType = "manifest.retrieved"
	PublicKeyRetrieved  EventType = "publickey.retrieved"
	AssetRetrieved      EventType = "asset.retrieved"
	SignatureRetrieved  EventType = "signature.retrieved"
	ScreenshotRetrieved EventType = "screenshot.retrieved"
	RetrievalFailed     EventType = "retrieval.failed"
	RestartRequested    EventType = "restart.requested"
)

// Event carries one retrieval outcome. Only the fields matching its Type
// are populated. Observer callbacks run on a background goroutine, never on
// the goroutine that issued the request; observers touching single-threaded
// state must marshal onto their own thread.
type Event struct {
	ID        string
	Type      EventType
	Timestamp time.Time

	// Location is the absolute location the outcome concerns. Empty for
	// RestartRequested and for the no-key PublicKeyRetrieved shortcut.
	Location string

	// Manifest is set for ManifestRetrieved.
	Manifest *manifest.Manifest
	// Key is set for PublicKeyRetrieved; nil when the source has no key.
	Key *signing.PublicKey
	// Data is set for AssetRetrieved and SignatureRetrieved.
	Data []byte
	// Image is set for ScreenshotRetrieved.
	Image image.Image
	// Reason is set for RetrievalFailed.
	Reason string
}

// Observer receives update events.
type Observer interface {
	HandleUpdateEvent(Event)
}
