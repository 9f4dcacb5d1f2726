// Package manifest models the version manifest published by an update
// source: every application version it knows about, the extensions each of
// those carries and the downloadable artifacts behind every extension
// version. A Manifest is immutable once parsed; queries never mutate it.
package manifest

import "time"

// Manifest is the root of the parsed version document.
type Manifest struct {
	// Generated is the instant the publisher produced this document.
	Generated time.Time `json:"generated"`
	// Application is the name of the application the manifest describes.
	Application string `json:"application"`
	// Versions lists application releases in publication order.
	Versions []AppVersion `json:"versions"`
}

// AppVersion is one application release together with the extensions
// available for it.
type AppVersion struct {
	Version    string           `json:"version"`
	Extensions []ExtensionEntry `json:"extensions,omitempty"`
}

// ExtensionEntry groups the published versions of one extension.
// The name is the identity key and is matched case-insensitively.
type ExtensionEntry struct {
	Name     string             `json:"name"`
	Versions []ExtensionVersion `json:"versions,omitempty"`
}

// ExtensionVersion is one installable unit: an archive plus optional
// detached signature and screenshots. All paths are relative to the base
// location of whichever source the manifest came from; an ExtensionVersion
// carries no meaning without its paired source.
type ExtensionVersion struct {
	// Metadata describes the payload. A manifest may list a version stub
	// without metadata; such stubs never win highest-version queries.
	Metadata *ExtensionMetadata `json:"metadata,omitempty"`
	// Path points at the extension archive, relative to the source.
	Path string `json:"path"`
	// SignaturePath points at a detached signature for the archive.
	SignaturePath string `json:"signaturePath,omitempty"`
	// Screenshots are relative paths to preview images.
	Screenshots []string `json:"screenshots,omitempty"`
}

// ExtensionMetadata is the descriptive block of an extension version.
type ExtensionMetadata struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Description string    `json:"description,omitempty"`
	Checksum    *Checksum `json:"checksum,omitempty"`
}

// Checksum identifies the expected digest of an extension archive.
type Checksum struct {
	Algorithm string `json:"algorithm"`
	Value     string `json:"value"`
}

// HasMetadata reports whether the version carries usable metadata, i.e. a
// metadata block with a non-empty version string. Versions without usable
// metadata are excluded from highest-version selection.
func (v ExtensionVersion) HasMetadata() bool {
	return v.Metadata != nil && v.Metadata.Version != ""
}

// Version returns the metadata version string, or "" for a stub.
func (v ExtensionVersion) Version() string {
	if v.Metadata == nil {
		return ""
	}
	return v.Metadata.Version
}
