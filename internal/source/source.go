// Package source holds the configured publication sources and the path
// arithmetic that turns the relative paths found in a manifest into
// absolute locations under a source's base.
package source

import (
	"fmt"
	"net/url"
	"strings"
)

// Source is one configured publication origin. Sources are loaded once at
// startup and never mutated afterwards; they are safe to share across
// goroutines without locking.
type Source struct {
	// Name is a human-readable label used in logs and CLI flags.
	Name string `yaml:"name" mapstructure:"name"`
	// BaseLocation is the root all relative paths resolve against.
	BaseLocation string `yaml:"base" mapstructure:"base"`
	// ManifestPath locates the version manifest, relative to BaseLocation.
	ManifestPath string `yaml:"manifest" mapstructure:"manifest"`
	// PublicKeyPath optionally locates the signing key, relative to
	// BaseLocation. Empty means the source publishes unsigned content.
	PublicKeyPath string `yaml:"publicKey,omitempty" mapstructure:"publicKey"`
}

// Resolve resolves rel against base using standard hierarchical-reference
// resolution. A blank rel returns base unchanged. Backslash separators in
// rel are normalized and base is given a trailing slash when missing, so
// "http://host/app" and "http://host/app/" resolve identically.
func Resolve(base, rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return base, nil
	}

	rel = strings.ReplaceAll(rel, "\\", "/")
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base location %q: %w", base, err)
	}
	r, err := url.Parse(rel)
	if err != nil {
		return "", fmt.Errorf("invalid relative path %q: %w", rel, err)
	}
	return b.ResolveReference(r).String(), nil
}

// Unresolve returns the path of full relative to base, provided full
// textually begins with base (the trailing slash on base is implied).
// This is a string-prefix operation, not a semantic one: two locations
// that are equivalent but spelled differently will not unresolve.
func Unresolve(base, full string) (string, bool) {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if !strings.HasPrefix(full, base) {
		return "", false
	}
	return strings.TrimPrefix(full, base), true
}

// ManifestLocation returns the absolute location of the source's manifest.
func (s Source) ManifestLocation() (string, error) {
	return Resolve(s.BaseLocation, s.ManifestPath)
}

// PublicKeyLocation returns the absolute location of the source's public
// key, or ("", false, nil) when the source has no key configured.
func (s Source) PublicKeyLocation() (string, bool, error) {
	if s.PublicKeyPath == "" {
		return "", false, nil
	}
	loc, err := Resolve(s.BaseLocation, s.PublicKeyPath)
	if err != nil {
		return "", false, err
	}
	return loc, true, nil
}

// ResolveAsset resolves an asset path from a manifest against the source.
func (s Source) ResolveAsset(rel string) (string, error) {
	return Resolve(s.BaseLocation, rel)
}
