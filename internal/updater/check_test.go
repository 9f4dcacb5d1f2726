package updater

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/updraft-io/updraft/pkg/manifest"
)

func manifestWithVersions(versions ...string) *manifest.Manifest {
	m := &manifest.Manifest{Application: "demo"}
	for _, v := range versions {
		m.Versions = append(m.Versions, manifest.AppVersion{Version: v})
	}
	return m
}

func TestNewerApplicationVersion(t *testing.T) {
	m := manifestWithVersions("1.0.0", "1.2.0")

	got, ok := NewerApplicationVersion("1.0.0", m)
	assert.True(t, ok)
	assert.Equal(t, "1.2.0", got)

	_, ok = NewerApplicationVersion("1.2.0", m)
	assert.False(t, ok)

	_, ok = NewerApplicationVersion("2.0.0", m)
	assert.False(t, ok)
}

func TestNewerApplicationVersion_EmptyManifest(t *testing.T) {
	_, ok := NewerApplicationVersion("1.0.0", &manifest.Manifest{})
	assert.False(t, ok)
}

func TestNewerApplicationVersion_NonSemverFallback(t *testing.T) {
	m := manifestWithVersions("2.0")

	// "dev" is not semver; the normalized-key fallback still works.
	got, ok := NewerApplicationVersion("dev", m)
	assert.True(t, ok)
	assert.Equal(t, "2.0", got)
}
