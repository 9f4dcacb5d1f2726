package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/updraft-io/updraft/internal/testutils"
)

func TestResolve(t *testing.T) {
	got, err := Resolve("http://host/app/", "v.json")
	require.NoError(t, err)
	assert.Equal(t, "http://host/app/v.json", got)

	// Trailing slash on base is implied.
	got, err = Resolve("http://host/app", "v.json")
	require.NoError(t, err)
	assert.Equal(t, "http://host/app/v.json", got)
}

func TestResolve_BlankRelativeReturnsBase(t *testing.T) {
	got, err := Resolve("http://host/app", "")
	require.NoError(t, err)
	assert.Equal(t, "http://host/app", got)

	got, err = Resolve("http://host/app", "   ")
	require.NoError(t, err)
	assert.Equal(t, "http://host/app", got)
}

func TestResolve_NestedPathAndBackslashes(t *testing.T) {
	got, err := Resolve("http://host/app/", "a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "http://host/app/a/b.txt", got)

	got, err = Resolve("http://host/app/", `a\b.txt`)
	require.NoError(t, err)
	assert.Equal(t, "http://host/app/a/b.txt", got)
}

func TestResolve_InvalidInput(t *testing.T) {
	_, err := Resolve("http://host/%zz", "v.json")
	assert.Error(t, err)
}

func TestUnresolve(t *testing.T) {
	rel, ok := Unresolve("http://host/app/", "http://host/app/a/b.txt")
	require.True(t, ok)
	assert.Equal(t, "a/b.txt", rel)

	// Trailing slash implied.
	rel, ok = Unresolve("http://host/app", "http://host/app/a/b.txt")
	require.True(t, ok)
	assert.Equal(t, "a/b.txt", rel)

	_, ok = Unresolve("http://host/app/", "http://other/app/a.txt")
	assert.False(t, ok)
}

func TestUnresolve_RoundTrip(t *testing.T) {
	base := "http://host/app"
	full, err := Resolve(base, "a/b.txt")
	require.NoError(t, err)

	rel, ok := Unresolve(base, full)
	require.True(t, ok)
	assert.Equal(t, "a/b.txt", rel)
}

func TestSourceLocations(t *testing.T) {
	src := Source{
		Name:          "primary",
		BaseLocation:  "http://host/app",
		ManifestPath:  "manifest.json",
		PublicKeyPath: "keys/publisher.asc",
	}

	loc, err := src.ManifestLocation()
	require.NoError(t, err)
	assert.Equal(t, "http://host/app/manifest.json", loc)

	keyLoc, ok, err := src.PublicKeyLocation()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "http://host/app/keys/publisher.asc", keyLoc)
}

func TestSource_NoPublicKey(t *testing.T) {
	src := Source{Name: "mirror", BaseLocation: "http://host/app", ManifestPath: "m.json"}
	_, ok, err := src.PublicKeyLocation()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseRegistry(t *testing.T) {
	data := []byte(`
application: demo
sources:
  - name: primary
    base: http://host/app/
    manifest: manifest.json
    publicKey: keys/pub.asc
  - name: mirror
    base: http://mirror/app/
    manifest: manifest.json
`)
	reg, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "demo", reg.Application)
	require.Len(t, reg.Sources, 2)
	assert.Equal(t, "keys/pub.asc", reg.Sources[0].PublicKeyPath)
	assert.Empty(t, reg.Sources[1].PublicKeyPath)
}

func TestParseRegistry_Invalid(t *testing.T) {
	_, err := Parse([]byte("sources:\n  - base: http://host/\n    manifest: m.json\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("sources:\n  - name: x\n    manifest: m.json\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("sources:\n  - name: x\n    base: http://host/\n"))
	assert.Error(t, err)
}

func TestLoad_EmbeddedDefaults(t *testing.T) {
	reg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "updraft", reg.Application)
	require.NotEmpty(t, reg.Sources)

	src, ok := reg.ByName("PRIMARY")
	require.True(t, ok)
	assert.Equal(t, "primary", src.Name)
}

func TestLoad_File(t *testing.T) {
	path := testutils.WriteSourceConfig(t, `
application: demo
sources:
  - name: local
    base: http://localhost:9000/updates/
    manifest: manifest.json
`)

	reg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", reg.Application)
	require.Len(t, reg.Sources, 1)
	assert.Equal(t, "local", reg.Sources[0].Name)
}

func TestByName_Missing(t *testing.T) {
	reg := &Registry{}
	_, ok := reg.ByName("nope")
	assert.False(t, ok)
}
