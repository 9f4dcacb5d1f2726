package manifest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `{
  "generated": "2026-03-01T12:00:00Z",
  "application": "demo",
  "versions": [
    {
      "version": "1.0",
      "extensions": [
        {
          "name": "Foo",
          "versions": [
            {
              "metadata": {
                "name": "Foo",
                "version": "1.0.0",
                "description": "demo extension",
                "checksum": {"algorithm": "sha256", "value": "abc123"}
              },
              "path": "foo/1.0.0/foo.zip",
              "signaturePath": "foo/1.0.0/foo.zip.sig",
              "screenshots": ["foo/1.0.0/shot1.png", "foo/1.0.0/shot2.png"]
            }
          ]
        }
      ]
    }
  ]
}`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)

	assert.Equal(t, "demo", m.Application)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), m.Generated)
	require.Len(t, m.Versions, 1)

	ev := m.Versions[0].Extensions[0].Versions[0]
	assert.True(t, ev.HasMetadata())
	assert.Equal(t, "1.0.0", ev.Version())
	assert.Equal(t, "demo extension", ev.Metadata.Description)
	require.NotNil(t, ev.Metadata.Checksum)
	assert.Equal(t, "sha256", ev.Metadata.Checksum.Algorithm)
	assert.Equal(t, "foo/1.0.0/foo.zip.sig", ev.SignaturePath)
	assert.Len(t, ev.Screenshots, 2)
}

func TestParse_FreshValuePerCall(t *testing.T) {
	a, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)
	b, err := Parse([]byte(sampleManifest))
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestParse_EmptyPayload(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)
	_, err = Parse([]byte{})
	assert.Error(t, err)
}

func TestParse_InvalidPayload(t *testing.T) {
	_, err := Parse([]byte("not json at all"))
	assert.Error(t, err)
}
