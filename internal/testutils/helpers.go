// Package testutils holds shared helpers for package tests.
package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestContext creates a test context with timeout
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// AssertEventuallyTrue retries a condition until it's true or times out
func AssertEventuallyTrue(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Condition never became true: %s", message)
}

// WriteSourceConfig writes a source configuration fixture into a temp dir
// and returns its path.
func WriteSourceConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// SampleManifestJSON is a minimal but complete manifest document used by
// tests that need realistic wire bytes.
const SampleManifestJSON = `{
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
              "metadata": {"name": "Foo", "version": "1.0.0"},
              "path": "foo/1.0.0/foo.zip",
              "signaturePath": "foo/1.0.0/foo.zip.sig",
              "screenshots": ["foo/1.0.0/shot1.png"]
            }
          ]
        }
      ]
    }
  ]
}`
