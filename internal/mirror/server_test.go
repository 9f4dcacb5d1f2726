package mirror

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsMissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestNew_RejectsFileRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	_, err := New(path)
	assert.Error(t, err)
}

func TestServesSourceTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "foo", "1.0.0"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "manifest.json"), []byte(`{"application":"demo"}`), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "foo", "1.0.0", "foo.zip"), []byte("archive"), 0o644))

	s, err := New(root)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/manifest.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "demo")

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/foo/1.0.0/foo.zip", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "archive", rec.Body.String())

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMissingAssetIs404(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope.zip", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
