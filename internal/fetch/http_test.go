package fetch

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome struct {
	location string
	data     []byte
	reason   string
	failed   bool
}

func fetchAndWait(t *testing.T, f Fetcher, location string) outcome {
	t.Helper()
	ch := make(chan outcome, 1)
	f.Fetch(location, Callbacks{
		OnSuccess: func(loc string, data []byte) {
			ch <- outcome{location: loc, data: data}
		},
		OnFailure: func(loc, reason string) {
			ch <- outcome{location: loc, reason: reason, failed: true}
		},
	})
	select {
	case o := <-ch:
		return o
	case <-time.After(10 * time.Second):
		t.Fatal("fetch never completed")
		return outcome{}
	}
}

func TestHTTPFetcher_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	o := fetchAndWait(t, NewHTTPFetcher(), srv.URL+"/file.bin")
	require.False(t, o.failed, o.reason)
	assert.Equal(t, srv.URL+"/file.bin", o.location)
	assert.Equal(t, []byte("payload"), o.data)
}

func TestHTTPFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	o := fetchAndWait(t, NewHTTPFetcher(), srv.URL+"/missing")
	require.True(t, o.failed)
	assert.Contains(t, o.reason, "404")
}

func TestHTTPFetcher_EmptyPayloadIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	o := fetchAndWait(t, NewHTTPFetcher(), srv.URL+"/empty")
	require.True(t, o.failed)
	assert.Contains(t, o.reason, "empty")
}

func TestHTTPFetcher_InvalidLocation(t *testing.T) {
	o := fetchAndWait(t, NewHTTPFetcher(), "http://\x00bad")
	assert.True(t, o.failed)
}

func TestHTTPFetcher_ExactlyOneCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	var mu sync.Mutex
	calls := 0
	done := make(chan struct{}, 2)

	NewHTTPFetcher().Fetch(srv.URL, Callbacks{
		OnSuccess: func(string, []byte) {
			mu.Lock()
			calls++
			mu.Unlock()
			done <- struct{}{}
		},
		OnFailure: func(string, string) {
			mu.Lock()
			calls++
			mu.Unlock()
			done <- struct{}{}
		},
	})

	<-done
	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestHTTPFetcher_Cancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte("late"))
	}))
	defer srv.Close()
	defer close(release)

	ch := make(chan outcome, 1)
	cancel := NewHTTPFetcher().Fetch(srv.URL, Callbacks{
		OnSuccess: func(loc string, data []byte) { ch <- outcome{location: loc, data: data} },
		OnFailure: func(loc, reason string) { ch <- outcome{location: loc, reason: reason, failed: true} },
	})
	cancel()

	select {
	case o := <-ch:
		assert.True(t, o.failed)
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled fetch never reported an outcome")
	}
}
