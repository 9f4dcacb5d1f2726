package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/updraft-io/updraft/pkg/logger"
)

const (
	defaultRetryMax     = 2
	defaultRetryWaitMin = 500 * time.Millisecond
	defaultRetryWaitMax = 5 * time.Second
)

// HTTPFetcher fetches locations over HTTP(S) with bounded retries.
// It implements Fetcher; each request runs on its own goroutine.
type HTTPFetcher struct {
	client *retryablehttp.Client
}

// NewHTTPFetcher builds a fetcher with the default retry policy.
func NewHTTPFetcher() *HTTPFetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = defaultRetryMax
	client.RetryWaitMin = defaultRetryWaitMin
	client.RetryWaitMax = defaultRetryWaitMax
	// retryablehttp's own logger is chatty; route through ours at debug.
	client.Logger = nil
	client.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			logger.Debug("Retrying fetch", "location", req.URL.String(), "attempt", attempt)
		}
	}
	return &HTTPFetcher{client: client}
}

// Fetch implements Fetcher. The returned CancelFunc aborts the underlying
// request context; cancellation is best-effort.
func (f *HTTPFetcher) Fetch(location string, cb Callbacks) CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		data, err := f.get(ctx, location)
		if err != nil {
			cb.OnFailure(location, err.Error())
			return
		}
		cb.OnSuccess(location, data)
	}()

	return CancelFunc(cancel)
}

func (f *HTTPFetcher) get(ctx context.Context, location string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid location: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch failed: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(data) == 0 {
		// An empty payload is indistinguishable from a missing file.
		return nil, fmt.Errorf("fetch returned an empty payload")
	}
	return data, nil
}
