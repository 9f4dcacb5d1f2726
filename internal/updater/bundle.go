package updater

import (
	"fmt"
	"time"

	"github.com/updraft-io/updraft/internal/fetch"
	"github.com/updraft-io/updraft/internal/source"
	"github.com/updraft-io/updraft/pkg/logger"
	"github.com/updraft-io/updraft/pkg/manifest"
)

// AssetSet selects which of an extension version's assets a bundle
// download should include.
type AssetSet int

const (
	ArchiveOnly AssetSet = iota
	ArchiveAndSignature
	ScreenshotsOnly
	Everything
)

func (s AssetSet) includesArchive() bool {
	return s == ArchiveOnly || s == ArchiveAndSignature || s == Everything
}

func (s AssetSet) includesSignature() bool {
	return s == ArchiveAndSignature || s == Everything
}

func (s AssetSet) includesScreenshots() bool {
	return s == ScreenshotsOnly || s == Everything
}

// Asset is one downloaded artifact.
type Asset struct {
	Location string
	Data     []byte
}

// Bundle is the aggregate result of downloading one extension version.
// Any part may be absent: a partial bundle (archive present, signature
// missing because its fetch failed) is a valid result. Once returned the
// bundle is owned exclusively by the caller.
type Bundle struct {
	Archive     *Asset
	Signature   *Asset
	Screenshots []Asset
}

// DefaultBundleTimeout bounds the wall-clock budget of one bundle download.
const DefaultBundleTimeout = 10 * time.Second

// BundleWorker downloads every configured asset of one extension version
// as a single logical operation with a bounded wall-clock budget.
type BundleWorker struct {
	fetcher fetch.Fetcher
	timeout time.Duration
}

// NewBundleWorker builds a worker with the default timeout.
func NewBundleWorker(fetcher fetch.Fetcher) *BundleWorker {
	return &BundleWorker{fetcher: fetcher, timeout: DefaultBundleTimeout}
}

// WithTimeout overrides the wall-clock budget.
func (w *BundleWorker) WithTimeout(timeout time.Duration) *BundleWorker {
	w.timeout = timeout
	return w
}

type assetKind int

const (
	kindArchive assetKind = iota
	kindSignature
	kindScreenshot
)

type assetRequest struct {
	kind     assetKind
	location string
}

type assetOutcome struct {
	index   int
	request assetRequest
	data    []byte
	reason  string
	failed  bool
}

// Run blocks until every requested asset fetch resolves or the timeout
// elapses, whichever comes first. It returns the (possibly partial) bundle
// plus one error per asset fetch that failed, including fetches still
// outstanding when the timeout fired. Outcomes arriving after the timeout
// boundary are discarded; the bundle never mutates after Run returns.
func (w *BundleWorker) Run(src source.Source, ev manifest.ExtensionVersion, set AssetSet) (*Bundle, []error) {
	requests, errs := w.resolveRequests(src, ev, set)
	bundle := &Bundle{}
	if len(requests) == 0 {
		return bundle, errs
	}

	// Every outcome handler only sends; this goroutine is the sole writer
	// of the bundle and error list, so all asset kinds share one uniform
	// synchronization discipline. The channel is buffered to the request
	// count so late completions after a timeout never block or leak.
	outcomes := make(chan assetOutcome, len(requests))
	cancels := make([]fetch.CancelFunc, 0, len(requests))
	pending := make(map[int]assetRequest, len(requests))

	for i, req := range requests {
		i, req := i, req
		pending[i] = req
		cancel := w.fetcher.Fetch(req.location, fetch.Callbacks{
			OnSuccess: func(_ string, data []byte) {
				outcomes <- assetOutcome{index: i, request: req, data: data}
			},
			OnFailure: func(_ string, reason string) {
				outcomes <- assetOutcome{index: i, request: req, reason: reason, failed: true}
			},
		})
		cancels = append(cancels, cancel)
	}

	timer := time.NewTimer(w.timeout)
	defer timer.Stop()

	for len(pending) > 0 {
		select {
		case outcome := <-outcomes:
			delete(pending, outcome.index)
			if outcome.failed {
				errs = append(errs, fmt.Errorf("%s: %s", outcome.request.location, outcome.reason))
				continue
			}
			bundle.store(outcome)
		case <-timer.C:
			logger.Warn("Bundle download timed out",
				"timeout", w.timeout, "outstanding", len(pending))
			for _, cancel := range cancels {
				cancel()
			}
			// Unresolved fetches count as failures, one error each;
			// anything completing after this point is dropped with the
			// channel.
			for _, req := range pending {
				errs = append(errs, fmt.Errorf("%s: timed out after %s", req.location, w.timeout))
			}
			return bundle, errs
		}
	}
	return bundle, errs
}

// resolveRequests computes the absolute location of every asset implied by
// the selected option. Resolution failures become errors up front, not
// fetch attempts.
func (w *BundleWorker) resolveRequests(src source.Source, ev manifest.ExtensionVersion, set AssetSet) ([]assetRequest, []error) {
	var requests []assetRequest
	var errs []error

	add := func(kind assetKind, rel string) {
		location, err := src.ResolveAsset(rel)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to resolve %q: %w", rel, err))
			return
		}
		requests = append(requests, assetRequest{kind: kind, location: location})
	}

	if set.includesArchive() && ev.Path != "" {
		add(kindArchive, ev.Path)
	}
	if set.includesSignature() && ev.SignaturePath != "" {
		add(kindSignature, ev.SignaturePath)
	}
	if set.includesScreenshots() {
		for _, shot := range ev.Screenshots {
			add(kindScreenshot, shot)
		}
	}
	return requests, errs
}

func (b *Bundle) store(outcome assetOutcome) {
	asset := Asset{Location: outcome.request.location, Data: outcome.data}
	switch outcome.request.kind {
	case kindArchive:
		b.Archive = &asset
	case kindSignature:
		b.Signature = &asset
	case kindScreenshot:
		b.Screenshots = append(b.Screenshots, asset)
	}
}
