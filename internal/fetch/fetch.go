// Package fetch defines the asynchronous byte-fetch collaborator the
// update subsystem is built on, plus its default HTTP implementation.
// A fetcher invokes exactly one of the two callbacks per request, always
// on a background goroutine, never on the caller's goroutine.
package fetch

// Callbacks receives the single outcome of one fetch request.
type Callbacks struct {
	// OnSuccess delivers the retrieved bytes. Called at most once.
	OnSuccess func(location string, data []byte)
	// OnFailure delivers a human-readable failure reason. Called at most
	// once, and never after OnSuccess.
	OnFailure func(location string, reason string)
}

// CancelFunc requests best-effort cancellation of an in-flight fetch.
// The fetch may still complete; callers that stop caring about the outcome
// must be prepared to ignore a late callback.
type CancelFunc func()

// Fetcher issues one-shot asynchronous byte fetches.
type Fetcher interface {
	// Fetch retrieves location in the background and invokes exactly one
	// callback with the outcome. It returns immediately.
	Fetch(location string, cb Callbacks) CancelFunc
}
