// Package store is the client-side state store: one slice per domain (auth,
// items, categories), each wrapping remote calls behind a uniform async
// lifecycle and caching the last successful result.
package store

import (
	"errors"
	"sync"

	"github.com/dkolesn/swapmart/internal/errs"
	"github.com/dkolesn/swapmart/internal/model"
)

// State is the lifecycle position of an async resource.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent read of a resource. Data holds the last successful
// result even in the Loading and Failure states (stale-but-available policy);
// Err is non-nil only in StateFailure.
type Snapshot[T any] struct {
	State State
	Data  T
	Err   *model.APIError
}

// Loading reports whether a request is outstanding.
func (s Snapshot[T]) Loading() bool { return s.State == StateLoading }

// resource is the tagged async state shared by every slice. The mutex makes
// transitions safe under concurrent fetches; when two fetches race, whichever
// completion lands last wins, matching the wholesale-overwrite contract.
type resource[T any] struct {
	mu    sync.Mutex
	state State
	data  T
	err   *model.APIError
}

// begin marks a request outstanding. The previous error is cleared; the
// previous data is kept readable while the request is in flight.
func (r *resource[T]) begin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateLoading
	r.err = nil
}

// resolve completes the lifecycle with fresh data, replacing the cache wholesale.
func (r *resource[T]) resolve(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateSuccess
	r.data = v
	r.err = nil
}

// fail completes the lifecycle with an error, leaving prior data untouched.
func (r *resource[T]) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateFailure
	r.err = asAPIError(err)
}

// reset returns the resource to idle with zero data.
func (r *resource[T]) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero T
	r.state = StateIdle
	r.data = zero
	r.err = nil
}

// set installs data without running a lifecycle, used for state restored at
// process start.
func (r *resource[T]) set(v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateSuccess
	r.data = v
	r.err = nil
}

func (r *resource[T]) snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot[T]{State: r.state, Data: r.data, Err: r.err}
}

// asAPIError normalizes any failure into the structured shape slices store.
// api.Client already returns *model.APIError; anything else is a programming
// slip mapped to the generic transport failure.
func asAPIError(err error) *model.APIError {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &model.APIError{Message: err.Error(), Err: errs.ErrUnavailable}
}
