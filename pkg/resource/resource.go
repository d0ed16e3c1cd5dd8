package resource

import (
	"sync"
	"time"

	"github.com/loomkit/loom/pkg/loom"
	"github.com/loomkit/loom/pkg/suspense"
)

// State represents the current state of a resource.
type State int

const (
	Pending State = iota // Initial state, before first fetch
	Loading              // Fetch in progress
	Ready                // Data successfully loaded
	Error                // Fetch failed
)

// Resource manages asynchronous data fetching and state.
//
// A resource created inside a suspense boundary participates in that
// boundary's accounting: every physical fetch begins against the boundary
// when it starts and ends when it settles, success or failure alike. The
// boundary never learns the outcome; a failed fetch is just a settled one,
// and the error flows to the view through the ordinary state signals.
type Resource[T any] struct {
	fetcher  func() (T, error)
	boundary *suspense.Context

	state *loom.Signal[State]
	data  *loom.Signal[T]
	err   *loom.Signal[error]

	// Options
	staleTime  time.Duration
	retryCount int
	retryDelay time.Duration
	onSuccess  func(T)
	onError    func(error)

	lastFetch time.Time
	fetchID   uint64
	mu        sync.Mutex
}

// New creates a Resource bound to the environment's nearest suspense
// boundary. The first fetch is triggered immediately.
func New[T any](env *suspense.Env, fetcher func() (T, error)) *Resource[T] {
	r := &Resource[T]{
		fetcher: fetcher,
		state:   loom.NewSignal(Pending),
		data:    loom.NewSignal(*new(T)),
		err:     loom.NewSignal[error](nil),
	}
	if env != nil {
		r.boundary = env.Boundary()
	}
	r.Fetch()
	return r
}

// NewWithKey creates a Resource that refetches whenever the tracked key
// function's dependencies change.
func NewWithKey[K comparable, T any](env *suspense.Env, key func() K, fetcher func(K) (T, error)) *Resource[T] {
	r := New(env, func() (T, error) {
		return fetcher(key())
	})

	first := true
	loom.CreateEffect(func() loom.Cleanup {
		key() // track
		if first {
			// New already fetched with the initial key.
			first = false
			return nil
		}
		r.Refetch()
		return nil
	})

	return r
}

// StaleTime configures how long loaded data satisfies Fetch without a
// refetch.
func (r *Resource[T]) StaleTime(d time.Duration) *Resource[T] {
	r.mu.Lock()
	r.staleTime = d
	r.mu.Unlock()
	return r
}

// RetryOnError configures automatic retries for failed fetches.
func (r *Resource[T]) RetryOnError(count int, delay time.Duration) *Resource[T] {
	r.mu.Lock()
	r.retryCount = count
	r.retryDelay = delay
	r.mu.Unlock()
	return r
}

// OnSuccess registers a callback for successful fetches.
func (r *Resource[T]) OnSuccess(fn func(T)) *Resource[T] {
	r.mu.Lock()
	r.onSuccess = fn
	r.mu.Unlock()
	return r
}

// OnError registers a callback for failed fetches.
func (r *Resource[T]) OnError(fn func(error)) *Resource[T] {
	r.mu.Lock()
	r.onError = fn
	r.mu.Unlock()
	return r
}

// State returns the current state, subscribing the current listener.
func (r *Resource[T]) State() State {
	return r.state.Get()
}

// IsLoading reports whether a fetch is in progress or has not started.
func (r *Resource[T]) IsLoading() bool {
	s := r.state.Get()
	return s == Loading || s == Pending
}

// IsReady reports whether data has been loaded.
func (r *Resource[T]) IsReady() bool {
	return r.state.Get() == Ready
}

// IsError reports whether the last fetch failed.
func (r *Resource[T]) IsError() bool {
	return r.state.Get() == Error
}

// Data returns the loaded value, subscribing the current listener.
func (r *Resource[T]) Data() T {
	return r.data.Get()
}

// DataOr returns the loaded value, or fallback until the resource is
// ready.
func (r *Resource[T]) DataOr(fallback T) T {
	if r.IsReady() {
		return r.data.Get()
	}
	return fallback
}

// Error returns the last fetch error, if any.
func (r *Resource[T]) Error() error {
	return r.err.Get()
}

// Fetch triggers a fetch unless ready data is still fresh per StaleTime.
func (r *Resource[T]) Fetch() {
	r.mu.Lock()
	if r.state.Peek() == Ready && time.Since(r.lastFetch) < r.staleTime {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	r.Refetch()
}

// Refetch forces a fetch, bypassing staleness. The boundary sees exactly
// one Begin/End pair per call regardless of retries or supersession.
func (r *Resource[T]) Refetch() {
	r.mu.Lock()
	r.fetchID++
	currentID := r.fetchID
	maxAttempts := 1 + r.retryCount
	retryDelay := r.retryDelay
	onSuccess := r.onSuccess
	onError := r.onError
	r.mu.Unlock()

	if r.boundary != nil {
		r.boundary.Begin()
	}

	r.state.Set(Loading)
	r.err.Set(nil)

	go func() {
		defer func() {
			if r.boundary != nil {
				r.boundary.End()
			}
		}()

		var result T
		var err error

		for i := 0; i < maxAttempts; i++ {
			if i > 0 {
				time.Sleep(retryDelay)
			}

			// Superseded by a newer fetch: settle silently.
			r.mu.Lock()
			if r.fetchID != currentID {
				r.mu.Unlock()
				return
			}
			r.mu.Unlock()

			result, err = r.fetcher()
			if err == nil {
				break
			}
		}

		r.mu.Lock()
		if r.fetchID != currentID {
			r.mu.Unlock()
			return
		}
		r.lastFetch = time.Now()
		r.mu.Unlock()

		if err != nil {
			r.err.Set(err)
			r.state.Set(Error)
			if onError != nil {
				onError(err)
			}
		} else {
			r.data.Set(result)
			r.state.Set(Ready)
			if onSuccess != nil {
				onSuccess(result)
			}
		}
	}()
}

// Invalidate marks the current data stale so the next Fetch refetches.
func (r *Resource[T]) Invalidate() {
	r.mu.Lock()
	r.lastFetch = time.Time{}
	r.mu.Unlock()
}

// Mutate optimistically updates the local data without fetching.
func (r *Resource[T]) Mutate(fn func(T) T) {
	r.data.Set(fn(r.data.Peek()))
}
