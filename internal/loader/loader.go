package loader

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/pantry/internal/state"
)

const defaultTimeout = 15 * time.Second

// LoadFunc produces one fresh value for a view.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Options configure a Loader.
type Options struct {
	// Timeout bounds each fetch. Zero uses a 15s default.
	Timeout time.Duration
	Logger  zerolog.Logger
	Name    string
}

// Loader binds a LoadFunc to a view's store. Its Fetch method is the
// scheduler callback. Once detached, completed fetches are dropped instead of
// written to the store.
type Loader[T any] struct {
	store   *state.Store[T]
	load    LoadFunc[T]
	timeout time.Duration
	log     zerolog.Logger

	seq   atomic.Uint64
	alive atomic.Bool
}

// New returns an attached Loader writing into store.
func New[T any](store *state.Store[T], load LoadFunc[T], opts Options) *Loader[T] {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	name := opts.Name
	if name == "" {
		name = "view"
	}
	l := &Loader[T]{
		store:   store,
		load:    load,
		timeout: timeout,
		log:     opts.Logger.With().Str("component", "loader").Str("view", name).Logger(),
	}
	l.alive.Store(true)
	return l
}

// Fetch runs the load and applies the result if the view is still mounted
// and no newer fetch has already completed.
func (l *Loader[T]) Fetch(ctx context.Context) {
	if !l.alive.Load() {
		return
	}
	seq := l.seq.Add(1)
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	data, err := l.load(ctx)
	if !l.alive.Load() {
		l.log.Debug().Uint64("seq", seq).Msg("discarding result for unmounted view")
		return
	}
	if !l.store.Update(seq, data, err) {
		l.log.Debug().Uint64("seq", seq).Msg("discarding stale result")
		return
	}
	if err != nil {
		l.log.Warn().Err(err).Uint64("seq", seq).Msg("fetch failed")
	}
}

// Detach marks the view unmounted.
func (l *Loader[T]) Detach() { l.alive.Store(false) }

// Alive reports whether the view is still mounted.
func (l *Loader[T]) Alive() bool { return l.alive.Load() }

// Store returns the view's store.
func (l *Loader[T]) Store() *state.Store[T] { return l.store }

// Query holds a view's current request so fetch goroutines read a
// consistent value while the UI edits it.
type Query[T any] struct {
	mu sync.Mutex
	v  T
}

// NewQuery returns a Query holding v.
func NewQuery[T any](v T) *Query[T] {
	return &Query[T]{v: v}
}

// Get returns the current value.
func (q *Query[T]) Get() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.v
}

// Set replaces the value.
func (q *Query[T]) Set(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.v = v
}

// Update applies fn and returns the new value.
func (q *Query[T]) Update(fn func(T) T) T {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.v = fn(q.v)
	return q.v
}
