package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/five82/pantry/internal/loader"
	"github.com/five82/pantry/internal/schedule"
	"github.com/five82/pantry/internal/state"
)

// mounted is the part of a view session the header and footer need.
type mounted interface {
	status() schedule.Status
	lastUpdated() time.Time
	lastError() error
	refreshNow() error
	unmount()
}

type sessionOptions struct {
	Name        string
	Interval    time.Duration
	AutoRefresh bool
	Timeout     time.Duration
	Clock       clockwork.Clock
	Logger      zerolog.Logger
}

// session is everything a mounted view owns: its snapshot store, the loader
// feeding it and the scheduler driving the loader.
type session[T any] struct {
	store  *state.Store[T]
	loader *loader.Loader[T]
	sched  *schedule.Scheduler
}

// mount wires a view and issues its first fetch right away, whether or not
// auto refresh is on.
func mount[T any](ctx context.Context, load loader.LoadFunc[T], clone func(T) T, opts sessionOptions) (*session[T], error) {
	store := state.NewStore(clone).WithClock(opts.Clock)
	l := loader.New(store, load, loader.Options{
		Timeout: opts.Timeout,
		Logger:  opts.Logger,
		Name:    opts.Name,
	})
	sched, err := schedule.New(ctx, l.Fetch, schedule.Options{
		Interval:    opts.Interval,
		AutoRefresh: opts.AutoRefresh,
		Clock:       opts.Clock,
		Logger:      opts.Logger,
		Name:        opts.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", opts.Name, err)
	}
	if err := sched.FireNow(); err != nil {
		sched.Close()
		return nil, fmt.Errorf("mount %s: %w", opts.Name, err)
	}
	return &session[T]{store: store, loader: l, sched: sched}, nil
}

func (s *session[T]) snapshot() state.Snapshot[T] {
	if s == nil {
		return state.Snapshot[T]{}
	}
	return s.store.Snapshot()
}

func (s *session[T]) status() schedule.Status {
	if s == nil {
		return schedule.Status{}
	}
	return s.sched.Status()
}

func (s *session[T]) lastUpdated() time.Time { return s.snapshot().LastUpdated }

func (s *session[T]) lastError() error { return s.snapshot().LastError }

func (s *session[T]) refreshNow() error {
	if s == nil {
		return schedule.ErrClosed
	}
	return s.sched.FireNow()
}

// unmount stops the timer and detaches the loader. Fetches already in flight
// finish on their own and their results are dropped.
func (s *session[T]) unmount() {
	if s == nil {
		return
	}
	s.sched.Close()
	s.loader.Detach()
}
