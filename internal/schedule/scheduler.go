package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Interval bounds accepted by SetInterval.
const (
	MinInterval     = 5 * time.Second
	MaxInterval     = 300 * time.Second
	DefaultInterval = 30 * time.Second
)

var (
	// ErrIntervalOutOfRange is returned for intervals outside [MinInterval, MaxInterval].
	ErrIntervalOutOfRange = errors.New("refresh interval out of range")
	// ErrClosed is returned when starting a scheduler after Close.
	ErrClosed = errors.New("scheduler closed")
)

// FetchFunc is invoked on every tick. It runs on its own goroutine and the
// scheduler never waits for it.
type FetchFunc func(ctx context.Context)

// State is the scheduler's run state.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// Options configure a Scheduler.
type Options struct {
	Interval    time.Duration
	AutoRefresh bool
	Clock       clockwork.Clock
	Logger      zerolog.Logger
	// Name identifies the owning view in logs.
	Name string
}

// Status is a snapshot of the scheduler for display.
type Status struct {
	State           State
	Interval        time.Duration
	NextFireAt      time.Time
	LastFireAt      time.Time
	LastCompletedAt time.Time
	Fires           int
	InFlight        int
}

// Scheduler invokes a fetch callback on a repeating cadence for one view.
// Each Start arms a fresh ticker tagged with a generation number; ticks from
// an older generation are dropped, so a scheduler never has two live timers.
type Scheduler struct {
	mu    sync.Mutex
	ctx   context.Context
	fetch FetchFunc
	clock clockwork.Clock
	log   zerolog.Logger

	interval time.Duration
	state    State
	closed   bool

	gen    uint64
	ticker clockwork.Ticker
	done   chan struct{}

	nextFireAt      time.Time
	lastFireAt      time.Time
	lastCompletedAt time.Time
	fires           int
	issued          uint64
	completed       uint64
	inFlight        int
}

// New creates a scheduler bound to fetch. It starts Running when
// opts.AutoRefresh is set. Fetches receive ctx, and cancelling ctx stops the
// scheduler.
func New(ctx context.Context, fetch FetchFunc, opts Options) (*Scheduler, error) {
	if fetch == nil {
		return nil, fmt.Errorf("fetch func is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	interval := opts.Interval
	if interval == 0 {
		interval = DefaultInterval
	}
	if err := ValidateInterval(interval); err != nil {
		return nil, err
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	name := opts.Name
	if name == "" {
		name = "view"
	}
	s := &Scheduler{
		ctx:      ctx,
		fetch:    fetch,
		clock:    clock,
		log:      opts.Logger.With().Str("component", "schedule").Str("view", name).Logger(),
		interval: interval,
	}
	if opts.AutoRefresh {
		s.mu.Lock()
		s.startLocked()
		s.mu.Unlock()
	}
	return s, nil
}

// ValidateInterval checks d against the allowed bounds.
func ValidateInterval(d time.Duration) error {
	if d < MinInterval || d > MaxInterval {
		return fmt.Errorf("%w: %s not in [%s, %s]", ErrIntervalOutOfRange, d, MinInterval, MaxInterval)
	}
	return nil
}

// Start arms the timer with the current interval, replacing any running one.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.startLocked()
	return nil
}

// Stop cancels the timer. In-flight fetches are left to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// SetInterval changes the cadence. A running scheduler is re-armed with the
// new interval after the old timer is cancelled.
func (s *Scheduler) SetInterval(d time.Duration) error {
	if err := ValidateInterval(d); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.interval = d
	if s.state == Running {
		s.startLocked()
	}
	return nil
}

// Toggle flips between Running and Stopped and returns the new state.
func (s *Scheduler) Toggle() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Running {
		s.stopLocked()
		return s.state, nil
	}
	if s.closed {
		return s.state, ErrClosed
	}
	s.startLocked()
	return s.state, nil
}

// FireNow issues one fetch immediately without touching the timer.
func (s *Scheduler) FireNow() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	seq := s.issueLocked(s.clock.Now())
	s.mu.Unlock()
	go s.run(seq)
	return nil
}

// Close stops the scheduler for good. Later Start calls return ErrClosed.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
	s.closed = true
}

// Interval returns the current cadence.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// NextFireAt returns when the next tick is due, or the zero time when stopped.
func (s *Scheduler) NextFireAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextFireAt
}

// Remaining returns the countdown to the next tick, never negative.
func (s *Scheduler) Remaining(now time.Time) time.Duration {
	next := s.NextFireAt()
	if next.IsZero() {
		return 0
	}
	if d := next.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Countdown is Remaining evaluated against the scheduler's clock.
func (s *Scheduler) Countdown() time.Duration {
	return s.Remaining(s.clock.Now())
}

// Status returns a snapshot for display.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		State:           s.state,
		Interval:        s.interval,
		NextFireAt:      s.nextFireAt,
		LastFireAt:      s.lastFireAt,
		LastCompletedAt: s.lastCompletedAt,
		Fires:           s.fires,
		InFlight:        s.inFlight,
	}
}

func (s *Scheduler) startLocked() {
	s.stopLocked()
	s.gen++
	gen := s.gen
	ticker := s.clock.NewTicker(s.interval)
	done := make(chan struct{})
	s.ticker = ticker
	s.done = done
	s.state = Running
	s.nextFireAt = s.clock.Now().Add(s.interval)
	s.log.Debug().Dur("interval", s.interval).Uint64("gen", gen).Msg("scheduler started")
	go s.loop(gen, ticker, done)
}

func (s *Scheduler) stopLocked() {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
		s.ticker = nil
		s.done = nil
		s.gen++
		s.log.Debug().Msg("scheduler stopped")
	}
	s.state = Stopped
	s.nextFireAt = time.Time{}
}

func (s *Scheduler) loop(gen uint64, ticker clockwork.Ticker, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-s.ctx.Done():
			s.mu.Lock()
			if s.gen == gen {
				s.stopLocked()
			}
			s.mu.Unlock()
			return
		case now := <-ticker.Chan():
			s.tick(gen, now)
		}
	}
}

func (s *Scheduler) tick(gen uint64, now time.Time) {
	s.mu.Lock()
	if s.gen != gen || s.state != Running {
		s.mu.Unlock()
		return
	}
	s.nextFireAt = now.Add(s.interval)
	seq := s.issueLocked(now)
	s.mu.Unlock()
	go s.run(seq)
}

func (s *Scheduler) issueLocked(now time.Time) uint64 {
	s.lastFireAt = now
	s.fires++
	s.issued++
	s.inFlight++
	return s.issued
}

func (s *Scheduler) run(seq uint64) {
	s.fetch(s.ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	// Only the most recently issued completion moves LastCompletedAt.
	if seq > s.completed {
		s.completed = seq
		s.lastCompletedAt = s.clock.Now()
	}
}
