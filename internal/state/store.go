package state

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Snapshot represents the latest data available to a view.
type Snapshot[T any] struct {
	Data                T
	HasData             bool
	Seq                 uint64
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed fetches
}

// Failing returns true when the last two or more fetches failed.
func (s Snapshot[T]) Failing() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to one view's snapshot.
type Store[T any] struct {
	mu       sync.RWMutex
	snapshot Snapshot[T]
	clone    func(T) T
	clock    clockwork.Clock
}

// NewStore returns a store that copies data with clone on every read and
// write. A nil clone copies T by value.
func NewStore[T any](clone func(T) T) *Store[T] {
	return &Store[T]{clone: clone, clock: clockwork.NewRealClock()}
}

// WithClock makes the store stamp LastUpdated from clock. A nil clock keeps
// the current one.
func (s *Store[T]) WithClock(clock clockwork.Clock) *Store[T] {
	if clock != nil {
		s.clock = clock
	}
	return s
}

// Update applies the result of fetch number seq. Results older than the one
// already stored are discarded and false is returned; seq 0 always applies.
// When err is non-nil the previous data is kept but the error is recorded.
func (s *Store[T]) Update(seq uint64, data T, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != 0 && seq <= s.snapshot.Seq {
		return false
	}
	if seq != 0 {
		s.snapshot.Seq = seq
	}
	s.snapshot.LastUpdated = s.clock.Now()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return true
	}

	s.snapshot.Data = s.copy(data)
	s.snapshot.HasData = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Data = s.copy(s.snapshot.Data)
	return snap
}

func (s *Store[T]) copy(data T) T {
	if s.clone == nil {
		return data
	}
	return s.clone(data)
}

// CloneSlice is a clone func for slice-valued stores.
func CloneSlice[E any](items []E) []E {
	if items == nil {
		return nil
	}
	dup := make([]E, len(items))
	copy(dup, items)
	return dup
}
