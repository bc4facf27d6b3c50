package state

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	s := NewStore(CloneSlice[int])

	before := time.Now()
	if !s.Update(1, []int{1, 2}, nil) {
		t.Fatalf("Update(1) = false, want true")
	}

	snap := s.Snapshot()
	if !snap.HasData || len(snap.Data) != 2 || snap.Data[0] != 1 {
		t.Fatalf("snapshot data = %#v, want [1 2] HasData=true", snap.Data)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Data[0] = 999
	snap2 := s.Snapshot()
	if snap2.Data[0] != 1 {
		t.Fatalf("Snapshot should clone data; got %d want 1", snap2.Data[0])
	}
}

func TestStore_StampsInjectedClock(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	s := NewStore[int](nil).WithClock(clock)

	s.Update(1, 7, nil)
	if got := s.Snapshot().LastUpdated; !got.Equal(clock.Now()) {
		t.Fatalf("LastUpdated = %v, want %v", got, clock.Now())
	}

	clock.Advance(30 * time.Second)
	s.Update(2, 0, errors.New("timeout"))
	if got := s.Snapshot().LastUpdated; !got.Equal(clock.Now()) {
		t.Fatalf("LastUpdated after failure = %v, want %v", got, clock.Now())
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	s := NewStore(CloneSlice[string])

	s.Update(1, []string{"recipes"}, nil)
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.Update(2, nil, origErr)

	snap := s.Snapshot()
	if !reflect.DeepEqual(snap.Data, prev.Data) || !snap.HasData {
		t.Fatalf("data changed on error: got %#v want %#v", snap.Data, prev.Data)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError = %v, want %v", snap.LastError, origErr)
	}
	if snap.ConsecutiveFailures != 1 || snap.Failing() {
		t.Fatalf("ConsecutiveFailures = %d, want 1 and not failing", snap.ConsecutiveFailures)
	}

	s.Update(3, nil, origErr)
	if !s.Snapshot().Failing() {
		t.Fatalf("Failing() = false after two failures, want true")
	}

	s.Update(4, []string{"ingredients"}, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("success should reset failures; got %d, %v", snap.ConsecutiveFailures, snap.LastError)
	}
}

func TestStore_DiscardsStaleSequence(t *testing.T) {
	s := NewStore[string](nil)

	s.Update(2, "second", nil)
	if s.Update(1, "first", nil) {
		t.Fatalf("Update with older seq = true, want false")
	}
	if s.Update(2, "again", nil) {
		t.Fatalf("Update with same seq = true, want false")
	}
	if got := s.Snapshot().Data; got != "second" {
		t.Fatalf("Data = %q, want %q", got, "second")
	}
	if got := s.Snapshot().Seq; got != 2 {
		t.Fatalf("Seq = %d, want 2", got)
	}
}

func TestStore_ConcurrentUpdatesKeepNewest(t *testing.T) {
	s := NewStore[int](nil)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(seq int) {
			defer wg.Done()
			s.Update(uint64(seq), seq, nil)
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()

	if got := s.Snapshot().Data; got != 50 {
		t.Fatalf("Data = %d, want 50", got)
	}
}

func TestStore_ZeroValueSnapshot(t *testing.T) {
	var s Store[[]int]
	snap := s.Snapshot()
	if snap.HasData || snap.Data != nil || !snap.LastUpdated.IsZero() {
		t.Fatalf("zero store snapshot = %#v, want empty", snap)
	}
}
