package reach

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// DefaultCooldown is how long the gate refuses calls after a transport failure.
const DefaultCooldown = 3 * time.Second

// State is the presumed reachability of the backend.
type State int

const (
	Reachable State = iota
	Unreachable
)

func (s State) String() string {
	if s == Unreachable {
		return "unreachable"
	}
	return "reachable"
}

// Decision is the outcome of Check.
type Decision int

const (
	Allow Decision = iota
	Deny
)

func (d Decision) String() string {
	if d == Deny {
		return "deny"
	}
	return "allow"
}

// OnlineFunc reports whether the device currently has a usable network.
type OnlineFunc func() bool

// Options configure a Gate. Zero values pick sensible defaults.
type Options struct {
	Cooldown time.Duration
	Clock    clockwork.Clock
	Online   OnlineFunc
	Logger   zerolog.Logger
}

// Snapshot is a consistent copy of the gate's state.
type Snapshot struct {
	State       State
	Forced      bool
	Online      bool
	Cooldown    time.Duration
	LastFailure time.Time
	LastError   error
	NextProbe   time.Time
	// ProbeOpen is set while Unreachable once the cooldown has elapsed and
	// the next call would be let through.
	ProbeOpen bool
}

// Offline returns true when calls are currently being short-circuited.
func (s Snapshot) Offline() bool {
	return s.Forced || !s.Online || (s.State == Unreachable && !s.ProbeOpen)
}

// Gate decides before each call whether the backend is presumed reachable.
// It is safe for concurrent use and a single instance is shared by all views.
type Gate struct {
	mu       sync.RWMutex
	clock    clockwork.Clock
	cooldown time.Duration
	online   OnlineFunc
	log      zerolog.Logger

	state       State
	forced      bool
	lastFailure time.Time
	lastErr     error
	// nextProbe is the earliest time a call may pass while Unreachable.
	nextProbe time.Time
}

// NewGate builds a Gate in the Reachable state.
func NewGate(opts Options) *Gate {
	cooldown := opts.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	online := opts.Online
	if online == nil {
		online = func() bool { return true }
	}
	return &Gate{
		clock:    clock,
		cooldown: cooldown,
		online:   online,
		log:      opts.Logger.With().Str("component", "reach").Logger(),
	}
}

// Check reports whether a call may go out now. While Unreachable, one call
// per cooldown window is allowed through as a probe and the rest are denied.
func (g *Gate) Check() Decision {
	if g == nil {
		return Allow
	}
	g.mu.RLock()
	forced := g.forced
	g.mu.RUnlock()
	if forced || !g.online() {
		return Deny
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Reachable {
		return Allow
	}
	now := g.clock.Now()
	if now.Before(g.nextProbe) {
		return Deny
	}
	g.nextProbe = now.Add(g.cooldown)
	g.log.Debug().Time("last_failure", g.lastFailure).Msg("cooldown elapsed, probing backend")
	return Allow
}

// RecordSuccess marks the backend reachable.
func (g *Gate) RecordSuccess() {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.markReachableLocked()
}

// RecordResponse notes that the backend answered, whatever the status. An
// HTTP error still proves the server is reachable.
func (g *Gate) RecordResponse() {
	g.RecordSuccess()
}

func (g *Gate) markReachableLocked() {
	if g.state == Unreachable {
		g.log.Info().Dur("down_for", g.clock.Since(g.lastFailure)).Msg("backend reachable again")
	}
	g.state = Reachable
	g.lastErr = nil
	g.nextProbe = time.Time{}
}

// RecordFailure classifies err and flips the gate to Unreachable when it is a
// transport-level failure. An error carrying an HTTP status marks the gate
// Reachable, since the backend answered. Other application failures and
// cancellations leave the state alone. The computed class is returned.
func (g *Gate) RecordFailure(err error) Class {
	class := Classify(err)
	if g == nil {
		return class
	}
	if class == ClassApplication && Responded(err) {
		g.RecordResponse()
		return class
	}
	if class != ClassTransport {
		return class
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.clock.Now()
	if g.state == Reachable {
		g.log.Warn().Err(err).Dur("cooldown", g.cooldown).Msg("backend unreachable")
	}
	g.state = Unreachable
	g.lastFailure = now
	g.lastErr = err
	g.nextProbe = now.Add(g.cooldown)
	return class
}

// SetOffline forces the gate to deny every call until cleared.
func (g *Gate) SetOffline(offline bool) {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.forced != offline {
		g.log.Info().Bool("offline", offline).Msg("manual offline override")
	}
	g.forced = offline
}

// IsOffline reports whether the gate is forced offline, the device has no
// network, or the backend is presumed unreachable.
func (g *Gate) IsOffline() bool {
	return g.Snapshot().Offline()
}

// Snapshot returns a consistent view of the gate.
func (g *Gate) Snapshot() Snapshot {
	if g == nil {
		return Snapshot{Online: true}
	}
	online := g.online()
	now := g.clock.Now()
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Snapshot{
		State:       g.state,
		Forced:      g.forced,
		Online:      online,
		Cooldown:    g.cooldown,
		LastFailure: g.lastFailure,
		LastError:   g.lastErr,
		NextProbe:   g.nextProbe,
		ProbeOpen:   g.state == Unreachable && !now.Before(g.nextProbe),
	}
}
