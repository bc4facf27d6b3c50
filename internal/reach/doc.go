// Package reach tracks whether the admin backend is presumed reachable.
//
// A single Gate is shared by every view. Before each request the caller asks
// Check; after the request it reports the outcome with RecordSuccess or
// RecordFailure. Only transport failures (no response received) move the gate
// to Unreachable. HTTP error responses, decode errors and caller
// cancellations never do, and an HTTP error response marks it Reachable.
//
// # Cooldown and probes
//
// While Unreachable the gate denies calls until the cooldown since the last
// failure has elapsed. It then lets exactly one call through as a probe and
// pushes the next probe window out by another cooldown, so several views
// polling at once cannot flood a dead network:
//
//	t=0s   request fails (dial refused)   → Unreachable
//	t=1s   Check                          → Deny
//	t=3s   Check                          → Allow (probe)
//	t=3s   Check (another view)           → Deny
//	t=3.1s probe succeeds                 → Reachable
//
// The state returns to Reachable when the backend answers, whether with a
// success or an HTTP error status. While a probe window is open the snapshot
// no longer reports the gate as offline.
//
// # Online signal
//
// An OnlineFunc reports whether the device has a network at all. When it
// returns false every call is denied regardless of state. InterfacesOnline
// inspects local interfaces; OnlineFor skips the check for loopback APIs.
package reach
