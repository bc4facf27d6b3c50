// Package api provides the HTTP client for the recipe/ingredient admin backend.
//
// # Overview
//
// The package is split into three layers:
//
//   - transport.go: a single HTTP client with base address, timeout, JSON
//     content negotiation, request IDs and an outgoing rate limit
//   - client.go: gate-aware read and write helpers shared by every operation
//   - reads.go / writes.go: one method per backend route
//
// Every operation consults a shared reach.Gate before any network call.
//
// # Read operations
//
// Reads return a Result[T] and never a Go error:
//
//	res := client.DatabaseTables(ctx)
//	switch res.Outcome {
//	case api.Success:  // real data
//	case api.Fallback: // backend presumed unreachable, default tables
//	case api.Failure:  // backend answered with an error, show res.Err
//	}
//
// Value is always populated. On Fallback and Failure it holds the operation's
// fallback payload, which has the same shape as real data with zeroed values,
// so views render without branching.
//
// # Write operations
//
// Writes return (WriteResult, error) and never fall back. A gate denial
// returns a *TransportError wrapping ErrOffline. A failed round trip returns a
// *TransportError after the gate is told about it, and an HTTP error status
// returns an *ApplicationError. A {"success": false} body returns ErrRejected.
//
// # Errors
//
//	errors.Is(err, api.ErrUnreachable) // no response received
//	errors.Is(err, api.ErrOffline)     // gate refused the call
//	errors.Is(err, api.ErrValidation)  // input rejected locally
//	errors.As(err, &appErr)            // *ApplicationError with StatusCode
//
// # List envelopes
//
// List endpoints have served bare arrays, {"items": [...], "total": n} and
// {"recipes": [...], "total": n} over time. All shapes normalize to Page[T].
// A missing total is derived from offset plus the number of items, missing
// offset and limit echo the request, and surplus items beyond the limit are
// dropped.
package api
