// Package state provides thread-safe snapshot storage for pantry views.
//
// # Overview
//
// Each mounted view owns one Store. Fetches triggered by the view's scheduler
// write into it and the UI reads it on its display tick:
//
//	Producer (fetch goroutines):    Consumer (UI):
//	┌──────────────────────┐       ┌──────────────────┐
//	│ loader.Fetch(ctx)    │       │                  │
//	│      ↓               │       │                  │
//	│ store.Update(seq, …) │──────→│ store.Snapshot() │
//	│                      │(mutex)│      ↓           │
//	│                      │       │  render view     │
//	└──────────────────────┘       └──────────────────┘
//
// # Update Semantics
//
// Fetches are fire-and-forget, so a slow fetch can finish after a newer one.
// Every fetch carries a sequence number and Update discards any result whose
// sequence is not newer than the stored one. The snapshot therefore always
// reflects the most recently issued fetch that has completed.
//
//	// Success: replace data
//	store.Update(7, overview, nil)
//	→ snapshot.Data = overview
//	→ snapshot.LastError = nil
//
//	// Error: keep old data, record error
//	store.Update(8, zero, err)
//	→ snapshot.Data = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// # Copying
//
// NewStore accepts a clone func applied on every read and write so slices
// handed to the UI are never shared with a fetch goroutine. CloneSlice covers
// the common case.
//
// The zero Store is ready to use and copies data by value.
package state
