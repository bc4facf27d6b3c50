// Package ui provides the terminal dashboard for the recipe backend.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model is a value type; every Update returns
// a new copy, so anything shared between copies (view sessions, list queries,
// the open form) is held by pointer.
//
// Each screen is a view. Only the current view is mounted. Mounting a view
// creates a session:
//
//   - state.Store: the view's latest snapshot
//   - loader.Loader: runs one read and writes the result into the store
//   - schedule.Scheduler: fires the loader on the view's refresh cadence
//
// The first fetch is issued at mount time whether or not auto refresh is on.
// Leaving a view closes its scheduler and detaches its loader, so a fetch that
// is still in flight completes without touching anything the new view shows.
//
// The model never blocks on the network. A one second display tick copies the
// store snapshots and the reachability gate into the model and redraws. Writes
// run as tea.Cmd values and report back with writeDoneMsg.
//
// # Views
//
//   - Dashboard: backend health, table counts and recent activity. Refreshes
//     every 30 seconds.
//   - System: resource gauges, server details and endpoint health, plus the
//     refresh controls. Interval and auto refresh are saved to prefs.
//   - Recipes and Ingredients: paged tables with search, create, edit and
//     delete. They load on mount and after each change rather than polling.
//
// # Offline Behavior
//
// The header shows ONLINE or OFFLINE from the shared gate, with the reason
// and the time until the next probe. While offline, reads render fallback
// data and writes fail fast with a banner. "O" forces offline mode on and
// off.
//
// # Key Bindings
//
//   - 1-4, Tab, Shift+Tab: switch views
//   - r: refresh the current view now
//   - a, -, +, c: auto refresh, shorter, longer, custom interval (system)
//   - /, n, p: search and page (catalog)
//   - a, e, x, v: add, edit, delete, vague filter (catalog)
//   - T: cycle theme
//   - ?: help
//   - q or Ctrl+C: quit
package ui
