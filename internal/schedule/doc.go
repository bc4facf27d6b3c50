// Package schedule drives periodic refetching for a single view.
//
// A Scheduler owns one ticker at a time. Start, SetInterval and Toggle all
// cancel the current ticker before arming a new one, and every tick is
// checked against the generation it was armed with, so a view never has two
// timers firing.
//
// Fetches are fire-and-forget: a slow fetch does not delay the next tick and
// Stop does not cancel fetches already in flight. The owning view discards
// late results itself.
//
// The countdown shown to users comes from Remaining(now), which the UI polls
// on its own display tick. That tick is cosmetic and never triggers a fetch.
package schedule
