// Package loader connects views to the API client and their snapshot stores.
//
// A Loader's Fetch method is handed to a schedule.Scheduler as its callback.
// Each call takes a sequence number, runs the load under a timeout and writes
// the result into the view's state.Store, which ignores results older than
// one already applied. Detach is called when the view unmounts; fetches still
// in flight then complete normally but their results are dropped.
package loader
