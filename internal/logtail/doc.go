// Package logtail reads the end of pantry's log file.
//
// The TUI owns the terminal, so its logs go to a file. "pantry logs" uses
// Read to print the most recent lines, optionally filtered by level and by
// the component field each package tags its logger with (api, transport,
// reach, schedule, loader, ui). Levels are recognized from the console writer's
// three letter tags.
package logtail
