package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutWideWidth is the minimum width to show secondary table columns.
	LayoutWideWidth = 140
)

// Timing and sizing constants.
const (
	// DefaultUIInterval is how often the UI re-reads view stores. It is a
	// display clock only and never triggers a fetch.
	DefaultUIInterval = time.Second

	// DashboardInterval is the dashboard's fixed refresh cadence.
	DashboardInterval = 30 * time.Second

	// ActivityLimit is how many recent activities the dashboard shows.
	ActivityLimit = 10

	// WriteTimeout bounds create and delete requests started from the UI.
	WriteTimeout = 15 * time.Second

	// chromeLines is the header, tab bar, footer and banner rows.
	chromeLines = 5
)

// intervalPresets are the refresh choices offered on the system view.
var intervalPresets = []time.Duration{
	5 * time.Second,
	10 * time.Second,
	30 * time.Second,
	time.Minute,
	2 * time.Minute,
	5 * time.Minute,
}

// stepPreset returns the preset after (dir > 0) or before (dir < 0) current.
// An interval that is not a preset snaps to the nearest one in that direction.
func stepPreset(current time.Duration, dir int) time.Duration {
	if dir > 0 {
		for _, p := range intervalPresets {
			if p > current {
				return p
			}
		}
		return intervalPresets[len(intervalPresets)-1]
	}
	for i := len(intervalPresets) - 1; i >= 0; i-- {
		if p := intervalPresets[i]; p < current {
			return p
		}
	}
	return intervalPresets[0]
}
