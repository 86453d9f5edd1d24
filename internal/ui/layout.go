package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the minimum width to show the dashboard side by side.
	LayoutWideWidth = 110
)

// Timing constants.
const (
	// TickInterval drives timer redraws.
	TickInterval = 100 * time.Millisecond

	// ToastDuration is how long a notification stays in the footer.
	ToastDuration = 4 * time.Second

	// RequestTimeout bounds actor calls made from the UI.
	RequestTimeout = 10 * time.Second

	// VolumeStep is the change applied by the volume keys.
	VolumeStep = 5
)

const (
	// chartBarWidth is the widest bar of the weekly chart.
	chartBarWidth = 30

	// maxSuggestions caps the tag suggestions shown under the input.
	maxSuggestions = 5
)
