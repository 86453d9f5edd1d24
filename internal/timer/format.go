package timer

import (
	"fmt"
	"time"
)

// FormatCountdown renders d as MM:SS, or H:MM:SS from an hour up.
// Partial seconds round up so a fresh 25:00 never shows 24:59.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64((d + time.Second - 1) / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatStopwatch renders d as HH:MM:SS.cc.
func FormatStopwatch(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Millisecond)
	h := total / 3_600_000
	m := (total % 3_600_000) / 60_000
	s := (total % 60_000) / 1000
	cs := (total % 1000) / 10
	return fmt.Sprintf("%02d:%02d:%02d.%02d", h, m, s, cs)
}
