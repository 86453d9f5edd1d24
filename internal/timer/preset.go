package timer

import (
	"time"

	"github.com/five82/sanctuary/internal/actor"
)

// Countdown runs a saved custom preset once.
type Countdown struct {
	preset   actor.TimerPreset
	selected bool
	cd       countdown
	start    time.Time
	tags     Tags
}

// NewCountdown returns a Countdown with no preset selected.
func NewCountdown() *Countdown {
	return &Countdown{}
}

// Select loads preset and stops any run in progress.
func (c *Countdown) Select(preset actor.TimerPreset) {
	c.preset = preset
	c.selected = true
	c.start = time.Time{}
	c.cd.set(preset.Length())
}

// Preset returns the selected preset.
func (c *Countdown) Preset() (actor.TimerPreset, bool) {
	return c.preset, c.selected
}

// Start does nothing until a preset with a positive duration is selected.
func (c *Countdown) Start(now time.Time) {
	if !c.selected || c.cd.remaining <= 0 {
		return
	}
	if c.start.IsZero() {
		c.start = now
	}
	c.cd.start(now)
}

func (c *Countdown) Pause(now time.Time) {
	c.cd.pause(now)
}

// Reset restores the full preset duration and forgets the session start.
func (c *Countdown) Reset() {
	c.start = time.Time{}
	c.cd.set(c.preset.Length())
	c.tags.Clear()
}

// Tick reports true once, when the countdown reaches zero.
func (c *Countdown) Tick(now time.Time) bool {
	return c.cd.tick(now)
}

func (c *Countdown) Running() bool { return c.cd.running }
func (c *Countdown) Tags() *Tags   { return &c.tags }

func (c *Countdown) Remaining(now time.Time) time.Duration {
	return c.cd.left(now)
}

// SessionData uses the preset's label and color.
func (c *Countdown) SessionData(now time.Time) (actor.SessionDraft, bool) {
	if !c.selected || c.start.IsZero() {
		return actor.SessionDraft{}, false
	}
	return actor.SessionDraft{
		Start: c.start,
		End:   now,
		Label: c.preset.DisplayName(),
		Color: c.preset.ColorTheme,
		Tags:  c.tags.List(),
	}, true
}
