// Package timer implements Sanctuary's study timers as deterministic state
// machines. Callers pass the current time into every operation; nothing here
// starts goroutines or reads the wall clock.
package timer

import (
	"time"

	"github.com/five82/sanctuary/internal/actor"
)

// Labels and colors recorded with saved sessions.
const (
	LabelStopwatch = "Stopwatch"
	LabelPomodoro  = "Pomodoro"
	LabelAnimedoro = "Animedoro"

	ColorStopwatch = "#3b82f6"
	ColorPomodoro  = "#ef4444"
	ColorAnimedoro = "#8b5cf6"
)

// Phase names a countdown phase.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "shortBreak"
	PhaseLongBreak  Phase = "longBreak"
	PhaseStudy      Phase = "study"
	PhaseBreak      Phase = "break"
)

// Title returns a human label for the phase.
func (p Phase) Title() string {
	switch p {
	case PhaseWork:
		return "Focus"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	case PhaseStudy:
		return "Study"
	case PhaseBreak:
		return "Break"
	default:
		return string(p)
	}
}

// Completion describes a phase that just ran out.
type Completion struct {
	From Phase
	To   Phase
}

// Timer is the common surface the UI drives.
type Timer interface {
	Start(now time.Time)
	Pause(now time.Time)
	Reset()
	Running() bool
	SessionData(now time.Time) (actor.SessionDraft, bool)
	Tags() *Tags
}

var (
	_ Timer = (*Stopwatch)(nil)
	_ Timer = (*Pomodoro)(nil)
	_ Timer = (*Animedoro)(nil)
	_ Timer = (*Countdown)(nil)
)
