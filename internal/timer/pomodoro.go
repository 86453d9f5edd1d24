package timer

import (
	"time"

	"github.com/five82/sanctuary/internal/actor"
)

// LongBreakEvery is how many work phases complete before a long break.
const LongBreakEvery = 4

// PomodoroDurations holds the phase lengths.
type PomodoroDurations struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// DefaultPomodoroDurations returns 25/5/15 minutes.
func DefaultPomodoroDurations() PomodoroDurations {
	return PomodoroDurations{
		Work:       25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
	}
}

// Pomodoro alternates work phases with short breaks and a long break after
// every LongBreakEvery completed work phases.
type Pomodoro struct {
	durations    PomodoroDurations
	phase        Phase
	cd           countdown
	completed    int
	sessionStart time.Time
	tags         Tags
}

// NewPomodoro returns a stopped Pomodoro in the work phase. Non-positive
// durations fall back to the defaults.
func NewPomodoro(d PomodoroDurations) *Pomodoro {
	def := DefaultPomodoroDurations()
	if d.Work <= 0 {
		d.Work = def.Work
	}
	if d.ShortBreak <= 0 {
		d.ShortBreak = def.ShortBreak
	}
	if d.LongBreak <= 0 {
		d.LongBreak = def.LongBreak
	}
	p := &Pomodoro{durations: d, phase: PhaseWork}
	p.cd.set(d.Work)
	return p
}

// Start resumes the countdown. The session start is captured on the first
// start of a work phase.
func (p *Pomodoro) Start(now time.Time) {
	if !p.cd.running && p.phase == PhaseWork && p.sessionStart.IsZero() {
		p.sessionStart = now
	}
	p.cd.start(now)
}

func (p *Pomodoro) Pause(now time.Time) {
	p.cd.pause(now)
}

// Reset returns to a fresh work phase and clears count, start and tags.
func (p *Pomodoro) Reset() {
	p.phase = PhaseWork
	p.cd.set(p.durations.Work)
	p.completed = 0
	p.sessionStart = time.Time{}
	p.tags.Clear()
}

// Tick advances the timer. When the current phase runs out it moves to the
// next phase, stops, and reports the transition.
func (p *Pomodoro) Tick(now time.Time) (Completion, bool) {
	if !p.cd.tick(now) {
		return Completion{}, false
	}
	from := p.phase
	if p.phase == PhaseWork {
		p.completed++
		if p.completed%LongBreakEvery == 0 {
			p.phase = PhaseLongBreak
		} else {
			p.phase = PhaseShortBreak
		}
	} else {
		p.phase = PhaseWork
	}
	p.cd.set(p.phaseDuration(p.phase))
	return Completion{From: from, To: p.phase}, true
}

func (p *Pomodoro) phaseDuration(phase Phase) time.Duration {
	switch phase {
	case PhaseShortBreak:
		return p.durations.ShortBreak
	case PhaseLongBreak:
		return p.durations.LongBreak
	default:
		return p.durations.Work
	}
}

// SetWorkDuration changes the work length; when idle in the work phase the
// remaining time resets to it.
func (p *Pomodoro) SetWorkDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	p.durations.Work = d
	if p.phase == PhaseWork && !p.cd.running {
		p.cd.set(d)
	}
}

// SetShortBreakDuration changes the short break length for future breaks.
func (p *Pomodoro) SetShortBreakDuration(d time.Duration) {
	if d > 0 {
		p.durations.ShortBreak = d
	}
}

// SetLongBreakDuration changes the long break length for future breaks.
func (p *Pomodoro) SetLongBreakDuration(d time.Duration) {
	if d > 0 {
		p.durations.LongBreak = d
	}
}

func (p *Pomodoro) Durations() PomodoroDurations { return p.durations }
func (p *Pomodoro) Phase() Phase                 { return p.phase }
func (p *Pomodoro) Completed() int               { return p.completed }
func (p *Pomodoro) Running() bool                { return p.cd.running }
func (p *Pomodoro) Tags() *Tags                  { return &p.tags }

// Remaining returns the time left in the current phase.
func (p *Pomodoro) Remaining(now time.Time) time.Duration {
	return p.cd.left(now)
}

// SessionData is available once started, back in a work phase, with at least
// one completed pomodoro.
func (p *Pomodoro) SessionData(now time.Time) (actor.SessionDraft, bool) {
	if p.sessionStart.IsZero() || p.phase != PhaseWork || p.completed == 0 {
		return actor.SessionDraft{}, false
	}
	return actor.SessionDraft{
		Start: p.sessionStart,
		End:   now,
		Label: LabelPomodoro,
		Color: ColorPomodoro,
		Tags:  p.tags.List(),
	}, true
}
