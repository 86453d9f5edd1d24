package timer

import (
	"time"

	"github.com/five82/sanctuary/internal/actor"
)

const (
	// DefaultStudyDuration is the Animedoro study length.
	DefaultStudyDuration = 40 * time.Minute
	// AnimedoroBreak is the fixed Animedoro break, roughly one episode.
	AnimedoroBreak = 20 * time.Minute
)

// Animedoro alternates a long study phase with a fixed break.
type Animedoro struct {
	study        time.Duration
	phase        Phase
	cd           countdown
	sessionStart time.Time
	tags         Tags
}

// NewAnimedoro returns a stopped Animedoro in the study phase.
func NewAnimedoro(study time.Duration) *Animedoro {
	if study <= 0 {
		study = DefaultStudyDuration
	}
	a := &Animedoro{study: study, phase: PhaseStudy}
	a.cd.set(study)
	return a
}

func (a *Animedoro) Start(now time.Time) {
	if !a.cd.running && a.phase == PhaseStudy && a.sessionStart.IsZero() {
		a.sessionStart = now
	}
	a.cd.start(now)
}

func (a *Animedoro) Pause(now time.Time) {
	a.cd.pause(now)
}

func (a *Animedoro) Reset() {
	a.phase = PhaseStudy
	a.cd.set(a.study)
	a.sessionStart = time.Time{}
	a.tags.Clear()
}

// Tick flips between study and break when the current phase runs out.
func (a *Animedoro) Tick(now time.Time) (Completion, bool) {
	if !a.cd.tick(now) {
		return Completion{}, false
	}
	from := a.phase
	if a.phase == PhaseStudy {
		a.phase = PhaseBreak
		a.cd.set(AnimedoroBreak)
	} else {
		a.phase = PhaseStudy
		a.cd.set(a.study)
	}
	return Completion{From: from, To: a.phase}, true
}

// SetStudyDuration changes the study length; when idle in the study phase the
// remaining time resets to it.
func (a *Animedoro) SetStudyDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	a.study = d
	if a.phase == PhaseStudy && !a.cd.running {
		a.cd.set(d)
	}
}

func (a *Animedoro) StudyDuration() time.Duration { return a.study }
func (a *Animedoro) Phase() Phase                 { return a.phase }
func (a *Animedoro) Running() bool                { return a.cd.running }
func (a *Animedoro) Tags() *Tags                  { return &a.tags }

func (a *Animedoro) Remaining(now time.Time) time.Duration {
	return a.cd.left(now)
}

// SessionData is available once started and while in the study phase.
func (a *Animedoro) SessionData(now time.Time) (actor.SessionDraft, bool) {
	if a.sessionStart.IsZero() || a.phase != PhaseStudy {
		return actor.SessionDraft{}, false
	}
	return actor.SessionDraft{
		Start: a.sessionStart,
		End:   now,
		Label: LabelAnimedoro,
		Color: ColorAnimedoro,
		Tags:  a.tags.List(),
	}, true
}
