package timer

import (
	"time"

	"github.com/five82/sanctuary/internal/actor"
)

// Stopwatch counts up; elapsed time accumulates across pauses.
type Stopwatch struct {
	elapsed      time.Duration
	runningSince time.Time
	running      bool
	// start is rebased to now-elapsed on every Start, so start+elapsed is
	// always the logical end of the session.
	start time.Time
	tags  Tags
}

// NewStopwatch returns a stopped stopwatch at zero.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{}
}

func (s *Stopwatch) Start(now time.Time) {
	if s.running {
		return
	}
	s.start = now.Add(-s.elapsed)
	s.runningSince = now
	s.running = true
}

func (s *Stopwatch) Pause(now time.Time) {
	if !s.running {
		return
	}
	s.elapsed = s.Elapsed(now)
	s.running = false
}

func (s *Stopwatch) Reset() {
	s.elapsed = 0
	s.running = false
	s.start = time.Time{}
	s.runningSince = time.Time{}
	s.tags.Clear()
}

func (s *Stopwatch) Running() bool {
	return s.running
}

// Elapsed returns the accumulated time at now.
func (s *Stopwatch) Elapsed(now time.Time) time.Duration {
	if !s.running {
		return s.elapsed
	}
	d := s.elapsed + now.Sub(s.runningSince)
	if d < 0 {
		return s.elapsed
	}
	return d
}

// SessionData returns {start, start+elapsed} once any time has accumulated.
func (s *Stopwatch) SessionData(now time.Time) (actor.SessionDraft, bool) {
	elapsed := s.Elapsed(now)
	if s.start.IsZero() || elapsed <= 0 {
		return actor.SessionDraft{}, false
	}
	return actor.SessionDraft{
		Start: s.start,
		End:   s.start.Add(elapsed),
		Label: LabelStopwatch,
		Color: ColorStopwatch,
		Tags:  s.tags.List(),
	}, true
}

func (s *Stopwatch) Tags() *Tags {
	return &s.tags
}
