package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/five82/sanctuary/internal/actor"
)

var t0 = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func TestStopwatch_AccumulatesAcrossPauses(t *testing.T) {
	sw := NewStopwatch()
	_, ok := sw.SessionData(t0)
	require.False(t, ok, "no session before any time accumulates")

	sw.Start(t0)
	sw.Pause(t0.Add(10 * time.Second))
	require.Equal(t, 10*time.Second, sw.Elapsed(t0.Add(time.Hour)))

	sw.Start(t0.Add(time.Minute))
	require.Equal(t, 15*time.Second, sw.Elapsed(t0.Add(time.Minute+5*time.Second)))

	sw.Tags().Add("math")
	draft, ok := sw.SessionData(t0.Add(time.Minute + 5*time.Second))
	require.True(t, ok)
	require.Equal(t, t0.Add(time.Minute-10*time.Second), draft.Start)
	require.Equal(t, draft.Start.Add(15*time.Second), draft.End)
	require.Equal(t, LabelStopwatch, draft.Label)
	require.Equal(t, ColorStopwatch, draft.Color)
	require.Equal(t, []string{"math"}, draft.Tags)

	sw.Reset()
	require.False(t, sw.Running())
	require.Zero(t, sw.Elapsed(t0))
	require.Zero(t, sw.Tags().Len())
}

func TestPomodoro_PhaseCycle(t *testing.T) {
	p := NewPomodoro(PomodoroDurations{Work: time.Minute, ShortBreak: 10 * time.Second, LongBreak: 30 * time.Second})
	now := t0

	var phases []Phase
	for i := 0; i < 8; i++ {
		p.Start(now)
		require.True(t, p.Running())
		_, done := p.Tick(now.Add(p.Remaining(now) - time.Millisecond))
		require.False(t, done)
		now = now.Add(p.Remaining(now))
		c, done := p.Tick(now)
		require.True(t, done)
		require.False(t, p.Running(), "phase completion stops the timer")
		require.Equal(t, c.To, p.Phase())
		phases = append(phases, c.To)
	}

	require.Equal(t, []Phase{
		PhaseShortBreak, PhaseWork,
		PhaseShortBreak, PhaseWork,
		PhaseShortBreak, PhaseWork,
		PhaseLongBreak, PhaseWork,
	}, phases)
	require.Equal(t, 4, p.Completed())
	require.Equal(t, time.Minute, p.Remaining(now))
}

func TestPomodoro_SessionData(t *testing.T) {
	p := NewPomodoro(PomodoroDurations{Work: time.Minute, ShortBreak: time.Minute, LongBreak: time.Minute})

	p.Start(t0)
	_, ok := p.SessionData(t0.Add(30 * time.Second))
	require.False(t, ok, "no session before a pomodoro completes")

	_, done := p.Tick(t0.Add(time.Minute))
	require.True(t, done)
	_, ok = p.SessionData(t0.Add(time.Minute))
	require.False(t, ok, "no session while on a break")

	p.Start(t0.Add(2 * time.Minute))
	_, done = p.Tick(t0.Add(3 * time.Minute))
	require.True(t, done)
	require.Equal(t, PhaseWork, p.Phase())

	p.Tags().Add("physics")
	draft, ok := p.SessionData(t0.Add(4 * time.Minute))
	require.True(t, ok)
	require.Equal(t, t0, draft.Start, "start captured on first work start only")
	require.Equal(t, t0.Add(4*time.Minute), draft.End)
	require.Equal(t, LabelPomodoro, draft.Label)
	require.Equal(t, ColorPomodoro, draft.Color)
	require.Equal(t, []string{"physics"}, draft.Tags)

	p.Reset()
	require.Zero(t, p.Completed())
	require.Zero(t, p.Tags().Len())
	_, ok = p.SessionData(t0.Add(5 * time.Minute))
	require.False(t, ok)
}

func TestPomodoro_PauseResume(t *testing.T) {
	p := NewPomodoro(DefaultPomodoroDurations())
	p.Start(t0)
	p.Pause(t0.Add(5 * time.Minute))
	require.Equal(t, 20*time.Minute, p.Remaining(t0.Add(time.Hour)))

	_, done := p.Tick(t0.Add(time.Hour))
	require.False(t, done, "paused timers never complete")

	p.Start(t0.Add(time.Hour))
	require.Equal(t, 19*time.Minute, p.Remaining(t0.Add(time.Hour+time.Minute)))
}

func TestPomodoro_SetWorkDurationWhileIdle(t *testing.T) {
	p := NewPomodoro(DefaultPomodoroDurations())
	p.SetWorkDuration(50 * time.Minute)
	require.Equal(t, 50*time.Minute, p.Remaining(t0))

	p.Start(t0)
	p.SetWorkDuration(10 * time.Minute)
	require.Equal(t, 49*time.Minute, p.Remaining(t0.Add(time.Minute)), "running countdown is untouched")
	require.Equal(t, 10*time.Minute, p.Durations().Work)
}

func TestNewPomodoro_DefaultsNonPositive(t *testing.T) {
	p := NewPomodoro(PomodoroDurations{})
	require.Equal(t, DefaultPomodoroDurations(), p.Durations())
}

func TestAnimedoro_Cycle(t *testing.T) {
	a := NewAnimedoro(0)
	require.Equal(t, DefaultStudyDuration, a.Remaining(t0))

	a.Start(t0)
	c, done := a.Tick(t0.Add(DefaultStudyDuration))
	require.True(t, done)
	require.Equal(t, Completion{From: PhaseStudy, To: PhaseBreak}, c)
	require.Equal(t, AnimedoroBreak, a.Remaining(t0.Add(DefaultStudyDuration)))

	_, ok := a.SessionData(t0.Add(DefaultStudyDuration))
	require.False(t, ok, "no session during the break")

	a.Start(t0.Add(DefaultStudyDuration))
	c, done = a.Tick(t0.Add(DefaultStudyDuration + AnimedoroBreak))
	require.True(t, done)
	require.Equal(t, PhaseStudy, c.To)

	draft, ok := a.SessionData(t0.Add(time.Hour + 5*time.Minute))
	require.True(t, ok)
	require.Equal(t, t0, draft.Start)
	require.Equal(t, LabelAnimedoro, draft.Label)
	require.Equal(t, ColorAnimedoro, draft.Color)
}

func TestAnimedoro_SetStudyDuration(t *testing.T) {
	a := NewAnimedoro(40 * time.Minute)
	a.SetStudyDuration(45 * time.Minute)
	require.Equal(t, 45*time.Minute, a.Remaining(t0))
	require.Equal(t, 45*time.Minute, a.StudyDuration())
}

func TestCountdown_RunsPreset(t *testing.T) {
	c := NewCountdown()
	c.Start(t0)
	require.False(t, c.Running(), "cannot start without a preset")

	c.Select(actor.TimerPreset{Name: "deep", Duration: int64(30 * time.Minute), LabelText: "Deep Work", ColorTheme: "#10b981"})
	c.Start(t0)
	require.True(t, c.Running())
	require.False(t, c.Tick(t0.Add(29*time.Minute)))
	require.True(t, c.Tick(t0.Add(30*time.Minute)))
	require.False(t, c.Tick(t0.Add(31*time.Minute)), "completion fires once")
	require.False(t, c.Running())
	require.Zero(t, c.Remaining(t0.Add(31*time.Minute)))

	draft, ok := c.SessionData(t0.Add(30 * time.Minute))
	require.True(t, ok)
	require.Equal(t, "Deep Work", draft.Label)
	require.Equal(t, "#10b981", draft.Color)
	require.Equal(t, 30*time.Minute, draft.End.Sub(draft.Start))

	c.Reset()
	require.Equal(t, 30*time.Minute, c.Remaining(t0))
	_, ok = c.SessionData(t0)
	require.False(t, ok)
}

func TestTags(t *testing.T) {
	var tags Tags
	require.True(t, tags.Add("  math "))
	require.False(t, tags.Add("math"), "duplicates ignored")
	require.False(t, tags.Add("   "), "empty ignored")
	require.True(t, tags.Add("History"))
	require.Equal(t, []string{"math", "History"}, tags.List())

	tags.Remove("math")
	require.Equal(t, []string{"History"}, tags.List())

	last, ok := tags.Pop()
	require.True(t, ok)
	require.Equal(t, "History", last)
	require.Nil(t, tags.List())
}

func TestSuggestions(t *testing.T) {
	known := []string{"Math", "mathematics", "History", "Physics"}
	require.Equal(t, []string{"Math", "mathematics"}, Suggestions(known, "MAT", nil))
	require.Equal(t, []string{"mathematics"}, Suggestions(known, "mat", []string{"Math"}))
	require.Nil(t, Suggestions(known, " ", nil))
}

func TestFormat(t *testing.T) {
	require.Equal(t, "25:00", FormatCountdown(25*time.Minute))
	require.Equal(t, "25:00", FormatCountdown(25*time.Minute-300*time.Millisecond))
	require.Equal(t, "00:00", FormatCountdown(-time.Second))
	require.Equal(t, "1:05:09", FormatCountdown(time.Hour+5*time.Minute+9*time.Second))
	require.Equal(t, "01:02:03.45", FormatStopwatch(time.Hour+2*time.Minute+3*time.Second+450*time.Millisecond))
}
