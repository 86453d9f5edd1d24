package actor

import (
	"strings"
	"time"
)

// Timestamps and durations travel as nanoseconds since the Unix epoch.

// ToWire converts t to actor nanoseconds.
func ToWire(t time.Time) int64 {
	return t.UnixNano()
}

// FromWire converts actor nanoseconds to a local time.
func FromWire(ns int64) time.Time {
	return time.Unix(0, ns)
}

// TimerSession is a completed study interval.
type TimerSession struct {
	StartTime  int64    `json:"startTime" yaml:"startTime"`
	EndTime    int64    `json:"endTime" yaml:"endTime"`
	Duration   int64    `json:"duration" yaml:"duration"`
	ColorTheme string   `json:"colorTheme" yaml:"colorTheme"`
	Tags       []string `json:"tags" yaml:"tags"`
	LabelText  string   `json:"labelText" yaml:"labelText"`
}

// Start returns the session start time.
func (s TimerSession) Start() time.Time {
	return FromWire(s.StartTime)
}

// End returns the session end time.
func (s TimerSession) End() time.Time {
	return FromWire(s.EndTime)
}

// Length returns the recorded duration, falling back to end minus start.
func (s TimerSession) Length() time.Duration {
	if s.Duration > 0 {
		return time.Duration(s.Duration)
	}
	if s.EndTime > s.StartTime {
		return time.Duration(s.EndTime - s.StartTime)
	}
	return 0
}

// Hours returns Length in hours.
func (s TimerSession) Hours() float64 {
	return s.Length().Hours()
}

// HasTag reports whether the session carries tag, ignoring case.
func (s TimerSession) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SessionDraft is what a timer hands over for saving.
type SessionDraft struct {
	Start time.Time
	End   time.Time
	Label string
	Color string
	Tags  []string
}

// TimerPreset is a saved custom countdown.
type TimerPreset struct {
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Duration   int64  `json:"duration" yaml:"duration"`
	ColorTheme string `json:"colorTheme" yaml:"colorTheme"`
	LabelText  string `json:"labelText" yaml:"labelText"`
}

// Length returns the preset duration.
func (p TimerPreset) Length() time.Duration {
	return time.Duration(p.Duration)
}

// DisplayName prefers the label, then the key name.
func (p TimerPreset) DisplayName() string {
	if label := strings.TrimSpace(p.LabelText); label != "" {
		return label
	}
	return p.Name
}

// GoalType enumerates goal periods.
type GoalType string

const GoalDaily GoalType = "Daily"

// Goal tracks hours studied against a target.
type Goal struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	TargetType  GoalType `json:"targetType" yaml:"targetType"`
	TargetHours float64  `json:"targetHours" yaml:"targetHours"`
	Progress    float64  `json:"progress" yaml:"progress"`
	Achieved    bool     `json:"achieved" yaml:"achieved"`
	Streak      int64    `json:"streak" yaml:"streak"`
}

// Percent returns progress as a percentage of the target, capped at 100.
func (g Goal) Percent() float64 {
	if g.TargetHours <= 0 {
		if g.Progress > 0 {
			return 100
		}
		return 0
	}
	pct := g.Progress / g.TargetHours * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// IsAchieved reports the server flag or a full progress bar.
func (g Goal) IsAchieved() bool {
	return g.Achieved || g.Percent() >= 100
}

// WallpaperBlob names a custom wallpaper and where to fetch it.
type WallpaperBlob struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type recordSessionRequest struct {
	StartTime  int64    `json:"startTime"`
	EndTime    int64    `json:"endTime"`
	LabelText  *string  `json:"labelText"`
	ColorTheme *string  `json:"colorTheme"`
	Tags       []string `json:"tags"`
}

type savePresetRequest struct {
	Duration   int64  `json:"duration"`
	LabelText  string `json:"labelText"`
	ColorTheme string `json:"colorTheme"`
}

type setGoalRequest struct {
	TargetType  GoalType `json:"targetType"`
	TargetHours float64  `json:"targetHours"`
}

type goalProgressRequest struct {
	Hours float64 `json:"hours"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

type averageResponse struct {
	// Average is a duration in nanoseconds.
	Average float64 `json:"average"`
}

type errorResponse struct {
	Error string `json:"error"`
}
