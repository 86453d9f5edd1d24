package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/five82/sanctuary/internal/actor"
)

// Window is a trailing aggregation period measured back from now.
type Window int

const (
	Day Window = iota
	Week
	Month
	Year
)

// Windows lists every aggregation period in display order.
var Windows = []Window{Day, Week, Month, Year}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	switch w {
	case Week:
		return 7 * 24 * time.Hour
	case Month:
		return 30 * 24 * time.Hour
	case Year:
		return 365 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

func (w Window) String() string {
	switch w {
	case Week:
		return "This Week"
	case Month:
		return "This Month"
	case Year:
		return "This Year"
	default:
		return "Today"
	}
}

// Summary aggregates a session list at a point in time.
type Summary struct {
	Hours   map[Window]float64
	Count   int
	Total   time.Duration
	Average time.Duration
}

// Summarize sums hours per window by session start time.
func Summarize(sessions []actor.TimerSession, now time.Time) Summary {
	s := Summary{Hours: make(map[Window]float64, len(Windows)), Count: len(sessions)}
	for _, w := range Windows {
		s.Hours[w] = HoursSince(sessions, now.Add(-w.Duration()))
	}
	for _, session := range sessions {
		s.Total += session.Length()
	}
	s.Average = Average(sessions)
	return s
}

// HoursSince sums the hours of sessions starting at or after since.
func HoursSince(sessions []actor.TimerSession, since time.Time) float64 {
	var hours float64
	for _, s := range sessions {
		if !s.Start().Before(since) {
			hours += s.Hours()
		}
	}
	return hours
}

// Average returns the mean session length, or zero with no sessions.
func Average(sessions []actor.TimerSession) time.Duration {
	if len(sessions) == 0 {
		return 0
	}
	var total time.Duration
	for _, s := range sessions {
		total += s.Length()
	}
	return total / time.Duration(len(sessions))
}

// DayBar is one column of the weekly chart.
type DayBar struct {
	Date  time.Time
	Label string
	Hours float64
}

// LastSevenDays buckets sessions into the seven local calendar days ending
// today, oldest first.
func LastSevenDays(sessions []actor.TimerSession, now time.Time) []DayBar {
	today := startOfDay(now)
	bars := make([]DayBar, 7)
	for i := range bars {
		day := today.AddDate(0, 0, i-6)
		next := day.AddDate(0, 0, 1)
		var hours float64
		for _, s := range sessions {
			start := s.Start().In(now.Location())
			if !start.Before(day) && start.Before(next) {
				hours += s.Hours()
			}
		}
		bars[i] = DayBar{
			Date:  day,
			Label: day.Weekday().String()[:3],
			Hours: Round2(hours),
		}
	}
	return bars
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Round2 rounds v to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FilterByTag keeps sessions carrying tag, ignoring case. An empty tag keeps
// everything.
func FilterByTag(sessions []actor.TimerSession, tag string) []actor.TimerSession {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return sessions
	}
	var out []actor.TimerSession
	for _, s := range sessions {
		if s.HasTag(tag) {
			out = append(out, s)
		}
	}
	return out
}

// FilterByLabel keeps sessions whose label matches, ignoring case.
func FilterByLabel(sessions []actor.TimerSession, label string) []actor.TimerSession {
	label = strings.TrimSpace(label)
	if label == "" {
		return sessions
	}
	var out []actor.TimerSession
	for _, s := range sessions {
		if strings.EqualFold(s.LabelText, label) {
			out = append(out, s)
		}
	}
	return out
}

// Tags returns the distinct tags across sessions, sorted case-insensitively.
func Tags(sessions []actor.TimerSession) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, s := range sessions {
		for _, t := range s.Tags {
			key := strings.ToLower(strings.TrimSpace(t))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			tags = append(tags, strings.TrimSpace(t))
		}
	}
	sort.Slice(tags, func(i, j int) bool {
		return strings.ToLower(tags[i]) < strings.ToLower(tags[j])
	})
	return tags
}

// GoalProgress is a goal with its derived percentage.
type GoalProgress struct {
	actor.Goal
	Percent  float64
	Achieved bool
}

// Goals derives progress for each goal, ordered by name.
func Goals(goals []actor.Goal) []GoalProgress {
	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalProgress{Goal: g, Percent: g.Percent(), Achieved: g.IsAchieved()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
