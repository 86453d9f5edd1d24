package actor

import (
	"testing"
	"time"
)

func TestTimerSessionHelpers(t *testing.T) {
	start := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	s := TimerSession{StartTime: ToWire(start), EndTime: ToWire(start.Add(90 * time.Minute)), Tags: []string{"Math"}}

	if !s.Start().Equal(start) {
		t.Fatalf("Start = %v, want %v", s.Start(), start)
	}
	if s.Length() != 90*time.Minute {
		t.Fatalf("Length without Duration = %v, want 90m", s.Length())
	}
	s.Duration = int64(time.Hour)
	if s.Hours() != 1 {
		t.Fatalf("Hours = %v, want 1", s.Hours())
	}
	if !s.HasTag("math") || s.HasTag("physics") {
		t.Fatalf("HasTag mismatch for %v", s.Tags)
	}
}

func TestGoalPercent(t *testing.T) {
	cases := []struct {
		goal     Goal
		percent  float64
		achieved bool
	}{
		{Goal{TargetHours: 4, Progress: 1}, 25, false},
		{Goal{TargetHours: 2, Progress: 3}, 100, true},
		{Goal{TargetHours: 2, Progress: 0, Achieved: true}, 0, true},
		{Goal{TargetHours: 0, Progress: 0}, 0, false},
	}
	for _, tc := range cases {
		if got := tc.goal.Percent(); got != tc.percent {
			t.Fatalf("Percent(%+v) = %v, want %v", tc.goal, got, tc.percent)
		}
		if got := tc.goal.IsAchieved(); got != tc.achieved {
			t.Fatalf("IsAchieved(%+v) = %v, want %v", tc.goal, got, tc.achieved)
		}
	}
}

func TestPresetDisplayName(t *testing.T) {
	if got := (TimerPreset{Name: "deep", LabelText: "Deep Work"}).DisplayName(); got != "Deep Work" {
		t.Fatalf("DisplayName = %q, want Deep Work", got)
	}
	if got := (TimerPreset{Name: "deep"}).DisplayName(); got != "deep" {
		t.Fatalf("DisplayName = %q, want deep", got)
	}
}
