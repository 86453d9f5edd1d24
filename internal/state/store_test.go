package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/sanctuary/internal/actor"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	data := Data{
		Sessions: []actor.TimerSession{{LabelText: "Pomodoro"}, {LabelText: "Stopwatch"}},
		Presets:  []actor.TimerPreset{{Name: "deep"}},
		Tags:     []string{"math"},
	}

	before := time.Now()
	s.Update(data, nil)

	snap := s.Snapshot()
	if !snap.HasData {
		t.Fatalf("HasData = false, want true")
	}
	if len(snap.Sessions) != 2 || snap.Sessions[0].LabelText != "Pomodoro" {
		t.Fatalf("snapshot sessions = %#v, want 2 items", snap.Sessions)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Sessions[0].LabelText = "mutated"
	snap.Tags[0] = "mutated"
	snap2 := s.Snapshot()
	if snap2.Sessions[0].LabelText != "Pomodoro" || snap2.Tags[0] != "math" {
		t.Fatalf("Snapshot should clone slices; got %#v", snap2.Data)
	}

	// Mutating the input after Update must not leak in either.
	data.Presets[0].Name = "mutated"
	if s.Snapshot().Presets[0].Name != "deep" {
		t.Fatalf("Update should clone input presets")
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(Data{Goals: []actor.Goal{{Name: "daily", TargetHours: 2}}}, nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(Data{}, origErr)

	snap := s.Snapshot()
	if len(snap.Goals) != 1 || snap.Goals[0].Name != prev.Goals[0].Name {
		t.Fatalf("goals changed on error: got %#v want %#v", snap.Goals, prev.Goals)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Update(Data{}, errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 1 failure")
	}

	s.Update(Data{}, errors.New("fail 2"))
	snap = s.Snapshot()
	if !snap.IsOffline() {
		t.Fatal("IsOffline() = false, want true with 2 failures")
	}

	s.Update(Data{}, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false after success")
	}
}

func TestStore_AddSessionMergesTags(t *testing.T) {
	fixed := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	s := NewStore(func() time.Time { return fixed })
	s.Update(Data{Tags: []string{"math"}}, nil)

	s.AddSession(actor.TimerSession{LabelText: "Animedoro", Tags: []string{"math", "history"}})

	snap := s.Snapshot()
	if !snap.LastUpdated.Equal(fixed) {
		t.Fatalf("LastUpdated = %v, want injected %v", snap.LastUpdated, fixed)
	}
	if len(snap.Sessions) != 1 {
		t.Fatalf("Sessions = %#v, want 1", snap.Sessions)
	}
	if !reflect.DeepEqual(snap.Tags, []string{"math", "history"}) {
		t.Fatalf("Tags = %v, want [math history]", snap.Tags)
	}
}
