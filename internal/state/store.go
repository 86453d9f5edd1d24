package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/sanctuary/internal/actor"
)

// Data is one successful fetch of actor records.
type Data struct {
	Sessions   []actor.TimerSession
	Presets    []actor.TimerPreset
	Goals      []actor.Goal
	Tags       []string
	Wallpapers []actor.WallpaperBlob
}

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Data
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the actor has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
}

// NewStore returns a Store stamping updates with now. A nil now uses time.Now.
func NewStore(now func() time.Time) *Store {
	return &Store{now: now}
}

func (s *Store) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(data Data, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = s.clock()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Data = cloneData(data)
	s.snapshot.HasData = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = s.clock()
	s.snapshot.ConsecutiveFailures = 0
}

// AddSession appends a just-recorded session so views reflect it before the
// next poll.
func (s *Store) AddSession(session actor.TimerSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Sessions = append(cloneSlice(s.snapshot.Sessions), session)
	for _, tag := range session.Tags {
		if !containsString(s.snapshot.Tags, tag) {
			s.snapshot.Tags = append(cloneSlice(s.snapshot.Tags), tag)
		}
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Data = cloneData(s.snapshot.Data)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneData(d Data) Data {
	return Data{
		Sessions:   cloneSlice(d.Sessions),
		Presets:    cloneSlice(d.Presets),
		Goals:      cloneSlice(d.Goals),
		Tags:       cloneSlice(d.Tags),
		Wallpapers: cloneSlice(d.Wallpapers),
	}
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}

func containsString(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
