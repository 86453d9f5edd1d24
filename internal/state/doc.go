// Package state provides thread-safe state management for Sanctuary.
//
// # Overview
//
// The Store shares the latest actor records (sessions, presets, goals, tags
// and custom wallpapers) between the background poller and the UI. It is the
// point where polling updates meet rendering.
//
//	Producer (Poller):             Consumer (UI):
//	┌────────────────┐            ┌─────────────────┐
//	│ ExportSessions │            │                 │
//	│ Presets, Goals │            │                 │
//	│      ↓         │            │                 │
//	│ store.Update() │───────────→│ store.Snapshot()│
//	│      ↓         │  (mutex)   │      ↓          │
//	│  repeat...     │            │  render view    │
//	└────────────────┘            └─────────────────┘
//
// # Update Semantics
//
//	// Success case: replace every slice
//	store.Update(data, nil)
//
//	// Error case: keep old data, record error
//	store.Update(state.Data{}, err)
//
// The UI always has the most recent successful data to display while still
// learning about polling failures. After two consecutive failures
// Snapshot.IsOffline reports true.
//
// AddSession lets the UI show a just-saved session before the next poll.
//
// # Copying
//
// Update and Snapshot clone every slice and Snapshot wraps LastError, so
// neither side can mutate what the other holds.
//
// # Testing Considerations
//
// The zero Store is ready to use. NewStore accepts a clock for deterministic
// LastUpdated values.
package state
