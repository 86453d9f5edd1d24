// Package app is the composition root for Sanctuary.
//
// # Overview
//
// Open loads configuration and preferences, opens the log file and builds
// the actor client. Run uses that environment to start the background
// poller, the ambient sound controller and the chime, then runs the TUI
// until the user quits or the context is cancelled. The CLI commands share
// the same environment through Open.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Open()              config, logging, prefs, actor client
//	       ├─────> Refresh()           initial snapshot
//	       ├─────> StartPoller()       background updates
//	       ├─────> Env.NewAmbient()    ambient controller over mpv/ffplay
//	       └─────> ui.Run()            Bubble Tea program (blocks)
//
//	Background Poller Loop:
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> sessions, presets, goals           │
//	│  ├─> tags, wallpapers                   │
//	│  └─> store.Update()                     │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run): unreadable or invalid config, a log file
// that cannot be opened, an invalid api_bind.
//
// Recoverable errors (logged, polling continues): actor fetch failures.
// The poller doubles its interval per consecutive failure up to 30 seconds
// and the UI shows the actor as offline after two failures. A missing audio
// player only disables ambient playback.
package app
