// Package ui provides the terminal user interface for Sanctuary.
//
// # Architecture Overview
//
// The UI is a single Bubble Tea program. Model holds all screen state and is
// updated only from the event loop; blocking work (actor calls, ambient
// commands, uploads) runs inside tea.Cmd functions and reports back through
// messages.
//
// # Package Structure
//
//   - app.go: Model, Options, Init/Update/View and Run
//   - commands.go: messages and the tea.Cmd constructors that talk to the actor
//     and the ambient controller
//   - timers.go: the timer view, timer key handling, tags and session saving
//   - dashboard.go: study statistics, the weekly chart, goals and recent sessions
//   - lists.go: the sounds, wallpapers and presets views
//   - forms.go: modal input forms (presets, goals, wallpaper upload, tag filter)
//   - header.go, help.go: chrome around the active view
//   - theme.go, style_helpers.go, layout.go, keys.go: styling and key bindings
//
// # Views
//
//   - Timer: stopwatch, Pomodoro, Animedoro and custom preset countdowns
//   - Dashboard: hours per window, last seven days, goals, CSV export
//   - Sounds: ambient sound catalog with playback state and volume
//   - Wallpapers: built-in and uploaded wallpapers; the selection tints the UI
//   - Presets: saved countdowns, loaded into the custom timer with enter
//
// Focus mode (f) hides everything except the active timer.
//
// # Event Flow
//
//  1. Run builds the Model and subscribes to ambient snapshots
//  2. tickMsg advances every timer and re-reads state.Store once a second
//  3. Phase completions play a chime and raise a footer notification
//  4. Saving a session records it with the actor, adds it to the store and
//     resets the timer
//  5. Context cancellation or q quits the program
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context: ctx,
//		Client:  client,
//		Store:   store,
//		Prefs:   prefStore,
//		Ambient: controller,
//		Chime:   chime.New(cfg.Timer.Chime, logger),
//		Timer:   cfg.Timer,
//		Logger:  logger,
//		Refresh: refresh,
//	})
package ui
