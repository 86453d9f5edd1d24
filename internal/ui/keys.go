package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Focus      key.Binding

	// View switching
	ViewTimer      key.Binding
	ViewDashboard  key.Binding
	ViewSounds     key.Binding
	ViewWallpapers key.Binding
	ViewPresets    key.Binding

	// Timer
	StartPause key.Binding
	Reset      key.Binding
	Save       key.Binding
	NextMode   key.Binding
	PrevMode   key.Binding
	AddTag     key.Binding
	NewQuote   key.Binding
	Longer     key.Binding
	Shorter    key.Binding

	// Lists
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding

	// Sounds
	ToggleSound key.Binding
	VolumeUp    key.Binding
	VolumeDown  key.Binding

	// Wallpapers, presets and dashboard
	Upload key.Binding
	New    key.Binding
	Export key.Binding
	Filter key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Cycle views"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Cycle views (reverse)"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to timer"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Focus mode"),
		),

		ViewTimer: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Timer"),
		),
		ViewDashboard: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Dashboard"),
		),
		ViewSounds: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Sounds"),
		),
		ViewWallpapers: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Wallpapers"),
		),
		ViewPresets: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "Presets"),
		),

		StartPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reset"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Save session"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("m", "right"),
			key.WithHelp("m", "Next timer"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("M", "left"),
			key.WithHelp("M", "Previous timer"),
		),
		AddTag: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Edit tags"),
		),
		NewQuote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "New quote"),
		),
		Longer: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Longer focus"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Shorter focus"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Select"),
		),

		ToggleSound: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Play/pause sound"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Volume down"),
		),

		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "Upload wallpaper"),
		),
		New: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "New preset/goal"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Export sessions CSV"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Filter by tag"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StartPause, k.Save, k.NextMode, k.Focus, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ViewTimer, k.ViewDashboard, k.ViewSounds, k.ViewWallpapers, k.ViewPresets},
		{k.StartPause, k.Reset, k.Save, k.NextMode, k.AddTag, k.NewQuote, k.Longer, k.Shorter},
		{k.Up, k.Down, k.Confirm},
		{k.ToggleSound, k.VolumeUp, k.VolumeDown},
		{k.Upload, k.New, k.Export, k.Filter},
		{k.Focus, k.CycleTheme, k.Help, k.Quit},
	}
}
