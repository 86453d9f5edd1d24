package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/actor/actortest"
	"github.com/five82/sanctuary/internal/chime"
	"github.com/five82/sanctuary/internal/clock"
	"github.com/five82/sanctuary/internal/config"
	"github.com/five82/sanctuary/internal/prefs"
	"github.com/five82/sanctuary/internal/state"
	"github.com/five82/sanctuary/internal/timer"
	"github.com/five82/sanctuary/internal/wallpaper"
)

type recordingChime struct {
	kinds []chime.Kind
}

func (r *recordingChime) Play(kind chime.Kind) {
	r.kinds = append(r.kinds, kind)
}

type fixture struct {
	model  Model
	clock  *clock.Manual
	prefs  *prefs.MemoryStore
	store  *state.Store
	chime  *recordingChime
	server *actortest.Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv, ts := actortest.Start(t)
	client, err := actor.NewClient(ts.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	f := &fixture{
		clock:  clock.NewManual(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)),
		prefs:  prefs.NewMemory(),
		chime:  &recordingChime{},
		server: srv,
	}
	f.store = state.NewStore(f.clock.Now)
	f.model = New(Options{
		Client: client,
		Store:  f.store,
		Prefs:  f.prefs,
		Chime:  f.chime,
		Clock:  f.clock,
		Timer:  config.Default().Timer,
	})
	f.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return f
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	next, cmd := f.model.Update(msg)
	f.model = next.(Model)
	return cmd
}

func (f *fixture) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = f.send(keyMsg(k))
	}
	return cmd
}

func (f *fixture) tick(d time.Duration) {
	f.clock.Advance(d)
	f.send(tickMsg(f.clock.Now()))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func TestStopwatchSaveRecordsSession(t *testing.T) {
	f := newFixture(t)

	f.press("M") // Pomodoro -> Stopwatch
	if f.model.mode != ModeStopwatch {
		t.Fatalf("mode = %v, want stopwatch", f.model.mode)
	}
	f.press(" ")
	f.tick(90 * time.Second)

	cmd := f.press("s")
	if cmd == nil {
		t.Fatalf("save returned no command")
	}
	msg, ok := cmd().(sessionSavedMsg)
	if !ok {
		t.Fatalf("save command returned %T, want sessionSavedMsg", msg)
	}
	if msg.err != nil {
		t.Fatalf("save error: %v", msg.err)
	}
	f.send(msg)

	if got := len(f.server.Sessions()); got != 1 {
		t.Fatalf("server sessions = %d, want 1", got)
	}
	saved := f.store.Snapshot().Sessions
	if len(saved) != 1 || saved[0].Length() != 90*time.Second || saved[0].LabelText != timer.LabelStopwatch {
		t.Fatalf("store sessions = %+v, want one 90s stopwatch session", saved)
	}
	if f.model.toast.text != "Session saved successfully!" {
		t.Fatalf("toast = %q, want success", f.model.toast.text)
	}
	if f.model.stopwatch.Elapsed(f.clock.Now()) != 0 {
		t.Fatalf("stopwatch not reset after save")
	}
}

func TestSaveWithoutSessionShowsHint(t *testing.T) {
	f := newFixture(t)

	if cmd := f.press("s"); cmd != nil {
		t.Fatalf("save with no draft returned a command")
	}
	if want := saveHint(ModePomodoro); f.model.toast.text != want {
		t.Fatalf("toast = %q, want %q", f.model.toast.text, want)
	}
}

func TestPomodoroCompletionChimesAndNotifies(t *testing.T) {
	f := newFixture(t)

	f.press(" ")
	f.tick(25*time.Minute + time.Second)

	if len(f.chime.kinds) != 1 || f.chime.kinds[0] != chime.FocusDone {
		t.Fatalf("chimes = %v, want [FocusDone]", f.chime.kinds)
	}
	if f.model.pomodoro.Phase() != timer.PhaseShortBreak {
		t.Fatalf("phase = %s, want shortBreak", f.model.pomodoro.Phase())
	}
	if !strings.HasPrefix(f.model.toast.text, "Focus complete!") {
		t.Fatalf("toast = %q, want focus completion", f.model.toast.text)
	}

	f.tick(ToastDuration)
	if f.model.toast.text != "" {
		t.Fatalf("toast = %q, want expired", f.model.toast.text)
	}
}

func TestBackgroundTimersKeepRunning(t *testing.T) {
	f := newFixture(t)

	f.press(" ", "m") // start Pomodoro, switch to Animedoro
	f.tick(10 * time.Minute)

	if got := f.model.pomodoro.Remaining(f.clock.Now()); got != 15*time.Minute {
		t.Fatalf("pomodoro remaining = %v, want 15m", got)
	}
	if !strings.Contains(f.model.renderHeader(), "Pomodoro:") {
		t.Fatalf("header does not show the background timer")
	}
}

func TestTagEditing(t *testing.T) {
	f := newFixture(t)
	f.store.Update(state.Data{Tags: []string{"Mathematics", "physics"}}, nil)
	f.send(snapshotMsg(f.store.Snapshot()))

	f.press("t")
	if !f.model.editingTags {
		t.Fatalf("t did not open tag input")
	}
	f.press("reading", "enter")
	f.press("math", "tab")
	f.press("reading", "enter") // duplicate ignored

	got := f.model.pomodoro.Tags().List()
	if len(got) != 2 || got[0] != "reading" || got[1] != "Mathematics" {
		t.Fatalf("tags = %v, want [reading Mathematics]", got)
	}

	f.press("backspace")
	if got := f.model.pomodoro.Tags().List(); len(got) != 1 {
		t.Fatalf("backspace on empty input: tags = %v, want one left", got)
	}

	f.press("esc")
	if f.model.editingTags {
		t.Fatalf("esc did not close tag input")
	}
}

func TestFocusModeLimitsKeys(t *testing.T) {
	f := newFixture(t)

	f.press("f")
	if !f.model.focusMode || !prefs.FocusMode(f.prefs) {
		t.Fatalf("focus mode not enabled and persisted")
	}
	f.press("2", "m")
	if f.model.view != ViewTimer || f.model.mode != ModePomodoro {
		t.Fatalf("focus mode allowed navigation: view=%v mode=%v", f.model.view, f.model.mode)
	}
	f.press(" ")
	if !f.model.pomodoro.Running() {
		t.Fatalf("space did not start the timer in focus mode")
	}
	if !strings.Contains(f.model.View(), "exit focus") {
		t.Fatalf("focus view missing hint")
	}
}

func TestViewNavigation(t *testing.T) {
	f := newFixture(t)

	f.press("tab")
	if f.model.view != ViewDashboard {
		t.Fatalf("tab: view = %v, want dashboard", f.model.view)
	}
	f.press("shift+tab", "shift+tab")
	if f.model.view != ViewPresets {
		t.Fatalf("shift+tab: view = %v, want presets", f.model.view)
	}
	f.press("3")
	if f.model.view != ViewSounds {
		t.Fatalf("3: view = %v, want sounds", f.model.view)
	}
	f.press("esc")
	if f.model.view != ViewTimer {
		t.Fatalf("esc: view = %v, want timer", f.model.view)
	}
}

func TestPresetFormValidatesAndSaves(t *testing.T) {
	f := newFixture(t)

	f.press("5", "a")
	if f.model.form == nil || f.model.form.kind != formPreset {
		t.Fatalf("a did not open the preset form")
	}
	if cmd := f.press("enter", "enter", "enter", "enter"); cmd != nil {
		t.Fatalf("empty form submitted")
	}
	if f.model.form == nil || f.model.form.err != "Please fill in all fields" {
		t.Fatalf("form error = %+v, want fill-in message", f.model.form)
	}

	f.press("esc", "a")
	f.press("deep", "enter", "Deep Work", "enter", "50", "enter")
	cmd := f.press("enter")
	if f.model.form != nil {
		t.Fatalf("form still open: %q", f.model.form.err)
	}
	done, ok := cmd().(actionDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("save preset = %+v", done)
	}
	presets := f.server.Presets()
	if len(presets) != 1 || presets[0].LabelText != "Deep Work" || presets[0].Length() != 50*time.Minute || presets[0].ColorTheme != defaultPresetColor {
		t.Fatalf("server presets = %+v", presets)
	}
}

func TestPresetSelectLoadsCustomTimer(t *testing.T) {
	f := newFixture(t)
	preset := actor.TimerPreset{Name: "deep", LabelText: "Deep Work", Duration: int64(time.Minute), ColorTheme: "#10b981"}
	f.store.Update(state.Data{Presets: []actor.TimerPreset{preset}}, nil)
	f.send(snapshotMsg(f.store.Snapshot()))

	f.press("5", "enter")
	if f.model.view != ViewTimer || f.model.mode != ModeCustom {
		t.Fatalf("view=%v mode=%v, want timer/custom", f.model.view, f.model.mode)
	}
	f.press(" ")
	f.tick(time.Minute)
	if f.model.toast.text != "Timer completed!" {
		t.Fatalf("toast = %q, want completion", f.model.toast.text)
	}
	if len(f.chime.kinds) != 1 {
		t.Fatalf("chimes = %v, want one", f.chime.kinds)
	}
}

func TestWallpaperSelectionPersists(t *testing.T) {
	f := newFixture(t)
	want := wallpaper.Builtins()[1]

	f.press("4", "j", "enter")
	if got := prefs.Wallpaper(f.prefs); got != want.ID {
		t.Fatalf("stored wallpaper = %q, want %q", got, want.ID)
	}
	if f.model.wallpaper.ID != want.ID {
		t.Fatalf("model wallpaper = %q, want %q", f.model.wallpaper.ID, want.ID)
	}
}

func TestThemeCyclePersists(t *testing.T) {
	f := newFixture(t)

	f.press("T")
	if f.model.theme.Name != "Kanagawa" || prefs.Theme(f.prefs) != "Kanagawa" {
		t.Fatalf("theme = %q stored %q, want Kanagawa", f.model.theme.Name, prefs.Theme(f.prefs))
	}
}
