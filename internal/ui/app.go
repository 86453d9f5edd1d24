package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/ambient"
	"github.com/five82/sanctuary/internal/chime"
	"github.com/five82/sanctuary/internal/clock"
	"github.com/five82/sanctuary/internal/config"
	"github.com/five82/sanctuary/internal/prefs"
	"github.com/five82/sanctuary/internal/quotes"
	"github.com/five82/sanctuary/internal/state"
	"github.com/five82/sanctuary/internal/timer"
	"github.com/five82/sanctuary/internal/wallpaper"
)

// View represents the current active view.
type View int

const (
	ViewTimer View = iota
	ViewDashboard
	ViewSounds
	ViewWallpapers
	ViewPresets
)

var viewOrder = []View{ViewTimer, ViewDashboard, ViewSounds, ViewWallpapers, ViewPresets}

// Title returns the tab label.
func (v View) Title() string {
	switch v {
	case ViewDashboard:
		return "Dashboard"
	case ViewSounds:
		return "Sounds"
	case ViewWallpapers:
		return "Wallpapers"
	case ViewPresets:
		return "Presets"
	default:
		return "Timer"
	}
}

// Options configures the UI.
type Options struct {
	Context context.Context
	Client  actor.Actor
	Store   *state.Store
	Prefs   prefs.Store
	Ambient *ambient.Controller
	Chime   chime.Player
	Clock   clock.Clock
	Timer   config.TimerConfig
	Logger  hclog.Logger
	// Refresh re-fetches actor data after a change; nil skips refreshing.
	Refresh func(ctx context.Context) error
	Tick    time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx     context.Context
	client  actor.Actor
	store   *state.Store
	prefs   prefs.Store
	ambient *ambient.Controller
	chime   chime.Player
	clock   clock.Clock
	logger  hclog.Logger
	refresh func(ctx context.Context) error
	tick    time.Duration

	// UI state
	theme     Theme
	keys      keyMap
	view      View
	width     int
	height    int
	ready     bool
	focusMode bool
	showHelp  bool
	cursor    map[View]int
	now       time.Time

	// Timers
	mode      Mode
	stopwatch *timer.Stopwatch
	pomodoro  *timer.Pomodoro
	animedoro *timer.Animedoro
	countdown *timer.Countdown

	// Data state
	snapshot     state.Snapshot
	lastSnapshot time.Time
	sound        ambient.Snapshot
	soundUpdates <-chan ambient.Snapshot
	wallpapers   []wallpaper.Wallpaper
	wallpaper    wallpaper.Wallpaper
	quote        quotes.Quote

	// Input state
	tagInput    textinput.Model
	editingTags bool
	form        *form
	tagFilter   string

	// Pending work
	saving bool
	upload int // upload percent, -1 when idle
	toast  toast
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Prefs
	if store == nil {
		store = prefs.NewMemory()
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.System{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	player := opts.Chime
	if player == nil {
		player = chime.Noop{}
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = TickInterval
	}

	ti := textinput.New()
	ti.Placeholder = "add a tag, enter to confirm"
	ti.Prompt = "# "
	ti.CharLimit = 40

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		prefs:     store,
		ambient:   opts.Ambient,
		chime:     player,
		clock:     clk,
		logger:    logger.Named("ui"),
		refresh:   opts.Refresh,
		tick:      tick,
		theme:     GetTheme(prefs.Theme(store)),
		keys:      DefaultKeyMap(),
		view:      ViewTimer,
		focusMode: prefs.FocusMode(store),
		cursor:    make(map[View]int),
		now:       clk.Now(),
		mode:      ModePomodoro,
		stopwatch: timer.NewStopwatch(),
		pomodoro: timer.NewPomodoro(timer.PomodoroDurations{
			Work:       minutes(opts.Timer.WorkMinutes),
			ShortBreak: minutes(opts.Timer.ShortBreakMinutes),
			LongBreak:  minutes(opts.Timer.LongBreakMinutes),
		}),
		animedoro:  timer.NewAnimedoro(minutes(opts.Timer.StudyMinutes)),
		countdown:  timer.NewCountdown(),
		wallpapers: wallpaper.Builtins(),
		quote:      quotes.Random(),
		tagInput:   ti,
		upload:     -1,
	}
	m.wallpaper = wallpaper.Current(store, m.wallpapers)
	if m.ambient != nil {
		m.sound = m.ambient.Snapshot()
	}
	if m.store != nil {
		m.applySnapshot(m.store.Snapshot())
	}
	return m
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.soundUpdates != nil {
		cmds = append(cmds, waitAmbientCmd(m.soundUpdates))
	}
	if m.ambient != nil {
		cmds = append(cmds, restoreAmbientCmd(m.ambient))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case ambientMsg:
		m.sound = msg.snapshot
		return m, waitAmbientCmd(msg.updates)

	case sessionSavedMsg:
		return m.handleSessionSaved(msg)

	case actionDoneMsg:
		return m.handleActionDone(msg)

	case uploadMsg:
		return m.handleUpload(msg)

	case toastMsg:
		m.notify(msg.text, msg.kind)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.form != nil {
		return m.renderForm()
	}
	if m.focusMode {
		return m.renderFocus()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.form != nil {
		return m.handleFormKey(msg)
	}

	if m.editingTags {
		return m.handleTagKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "h", "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if err := prefs.SetTheme(m.prefs, m.theme.Name); err != nil {
			m.logger.Warn("save theme failed", "error", err)
		}
		return m, nil

	case "f":
		m.focusMode = !m.focusMode
		if err := prefs.SetFocusMode(m.prefs, m.focusMode); err != nil {
			m.logger.Warn("save focus mode failed", "error", err)
		}
		return m, nil

	case "p":
		return m, toggleAmbientCmd(m.ambient)

	case "]":
		return m, volumeCmd(m.ambient, m.sound.Volume+VolumeStep)

	case "[":
		return m, volumeCmd(m.ambient, m.sound.Volume-VolumeStep)
	}

	if m.focusMode {
		// Only start/pause, reset and save work in focus mode.
		switch msg.String() {
		case " ", "r", "s":
			return m.handleTimerKey(msg)
		}
		return m, nil
	}

	switch msg.String() {
	case "tab":
		m.view = cycleView(m.view, 1)
		return m, nil
	case "shift+tab":
		m.view = cycleView(m.view, -1)
		return m, nil
	case "esc":
		m.view = ViewTimer
		return m, nil
	case "1", "2", "3", "4", "5":
		m.view = viewOrder[int(msg.String()[0]-'1')]
		return m, nil
	}

	switch m.view {
	case ViewTimer:
		return m.handleTimerKey(msg)
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewSounds:
		return m.handleSoundsKey(msg)
	case ViewWallpapers:
		return m.handleWallpapersKey(msg)
	case ViewPresets:
		return m.handlePresetsKey(msg)
	}

	return m, nil
}

func cycleView(v View, step int) View {
	n := len(viewOrder)
	return viewOrder[((int(v)+step)%n+n)%n]
}

// moveCursor shifts the selection of the current list view within n items.
func (m *Model) moveCursor(msg tea.KeyMsg, n int) bool {
	if n == 0 {
		return false
	}
	c := m.cursor[m.view]
	switch msg.String() {
	case "j", "down":
		if c < n-1 {
			c++
		}
	case "k", "up":
		if c > 0 {
			c--
		}
	case "g", "home":
		c = 0
	case "G", "end":
		c = n - 1
	default:
		return false
	}
	m.cursor[m.view] = c
	return true
}

func (m Model) selected(n int) int {
	c := m.cursor[m.view]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

// handleTick advances timers and refreshes the data snapshot.
func (m Model) handleTick(_ time.Time) (tea.Model, tea.Cmd) {
	now := m.clock.Now()
	m.now = now
	m.advanceTimers(now)
	m.toast.expire(now)

	cmds := []tea.Cmd{tickCmd(m.tick)}
	if m.store != nil && now.Sub(m.lastSnapshot) >= time.Second {
		m.lastSnapshot = now
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	m.wallpapers = wallpaper.Merge(snap.Wallpapers)
	m.wallpaper = wallpaper.Current(m.prefs, m.wallpapers)
}

func (m *Model) notify(text string, kind toastKind) {
	if strings.TrimSpace(text) == "" {
		return
	}
	m.toast = toast{text: text, kind: kind, until: m.clock.Now().Add(ToastDuration)}
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	content := m.renderContent()
	b.WriteString(content)

	// Pin the footer to the last line.
	used := strings.Count(b.String(), "\n") + 1
	if pad := m.height - used - 1; pad > 0 {
		b.WriteString(strings.Repeat("\n", pad))
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.view {
	case ViewDashboard:
		return m.renderDashboard()
	case ViewSounds:
		return m.renderSounds()
	case ViewWallpapers:
		return m.renderWallpapers()
	case ViewPresets:
		return m.renderPresets()
	default:
		return m.renderTimer()
	}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	if m.ambient != nil {
		updates, unsubscribe := m.ambient.Subscribe()
		defer unsubscribe()
		m.soundUpdates = updates
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return exitError(m.ctx, err)
}

// exitError drops the kill error caused by cancelling ctx.
func exitError(ctx context.Context, err error) error {
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
