package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/chime"
	"github.com/five82/sanctuary/internal/quotes"
	"github.com/five82/sanctuary/internal/timer"
)

// Mode selects the active timer.
type Mode int

const (
	ModeStopwatch Mode = iota
	ModePomodoro
	ModeAnimedoro
	ModeCustom
)

var modeOrder = []Mode{ModeStopwatch, ModePomodoro, ModeAnimedoro, ModeCustom}

// Title returns the tab label.
func (m Mode) Title() string {
	switch m {
	case ModeStopwatch:
		return "Stopwatch"
	case ModeAnimedoro:
		return "Animedoro"
	case ModeCustom:
		return "Custom"
	default:
		return "Pomodoro"
	}
}

const (
	durationStep = 5 * time.Minute
	minFocus     = 5 * time.Minute
	maxFocus     = 180 * time.Minute
)

func (m Model) timerFor(mode Mode) timer.Timer {
	switch mode {
	case ModeStopwatch:
		return m.stopwatch
	case ModeAnimedoro:
		return m.animedoro
	case ModeCustom:
		return m.countdown
	default:
		return m.pomodoro
	}
}

func (m Model) activeTimer() timer.Timer {
	return m.timerFor(m.mode)
}

// advanceTimers ticks every countdown so background timers keep running
// while another mode is shown.
func (m *Model) advanceTimers(now time.Time) {
	if c, ok := m.pomodoro.Tick(now); ok {
		m.phaseDone(ModePomodoro, c)
	}
	if c, ok := m.animedoro.Tick(now); ok {
		m.phaseDone(ModeAnimedoro, c)
	}
	if m.countdown.Tick(now) {
		m.chime.Play(chime.FocusDone)
		m.notify("Timer completed!", toastSuccess)
	}
}

func (m *Model) phaseDone(mode Mode, c timer.Completion) {
	kind := chime.BreakDone
	if c.From == timer.PhaseWork || c.From == timer.PhaseStudy {
		kind = chime.FocusDone
	}
	m.chime.Play(kind)
	m.logger.Debug("phase complete", "mode", mode.Title(), "from", string(c.From), "to", string(c.To))
	m.notify(fmt.Sprintf("%s complete! Next up: %s", c.From.Title(), c.To.Title()), toastSuccess)
}

// handleTimerKey processes keys for the timer view.
func (m Model) handleTimerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.clock.Now()
	active := m.activeTimer()

	switch msg.String() {
	case " ":
		if active.Running() {
			active.Pause(now)
			return m, nil
		}
		if m.mode == ModeCustom {
			if _, ok := m.countdown.Preset(); !ok {
				m.notify("Pick a preset first (view 5)", toastInfo)
				return m, nil
			}
		}
		active.Start(now)
		return m, nil

	case "r":
		active.Reset()
		return m, nil

	case "s":
		return m.saveSession(now)

	case "m", "right":
		m.mode = cycleMode(m.mode, 1)
		return m, nil

	case "M", "left":
		m.mode = cycleMode(m.mode, -1)
		return m, nil

	case "t":
		m.editingTags = true
		m.tagInput.SetValue("")
		return m, m.tagInput.Focus()

	case "n":
		m.quote = quotes.Next(m.quote)
		return m, nil

	case "+", "=":
		m.adjustFocus(durationStep)
		return m, nil

	case "-", "_":
		m.adjustFocus(-durationStep)
		return m, nil

	case "j", "down", "k", "up":
		if m.mode == ModeCustom && !active.Running() {
			step := 1
			if msg.String() == "k" || msg.String() == "up" {
				step = -1
			}
			m.cyclePreset(step)
		}
		return m, nil
	}

	return m, nil
}

func cycleMode(mode Mode, step int) Mode {
	n := len(modeOrder)
	return modeOrder[((int(mode)+step)%n+n)%n]
}

func (m *Model) adjustFocus(delta time.Duration) {
	clamp := func(d time.Duration) time.Duration {
		return min(max(d, minFocus), maxFocus)
	}
	switch m.mode {
	case ModePomodoro:
		if m.pomodoro.Running() {
			return
		}
		m.pomodoro.SetWorkDuration(clamp(m.pomodoro.Durations().Work + delta))
	case ModeAnimedoro:
		if m.animedoro.Running() {
			return
		}
		m.animedoro.SetStudyDuration(clamp(m.animedoro.StudyDuration() + delta))
	}
}

func (m *Model) cyclePreset(step int) {
	presets := m.snapshot.Presets
	if len(presets) == 0 {
		return
	}
	idx := -1
	if cur, ok := m.countdown.Preset(); ok {
		for i, p := range presets {
			if p.Name == cur.Name {
				idx = i
				break
			}
		}
	}
	n := len(presets)
	idx = ((idx+step)%n + n) % n
	m.countdown.Select(presets[idx])
}

// selectPreset loads preset into the custom timer and switches to it.
func (m *Model) selectPreset(preset actor.TimerPreset) {
	m.countdown.Select(preset)
	m.mode = ModeCustom
	m.view = ViewTimer
	m.notify(fmt.Sprintf("Loaded preset %s (%s)", preset.DisplayName(), timer.FormatCountdown(preset.Length())), toastInfo)
}

func (m Model) saveSession(now time.Time) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	draft, ok := m.activeTimer().SessionData(now)
	if !ok {
		m.notify(saveHint(m.mode), toastInfo)
		return m, nil
	}
	if m.client == nil {
		m.notify("Not connected: session not saved", toastError)
		return m, nil
	}
	m.saving = true
	m.activeTimer().Pause(now)
	return m, saveSessionCmd(m.ctx, m.client, m.mode, draft)
}

func saveHint(mode Mode) string {
	switch mode {
	case ModeStopwatch:
		return "Start the stopwatch before saving"
	case ModePomodoro:
		return "Complete at least one pomodoro, then save during a focus phase"
	case ModeAnimedoro:
		return "Start a study phase before saving"
	default:
		return "Start a preset before saving"
	}
}

func (m Model) handleSessionSaved(msg sessionSavedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.logger.Warn("save session failed", "error", msg.err)
		m.notify(fmt.Sprintf("Failed to save session: %v", msg.err), toastError)
		return m, nil
	}
	if m.store != nil {
		m.store.AddSession(msg.session)
		m.applySnapshot(m.store.Snapshot())
	}
	m.timerFor(msg.mode).Reset()
	m.notify("Session saved successfully!", toastSuccess)
	m.logger.Info("session saved", "label", msg.session.LabelText, "duration", msg.session.Length())
	return m, tea.Batch(
		goalProgressCmd(m.ctx, m.client, m.snapshot.Goals, msg.session.Hours()),
		refreshCmd(m.ctx, m.refresh, m.store),
	)
}

func (m Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("action failed", "error", msg.err)
		m.notify(msg.err.Error(), toastError)
		return m, nil
	}
	m.notify(msg.text, toastSuccess)
	if msg.refresh {
		return m, refreshCmd(m.ctx, m.refresh, m.store)
	}
	return m, nil
}

// handleTagKey edits the active timer's tags.
func (m Model) handleTagKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tags := m.activeTimer().Tags()

	switch msg.String() {
	case "esc":
		m.editingTags = false
		m.tagInput.Blur()
		return m, nil

	case "enter":
		value := m.tagInput.Value()
		if strings.TrimSpace(value) == "" {
			m.editingTags = false
			m.tagInput.Blur()
			return m, nil
		}
		tags.Add(value)
		m.tagInput.SetValue("")
		return m, nil

	case "tab":
		if s := m.tagSuggestions(); len(s) > 0 {
			tags.Add(s[0])
			m.tagInput.SetValue("")
		}
		return m, nil

	case "backspace":
		if m.tagInput.Value() == "" {
			tags.Pop()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)
	return m, cmd
}

func (m Model) tagSuggestions() []string {
	s := timer.Suggestions(m.snapshot.Tags, m.tagInput.Value(), m.activeTimer().Tags().List())
	if len(s) > maxSuggestions {
		s = s[:maxSuggestions]
	}
	return s
}

// timerReadout returns the clock text and phase caption for mode.
func (m Model) timerReadout(mode Mode) (string, string) {
	now := m.now
	switch mode {
	case ModeStopwatch:
		return timer.FormatStopwatch(m.stopwatch.Elapsed(now)), "Elapsed"
	case ModeAnimedoro:
		return timer.FormatCountdown(m.animedoro.Remaining(now)), m.animedoro.Phase().Title()
	case ModeCustom:
		preset, ok := m.countdown.Preset()
		if !ok {
			return timer.FormatCountdown(0), "No preset selected"
		}
		return timer.FormatCountdown(m.countdown.Remaining(now)), preset.DisplayName()
	default:
		caption := fmt.Sprintf("%s  ·  %d completed", m.pomodoro.Phase().Title(), m.pomodoro.Completed())
		return timer.FormatCountdown(m.pomodoro.Remaining(now)), caption
	}
}

func (m Model) timerColor(mode Mode) string {
	switch mode {
	case ModeStopwatch:
		return timer.ColorStopwatch
	case ModeAnimedoro:
		return timer.ColorAnimedoro
	case ModeCustom:
		if p, ok := m.countdown.Preset(); ok && p.ColorTheme != "" {
			return p.ColorTheme
		}
		return m.theme.Accent
	default:
		return timer.ColorPomodoro
	}
}

// renderTimer renders the timer view.
func (m Model) renderTimer() string {
	styles := m.theme.Styles()
	var b strings.Builder

	// Mode tabs
	tabs := make([]string, 0, len(modeOrder))
	for _, mode := range modeOrder {
		label := " " + mode.Title() + " "
		if mode == m.mode {
			tabs = append(tabs, styles.Selected.Bold(true).Render(label))
			continue
		}
		style := styles.MutedText
		if m.timerFor(mode).Running() {
			style = styles.AccentText
		}
		tabs = append(tabs, style.Render(label))
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n\n")

	b.WriteString(m.renderClock())
	b.WriteString("\n\n")

	// Tags
	tags := m.activeTimer().Tags().List()
	b.WriteString(styles.MutedText.Render("Tags: "))
	if len(tags) == 0 {
		b.WriteString(styles.FaintText.Render("none (t to add)"))
	} else {
		for i, tag := range tags {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(styles.InfoText.Render("#" + tag))
		}
	}
	b.WriteString("\n")

	if m.editingTags {
		b.WriteString(m.tagInput.View())
		b.WriteString("\n")
		if s := m.tagSuggestions(); len(s) > 0 {
			b.WriteString(styles.FaintText.Render("tab: " + strings.Join(s, ", ")))
			b.WriteString("\n")
		}
	}

	if m.mode == ModeCustom && len(m.snapshot.Presets) > 0 && !m.countdown.Running() {
		b.WriteString(styles.FaintText.Render("j/k cycles presets"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Text.Italic(true).Render(m.quote.Text))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(m.quote.Attribution()))

	return b.String()
}

// renderClock renders the large readout of the active timer.
func (m Model) renderClock() string {
	styles := m.theme.Styles()
	readout, caption := m.timerReadout(m.mode)

	state := "Paused"
	stateStyle := styles.MutedText
	if m.activeTimer().Running() {
		state = "Running"
		stateStyle = styles.SuccessText
	}

	clock := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.timerColor(m.mode))).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.wallpaper.Accent)).
		Padding(1, 4).
		Render(readout)

	return lipgloss.JoinVertical(lipgloss.Left,
		clock,
		styles.Text.Render(caption)+"  "+stateStyle.Render(state),
	)
}

// renderFocus shows only the active timer.
func (m Model) renderFocus() string {
	styles := m.theme.Styles()
	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.MutedText.Render(m.mode.Title()),
		m.renderClock(),
		"",
		styles.FaintText.Render("space start/pause  ·  s save  ·  f exit focus"),
	)
	if m.toast.text != "" {
		content = lipgloss.JoinVertical(lipgloss.Center, content, "", m.renderToast())
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
