package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/prefs"
	"github.com/five82/sanctuary/internal/wallpaper"
)

type formKind int

const (
	formPreset formKind = iota
	formGoal
	formUpload
	formFilter
)

const (
	defaultPresetColor = "#3b82f6"
	defaultGoalName    = "Daily Study Goal"
	defaultGoalHours   = "2"
)

// form is a small modal of labelled text inputs.
type form struct {
	kind   formKind
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
}

func newForm(kind formKind, title string, fields ...[2]string) *form {
	f := &form{kind: kind, title: title}
	for _, field := range fields {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 256
		in.SetValue(field[1])
		f.labels = append(f.labels, field[0])
		f.inputs = append(f.inputs, in)
	}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func newPresetForm() *form {
	return newForm(formPreset, "New Preset",
		[2]string{"Name", ""},
		[2]string{"Label", ""},
		[2]string{"Minutes", ""},
		[2]string{"Color", defaultPresetColor},
	)
}

func newGoalForm() *form {
	return newForm(formGoal, "Set Goal",
		[2]string{"Name", defaultGoalName},
		[2]string{"Daily hours", defaultGoalHours},
	)
}

func newUploadForm() *form {
	return newForm(formUpload, "Upload Wallpaper",
		[2]string{"Image path", ""},
		[2]string{"Name (optional)", ""},
	)
}

func newFilterForm(current string) *form {
	return newForm(formFilter, "Filter Sessions by Tag",
		[2]string{"Tag (empty clears)", current},
	)
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) setFocus(i int) tea.Cmd {
	n := len(f.inputs)
	i = (i%n + n) % n
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[i].Focus()
}

// handleFormKey routes input to the open form.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch msg.String() {
	case "esc":
		m.form = nil
		return m, nil
	case "tab", "down":
		return m, f.setFocus(f.focus + 1)
	case "shift+tab", "up":
		return m, f.setFocus(f.focus - 1)
	case "enter":
		if f.focus < len(f.inputs)-1 {
			return m, f.setFocus(f.focus + 1)
		}
		return m.submitForm()
	case "ctrl+s":
		return m.submitForm()
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	switch f.kind {
	case formPreset:
		preset, problem := parsePresetForm(f)
		if problem != "" {
			f.err = problem
			return m, nil
		}
		if m.client == nil {
			f.err = "Not connected"
			return m, nil
		}
		m.form = nil
		return m, savePresetCmd(m.ctx, m.client, preset.Name, preset)

	case formGoal:
		name, hours, problem := parseGoalForm(f)
		if problem != "" {
			f.err = problem
			return m, nil
		}
		if m.client == nil {
			f.err = "Not connected"
			return m, nil
		}
		m.form = nil
		return m, setGoalCmd(m.ctx, m.client, name, hours)

	case formUpload:
		path := expandHome(f.value(0))
		if path == "" {
			f.err = "Please enter an image path"
			return m, nil
		}
		if m.client == nil {
			f.err = "Not connected"
			return m, nil
		}
		name := f.value(1)
		if name == "" {
			name = wallpaper.NameFor(path, m.clock.Now())
		}
		m.form = nil
		m.upload = 0
		return m, uploadCmd(m.ctx, m.client, path, name)

	case formFilter:
		m.tagFilter = f.value(0)
		m.form = nil
		return m, nil
	}
	m.form = nil
	return m, nil
}

// parsePresetForm returns the preset or a message for the user.
func parsePresetForm(f *form) (actor.TimerPreset, string) {
	name, label, mins, color := f.value(0), f.value(1), f.value(2), f.value(3)
	if name == "" || label == "" || mins == "" {
		return actor.TimerPreset{}, "Please fill in all fields"
	}
	n, err := strconv.Atoi(mins)
	if err != nil || n <= 0 {
		return actor.TimerPreset{}, "Minutes must be a positive whole number"
	}
	if color == "" {
		color = defaultPresetColor
	}
	return actor.TimerPreset{
		Name:       name,
		Duration:   int64(time.Duration(n) * time.Minute),
		ColorTheme: color,
		LabelText:  label,
	}, ""
}

func parseGoalForm(f *form) (string, float64, string) {
	name, raw := f.value(0), f.value(1)
	if name == "" || raw == "" {
		return "", 0, "Please fill in all fields"
	}
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil || hours <= 0 {
		return "", 0, "Hours must be a positive number"
	}
	return name, hours, ""
}

func (m Model) handleUpload(msg uploadMsg) (tea.Model, tea.Cmd) {
	if !msg.done {
		m.upload = msg.percent
		return m, waitUploadCmd(msg.next)
	}
	m.upload = -1
	if msg.err != nil {
		m.logger.Warn("wallpaper upload failed", "error", msg.err)
		m.notify(fmt.Sprintf("Upload failed: %v", msg.err), toastError)
		return m, nil
	}
	m.notify("Wallpaper uploaded", toastSuccess)
	if err := prefs.SetWallpaper(m.prefs, msg.id); err != nil {
		m.logger.Warn("select uploaded wallpaper failed", "error", err)
	}
	return m, refreshCmd(m.ctx, m.refresh, m.store)
}

// renderForm renders the open form as a centered modal.
func (m Model) renderForm() string {
	f := m.form
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render(f.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, in := range f.inputs {
		label := styles.MutedText
		if i == f.focus {
			label = styles.AccentText
		}
		b.WriteString(label.Render(f.labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	if f.err != "" {
		b.WriteString(styles.DangerText.Render(f.err))
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render("enter next/submit · tab move · esc cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(48)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
