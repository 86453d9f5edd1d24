package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sanctuary/internal/ambient"
	"github.com/five82/sanctuary/internal/timer"
	"github.com/five82/sanctuary/internal/wallpaper"
)

func (m Model) sounds() []ambient.Sound {
	if m.ambient == nil {
		return nil
	}
	return m.ambient.Sounds()
}

func (m Model) handleSoundsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sounds := m.sounds()
	if m.moveCursor(msg, len(sounds)) {
		return m, nil
	}
	if msg.String() == "enter" && len(sounds) > 0 {
		sound := sounds[m.selected(len(sounds))]
		if sound.ID == m.sound.SoundID {
			return m, toggleAmbientCmd(m.ambient)
		}
		return m, playSoundCmd(m.ambient, sound.ID)
	}
	return m, nil
}

func (m Model) renderSounds() string {
	styles := m.theme.Styles()
	sounds := m.sounds()
	if len(sounds) == 0 {
		return styles.FaintText.Render("Ambient sounds are unavailable")
	}

	var b strings.Builder
	cursor := m.selected(len(sounds))
	for i, s := range sounds {
		line := padRight(s.Label(), 24)
		if s.ID == m.sound.SoundID {
			line += " " + string(m.sound.State)
		}
		if i == cursor {
			b.WriteString(styles.Selected.Render("› " + line))
		} else {
			b.WriteString(styles.Text.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Volume "))
	b.WriteString(renderVolume(m.sound.Volume, m.theme))
	b.WriteString(styles.FaintText.Render(fmt.Sprintf(" %d%%", m.sound.Volume)))
	b.WriteString("\n")

	switch m.sound.State {
	case ambient.StateError:
		b.WriteString(styles.DangerText.Render(m.sound.Error))
		b.WriteString("\n")
	case ambient.StateBlocked:
		b.WriteString(styles.WarningText.Render(m.sound.Error + " (p)"))
		b.WriteString("\n")
	case ambient.StateLoading:
		if m.sound.Retries > 0 {
			b.WriteString(styles.WarningText.Render(fmt.Sprintf("Retrying (%d)...", m.sound.Retries)))
			b.WriteString("\n")
		}
	}
	b.WriteString(styles.FaintText.Render("enter play · p play/pause · [ ] volume"))
	return b.String()
}

func renderVolume(volume int, theme Theme) string {
	filled := volume / 5
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent)).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Faint)).Render(strings.Repeat("░", 20-filled))
}

func (m Model) handleWallpapersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.moveCursor(msg, len(m.wallpapers)) {
		return m, nil
	}
	switch msg.String() {
	case "enter":
		if len(m.wallpapers) == 0 {
			return m, nil
		}
		w, err := wallpaper.Select(m.prefs, m.wallpapers, m.wallpapers[m.selected(len(m.wallpapers))].ID)
		if err != nil {
			m.notify(err.Error(), toastError)
			return m, nil
		}
		m.wallpaper = w
		m.notify("Wallpaper set to "+w.Name, toastSuccess)
		return m, nil
	case "u":
		if m.upload >= 0 {
			m.notify("An upload is already running", toastInfo)
			return m, nil
		}
		m.form = newUploadForm()
		return m, nil
	}
	return m, nil
}

func (m Model) renderWallpapers() string {
	styles := m.theme.Styles()
	var b strings.Builder
	cursor := m.selected(len(m.wallpapers))
	category := ""
	for i, w := range m.wallpapers {
		if w.Category != category {
			category = w.Category
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(styles.AccentText.Bold(true).Render(strings.ToUpper(category)))
			b.WriteString("\n")
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(w.Accent)).Render("■")
		marker := ternary(w.ID == m.wallpaper.ID, " ✓", "")
		line := padRight(w.Name, 28) + marker
		if i == cursor {
			b.WriteString(swatch + styles.Selected.Render(" "+line))
		} else {
			b.WriteString(swatch + styles.Text.Render(" "+line))
		}
		b.WriteString("\n")
	}
	if m.upload >= 0 {
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render(fmt.Sprintf("Uploading... %d%%", m.upload)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter select · u upload"))
	return b.String()
}

func (m Model) handlePresetsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	presets := m.snapshot.Presets
	if m.moveCursor(msg, len(presets)) {
		return m, nil
	}
	switch msg.String() {
	case "enter":
		if len(presets) > 0 {
			m.selectPreset(presets[m.selected(len(presets))])
		}
		return m, nil
	case "a":
		m.form = newPresetForm()
		return m, nil
	}
	return m, nil
}

func (m Model) renderPresets() string {
	styles := m.theme.Styles()
	presets := m.snapshot.Presets
	var b strings.Builder
	if len(presets) == 0 {
		b.WriteString(styles.FaintText.Render("No presets yet"))
		b.WriteString("\n")
	}
	cursor := m.selected(len(presets))
	for i, p := range presets {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.ColorTheme)).Render("●")
		line := " " + padRight(truncate(p.DisplayName(), 24), 24) + " " + timer.FormatCountdown(p.Length())
		if i == cursor {
			b.WriteString(dot + styles.Selected.Render(line))
		} else {
			b.WriteString(dot + styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("enter load into timer · a new preset"))
	return b.String()
}
