package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sanctuary/internal/ambient"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	var parts []string

	// Logo tinted by the wallpaper accent
	logo := styles.Logo.Foreground(lipgloss.Color(m.wallpaper.Accent))
	parts = append(parts, bg.Render("sanctuary", logo))

	// Running timers other than the one on screen
	for _, mode := range modeOrder {
		if mode == m.mode || !m.timerFor(mode).Running() {
			continue
		}
		readout, _ := m.timerReadout(mode)
		parts = append(parts,
			bg.Render(mode.Title()+":", styles.MutedText)+bg.Space()+bg.Render(readout, styles.InfoText))
	}

	parts = append(parts, m.formatAmbient(compact, styles, bg))

	if !compact {
		parts = append(parts, bg.Render(m.wallpaper.Name, styles.FaintText))
	}

	if status := m.formatConnection(styles, bg); status != "" {
		parts = append(parts, status)
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(styles.Header.Render(bg.Join(parts, "  ")))
}

// formatAmbient renders the sound badge and volume.
func (m Model) formatAmbient(compact bool, styles Styles, bg BgStyle) string {
	if m.ambient == nil {
		return bg.Render("♪ off", styles.FaintText)
	}
	name := "no sound"
	if s, ok := ambient.Find(m.ambient.Sounds(), m.sound.SoundID); ok {
		name = s.Name
	}
	label := strings.ToUpper(string(m.sound.State))
	if m.sound.State == ambient.StateBlocked {
		label = "PRESS P"
	}
	out := styles.AmbientBadge(string(m.sound.State)).Render(label)
	if !compact {
		out += bg.Space() + bg.Render(name, styles.Text) + bg.Space() +
			bg.Render(fmt.Sprintf("%d%%", m.sound.Volume), styles.MutedText)
	}
	return out
}

// formatConnection reports actor reachability.
func (m Model) formatConnection(styles Styles, bg BgStyle) string {
	snap := m.snapshot
	switch {
	case m.client == nil:
		return bg.Render("LOCAL", styles.WarningText.Bold(true))
	case snap.IsOffline():
		return bg.Render("OFFLINE", styles.DangerText) + bg.Space() +
			bg.Render(classifyConnectionError(snap.LastError), styles.MutedText) + bg.Space() +
			bg.Render(m.formatTimestamp(), styles.FaintText)
	case !snap.HasData && snap.LastError == nil:
		return bg.Render("Connecting...", styles.WarningText)
	}
	return ""
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	last := m.snapshot.LastUpdated
	if last.IsZero() {
		return ""
	}

	since := m.now.Sub(last)
	out := last.Format("15:04:05")

	if since < time.Minute {
		out += " (now)"
	} else if since < time.Hour {
		out += fmt.Sprintf(" (%dm ago)", int(since.Minutes()))
	} else if since < 24*time.Hour {
		out += fmt.Sprintf(" (%dh ago)", int(since.Hours()))
	}

	return out
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "connection refused"
	case strings.Contains(msg, "no such host"):
		return "host not found"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "timeout"
	default:
		return "error"
	}
}

// renderTabs renders the view switcher.
func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	tabs := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		label := fmt.Sprintf(" %d %s ", i+1, v.Title())
		if v == m.view {
			tabs = append(tabs, styles.Selected.Bold(true).Render(label))
		} else {
			tabs = append(tabs, styles.MutedText.Render(label))
		}
	}
	return strings.Join(tabs, styles.FaintText.Render("│"))
}

// renderFooter shows the current notification or the short key help.
func (m Model) renderFooter() string {
	if m.toast.text != "" {
		return m.renderToast()
	}
	h := help.New()
	h.Width = m.width
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
	return h.View(m.keys) + lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint)).Render("  T "+m.theme.Name)
}

func (m Model) renderToast() string {
	styles := m.theme.Styles()
	switch m.toast.kind {
	case toastSuccess:
		return styles.SuccessText.Render("✓ " + m.toast.text)
	case toastError:
		return styles.DangerText.Render("✗ " + m.toast.text)
	default:
		return styles.InfoText.Render("• " + m.toast.text)
	}
}
