package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/sanctuary/internal/actor"
	"github.com/five82/sanctuary/internal/stats"
)

const recentSessions = 8

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "x":
		if m.client == nil {
			m.notify("Not connected: nothing to export", toastError)
			return m, nil
		}
		return m, exportSessionsCmd(m.ctx, m.client, exportDir(), m.clock.Now())
	case "a":
		m.form = newGoalForm()
		return m, nil
	case "/":
		m.form = newFilterForm(m.tagFilter)
		return m, nil
	}
	return m, nil
}

// filteredSessions applies the tag filter, newest first.
func (m Model) filteredSessions() []actor.TimerSession {
	sessions := stats.FilterByTag(m.snapshot.Sessions, m.tagFilter)
	out := append([]actor.TimerSession(nil), sessions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime > out[j].StartTime })
	return out
}

// renderDashboard renders stats cards, the weekly chart, goals and recent
// sessions.
func (m Model) renderDashboard() string {
	styles := m.theme.Styles()
	sessions := m.filteredSessions()
	summary := stats.Summarize(sessions, m.now)

	var cards []string
	for _, w := range stats.Windows {
		cards = append(cards, m.renderCard(w.String(), formatHours(summary.Hours[w])))
	}
	cards = append(cards,
		m.renderCard("Sessions", fmt.Sprintf("%d", summary.Count)),
		m.renderCard("Average", humanizeDuration(summary.Average)),
	)

	var b strings.Builder
	if m.tagFilter != "" {
		b.WriteString(styles.InfoText.Render("Filtered by #" + m.tagFilter))
		b.WriteString(styles.FaintText.Render("  (/ to change)"))
		b.WriteString("\n")
	}
	if m.width > 0 && m.width < LayoutCompactWidth {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	b.WriteString("\n\n")

	chart := m.renderWeekChart(sessions)
	goals := m.renderGoals()
	if m.width >= LayoutWideWidth {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, chart, "  ", goals))
	} else {
		b.WriteString(chart)
		b.WriteString("\n")
		b.WriteString(goals)
	}
	b.WriteString("\n")
	b.WriteString(m.renderRecent(sessions))
	return b.String()
}

func (m Model) renderCard(title, value string) string {
	styles := m.theme.Styles()
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.MutedText.Render(title),
		styles.Text.Bold(true).Render(value),
	)
	return styles.Panel.Width(14).Render(body)
}

func (m Model) renderWeekChart(sessions []actor.TimerSession) string {
	styles := m.theme.Styles()
	bars := stats.LastSevenDays(sessions, m.now)

	peak := 0.0
	for _, bar := range bars {
		peak = max(peak, bar.Hours)
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Last 7 Days"))
	b.WriteString("\n")
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.wallpaper.Accent))
	for _, bar := range bars {
		width := 0
		if peak > 0 {
			width = int(bar.Hours / peak * chartBarWidth)
		}
		if bar.Hours > 0 && width == 0 {
			width = 1
		}
		b.WriteString(styles.MutedText.Render(padRight(bar.Label, 4)))
		b.WriteString(barStyle.Render(strings.Repeat("█", width)))
		b.WriteString(styles.FaintText.Render(fmt.Sprintf(" %.2fh", bar.Hours)))
		b.WriteString("\n")
	}
	return styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderGoals() string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Goals"))
	b.WriteString("\n")

	goals := stats.Goals(m.snapshot.Goals)
	if len(goals) == 0 {
		b.WriteString(styles.FaintText.Render("No goals yet (a to add)"))
		return styles.Panel.Render(b.String())
	}

	bar := progress.New(
		progress.WithGradient(m.theme.Accent, m.theme.Success),
		progress.WithWidth(chartBarWidth),
	)
	for i, g := range goals {
		if i > 0 {
			b.WriteString("\n")
		}
		status := fmt.Sprintf("%.1f/%.1fh", g.Progress, g.TargetHours)
		if g.Achieved {
			status += " " + styles.SuccessText.Render("✓")
		}
		if g.Streak > 0 {
			status += styles.WarningText.Render(fmt.Sprintf(" %dd streak", g.Streak))
		}
		b.WriteString(styles.Text.Render(g.Name))
		b.WriteString(styles.FaintText.Render(" · " + string(g.TargetType)))
		b.WriteString("\n")
		b.WriteString(bar.ViewAs(g.Percent / 100))
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(status))
	}
	return styles.Panel.Render(b.String())
}

func (m Model) renderRecent(sessions []actor.TimerSession) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Recent Sessions"))
	b.WriteString("\n")
	if len(sessions) == 0 {
		b.WriteString(styles.FaintText.Render("No sessions recorded"))
		return b.String()
	}
	for i, s := range sessions {
		if i == recentSessions {
			break
		}
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(s.ColorTheme)).Render("●")
		line := fmt.Sprintf(" %s  %s  %s",
			s.Start().Local().Format("Mon Jan 2 15:04"),
			padRight(truncate(s.LabelText, 18), 18),
			padRight(humanizeDuration(s.Length()), 8),
		)
		b.WriteString(dot)
		b.WriteString(styles.Text.Render(line))
		if len(s.Tags) > 0 {
			b.WriteString(styles.InfoText.Render("#" + strings.Join(s.Tags, " #")))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
