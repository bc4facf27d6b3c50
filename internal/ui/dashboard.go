package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pantry/internal/api"
	"github.com/five82/pantry/internal/loader"
)

// renderDashboard shows backend health, table counts, endpoint health and the
// recent activity feed.
func (m Model) renderDashboard() string {
	snap := m.overviewSnap
	if !snap.HasData {
		return m.renderPlaceholder("Loading dashboard…")
	}
	o := snap.Data
	width := maxInt(m.width, 40)
	compact := width < LayoutCompactWidth

	var top string
	if compact {
		top = lipgloss.JoinVertical(lipgloss.Left,
			m.panel("Backend", m.renderBackend(o), width),
			m.panel("Database", m.renderTables(o.Tables), width),
		)
	} else {
		top = lipgloss.JoinHorizontal(lipgloss.Top,
			m.panel("Backend", m.renderBackend(o), width/2),
			m.panel("Database", m.renderTables(o.Tables), width-width/2),
		)
	}

	activity := m.panel("Recent activity", m.renderActivities(o.Activities), width)
	return lipgloss.NewStyle().MaxHeight(m.contentHeight()).Render(
		lipgloss.JoinVertical(lipgloss.Left, top, activity),
	)
}

func (m Model) renderBackend(o loader.Overview) string {
	styles := m.theme.Styles()
	health := o.Health.Value
	info := o.System.Value

	lines := []string{
		m.kv("status", styles.StatusStyle(statusWord(health.Status)).Render(statusWord(health.Status))),
		m.kv("version", fallbackText(firstNonEmpty(info.Version, health.Version))),
		m.kv("environment", fallbackText(firstNonEmpty(info.Environment, health.Environment))),
		m.kv("uptime", fallbackText(info.Uptime)),
	}

	up, total := 0, len(o.Endpoints.Value)
	for _, e := range o.Endpoints.Value {
		if e.Up() {
			up++
		}
	}
	endpoints := fmt.Sprintf("%d/%d up", up, total)
	style := styles.SuccessText
	if up < total {
		style = styles.WarningText
	}
	if up == 0 && total > 0 {
		style = styles.DangerText
	}
	lines = append(lines, m.kv("endpoints", style.Render(endpoints)))
	if line := m.outcomeLine(o.Health.Outcome, o.Health.Err); line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderTables(res api.Result[[]api.Table]) string {
	styles := m.theme.Styles()
	if len(res.Value) == 0 {
		return styles.FaintText.Render("no tables")
	}
	var b strings.Builder
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%-18s %10s %10s  %s", "table", "rows", "size", "status")))
	for _, t := range res.Value {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(fmt.Sprintf("%-18s %10d %10s  ", truncate(t.Name, 18), t.RowCount, truncate(t.Size, 10))))
		b.WriteString(styles.StatusStyle(statusWord(t.Status)).Render(statusWord(t.Status)))
	}
	if line := m.outcomeLine(res.Outcome, res.Err); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

func (m Model) renderActivities(res api.Result[api.Page[api.Activity]]) string {
	styles := m.theme.Styles()
	items := res.Value.Items
	if len(items) == 0 {
		msg := "no recent activity"
		if res.Outcome != api.Success {
			msg = "activity unavailable"
		}
		return styles.FaintText.Render(msg)
	}
	var b strings.Builder
	for i, a := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		when := "--:--"
		if ts := a.ParsedTimestamp(); !ts.IsZero() {
			when = ts.Local().Format("01-02 15:04")
		}
		b.WriteString(styles.FaintText.Render(padRight(when, 12)))
		b.WriteString(styles.StatusStyle(strings.ToLower(a.Type)).Render(padRight(strings.ToUpper(a.Type), 6)))
		b.WriteString(" ")
		b.WriteString(styles.AccentText.Render(padRight(truncate(a.Table, 12), 12)))
		b.WriteString(styles.Text.Render(truncate(a.Details, maxInt(m.width-40, 20))))
		if a.User != "" {
			b.WriteString(styles.MutedText.Render("  by " + a.User))
		}
	}
	return b.String()
}

// outcomeLine explains a non-successful read under its panel.
func (m Model) outcomeLine(outcome api.Outcome, err error) string {
	styles := m.theme.Styles()
	switch outcome {
	case api.Fallback:
		return styles.WarningText.Render("offline, showing defaults")
	case api.Failure:
		return styles.DangerText.Render(truncate(describeError(err), 60))
	}
	return ""
}

func (m Model) panel(title, body string, width int) string {
	styles := m.theme.Styles()
	return styles.Panel.Width(maxInt(width-2, 10)).Render(styles.Title.Render(title) + "\n" + body)
}

func (m Model) kv(label, value string) string {
	styles := m.theme.Styles()
	return styles.MutedText.Render(padRight(label, 13)) + value
}

func (m Model) renderPlaceholder(text string) string {
	styles := m.theme.Styles()
	return lipgloss.Place(maxInt(m.width, 1), m.contentHeight(), lipgloss.Center, lipgloss.Center, styles.MutedText.Render(text))
}

func statusWord(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "unknown"
	}
	return s
}

func fallbackText(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
