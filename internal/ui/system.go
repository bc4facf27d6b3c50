package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pantry/internal/api"
	"github.com/five82/pantry/internal/schedule"
)

// handleSystemKey handles the refresh controls of the system view.
func (m Model) handleSystemKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.overview == nil {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.ToggleAuto):
		st, err := m.overview.sched.Toggle()
		if err != nil {
			m.setBanner(bannerError, err.Error())
			return m, nil
		}
		auto := st == schedule.Running
		m.autoRefresh = auto
		m.prefs.AutoRefresh = &auto
		m.savePrefs()
	case key.Matches(msg, m.keys.FasterInterval):
		m.applyInterval(stepPreset(m.refresh, -1))
	case key.Matches(msg, m.keys.SlowerInterval):
		m.applyInterval(stepPreset(m.refresh, 1))
	case key.Matches(msg, m.keys.CustomInterval):
		m.editingInterval = true
		m.intervalInput.SetValue(strconv.Itoa(int(m.refresh / time.Second)))
		m.intervalInput.CursorEnd()
		cmd := m.intervalInput.Focus()
		return m, cmd
	}
	return m, nil
}

// handleIntervalKey edits the custom interval. Only whole seconds within the
// scheduler bounds are accepted; anything else leaves the interval alone.
func (m Model) handleIntervalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editingInterval = false
		m.intervalInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.editingInterval = false
		m.intervalInput.Blur()
		d, err := parseInterval(m.intervalInput.Value())
		if err != nil {
			m.setBanner(bannerError, err.Error())
			return m, nil
		}
		m.applyInterval(d)
		return m, nil
	}
	var cmd tea.Cmd
	m.intervalInput, cmd = m.intervalInput.Update(msg)
	return m, cmd
}

func parseInterval(raw string) (time.Duration, error) {
	secs, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("interval must be a whole number of seconds")
	}
	d := time.Duration(secs) * time.Second
	if err := schedule.ValidateInterval(d); err != nil {
		return 0, fmt.Errorf("interval must be between %d and %d seconds",
			int(schedule.MinInterval/time.Second), int(schedule.MaxInterval/time.Second))
	}
	return d, nil
}

func (m *Model) applyInterval(d time.Duration) {
	if m.overview == nil || d == m.refresh {
		return
	}
	if err := m.overview.sched.SetInterval(d); err != nil {
		m.setBanner(bannerError, err.Error())
		return
	}
	m.refresh = d
	m.prefs.RefreshSeconds = int(d / time.Second)
	m.savePrefs()
	m.setBanner(bannerInfo, "Refreshing every "+humanizeDuration(d))
}

// renderSystem shows refresh controls, resource gauges and endpoint health.
func (m Model) renderSystem() string {
	styles := m.theme.Styles()
	width := maxInt(m.width, 40)

	controls := m.renderIntervalControls()
	snap := m.overviewSnap
	if !snap.HasData {
		return lipgloss.JoinVertical(lipgloss.Left, controls, m.renderPlaceholder("Loading system status…"))
	}
	o := snap.Data

	gauges := m.panel("Resources", m.renderResources(o.Resources, width), width/2)
	server := m.panel("Server", m.renderServer(o.System), width-width/2)
	var top string
	if width < LayoutCompactWidth {
		top = lipgloss.JoinVertical(lipgloss.Left, gauges, server)
	} else {
		top = lipgloss.JoinHorizontal(lipgloss.Top, gauges, server)
	}

	endpoints := m.panel("API endpoints", m.renderEndpoints(o.Endpoints), width)
	body := lipgloss.JoinVertical(lipgloss.Left, controls, top, endpoints)
	if err := o.Err(); err != nil {
		body = lipgloss.JoinVertical(lipgloss.Left, body, styles.DangerText.Render(truncate(err.Error(), width-2)))
	}
	return lipgloss.NewStyle().MaxHeight(m.contentHeight()).Render(body)
}

func (m Model) renderIntervalControls() string {
	styles := m.theme.Styles()
	var presets []string
	for _, p := range intervalPresets {
		label := humanizeDuration(p)
		if p == m.refresh {
			presets = append(presets, styles.Selected.Padding(0, 1).Render(label))
		} else {
			presets = append(presets, styles.MutedText.Padding(0, 1).Render(label))
		}
	}
	auto := styles.SuccessText.Render("auto on")
	if !m.autoRefresh {
		auto = styles.WarningText.Render("auto off")
	}
	line := styles.Text.Render("Refresh ") + strings.Join(presets, "") + "  " + auto
	if m.editingInterval {
		line += "  " + m.intervalInput.View()
	} else if !isPreset(m.refresh) {
		line += "  " + styles.AccentText.Render("custom "+humanizeDuration(m.refresh))
	}
	hint := styles.FaintText.Render("  -/+ preset  c custom  a auto  r now")
	return line + hint
}

func isPreset(d time.Duration) bool {
	for _, p := range intervalPresets {
		if p == d {
			return true
		}
	}
	return false
}

func (m Model) renderResources(res api.Result[api.Resources], width int) string {
	styles := m.theme.Styles()
	r := res.Value
	barWidth := maxInt(width/2-24, 10)
	bar := progress.New(
		progress.WithGradient(m.theme.GaugeFrom, m.theme.GaugeTo),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	gauge := func(label string, percent float64, detail string) string {
		return styles.MutedText.Render(padRight(label, 8)) +
			bar.ViewAs(clampPercent(percent)/100) +
			styles.Text.Render(fmt.Sprintf(" %5.1f%%", clampPercent(percent))) +
			styles.FaintText.Render(" "+detail)
	}

	load := make([]string, 0, len(r.CPU.LoadAverage))
	for _, v := range r.CPU.LoadAverage {
		load = append(load, strconv.FormatFloat(v, 'f', 2, 64))
	}
	lines := []string{
		gauge("cpu", r.CPU.UsagePercent, fmt.Sprintf("%d cores", r.CPU.Cores)),
		gauge("memory", r.Memory.UsagePercent, fmt.Sprintf("%.1f/%.1f GB", r.Memory.UsedGB, r.Memory.TotalGB)),
		gauge("disk", r.Disk.UsagePercent, fmt.Sprintf("%.1f/%.1f GB", r.Disk.UsedGB, r.Disk.TotalGB)),
		m.kv("load", strings.Join(load, " ")),
		m.kv("network", fmt.Sprintf("in %.1f Mbps  out %.1f Mbps  %d conns", r.Network.InMbps, r.Network.OutMbps, r.Network.Connections)),
	}
	if line := m.outcomeLine(res.Outcome, res.Err); line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderServer(res api.Result[api.SystemInfo]) string {
	styles := m.theme.Styles()
	info := res.Value
	lines := []string{
		m.kv("status", styles.StatusStyle(statusWord(info.Status)).Render(statusWord(info.Status))),
		m.kv("hostname", fallbackText(info.Server.Hostname)),
		m.kv("uptime", fallbackText(info.Uptime)),
		m.kv("database", styles.StatusStyle(statusWord(info.Database.Status)).Render(statusWord(info.Database.Status))),
		m.kv("db version", fallbackText(info.Database.Version)),
		m.kv("tables", strconv.Itoa(info.Database.TablesCount)),
	}
	if line := m.outcomeLine(res.Outcome, res.Err); line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderEndpoints(res api.Result[[]api.Endpoint]) string {
	styles := m.theme.Styles()
	if len(res.Value) == 0 {
		return styles.FaintText.Render("no endpoints reported")
	}
	var b strings.Builder
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("%-7s %-32s %-10s %9s %8s", "method", "path", "status", "latency", "uptime")))
	for _, e := range res.Value {
		b.WriteString("\n")
		b.WriteString(styles.Text.Render(fmt.Sprintf("%-7s %-32s ", strings.ToUpper(e.Method), truncateMiddle(e.Path, 32))))
		b.WriteString(styles.StatusStyle(statusWord(e.Status)).Render(padRight(statusWord(e.Status), 8)))
		b.WriteString(styles.Text.Render(fmt.Sprintf(" %7.0fms %7.1f%%", e.ResponseTime, e.UptimePercent)))
	}
	if line := m.outcomeLine(res.Outcome, res.Err); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
