package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pantry/internal/api"
	"github.com/five82/pantry/internal/schedule"
)

const bannerTTL = 8 * time.Second

type bannerKind int

const (
	bannerNone bannerKind = iota
	bannerInfo
	bannerError
)

// banner is a one-line message below the footer. Info banners fade after
// bannerTTL; errors stay until dismissed or replaced.
type banner struct {
	kind bannerKind
	text string
	at   time.Time
}

func (b banner) expire(now time.Time) banner {
	if b.kind == bannerInfo && now.Sub(b.at) >= bannerTTL {
		return banner{}
	}
	return b
}

func (m *Model) setBanner(kind bannerKind, text string) {
	m.banner = banner{kind: kind, text: text, at: m.clock.Now()}
}

// renderHeader renders the status bar: logo, backend health and the offline
// indicator.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	parts := []string{bg.Render("pantry", styles.Logo)}

	if m.reach.Offline() {
		label := "● OFFLINE"
		switch {
		case m.reach.Forced:
			label += " (forced)"
		case !m.reach.Online:
			label += " (no network)"
		case !m.reach.NextProbe.IsZero():
			if wait := m.reach.NextProbe.Sub(m.now); wait > 0 {
				label += " retry in " + countdown(wait)
			}
		}
		parts = append(parts, bg.Render(label, styles.DangerText))
	} else {
		parts = append(parts, bg.Render("● ONLINE", styles.SuccessText))
	}

	if snap := m.overviewSnap; snap.HasData && (m.currentView == ViewDashboard || m.currentView == ViewSystem) {
		health := snap.Data.Health.Value
		status := strings.TrimSpace(health.Status)
		if status == "" {
			status = "unknown"
		}
		parts = append(parts, styles.StatusStyle(status).Render(strings.ToUpper(status)))
		if v := strings.TrimSpace(health.Version); v != "" && v != "N/A" {
			parts = append(parts, bg.Pair("version", v, styles.MutedText, styles.Text))
		}
		if snap.Data.FellBack() {
			parts = append(parts, bg.Render("showing fallback data", styles.WarningText))
		}
	}

	if m.width >= LayoutCompactWidth && m.reach.LastError != nil && m.reach.Offline() {
		parts = append(parts, bg.Render(truncate(m.reach.LastError.Error(), 60), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderTabs renders the view switcher.
func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Background)
	tabs := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		label := fmt.Sprintf("%d %s", i+1, v)
		if v == m.currentView {
			tabs = append(tabs, styles.Selected.Padding(0, 1).Render(label))
			continue
		}
		tabs = append(tabs, bg.Render(" "+label+" ", styles.MutedText))
	}
	return bg.FillLine(strings.Join(tabs, bg.Spaces(1)), m.width)
}

// renderFooter shows the current view's countdown, interval, auto state and
// the time of the last successful update.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var parts []string
	if m.active != nil {
		st := m.active.status()
		if st.State == schedule.Running {
			remaining := time.Duration(0)
			if !st.NextFireAt.IsZero() {
				remaining = maxDuration(st.NextFireAt.Sub(m.now), 0)
			}
			parts = append(parts, bg.Pair("next refresh", countdown(remaining), styles.MutedText, styles.AccentText))
		} else {
			parts = append(parts, bg.Render("auto refresh off", styles.WarningText))
		}
		parts = append(parts,
			bg.Pair("every", humanizeDuration(st.Interval), styles.MutedText, styles.Text),
			bg.Pair("auto", ternary(st.State == schedule.Running, "on", "off"), styles.MutedText, styles.Text),
		)
		if st.InFlight > 0 {
			parts = append(parts, bg.Render("loading…", styles.InfoText))
		}
		parts = append(parts, bg.Pair("updated", clockTime(m.active.lastUpdated()), styles.MutedText, styles.Text))
		if err := m.active.lastError(); err != nil {
			parts = append(parts, bg.Render(truncate(describeError(err), 50), styles.DangerText))
		}
	}
	parts = append(parts, bg.Render("? help", styles.FaintText))

	return styles.Footer.Width(m.width).Render(bg.Join(parts, "  "))
}

func (m Model) renderBanner() string {
	if m.banner.kind == bannerNone {
		return ""
	}
	styles := m.theme.Styles()
	style := styles.InfoText
	if m.banner.kind == bannerError {
		style = styles.DangerText
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(style.Render(truncate(m.banner.text, maxInt(m.width-2, 20))))
}

// describeError turns client errors into a short sentence for the UI.
func describeError(err error) string {
	var (
		appErr   *api.ApplicationError
		validErr *api.ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrOffline):
		return "backend offline, request not sent"
	case errors.Is(err, api.ErrUnreachable):
		return "backend unreachable"
	case errors.As(err, &validErr):
		return validErr.Error()
	case errors.As(err, &appErr):
		if appErr.Detail != "" {
			return fmt.Sprintf("backend returned %d: %s", appErr.StatusCode, appErr.Detail)
		}
		return fmt.Sprintf("backend returned %d", appErr.StatusCode)
	default:
		return err.Error()
	}
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
