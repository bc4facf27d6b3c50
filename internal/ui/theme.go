package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the palette the UI renders with.
type Theme struct {
	Name string

	Background string
	Surface    string
	SurfaceAlt string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// GaugeFrom and GaugeTo are the ends of the resource gauge gradient.
	GaugeFrom string
	GaugeTo   string

	// StatusColors maps backend status words to a badge color.
	StatusColors map[string]string
}

// Styles contains pre-built Lipgloss styles for a theme.
type Styles struct {
	Surface lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Panel    lipgloss.Style
	Title    lipgloss.Style

	statusColors map[string]string
	background   string
	muted        string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	bar := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(color)).
			Padding(0, 1)
	}
	return Styles{
		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),

		Header: bar(t.Text),
		Footer: bar(t.Muted),
		Logo:   fg(t.Warning).Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		Title: fg(t.Accent).Bold(true),

		statusColors: t.StatusColors,
		background:   t.Background,
		muted:        t.Muted,
	}
}

// StatusStyle returns a badge style for a backend status word. Unknown words
// use the muted color.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[strings.ToLower(strings.TrimSpace(status))]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles whose text styles carry an explicit
// background, so segments rendered side by side do not leave gaps.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Surface = s.Surface.Background(bg)
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Footer = s.Footer.Background(bg)
	out.Logo = s.Logo.Background(bg)
	out.Title = s.Title.Background(bg)
	return out
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, defaulting to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

// statusPalette maps the status words the backend and UI use onto theme tones.
func statusPalette(good, warn, bad, idle, info string) map[string]string {
	return map[string]string{
		"healthy":   good,
		"connected": good,
		"active":    good,
		"up":        good,
		"running":   good,
		"create":    good,
		"degraded":  warn,
		"slow":      warn,
		"update":    info,
		"fallback":  warn,
		"unhealthy": bad,
		"error":     bad,
		"down":      bad,
		"failed":    bad,
		"delete":    bad,
		"offline":   bad,
		"inactive":  idle,
		"stopped":   idle,
		"unknown":   idle,
	}
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:          "Nightfox",
		Background:    "#131a24",
		Surface:       "#192330",
		SurfaceAlt:    "#212e3f",
		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",
		Border:        "#39506d",
		BorderFocus:   "#719cd6",
		Text:          "#cdcecf",
		Muted:         "#738091",
		Faint:         "#71839b",
		Accent:        "#719cd6",
		Success:       "#81b29a",
		Warning:       "#dbc074",
		Danger:        "#c94f6d",
		Info:          "#63cdcf",
		GaugeFrom:     "#81b29a",
		GaugeTo:       "#c94f6d",
		StatusColors:  statusPalette("#81b29a", "#dbc074", "#c94f6d", "#738091", "#63cdcf"),
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:          "Kanagawa",
		Background:    "#16161D",
		Surface:       "#1F1F28",
		SurfaceAlt:    "#2A2A37",
		SelectionBg:   "#2D4F67",
		SelectionText: "#DCD7BA",
		Border:        "#54546D",
		BorderFocus:   "#7E9CD8",
		Text:          "#DCD7BA",
		Muted:         "#C8C093",
		Faint:         "#727169",
		Accent:        "#7E9CD8",
		Success:       "#98BB6C",
		Warning:       "#E6C384",
		Danger:        "#E46876",
		Info:          "#7FB4CA",
		GaugeFrom:     "#98BB6C",
		GaugeTo:       "#E46876",
		StatusColors:  statusPalette("#98BB6C", "#E6C384", "#E46876", "#727169", "#7FB4CA"),
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name:          "Slate",
		Background:    "#020617",
		Surface:       "#0f172a",
		SurfaceAlt:    "#1e293b",
		SelectionBg:   "#0284c7",
		SelectionText: "#f8fafc",
		Border:        "#334155",
		BorderFocus:   "#38bdf8",
		Text:          "#f1f5f9",
		Muted:         "#94a3b8",
		Faint:         "#64748b",
		Accent:        "#38bdf8",
		Success:       "#22c55e",
		Warning:       "#f59e0b",
		Danger:        "#ef4444",
		Info:          "#06b6d4",
		GaugeFrom:     "#22c55e",
		GaugeTo:       "#dc2626",
		StatusColors:  statusPalette("#16a34a", "#f59e0b", "#dc2626", "#64748b", "#06b6d4"),
	}
}
