package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle renders bar segments on one background color. Lipgloss resets
// between styled segments leave gaps, so every word and every space gets the
// background explicitly. See https://github.com/charmbracelet/lipgloss/discussions/78
type BgStyle struct {
	bg    lipgloss.Color
	space string
}

// NewBgStyle returns a helper for the given background color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render styles text word by word so the spaces between words keep the
// background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.space)
}

// Spaces returns n styled spaces.
func (b BgStyle) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// Join joins rendered parts with a styled separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(b.bg).Render(sep))
}

// Pair renders a muted label followed by a value.
func (b BgStyle) Pair(label, value string, labelStyle, valueStyle lipgloss.Style) string {
	return b.Render(label, labelStyle) + b.space + b.Render(value, valueStyle)
}

// FillLine pads rendered content to width with the background color.
func (b BgStyle) FillLine(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}
