package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan
	colorSuccess   = lipgloss.Color("#10B981") // Green
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorError     = lipgloss.Color("#EF4444") // Red
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorHighlight = lipgloss.Color("#374151") // Highlight bg

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	dayStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Background(colorHighlight).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#111827")).
			Foreground(lipgloss.Color("#9CA3AF")).
			PaddingLeft(1).
			PaddingRight(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning).
			Bold(true)
)

// termcolor-style names mapped to ANSI palette indices.
var namedColors = map[string]string{
	"black":         "0",
	"red":           "1",
	"green":         "2",
	"yellow":        "3",
	"blue":          "4",
	"magenta":       "5",
	"cyan":          "6",
	"white":         "7",
	"grey":          "8",
	"gray":          "8",
	"light_grey":    "7",
	"light_gray":    "7",
	"dark_grey":     "8",
	"dark_gray":     "8",
	"light_red":     "9",
	"light_green":   "10",
	"light_yellow":  "11",
	"light_blue":    "12",
	"light_magenta": "13",
	"light_cyan":    "14",
}

// Theme renders team names in their configured colors.
type Theme struct {
	teams map[string]lipgloss.Style
}

// NewTheme builds a theme from team -> color identifiers. Identifiers may be
// color names, ANSI numbers or hex values.
func NewTheme(colors map[string]string) *Theme {
	t := &Theme{teams: make(map[string]lipgloss.Style, len(colors))}
	for team, name := range colors {
		c := resolveColor(name)
		if c == "" {
			continue
		}
		t.teams[team] = lipgloss.NewStyle().Bold(true).Foreground(c)
	}
	return t
}

// Team returns the team name, styled if it has a color.
func (t *Theme) Team(name string) string {
	if t == nil {
		return name
	}
	style, ok := t.teams[name]
	if !ok {
		return name
	}
	return style.Render(name)
}

// HasColor reports whether the team has a configured color.
func (t *Theme) HasColor(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.teams[name]
	return ok
}

func resolveColor(name string) lipgloss.Color {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return ""
	}
	if idx, ok := namedColors[key]; ok {
		return lipgloss.Color(idx)
	}
	return lipgloss.Color(strings.TrimSpace(name))
}
