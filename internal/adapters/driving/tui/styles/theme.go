// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/kwscope/internal/core/domain"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is used for headings and badges.
	Secondary lipgloss.Color

	Foreground lipgloss.Color
	Muted      lipgloss.Color

	// Low, Medium and High colour the competition column.
	Low    lipgloss.Color
	Medium lipgloss.Color
	High   lipgloss.Color

	Error  lipgloss.Color
	Border lipgloss.Color

	// Highlight is the selected row background.
	Highlight lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Low:        lipgloss.Color("#A6E3A1"), // Green
		Medium:     lipgloss.Color("#F9E2AF"), // Yellow
		High:       lipgloss.Color("#FAB387"), // Orange
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"),
		Highlight:  lipgloss.Color("#313244"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style

	// Selected highlights the focused item in lists.
	Selected lipgloss.Style

	Error lipgloss.Style

	// Badge marks brand keywords and active filters.
	Badge lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style

	// Spinner colours the loading indicator.
	Spinner lipgloss.Style

	low    lipgloss.Style
	medium lipgloss.Style
	high   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Badge: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),

		low:    lipgloss.NewStyle().Foreground(theme.Low),
		medium: lipgloss.NewStyle().Foreground(theme.Medium),
		high:   lipgloss.NewStyle().Foreground(theme.High),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Competition returns the style for a competition level.
func (s *Styles) Competition(c domain.Competition) lipgloss.Style {
	switch c {
	case domain.CompetitionLow:
		return s.low
	case domain.CompetitionMedium:
		return s.medium
	case domain.CompetitionHigh:
		return s.high
	default:
		return s.Normal
	}
}

// Table returns styles for the keyword table.
func (s *Styles) Table() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(s.theme.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(s.theme.Foreground)
	ts.Selected = ts.Selected.
		Foreground(s.theme.Foreground).
		Background(s.theme.Highlight).
		Bold(true)
	return ts
}
