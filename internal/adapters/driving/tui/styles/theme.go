// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/lexiverse-cli/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#3B82F6"), // Blue
		Secondary:  lipgloss.Color("#8B5CF6"), // Violet
		Foreground: lipgloss.Color("#E5E7EB"), // Light gray
		Muted:      lipgloss.Color("#6B7280"), // Medium gray
		Success:    lipgloss.Color("#10B981"), // Green
		Warning:    lipgloss.Color("#F59E0B"), // Amber
		Error:      lipgloss.Color("#EF4444"), // Red
		Border:     lipgloss.Color("#374151"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for panel headers.
	Title lipgloss.Style

	// Subtitle style for section headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// ActiveTab and Tab style the summary panel tabs.
	ActiveTab lipgloss.Style
	Tab       lipgloss.Style

	// Error, Success and Warning colour outcomes.
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// Notice frames the "analysis takes a while" hint.
	Notice lipgloss.Style

	// Quote styles the rotating legal quote.
	Quote lipgloss.Style

	// UserMessage and AssistantMessage style chat turns.
	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style

	// InputField style for the input line.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for key hints.
	Help lipgloss.Style

	// Panel frames the summary and chat panels.
	Panel lipgloss.Style
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

		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		Notice: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Warning).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Warning).
			Padding(0, 1),

		Quote: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Muted),

		UserMessage: lipgloss.NewStyle().
			Foreground(theme.Primary),

		AssistantMessage: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#111827")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
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

// Status returns the style used to show a session status.
func (s *Styles) Status(status domain.SessionStatus) lipgloss.Style {
	switch status {
	case domain.StatusReady:
		return s.Success
	case domain.StatusRejected:
		return s.Warning
	case domain.StatusError:
		return s.Error
	default:
		return s.Muted
	}
}
