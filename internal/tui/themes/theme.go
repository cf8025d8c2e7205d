// Package themes holds the color themes of the interactive dashboard.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	Box           lipgloss.Style
	FocusedBox    lipgloss.Style
	Card          lipgloss.Style
	FocusedCard   lipgloss.Style
	Modal         lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusInfo    lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Completed     lipgloss.Color
	Pending       lipgloss.Color
	Remaining     lipgloss.Color
	Punch         lipgloss.Color
	Hold          lipgloss.Color
}

// Accent returns the color of a series label or summary card.
func (t Theme) Accent(label string) lipgloss.Color {
	switch label {
	case "Completed":
		return t.Completed
	case "Pending":
		return t.Pending
	case "Remaining":
		return t.Remaining
	case "Punch":
		return t.Punch
	case "Hold Point":
		return t.Hold
	default:
		return t.Primary
	}
}

func build(primary, fg, muted, border, success, warning, errColor, info, hold lipgloss.Color) Theme {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(16)

	return Theme{
		Primary:   primary,
		Muted:     muted,
		Border:    border,
		Completed: success,
		Pending:   warning,
		Remaining: muted,
		Punch:     errColor,
		Hold:      hold,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(lipgloss.Color("#1a1a1a")).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(border).
			Foreground(fg),

		Box:         box,
		FocusedBox:  box.BorderForeground(primary),
		Card:        card,
		FocusedCard: card.BorderForeground(primary),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(primary).
			Padding(1, 2),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(warning).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(info).
			Bold(true),
	}
}

// Default is the default theme.
var Default = build(
	lipgloss.Color("#3b82f6"), // primary
	lipgloss.Color("#fafafa"), // foreground
	lipgloss.Color("#737373"), // muted
	lipgloss.Color("#404040"), // border
	lipgloss.Color("#10b981"), // completed
	lipgloss.Color("#f59e0b"), // pending
	lipgloss.Color("#ef4444"), // punch
	lipgloss.Color("#3b82f6"), // info
	lipgloss.Color("#a78bfa"), // hold
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(
	lipgloss.Color("#89b4fa"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f9e2af"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#89dceb"),
	lipgloss.Color("#cba6f7"),
)

// Names lists the selectable theme names.
var Names = []string{"default", "catppuccin-mocha"}

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
