package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#04B575")
	ColorDanger    = lipgloss.Color("#FF5F87")
	ColorWarning   = lipgloss.Color("#FFB86C")
	ColorMuted     = lipgloss.Color("#626262")
	ColorBorder    = lipgloss.Color("#3C3C3C")
	ColorFg        = lipgloss.Color("#FAFAFA")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorFg).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActivePaneStyle = PaneStyle.BorderForeground(ColorPrimary)

	SelectedItemStyle   = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	UnselectedItemStyle = lipgloss.NewStyle().Foreground(ColorFg)
	CategoryStyle       = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	OverLimitStyle   = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	WithinLimitStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	WarningStyle     = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle       = lipgloss.NewStyle().Foreground(ColorDanger)
	StatusBarStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)
