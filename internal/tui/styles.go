package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	ColorBgHighlight = lipgloss.Color("#2C313C")

	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorFgComment   = lipgloss.Color("#5C6370")

	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")

	ColorBorder = lipgloss.Color("#3F4451")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true).
			PaddingLeft(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	// Timer
	ClockStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true)

	ProgressFilledStyle = lipgloss.NewStyle().
				Foreground(ColorRed)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	StatusRunningStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	StatusPausedStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	StatusIdleStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	// Task rows
	TaskPendingStyle = lipgloss.NewStyle().
				Foreground(ColorFgPrimary)

	TaskActiveStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	TaskCompleteStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Strikethrough(true)

	SelectedStyle = lipgloss.NewStyle().
			Background(ColorBgHighlight)

	CounterStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	CounterReachedStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	StatLabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary)

	StatValueStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)
