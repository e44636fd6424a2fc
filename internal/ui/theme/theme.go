package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: infield dirt, outfield grass and chalk lines on a night-game navy.
var (
	Primary   = lipgloss.Color("#22A559") // Grass
	Secondary = lipgloss.Color("#C2773A") // Infield clay
	Accent    = lipgloss.Color("#FACC15") // Foul pole
	Success   = lipgloss.Color("#4ADE80") // Green
	Warning   = lipgloss.Color("#FB923C") // Orange
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // Chalk
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0B1324") // Night navy
	BgCard    = lipgloss.Color("#17223B") // Dugout
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Outcomes
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Best = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	OK = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	Bad = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)
