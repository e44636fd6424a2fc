package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/drillq/drillq/internal/ui/components"
	"github.com/drillq/drillq/internal/ui/theme"
)

const titleFull = `█▀▄ █▀█ █ █   █   █▀█
█▄▀ █▀▄ █ █▄▄ █▄▄ ▀▀█`

const titleCompact = "D · R · I · L · L · Q"

const diamond = `      2B
     ╱  ╲
   3B ◇  1B
     ╲  ╱
      HP`

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	title := titleFull
	if compact {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

func renderDiamond(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Render(diamond)
}

func renderStatusBar(due, unseen int, rate float64, attempts, cw int) string {
	dueStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	newStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	dueText := dim.Render("● NONE DUE")
	if due > 0 {
		dueText = dueStyle.Render(fmt.Sprintf("● %d DUE", due))
	}
	rateText := dim.Render("NO ANSWERS YET")
	if attempts > 0 {
		rateText = dim.Render(fmt.Sprintf("%.0f%% BEST", rate*100))
	}

	stats := fmt.Sprintf("%s  %s  %s",
		dueText,
		newStyle.Render(fmt.Sprintf("◇ %d NEW", unseen)),
		rateText,
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(m.View(buttonWidth))
}

func renderNotice(text string, failed bool, cw int) string {
	color := theme.Success
	if failed {
		color = theme.Error
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(color).
		Render(text)
}
