package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/spacedrep"
	"github.com/drillq/drillq/internal/ui/theme"
)

// ChoiceList shows a scenario's lettered options. Once revealed it colors
// every option by its grade and marks the one the player picked.
type ChoiceList struct {
	Choices  []catalog.Choice
	Selected int
	Revealed bool
	Chosen   spacedrep.Quality
}

// NewChoiceList creates a list with the first option selected.
func NewChoiceList(choices []catalog.Choice) ChoiceList {
	return ChoiceList{Choices: choices}
}

// Up moves the cursor up.
func (c ChoiceList) Up() ChoiceList {
	if !c.Revealed && c.Selected > 0 {
		c.Selected--
	}
	return c
}

// Down moves the cursor down.
func (c ChoiceList) Down() ChoiceList {
	if !c.Revealed && c.Selected < len(c.Choices)-1 {
		c.Selected++
	}
	return c
}

// Current returns the choice under the cursor.
func (c ChoiceList) Current() (catalog.Choice, bool) {
	if c.Selected < 0 || c.Selected >= len(c.Choices) {
		return catalog.Choice{}, false
	}
	return c.Choices[c.Selected], true
}

// Reveal freezes the list and records the player's grade.
func (c ChoiceList) Reveal(q spacedrep.Quality) ChoiceList {
	c.Revealed = true
	c.Chosen = q
	return c
}

// View renders the options.
func (c ChoiceList) View(width int) string {
	var b strings.Builder
	desc := lipgloss.NewStyle().Foreground(theme.TextDim).Width(max(width-6, 10)).PaddingLeft(6)

	for i, ch := range c.Choices {
		prefix := "  "
		if !c.Revealed && i == c.Selected {
			prefix = "▸ "
		}
		line := prefix + ch.Letter + ")  " + ch.Option.Label

		var style lipgloss.Style
		switch {
		case c.Revealed:
			style = revealStyle(ch.Quality, ch.Quality == c.Chosen)
		case i == c.Selected:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		if c.Revealed && ch.Quality == c.Chosen {
			line += "  ◂ your pick"
		}

		b.WriteString(style.Render(line))
		b.WriteString("\n")
		if ch.Option.Description != "" {
			b.WriteString(desc.Render(ch.Option.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func revealStyle(q spacedrep.Quality, chosen bool) lipgloss.Style {
	switch {
	case q == spacedrep.QualityBest:
		return theme.Best
	case !chosen:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	case q == spacedrep.QualityOK:
		return theme.OK
	default:
		return theme.Bad
	}
}

// QualityStyle returns the color used for a grade.
func QualityStyle(q spacedrep.Quality) lipgloss.Style {
	switch q {
	case spacedrep.QualityBest:
		return theme.Best
	case spacedrep.QualityOK:
		return theme.OK
	default:
		return theme.Bad
	}
}
