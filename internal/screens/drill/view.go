package drill

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/spacedrep"
	"github.com/drillq/drillq/internal/ui/components"
	"github.com/drillq/drillq/internal/ui/theme"
)

func (s *DrillScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.phase {
	case phaseQuestion:
		body = s.renderQuestion(cw)
	case phaseFeedback:
		body = s.renderQuestion(cw) + "\n" + s.renderFeedback(cw)
	case phaseEmpty:
		body = s.renderEmpty(cw)
	case phaseError:
		body = theme.Bad.Render("Something went wrong") + "\n\n" +
			lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).Render(s.err.Error())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *DrillScreen) renderQuestion(cw int) string {
	var b strings.Builder
	sc := s.scenario

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(situationLine(sc))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("answered %d", s.answered))
	pad := max(cw-lipgloss.Width(infoLeft)-lipgloss.Width(infoRight), 1)

	b.WriteString(infoLeft + strings.Repeat(" ", pad) + infoRight)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(cw).
		Foreground(theme.Text).
		Bold(true).
		Render(sc.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.choices.View(cw))

	if s.phase == phaseQuestion && s.timeout > 0 {
		b.WriteString("\n")
		b.WriteString(s.countdown.View(cw))
	}
	return b.String()
}

func (s *DrillScreen) renderFeedback(cw int) string {
	out := s.outcome
	if out == nil {
		return ""
	}

	var headline string
	switch out.Quality {
	case spacedrep.QualityBest:
		headline = "Best play!"
	case spacedrep.QualityOK:
		headline = "Acceptable, but there is a better play."
	case spacedrep.QualityTimeout:
		headline = "Time's up!"
	default:
		headline = "Not this time."
	}

	var b strings.Builder
	b.WriteString(components.QualityStyle(out.Quality).Render(headline))
	b.WriteString("\n\n")

	best := out.Scenario.Best
	b.WriteString(theme.Best.Render("Best: " + best.Label))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(best.CoachingCue))

	if cue := chosenCue(out.Scenario, out.Quality); cue != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 6).Render(cue))
	}

	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render(nextDueText(out.Progress, s.now())))

	return components.Card(b.String(), cw)
}

func (s *DrillScreen) renderEmpty(cw int) string {
	st := s.svc.Stats(s.filter)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Nothing due right now"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw).Align(lipgloss.Center).Render(
		fmt.Sprintf("You have worked through all %d scenarios and none is due yet.", st.CatalogSize)))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Press r to start a new session or Esc to go home."))
	return b.String()
}

func situationLine(sc catalog.Scenario) string {
	parts := []string{catalog.SportDisplayName(sc.Sport), catalog.LevelDisplayName(sc.Level)}
	if sc.Position != "" {
		parts = append(parts, string(sc.Position))
	}
	if sc.Category != "" {
		parts = append(parts, sc.Category)
	}
	return strings.Join(parts, " · ")
}

// chosenCue returns the coaching cue of a non-best pick, if it has one.
func chosenCue(sc catalog.Scenario, q spacedrep.Quality) string {
	switch q {
	case spacedrep.QualityOK:
		return sc.OK.CoachingCue
	case spacedrep.QualityBad:
		return sc.Bad.CoachingCue
	}
	return ""
}

func nextDueText(p spacedrep.Progress, now time.Time) string {
	until := p.NextDue.Sub(now)
	switch {
	case until < time.Hour:
		return fmt.Sprintf("Back in about %d minutes.", max(int(until.Minutes()+0.5), 1))
	case until < spacedrep.Day:
		return fmt.Sprintf("Back in about %d hours.", int(until.Hours()+0.5))
	}
	if days := p.DaysUntilDue(now); days > 1 {
		return fmt.Sprintf("Back in %d days.", days)
	}
	return "Back tomorrow."
}
