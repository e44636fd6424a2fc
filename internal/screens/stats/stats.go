// Package stats renders the drill statistics of the current session.
package stats

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/drill"
	"github.com/drillq/drillq/internal/practice"
	"github.com/drillq/drillq/internal/router"
	"github.com/drillq/drillq/internal/screen"
	"github.com/drillq/drillq/internal/spacedrep"
	"github.com/drillq/drillq/internal/ui/components"
	"github.com/drillq/drillq/internal/ui/layout"
	"github.com/drillq/drillq/internal/ui/theme"
)

// StatsScreen shows GetDrillStats for the session, recomputed on every view.
type StatsScreen struct {
	svc    *practice.Service
	filter catalog.Filter
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen over the filtered catalog.
func New(svc *practice.Service, filter catalog.Filter) *StatsScreen {
	return &StatsScreen{svc: svc, filter: filter}
}

func (s *StatsScreen) Init() tea.Cmd {
	return nil
}

func (s *StatsScreen) Title() string {
	return "Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	st := s.svc.Stats(s.filter)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Session stats"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render(filterLabel(s.filter)))
	b.WriteString("\n\n")

	if st.TotalAttempts == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("No answers yet. Start a drill!"))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
	}

	bar := components.NewProgressBar("Correct", st.CorrectRate, true, cw-6)
	bar.Fill = theme.Primary
	b.WriteString(components.Card(bar.View()+"\n\n"+renderTable(st), cw))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func renderTable(st drill.DrillStats) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(22)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)

	type row struct {
		name  string
		value string
		style lipgloss.Style
	}
	rows := []row{
		{"Scenarios seen", fmt.Sprintf("%d of %d", st.ScenariosSeen, st.CatalogSize), value},
		{"Total attempts", fmt.Sprintf("%d", st.TotalAttempts), value},
	}
	for _, q := range spacedrep.AllQualities() {
		rows = append(rows, row{outcomeLabel(q), fmt.Sprintf("%d", st.Count(q)), components.QualityStyle(q)})
	}
	rows = append(rows,
		row{"Due now", fmt.Sprintf("%d", st.DueNow), lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)},
		row{"Never seen", fmt.Sprintf("%d", st.Unseen), value},
		row{"Average ease", fmt.Sprintf("%.2f", st.AverageEase), value},
		row{"Average interval", formatDays(st.AverageInterval), value},
	)
	if st.DueNow > 0 {
		rows = append(rows, row{"Most overdue", formatDays(st.MostOverdueDays), theme.Bad})
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, label.Render(r.name)+r.style.Render(r.value))
	}
	return strings.Join(lines, "\n")
}

func outcomeLabel(q spacedrep.Quality) string {
	switch q {
	case spacedrep.QualityBest:
		return "Best"
	case spacedrep.QualityOK:
		return "Acceptable"
	case spacedrep.QualityBad:
		return "Wrong"
	default:
		return "Timeouts"
	}
}

func filterLabel(f catalog.Filter) string {
	if f.IsZero() {
		return "All scenarios"
	}
	var parts []string
	if f.Sport != "" {
		parts = append(parts, catalog.SportDisplayName(f.Sport))
	}
	if f.Level != "" {
		parts = append(parts, catalog.LevelDisplayName(f.Level))
	}
	if f.Position != "" {
		parts = append(parts, catalog.PositionDisplayName(f.Position))
	}
	if f.Category != "" {
		parts = append(parts, f.Category)
	}
	return strings.Join(parts, " · ")
}

func formatDays(days float64) string {
	if days < 1 {
		return fmt.Sprintf("%.0f min", days*24*60)
	}
	return fmt.Sprintf("%.1f days", days)
}
