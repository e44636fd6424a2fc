// Package history lists recent answers recorded by the practice service.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/screen"
	"github.com/drillq/drillq/internal/spacedrep"
	"github.com/drillq/drillq/internal/store"
	"github.com/drillq/drillq/internal/ui/layout"
	"github.com/drillq/drillq/internal/ui/theme"
)

// Limit is the number of answers loaded.
const Limit = 50

type historyLoadedMsg struct {
	Events []store.AnswerEvent
	Err    error
}

// HistoryScreen displays recent answers, newest first.
type HistoryScreen struct {
	events   store.EventRepo
	cat      *catalog.Catalog
	answers  []store.AnswerEvent
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.BackHandler = (*HistoryScreen)(nil)

// New creates a HistoryScreen. cat is used to show scenario prompts and may
// be nil.
func New(events store.EventRepo, cat *catalog.Catalog) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		cat:      cat,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		if events == nil {
			return historyLoadedMsg{}
		}
		answers, err := events.QueryAnswerEvents(context.Background(), store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Events: answers, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

// Back collapses any expanded rows; Esc leaves only once the list is folded.
func (s *HistoryScreen) Back() bool {
	if len(s.expanded) == 0 {
		return false
	}
	clear(s.expanded)
	return true
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.answers = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.answers)-1 {
				s.selected++
			}
		case "enter":
			if s.expanded[s.selected] {
				delete(s.expanded, s.selected)
			} else {
				s.expanded[s.selected] = true
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.answers) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers yet. Start a drill!")
	}

	// Keep the selected row on screen.
	rows := max(height-2, 1)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}

	var b strings.Builder
	b.WriteString("\n")

	for i := start; i < len(s.answers) && i < start+rows; i++ {
		a := s.answers[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-8s  %-28s  %5.1fs",
			prefix,
			a.Timestamp.Local().Format("Jan 02 15:04"),
			a.Quality,
			truncate(s.scenarioLabel(a.ScenarioID), 28),
			float64(a.ResponseTimeMs)/1000,
		)

		style := lipgloss.NewStyle().Foreground(qualityColor(a.Quality))
		if i == s.selected {
			style = style.Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    interval %s · ease %.2f · next due %s",
				formatInterval(a.Interval), a.Ease, a.NextDue.Local().Format("Jan 02 15:04"))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) scenarioLabel(id string) string {
	if s.cat == nil {
		return id
	}
	sc, err := s.cat.Get(id)
	if err != nil {
		return id
	}
	switch {
	case sc.Category == "":
		return sc.ID
	case sc.Position == "":
		return sc.Category
	}
	return sc.Category + " (" + string(sc.Position) + ")"
}

func qualityColor(q string) color.Color {
	parsed, err := spacedrep.ParseQuality(q)
	if err != nil {
		return theme.Text
	}
	switch parsed {
	case spacedrep.QualityBest:
		return theme.Success
	case spacedrep.QualityOK:
		return theme.Warning
	default:
		return theme.Error
	}
}

func formatInterval(days float64) string {
	d := time.Duration(days * float64(spacedrep.Day))
	if d < spacedrep.Day {
		return d.Round(time.Minute).String()
	}
	return fmt.Sprintf("%.1fd", days)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
