package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/practice"
	"github.com/drillq/drillq/internal/router"
	"github.com/drillq/drillq/internal/screen"
	drillscreen "github.com/drillq/drillq/internal/screens/drill"
	"github.com/drillq/drillq/internal/screens/history"
	statsscreen "github.com/drillq/drillq/internal/screens/stats"
	"github.com/drillq/drillq/internal/store"
	"github.com/drillq/drillq/internal/ui/components"
)

type sessionResetMsg struct {
	Err error
}

// HomeScreen is the root menu.
type HomeScreen struct {
	svc    *practice.Service
	filter catalog.Filter
	menu   components.Menu
	notice string
	failed bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. events may be nil, which disables history.
func New(svc *practice.Service, filter catalog.Filter, timeout time.Duration, events store.EventRepo) *HomeScreen {
	h := &HomeScreen{svc: svc, filter: filter}

	items := []components.MenuItem{
		{Label: "START DRILL", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: drillscreen.New(svc, filter, timeout)}
			}
		}},
		{Label: "STATS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: statsscreen.New(svc, filter)}
			}
		}},
		{Label: "HISTORY", Disabled: events == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(events, svc.Catalog())}
			}
		}},
		{Label: "NEW SESSION", Action: func() tea.Cmd {
			err := svc.Reset(context.Background())
			return func() tea.Msg { return sessionResetMsg{Err: err} }
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionResetMsg:
		if msg.Err != nil {
			h.notice = "Could not start a new session: " + msg.Err.Error()
			h.failed = true
		} else {
			h.notice = "Started a new session."
			h.failed = false
		}
		return h, nil
	case tea.KeyMsg:
		h.notice = ""
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22
	cw := components.ContentWidth(width)
	st := h.svc.Stats(h.filter)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderDiamond(cw))
	}
	sections = append(sections, renderStatusBar(st.DueNow, st.Unseen, st.CorrectRate, st.TotalAttempts, cw))
	sections = append(sections, renderMenu(h.menu, cw))
	if h.notice != "" {
		sections = append(sections, renderNotice(h.notice, h.failed, cw))
	}

	return components.FieldFrame(strings.Join(sections, "\n\n"), width, height)
}
