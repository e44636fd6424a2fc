// Package app hosts the Bubble Tea program: the router, the frame and the
// header status.
package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/practice"
	"github.com/drillq/drillq/internal/router"
	"github.com/drillq/drillq/internal/screen"
	drillscreen "github.com/drillq/drillq/internal/screens/drill"
	"github.com/drillq/drillq/internal/screens/home"
	"github.com/drillq/drillq/internal/store"
	"github.com/drillq/drillq/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Service *practice.Service
	Events  store.EventRepo
	Filter  catalog.Filter

	// AnswerTimeout is the per-scenario countdown. Zero disables it.
	AnswerTimeout time.Duration

	// StartDrill opens the drill screen directly on top of home.
	StartDrill bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(opts.Service, opts.Filter, opts.AnswerTimeout, opts.Events)),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	if !m.opts.StartDrill {
		return nil
	}
	d := drillscreen.New(m.opts.Service, m.opts.Filter, m.opts.AnswerTimeout)
	return func() tea.Msg { return router.PushScreenMsg{Screen: d} }
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if b, ok := m.router.Active().(screen.BackHandler); ok && b.Back() {
				return m, nil
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	st := m.opts.Service.Stats(m.opts.Filter)
	header := layout.RenderHeader(title, layout.Status{
		Due:   st.DueNow,
		Seen:  st.CatalogSize - st.Unseen,
		Total: st.CatalogSize,
	}, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
