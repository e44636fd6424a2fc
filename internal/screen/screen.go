// Package screen holds the contracts between the router and drillq's pages.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/drillq/drillq/internal/ui/layout"
)

// Screen is one page of the TUI: home, drill, stats or history.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the area between the status header and the key hints.
	View(width, height int) string

	// Title is shown in the header beside the due and seen counts.
	Title() string
}

// KeyHintProvider replaces the default footer, e.g. per drill phase.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler gets Esc before the router pops the screen. Back reports
// whether the screen consumed it.
type BackHandler interface {
	Back() bool
}
