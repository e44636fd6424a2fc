// Package drill is the screen that runs the scenario loop: present, answer,
// show coaching, repeat.
package drill

import (
	"context"
	"sync/atomic"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/practice"
	"github.com/drillq/drillq/internal/router"
	"github.com/drillq/drillq/internal/screen"
	statsscreen "github.com/drillq/drillq/internal/screens/stats"
	"github.com/drillq/drillq/internal/spacedrep"
	"github.com/drillq/drillq/internal/ui/components"
	"github.com/drillq/drillq/internal/ui/layout"
)

type phase int

const (
	phaseQuestion phase = iota
	phaseFeedback
	phaseEmpty
	phaseError
)

// DrillScreen presents scenarios from a practice service one at a time.
type DrillScreen struct {
	svc     *practice.Service
	filter  catalog.Filter
	timeout time.Duration
	keys    keyMap
	now     func() time.Time

	phase     phase
	scenario  catalog.Scenario
	choices   components.ChoiceList
	countdown components.Countdown
	shownAt   time.Time
	seq       int64

	outcome  *practice.Outcome
	answered int
	err      error
}

// tickSeq numbers countdowns across all drill screens, so a tick still in
// flight from a closed screen never matches a new one.
var tickSeq atomic.Int64

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)

// New creates a drill screen. A zero timeout disables the countdown.
func New(svc *practice.Service, filter catalog.Filter, timeout time.Duration) *DrillScreen {
	s := &DrillScreen{
		svc:     svc,
		filter:  filter,
		timeout: timeout,
		keys:    defaultKeyMap(),
		now:     time.Now,
	}
	s.advance()
	return s
}

func (s *DrillScreen) Init() tea.Cmd {
	return s.startTimer()
}

func (s *DrillScreen) Title() string {
	return "Drill"
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "1-3", Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Home"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "s", Description: "Stats"},
			{Key: "Esc", Description: "Home"},
		}
	case phaseEmpty:
		return []layout.KeyHint{
			{Key: "r", Description: "New session"},
			{Key: "s", Description: "Stats"},
			{Key: "Esc", Description: "Home"},
		}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Home"}}
	}
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.phase != phaseQuestion || msg.seq != s.seq {
			return s, nil
		}
		s.countdown = s.countdown.Tick(time.Second)
		if s.countdown.Expired() {
			s.submit(spacedrep.QualityTimeout)
			return s, nil
		}
		return s, tickCmd(s.seq)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseQuestion:
		for i, b := range s.keys.Pick {
			if key.Matches(msg, b) && i < len(s.choices.Choices) {
				s.choices.Selected = i
				s.submit(s.choices.Choices[i].Quality)
				return s, nil
			}
		}
		switch {
		case key.Matches(msg, s.keys.Up):
			s.choices = s.choices.Up()
		case key.Matches(msg, s.keys.Down):
			s.choices = s.choices.Down()
		case key.Matches(msg, s.keys.Submit):
			if ch, ok := s.choices.Current(); ok {
				s.submit(ch.Quality)
			}
		}

	case phaseFeedback:
		switch {
		case key.Matches(msg, s.keys.Next):
			s.advance()
			return s, s.startTimer()
		case key.Matches(msg, s.keys.Stats):
			return s, s.pushStats()
		}

	case phaseEmpty:
		switch {
		case key.Matches(msg, s.keys.Reset):
			if err := s.svc.Reset(context.Background()); err != nil {
				s.fail(err)
				return s, nil
			}
			s.answered = 0
			s.advance()
			return s, s.startTimer()
		case key.Matches(msg, s.keys.Stats):
			return s, s.pushStats()
		}
	}
	return s, nil
}

// advance picks the next scenario or moves to the empty state.
func (s *DrillScreen) advance() {
	s.outcome = nil
	s.seq = tickSeq.Add(1)

	sc, ok := s.svc.Next(s.filter)
	if !ok {
		s.phase = phaseEmpty
		return
	}
	s.phase = phaseQuestion
	s.scenario = sc
	s.choices = components.NewChoiceList(sc.Choices())
	s.countdown = components.NewCountdown(s.timeout)
	s.shownAt = s.now()
}

// submit records q for the current scenario and switches to feedback.
func (s *DrillScreen) submit(q spacedrep.Quality) {
	elapsed := s.now().Sub(s.shownAt)
	out, err := s.svc.Answer(context.Background(), s.scenario.ID, q, elapsed)
	if err != nil {
		s.fail(err)
		return
	}
	s.seq = tickSeq.Add(1)
	s.outcome = out
	s.answered++
	s.choices = s.choices.Reveal(q)
	s.phase = phaseFeedback
}

func (s *DrillScreen) fail(err error) {
	s.err = err
	s.phase = phaseError
	s.seq = tickSeq.Add(1)
}

func (s *DrillScreen) startTimer() tea.Cmd {
	if s.phase != phaseQuestion || s.timeout <= 0 {
		return nil
	}
	return tickCmd(s.seq)
}

func (s *DrillScreen) pushStats() tea.Cmd {
	st := statsscreen.New(s.svc, s.filter)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: st}
	}
}

// tickCmd returns a 1-second tick for scenario seq.
func tickCmd(seq int64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{seq: seq}
	})
}
