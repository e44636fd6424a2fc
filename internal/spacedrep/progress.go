package spacedrep

import (
	"math"
	"time"
)

// Progress holds the spaced repetition state for a single scenario.
type Progress struct {
	ScenarioID  string     `json:"scenario_id"`
	Correct     int        `json:"correct"`
	Incorrect   int        `json:"incorrect"`
	Partial     int        `json:"partial"`
	Timeouts    int        `json:"timeouts"`
	Repetitions int        `json:"repetitions"`
	Interval    float64    `json:"interval"`
	Ease        float64    `json:"ease"`
	NextDue     time.Time  `json:"next_due"`
	LastShown   *time.Time `json:"last_shown,omitempty"`
	LastAnswer  *Quality   `json:"last_answer,omitempty"`
}

// NewProgress returns a seeded record for a scenario answered for the first
// time. It is due immediately.
func NewProgress(scenarioID string, now time.Time) *Progress {
	return &Progress{
		ScenarioID: scenarioID,
		Interval:   SeedIntervalDays,
		Ease:       SeedEase,
		NextDue:    now,
	}
}

// Attempts returns the total number of answers recorded.
func (p *Progress) Attempts() int {
	return p.Correct + p.Incorrect + p.Partial + p.Timeouts
}

// IsDue returns true if the scenario is due (at or past NextDue).
func (p *Progress) IsDue(now time.Time) bool {
	return !now.Before(p.NextDue)
}

// OverdueDays is the fractional number of days since NextDue, or 0 before it.
func (p *Progress) OverdueDays(now time.Time) float64 {
	if !p.IsDue(now) {
		return 0
	}
	return float64(now.Sub(p.NextDue)) / float64(Day)
}

// Apply records one outcome and reschedules the scenario. Invalid qualities
// are rejected before anything is modified.
func (p *Progress) Apply(q Quality, now time.Time) error {
	if !q.Valid() {
		return ErrInvalidQuality
	}

	switch q {
	case QualityBest:
		p.Correct++
		p.Repetitions++
		p.Ease = clampEase(p.Ease + BestEaseBonus)
		if p.Repetitions <= len(BootstrapIntervals) {
			p.Interval = BootstrapIntervals[p.Repetitions-1]
		} else {
			p.Interval = capInterval(p.Interval * p.Ease)
		}
	case QualityOK:
		p.Partial++
		p.Repetitions++
		p.Ease = clampEase(p.Ease - OKEasePenalty)
		factor := p.Ease - OKIntervalPenalty
		if factor < 1.0 {
			factor = 1.0
		}
		interval := p.Interval * factor
		if interval < BootstrapIntervals[0] {
			interval = BootstrapIntervals[0]
		}
		p.Interval = capInterval(interval)
	case QualityBad:
		p.Incorrect++
		p.Repetitions = 0
		p.Ease = clampEase(p.Ease - BadEasePenalty)
		p.Interval = SeedIntervalDays
	case QualityTimeout:
		p.Timeouts++
		p.Repetitions = 0
		p.Ease = clampEase(p.Ease - TimeoutEasePenalty)
		p.Interval = SeedIntervalDays
	}

	shown := now
	answer := q
	p.LastShown = &shown
	p.LastAnswer = &answer
	p.NextDue = now.Add(IntervalDuration(p.Interval))
	return nil
}

// DaysUntilDue rounds the time until NextDue up to whole days. A scenario
// due in exactly one day reports 1; one already due reports 0.
func (p *Progress) DaysUntilDue(now time.Time) int {
	if p.IsDue(now) {
		return 0
	}
	return int(math.Ceil(float64(p.NextDue.Sub(now)) / float64(Day)))
}
