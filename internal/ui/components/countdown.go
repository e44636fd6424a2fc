package components

import (
	"fmt"
	"time"

	"github.com/drillq/drillq/internal/ui/theme"
)

// Countdown is a draining answer timer.
type Countdown struct {
	Total     time.Duration
	Remaining time.Duration
}

// NewCountdown starts a full countdown of total.
func NewCountdown(total time.Duration) Countdown {
	return Countdown{Total: total, Remaining: total}
}

// Tick subtracts d, stopping at zero.
func (c Countdown) Tick(d time.Duration) Countdown {
	c.Remaining = max(c.Remaining-d, 0)
	return c
}

// Expired reports whether the countdown has run out.
func (c Countdown) Expired() bool {
	return c.Total > 0 && c.Remaining <= 0
}

// Fraction is the share of time left, from 1 down to 0.
func (c Countdown) Fraction() float64 {
	if c.Total <= 0 {
		return 0
	}
	return float64(c.Remaining) / float64(c.Total)
}

// View renders the remaining time as a bar that changes color as it drains.
func (c Countdown) View(width int) string {
	secs := int(c.Remaining.Round(time.Second).Seconds())
	bar := NewProgressBar(fmt.Sprintf("%d:%02d", secs/60, secs%60), c.Fraction(), false, width)
	switch f := c.Fraction(); {
	case f > 0.5:
		bar.Fill = theme.Primary
	case f > 0.25:
		bar.Fill = theme.Warning
	default:
		bar.Fill = theme.Error
	}
	return bar.View()
}
