package spacedrep

import (
	"math"
	"time"
)

// Day is the length of one interval day.
const Day = 24 * time.Hour

// Ease bounds and the seed given to a scenario on its first answer.
const (
	SeedEase = 2.5
	MinEase  = 1.3
	MaxEase  = 3.0
)

// Ease adjustments applied per outcome quality.
const (
	BestEaseBonus      = 0.10
	OKEasePenalty      = 0.05
	BadEasePenalty     = 0.20
	TimeoutEasePenalty = 0.30
)

// OKIntervalPenalty is subtracted from the ease to get the growth factor for
// an "ok" answer. The factor never drops below 1.0.
const OKIntervalPenalty = 0.70

// SeedIntervalDays is the interval for a freshly seeded or lapsed scenario:
// ten minutes, so it comes back almost immediately.
const SeedIntervalDays = 10.0 / (24 * 60)

// MaxIntervalDays caps interval growth.
const MaxIntervalDays = 365.0

// BootstrapIntervals are the fixed intervals in days for the first
// successful repetitions before ease-based growth takes over.
var BootstrapIntervals = []float64{1, 3}

// IntervalDuration converts an interval in days to a duration, rounded to
// the nearest nanosecond.
func IntervalDuration(days float64) time.Duration {
	return time.Duration(math.Round(days * float64(Day)))
}

func clampEase(e float64) float64 {
	if e < MinEase {
		return MinEase
	}
	if e > MaxEase {
		return MaxEase
	}
	return e
}

func capInterval(days float64) float64 {
	if days > MaxIntervalDays {
		return MaxIntervalDays
	}
	return days
}
