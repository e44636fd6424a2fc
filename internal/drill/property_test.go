package drill

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/drillq/drillq/internal/spacedrep"
)

func properties(t *testing.T) *gopter.Properties {
	t.Helper()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

func ids(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("s%02d", i)
	}
	return out
}

// qualityGen yields any valid quality.
func qualityGen() gopter.Gen {
	return gen.IntRange(int(spacedrep.QualityBest), int(spacedrep.QualityTimeout)).
		Map(func(i int) spacedrep.Quality { return spacedrep.Quality(i) })
}

func TestProperty_NeverAttemptedPriority(t *testing.T) {
	props := properties(t)
	props.Property("an unattempted scenario is picked over due ones", prop.ForAll(
		func(n, attempted int, qs []spacedrep.Quality) bool {
			if attempted >= n {
				attempted = n - 1
			}
			cat := testCatalog(t, ids(n)...)
			sess := NewSession(t0)
			for i := 0; i < attempted; i++ {
				q := spacedrep.QualityBad
				if len(qs) > 0 {
					q = qs[i%len(qs)]
				}
				if err := ApplyResult(sess, cat.Scenarios()[i].ID, q, t0); err != nil {
					return false
				}
			}
			// Far enough out that every attempted item is due.
			sc, ok := PickNextScenario(cat, sess, t0.Add(2000*spacedrep.Day))
			return ok && sess.ProgressFor(sc.ID) == nil && sc.ID == cat.Scenarios()[attempted].ID
		},
		gen.IntRange(1, 20),
		gen.IntRange(0, 19),
		gen.SliceOf(qualityGen()),
	))
	props.TestingRun(t)
}

func TestProperty_Exhaustion(t *testing.T) {
	props := properties(t)
	props.Property("nothing is available when all are attempted and none due", prop.ForAll(
		func(qs []spacedrep.Quality) bool {
			cat := testCatalog(t, ids(len(qs))...)
			sess := NewSession(t0)
			for i, q := range qs {
				if err := ApplyResult(sess, cat.Scenarios()[i].ID, q, t0); err != nil {
					return false
				}
			}
			// Every record is due at least ten minutes after t0.
			_, ok := PickNextScenario(cat, sess, t0.Add(time.Minute))
			return !ok
		},
		gen.SliceOfN(8, qualityGen()),
	))
	props.TestingRun(t)
}

func TestProperty_EaseFloor(t *testing.T) {
	props := properties(t)
	props.Property("ease never drops below the floor", prop.ForAll(
		func(qs []spacedrep.Quality) bool {
			sess := NewSession(t0)
			now := t0
			for _, q := range qs {
				now = now.Add(time.Minute)
				if err := ApplyResult(sess, "a", q, now); err != nil {
					return false
				}
				p := sess.ProgressFor("a")
				if p.Ease < spacedrep.MinEase || p.Ease > spacedrep.MaxEase {
					return false
				}
			}
			return true
		},
		gen.SliceOf(qualityGen()),
	))
	props.TestingRun(t)
}

func TestProperty_IntervalReset(t *testing.T) {
	props := properties(t)
	props.Property("a lapse always resets the interval to the seed", prop.ForAll(
		func(history []spacedrep.Quality, lapseTimeout bool) bool {
			sess := NewSession(t0)
			for _, q := range history {
				if err := ApplyResult(sess, "a", q, t0); err != nil {
					return false
				}
			}
			lapse := spacedrep.QualityBad
			if lapseTimeout {
				lapse = spacedrep.QualityTimeout
			}
			if err := ApplyResult(sess, "a", lapse, t0); err != nil {
				return false
			}
			p := sess.ProgressFor("a")
			return p.Interval == spacedrep.SeedIntervalDays && p.Repetitions == 0
		},
		gen.SliceOf(qualityGen()),
		gen.Bool(),
	))
	props.TestingRun(t)
}

func TestProperty_BestRunMonotonic(t *testing.T) {
	props := properties(t)
	props.Property("consecutive best answers never shrink the interval", prop.ForAll(
		func(prefix []spacedrep.Quality, run int) bool {
			sess := NewSession(t0)
			now := t0
			for _, q := range prefix {
				now = now.Add(time.Hour)
				if err := ApplyResult(sess, "a", q, now); err != nil {
					return false
				}
			}
			prev := -1.0
			for i := 0; i < run; i++ {
				now = now.Add(time.Hour)
				if err := ApplyResult(sess, "a", spacedrep.QualityBest, now); err != nil {
					return false
				}
				p := sess.ProgressFor("a")
				if p.Interval < prev {
					return false
				}
				prev = p.Interval
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf(spacedrep.QualityBad, spacedrep.QualityTimeout)),
		gen.IntRange(1, 30),
	))
	props.TestingRun(t)
}

func TestProperty_IdempotentStats(t *testing.T) {
	props := properties(t)
	props.Property("stats are stable without intervening answers", prop.ForAll(
		func(qs []spacedrep.Quality, offsetMinutes int) bool {
			cat := testCatalog(t, ids(6)...)
			sess := NewSession(t0)
			for i, q := range qs {
				id := cat.Scenarios()[i%cat.Len()].ID
				if err := ApplyResult(sess, id, q, t0.Add(time.Duration(i)*time.Minute)); err != nil {
					return false
				}
			}
			now := t0.Add(time.Duration(offsetMinutes) * time.Minute)
			return reflect.DeepEqual(GetDrillStats(cat, sess, now), GetDrillStats(cat, sess, now))
		},
		gen.SliceOf(qualityGen()),
		gen.IntRange(0, 60*24*30),
	))
	props.TestingRun(t)
}
