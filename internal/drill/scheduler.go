package drill

import (
	"time"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/spacedrep"
)

// PickNextScenario returns the scenario to present next, or false when every
// scenario has been attempted and none is due.
//
// Never-attempted scenarios win in catalog order. Otherwise the due scenario
// with the earliest NextDue is chosen, ties going to the lowest ease, then
// the earliest LastShown, then catalog order. Progress for ids missing from
// the catalog is ignored. The session is not modified.
func PickNextScenario(cat *catalog.Catalog, sess *Session, now time.Time) (catalog.Scenario, bool) {
	var (
		best     catalog.Scenario
		bestProg *spacedrep.Progress
		foundDue bool
	)

	for _, sc := range cat.Scenarios() {
		p := sess.ProgressFor(sc.ID)
		if p == nil {
			return sc, true
		}
		if !p.IsDue(now) {
			continue
		}
		if !foundDue || dueBefore(p, bestProg) {
			best, bestProg, foundDue = sc, p, true
		}
	}

	return best, foundDue
}

// dueBefore reports whether a should be drilled before b. Catalog order is
// the final tie-breaker and is handled by the caller keeping the first seen.
func dueBefore(a, b *spacedrep.Progress) bool {
	if !a.NextDue.Equal(b.NextDue) {
		return a.NextDue.Before(b.NextDue)
	}
	if a.Ease != b.Ease {
		return a.Ease < b.Ease
	}
	switch {
	case a.LastShown == nil && b.LastShown == nil:
		return false
	case a.LastShown == nil:
		return true
	case b.LastShown == nil:
		return false
	}
	return a.LastShown.Before(*b.LastShown)
}

// ApplyResult records an outcome for scenarioID at now. The progress record
// is created with seed values on first use. An invalid quality returns
// spacedrep.ErrInvalidQuality and leaves the session untouched. The catalog
// is not consulted.
func ApplyResult(sess *Session, scenarioID string, q spacedrep.Quality, now time.Time) error {
	if !q.Valid() {
		return spacedrep.ErrInvalidQuality
	}

	p := sess.Progress[scenarioID]
	if p == nil {
		p = spacedrep.NewProgress(scenarioID, now)
		if sess.Progress == nil {
			sess.Progress = make(map[string]*spacedrep.Progress)
		}
		sess.Progress[scenarioID] = p
	}
	if err := p.Apply(q, now); err != nil {
		return err
	}
	sess.touch(now)
	return nil
}
