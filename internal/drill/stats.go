package drill

import (
	"maps"
	"slices"
	"time"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/spacedrep"
)

// DrillStats summarizes a session for display.
type DrillStats struct {
	CorrectRate     float64 `json:"correct_rate"`
	ScenariosSeen   int     `json:"scenarios_seen"`
	TotalAttempts   int     `json:"total_attempts"`
	AverageEase     float64 `json:"average_ease"`
	AverageInterval float64 `json:"average_interval"`

	Correct   int `json:"correct"`
	Partial   int `json:"partial"`
	Incorrect int `json:"incorrect"`
	Timeouts  int `json:"timeouts"`

	DueNow          int     `json:"due_now"`
	MostOverdueDays float64 `json:"most_overdue_days"`
	Unseen          int     `json:"unseen"`
	CatalogSize     int     `json:"catalog_size"`
}

// Count returns the tally for one outcome quality.
func (st DrillStats) Count(q spacedrep.Quality) int {
	switch q {
	case spacedrep.QualityBest:
		return st.Correct
	case spacedrep.QualityOK:
		return st.Partial
	case spacedrep.QualityBad:
		return st.Incorrect
	case spacedrep.QualityTimeout:
		return st.Timeouts
	}
	return 0
}

// GetDrillStats computes summary statistics. Tallies and averages cover every
// progress record in the session, including ids no longer in the catalog;
// DueNow, MostOverdueDays and Unseen cover catalog scenarios only.
func GetDrillStats(cat *catalog.Catalog, sess *Session, now time.Time) DrillStats {
	st := DrillStats{
		ScenariosSeen: len(sess.Progress),
		AverageEase:   spacedrep.SeedEase,
		CatalogSize:   cat.Len(),
	}

	// Sum in id order so repeated calls produce bit-identical averages.
	var easeSum, intervalSum float64
	for _, id := range slices.Sorted(maps.Keys(sess.Progress)) {
		p := sess.Progress[id]
		st.Correct += p.Correct
		st.Partial += p.Partial
		st.Incorrect += p.Incorrect
		st.Timeouts += p.Timeouts
		easeSum += p.Ease
		intervalSum += p.Interval
	}
	st.TotalAttempts = st.Correct + st.Partial + st.Incorrect + st.Timeouts

	if st.TotalAttempts > 0 {
		st.CorrectRate = float64(st.Correct) / float64(st.TotalAttempts)
	}
	if n := len(sess.Progress); n > 0 {
		st.AverageEase = easeSum / float64(n)
		st.AverageInterval = intervalSum / float64(n)
	}

	for _, sc := range cat.Scenarios() {
		p := sess.ProgressFor(sc.ID)
		switch {
		case p == nil:
			st.Unseen++
		case p.IsDue(now):
			st.DueNow++
			st.MostOverdueDays = max(st.MostOverdueDays, p.OverdueDays(now))
		}
	}
	return st
}
