package drill

import (
	"fmt"
	"time"

	"github.com/drillq/drillq/internal/spacedrep"
	"github.com/drillq/drillq/internal/store"
)

// SnapshotData converts the session into its persisted form.
func (s *Session) SnapshotData() store.SessionSnapshot {
	snap := store.SessionSnapshot{
		Version:        store.SnapshotVersion,
		CatalogVersion: s.CatalogVersion,
		CreatedAt:      s.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339Nano),
		Progress:       make(map[string]*store.ProgressData, len(s.Progress)),
	}
	for id, p := range s.Progress {
		pd := &store.ProgressData{
			Correct:     p.Correct,
			Incorrect:   p.Incorrect,
			Partial:     p.Partial,
			Timeouts:    p.Timeouts,
			Repetitions: p.Repetitions,
			Interval:    p.Interval,
			Ease:        p.Ease,
			NextDue:     p.NextDue.Format(time.RFC3339Nano),
		}
		if p.LastShown != nil {
			pd.LastShown = p.LastShown.Format(time.RFC3339Nano)
		}
		if p.LastAnswer != nil {
			pd.LastAnswer = p.LastAnswer.String()
		}
		snap.Progress[id] = pd
	}
	return snap
}

// Record wraps the session snapshot for the session repository.
func (s *Session) Record() *store.SessionRecord {
	return &store.SessionRecord{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Snapshot:  s.SnapshotData(),
	}
}

// SessionFromSnapshot restores a session from its persisted form.
func SessionFromSnapshot(id string, snap store.SessionSnapshot) (*Session, error) {
	created, err := parseTime(snap.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	updated, err := parseTime(snap.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	sess := &Session{
		ID:             id,
		CreatedAt:      created,
		UpdatedAt:      updated,
		CatalogVersion: snap.CatalogVersion,
		Progress:       make(map[string]*spacedrep.Progress, len(snap.Progress)),
	}
	for scenarioID, pd := range snap.Progress {
		if pd == nil {
			continue
		}
		p, err := progressFromData(scenarioID, pd)
		if err != nil {
			return nil, fmt.Errorf("restore progress %s: %w", scenarioID, err)
		}
		sess.Progress[scenarioID] = p
	}
	return sess, nil
}

// SessionFromRecord restores a session loaded from the session repository.
func SessionFromRecord(rec *store.SessionRecord) (*Session, error) {
	return SessionFromSnapshot(rec.ID, rec.Snapshot)
}

func progressFromData(scenarioID string, pd *store.ProgressData) (*spacedrep.Progress, error) {
	due, err := parseTime(pd.NextDue)
	if err != nil {
		return nil, fmt.Errorf("parse next_due: %w", err)
	}
	p := &spacedrep.Progress{
		ScenarioID:  scenarioID,
		Correct:     pd.Correct,
		Incorrect:   pd.Incorrect,
		Partial:     pd.Partial,
		Timeouts:    pd.Timeouts,
		Repetitions: pd.Repetitions,
		Interval:    pd.Interval,
		Ease:        pd.Ease,
		NextDue:     due,
	}
	if pd.LastShown != "" {
		shown, err := parseTime(pd.LastShown)
		if err != nil {
			return nil, fmt.Errorf("parse last_shown: %w", err)
		}
		p.LastShown = &shown
	}
	if pd.LastAnswer != "" {
		q, err := spacedrep.ParseQuality(pd.LastAnswer)
		if err != nil {
			return nil, err
		}
		p.LastAnswer = &q
	}
	return p, nil
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
