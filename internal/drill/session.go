// Package drill holds the adaptive scheduling core: the session aggregate,
// scenario selection, outcome application and summary statistics.
//
// Everything here is synchronous and operates on an in-memory Session owned
// by the caller. Persistence is the caller's job.
package drill

import (
	"time"

	"github.com/google/uuid"

	"github.com/drillq/drillq/internal/spacedrep"
)

// Session aggregates per-scenario progress for one drill run.
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	// CatalogVersion is the catalog version the session last drilled against.
	CatalogVersion string

	Progress map[string]*spacedrep.Progress
}

// NewSession returns an empty session stamped with now.
func NewSession(now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Progress:  make(map[string]*spacedrep.Progress),
	}
}

// ProgressFor returns the record for a scenario, or nil if it was never
// answered.
func (s *Session) ProgressFor(scenarioID string) *spacedrep.Progress {
	return s.Progress[scenarioID]
}

// touch advances UpdatedAt. If the clock has not moved past the previous
// value, UpdatedAt is bumped by a nanosecond so it still strictly increases.
func (s *Session) touch(now time.Time) {
	if now.After(s.UpdatedAt) {
		s.UpdatedAt = now
		return
	}
	s.UpdatedAt = s.UpdatedAt.Add(time.Nanosecond)
}
