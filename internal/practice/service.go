// Package practice drives one user's drill loop: it owns the current session,
// saves it after every answer and records answer history.
package practice

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/drillq/drillq/internal/catalog"
	"github.com/drillq/drillq/internal/drill"
	"github.com/drillq/drillq/internal/logging"
	"github.com/drillq/drillq/internal/spacedrep"
	"github.com/drillq/drillq/internal/store"
)

// Options configures a Service.
type Options struct {
	Catalog      *catalog.Catalog
	Sessions     store.SessionRepo
	Events       store.EventRepo
	Logger       *zap.Logger
	Clock        func() time.Time
	KeepSessions int
}

// Service is not safe for concurrent use; callers serialize access.
type Service struct {
	cat      *catalog.Catalog
	sessions store.SessionRepo
	events   store.EventRepo
	logger   *zap.Logger
	now      func() time.Time
	keep     int

	sess *drill.Session
}

// Outcome is the result of answering a scenario.
type Outcome struct {
	Scenario catalog.Scenario
	Quality  spacedrep.Quality
	Progress spacedrep.Progress
}

// New creates a Service. Open must be called before use.
func New(opts Options) *Service {
	s := &Service{
		cat:      opts.Catalog,
		sessions: opts.Sessions,
		events:   opts.Events,
		logger:   logging.OrNop(opts.Logger),
		now:      opts.Clock,
		keep:     opts.KeepSessions,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Open resumes the most recent session, or starts and saves a new one if
// none exist.
func (s *Service) Open(ctx context.Context) error {
	found, err := s.resume(ctx)
	if err != nil || found {
		return err
	}
	s.start()
	return s.save(ctx)
}

// Peek is Open for read-only callers: with no saved session it holds a new
// one in memory and writes nothing.
func (s *Service) Peek(ctx context.Context) error {
	found, err := s.resume(ctx)
	if err != nil || found {
		return err
	}
	s.start()
	return nil
}

func (s *Service) resume(ctx context.Context) (bool, error) {
	if s.sessions == nil {
		return false, nil
	}
	rec, err := s.sessions.Latest(ctx)
	if err != nil {
		return false, fmt.Errorf("load latest session: %w", err)
	}
	if rec == nil {
		return false, nil
	}
	sess, err := drill.SessionFromRecord(rec)
	if err != nil {
		return false, fmt.Errorf("restore session: %w", err)
	}
	s.sess = sess
	s.checkCatalogVersion()
	s.logger.Info("session resumed",
		zap.String("session_id", sess.ID),
		zap.Int("scenarios_seen", len(sess.Progress)),
	)
	return true, nil
}

func (s *Service) start() {
	s.sess = drill.NewSession(s.now())
	s.sess.CatalogVersion = s.cat.Version()
	s.logger.Info("session started", zap.String("session_id", s.sess.ID))
}

func (s *Service) checkCatalogVersion() {
	if !catalog.SameMajor(s.sess.CatalogVersion, s.cat.Version()) {
		s.logger.Warn("catalog major version changed since last session",
			zap.String("session_catalog", s.sess.CatalogVersion),
			zap.String("catalog", s.cat.Version()),
		)
	}
}

// Session returns the current session.
func (s *Service) Session() *drill.Session {
	return s.sess
}

// Catalog returns the full catalog the service drills against.
func (s *Service) Catalog() *catalog.Catalog {
	return s.cat
}

// Next returns the next scenario for the filtered catalog.
func (s *Service) Next(f catalog.Filter) (catalog.Scenario, bool) {
	return drill.PickNextScenario(s.cat.Filter(f), s.sess, s.now())
}

// Answer applies q to scenarioID, saves the session and records the answer.
// elapsed is the time the user took to respond. If the save fails the
// session is rolled back, so memory never runs ahead of the store.
func (s *Service) Answer(ctx context.Context, scenarioID string, q spacedrep.Quality, elapsed time.Duration) (*Outcome, error) {
	sc, err := s.cat.Get(scenarioID)
	if err != nil {
		return nil, err
	}

	undo := s.checkpoint(scenarioID)
	now := s.now()
	if err := drill.ApplyResult(s.sess, scenarioID, q, now); err != nil {
		return nil, fmt.Errorf("apply result: %w", err)
	}
	s.sess.CatalogVersion = s.cat.Version()
	p := s.sess.ProgressFor(scenarioID)

	s.logger.Debug("answer applied",
		zap.String("scenario_id", scenarioID),
		zap.Stringer("quality", q),
		zap.Float64("interval_days", p.Interval),
		zap.Float64("ease", p.Ease),
		zap.Time("next_due", p.NextDue),
	)

	if err := s.save(ctx); err != nil {
		undo()
		return nil, err
	}

	if s.events != nil {
		err := s.events.AppendAnswerEvent(ctx, store.AnswerEventData{
			Timestamp:      now,
			SessionID:      s.sess.ID,
			ScenarioID:     scenarioID,
			Quality:        q.String(),
			ResponseTimeMs: elapsed.Milliseconds(),
			Interval:       p.Interval,
			Ease:           p.Ease,
			NextDue:        p.NextDue,
		})
		if err != nil {
			// The session is already saved; history is best effort.
			s.logger.Warn("failed to record answer event", zap.Error(err))
		}
	}

	return &Outcome{Scenario: sc, Quality: q, Progress: *p}, nil
}

// checkpoint captures what ApplyResult may change for scenarioID and returns
// a func that puts it back.
func (s *Service) checkpoint(scenarioID string) func() {
	sess := s.sess
	updatedAt := sess.UpdatedAt
	version := sess.CatalogVersion
	prev, existed := sess.Progress[scenarioID]
	var saved spacedrep.Progress
	if existed {
		// Apply replaces the pointer fields rather than writing through them.
		saved = *prev
	}
	return func() {
		sess.UpdatedAt = updatedAt
		sess.CatalogVersion = version
		if existed {
			*prev = saved
		} else {
			delete(sess.Progress, scenarioID)
		}
	}
}

// Stats returns drill statistics over the filtered catalog.
func (s *Service) Stats(f catalog.Filter) drill.DrillStats {
	return drill.GetDrillStats(s.cat.Filter(f), s.sess, s.now())
}

// Reset starts a fresh session and prunes old ones.
func (s *Service) Reset(ctx context.Context) error {
	now := s.now()
	prev := ""
	if s.sess != nil {
		prev = s.sess.ID
		// The new session must sort after the old one.
		if !now.After(s.sess.UpdatedAt) {
			now = s.sess.UpdatedAt.Add(time.Nanosecond)
		}
	}
	s.sess = drill.NewSession(now)
	s.sess.CatalogVersion = s.cat.Version()
	s.logger.Info("session reset",
		zap.String("previous_session_id", prev),
		zap.String("session_id", s.sess.ID),
	)
	if err := s.save(ctx); err != nil {
		return err
	}
	if s.sessions != nil && s.keep > 0 {
		if err := s.sessions.Prune(ctx, s.keep); err != nil {
			return fmt.Errorf("prune sessions: %w", err)
		}
	}
	return nil
}

func (s *Service) save(ctx context.Context) error {
	if s.sessions == nil {
		return nil
	}
	if err := s.sessions.Save(ctx, s.sess.Record()); err != nil {
		s.logger.Error("failed to save session", zap.String("session_id", s.sess.ID), zap.Error(err))
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
