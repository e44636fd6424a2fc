package store

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned by SessionRepo.Get for an unknown id.
var ErrSessionNotFound = errors.New("session not found")

// SnapshotVersion is the current layout version of SessionSnapshot.
const SnapshotVersion = 1

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // only events for this session
}

// ProgressData is the persisted form of one scenario's progress.
type ProgressData struct {
	Correct     int     `json:"correct"`
	Incorrect   int     `json:"incorrect"`
	Partial     int     `json:"partial"`
	Timeouts    int     `json:"timeouts"`
	Repetitions int     `json:"repetitions"`
	Interval    float64 `json:"interval"`
	Ease        float64 `json:"ease"`
	NextDue     string  `json:"next_due"`
	LastShown   string  `json:"last_shown,omitempty"`
	LastAnswer  string  `json:"last_answer,omitempty"`
}

// SessionSnapshot is the opaque blob written for a drill session.
// Timestamps are RFC3339 with nanoseconds.
type SessionSnapshot struct {
	Version        int                      `json:"version"`
	CatalogVersion string                   `json:"catalog_version,omitempty"`
	CreatedAt      string                   `json:"created_at"`
	UpdatedAt      string                   `json:"updated_at"`
	Progress       map[string]*ProgressData `json:"progress"`
}

// SessionRecord is one stored session.
type SessionRecord struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Snapshot  SessionSnapshot
}

// SessionRepo manages drill sessions.
type SessionRepo interface {
	// Save inserts the session or replaces the stored copy with the same id.
	Save(ctx context.Context, rec *SessionRecord) error

	// Latest returns the most recently updated session, or nil if none exist.
	Latest(ctx context.Context) (*SessionRecord, error)

	// Get returns the session with the given id.
	Get(ctx context.Context, id string) (*SessionRecord, error)

	// List returns sessions ordered newest first.
	List(ctx context.Context, limit int) ([]SessionRecord, error)

	// Prune deletes all but the N most recently updated sessions.
	Prune(ctx context.Context, keep int) error
}

// AnswerEventData captures one applied outcome. Timestamp is when the answer
// was applied; a zero value is stamped with the current time on append.
type AnswerEventData struct {
	Timestamp      time.Time
	SessionID      string
	ScenarioID     string
	Quality        string
	ResponseTimeMs int64
	Interval       float64
	Ease           float64
	NextDue        time.Time
}

// AnswerEvent is a stored answer event.
type AnswerEvent struct {
	Sequence int64
	AnswerEventData
}

// EventRepo provides append and query access to answer events.
type EventRepo interface {
	// AppendAnswerEvent records an answer, stamped with the global sequence.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QueryAnswerEvents returns events ordered newest first.
	QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error)
}
