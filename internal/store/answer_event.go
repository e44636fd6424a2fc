package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const answerEventsTable = "answer_events"

// eventRepo implements EventRepo backed by ent's SQL builders and the
// global sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(answerEventsTable).
		Columns("sequence", "timestamp", "session_id", "scenario_id", "quality",
			"response_time_ms", "interval", "ease", "next_due").
		Values(seqNum, ts.UnixNano(), data.SessionID, data.ScenarioID, data.Quality,
			data.ResponseTimeMs, data.Interval, data.Ease, data.NextDue.UnixNano()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "session_id", "scenario_id", "quality",
			"response_time_ms", "interval", "ease", "next_due").
		From(entsql.Table(answerEventsTable)).
		OrderBy(entsql.Desc("sequence"))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UnixNano()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UnixNano()))
	}
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var (
			ev      AnswerEvent
			ts, due int64
		)
		if err := rows.Scan(&ev.Sequence, &ts, &ev.SessionID, &ev.ScenarioID, &ev.Quality,
			&ev.ResponseTimeMs, &ev.Interval, &ev.Ease, &due); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		ev.Timestamp = time.Unix(0, ts).UTC()
		ev.NextDue = time.Unix(0, due).UTC()
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	return events, nil
}
