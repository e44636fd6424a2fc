package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const sessionsTable = "sessions"

// sessionRepo implements SessionRepo on top of ent's SQL builders.
type sessionRepo struct {
	drv *entsql.Driver
}

func (r *sessionRepo) Save(ctx context.Context, rec *SessionRecord) error {
	data, err := json.Marshal(rec.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal session snapshot: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sessionsTable).
		Columns("id", "created_at", "updated_at", "data").
		Values(rec.ID, rec.CreatedAt.UnixNano(), rec.UpdatedAt.UnixNano(), string(data)).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Latest(ctx context.Context) (*SessionRecord, error) {
	recs, err := r.query(ctx, r.selector().
		OrderBy(entsql.Desc("updated_at")).
		Limit(1))
	if err != nil {
		return nil, fmt.Errorf("query latest session: %w", err)
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*SessionRecord, error) {
	recs, err := r.query(ctx, r.selector().Where(entsql.EQ("id", id)))
	if err != nil {
		return nil, fmt.Errorf("query session %s: %w", id, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return &recs[0], nil
}

func (r *sessionRepo) List(ctx context.Context, limit int) ([]SessionRecord, error) {
	sel := r.selector().OrderBy(entsql.Desc("updated_at"))
	if limit > 0 {
		sel.Limit(limit)
	}
	recs, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return recs, nil
}

func (r *sessionRepo) Prune(ctx context.Context, keep int) error {
	// Find the threshold: the updated_at of the first session past keep.
	query, args := entsql.Dialect(dialect.SQLite).
		Select("updated_at").
		From(entsql.Table(sessionsTable)).
		OrderBy(entsql.Desc("updated_at")).
		Limit(1).
		Offset(keep).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return fmt.Errorf("query sessions for prune: %w", err)
	}
	var (
		threshold int64
		found     bool
	)
	for rows.Next() {
		if err := rows.Scan(&threshold); err != nil {
			rows.Close()
			return fmt.Errorf("scan prune threshold: %w", err)
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("query sessions for prune: %w", err)
	}
	rows.Close()
	if !found {
		return nil // fewer than keep sessions exist
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(sessionsTable).
		Where(entsql.LTE("updated_at", threshold)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune sessions: %w", err)
	}
	return nil
}

func (r *sessionRepo) selector() *entsql.Selector {
	return entsql.Dialect(dialect.SQLite).
		Select("id", "created_at", "updated_at", "data").
		From(entsql.Table(sessionsTable))
}

func (r *sessionRepo) query(ctx context.Context, sel *entsql.Selector) ([]SessionRecord, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []SessionRecord
	for rows.Next() {
		var (
			rec              SessionRecord
			created, updated int64
			data             string
		)
		if err := rows.Scan(&rec.ID, &created, &updated, &data); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &rec.Snapshot); err != nil {
			return nil, fmt.Errorf("unmarshal session %s: %w", rec.ID, err)
		}
		rec.CreatedAt = time.Unix(0, created).UTC()
		rec.UpdatedAt = time.Unix(0, updated).UTC()
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recs, nil
}
