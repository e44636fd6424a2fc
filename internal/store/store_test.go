package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func record(id string, updated time.Time) *SessionRecord {
	return &SessionRecord{
		ID:        id,
		CreatedAt: updated.Add(-time.Hour),
		UpdatedAt: updated,
		Snapshot: SessionSnapshot{
			Version:   SnapshotVersion,
			CreatedAt: updated.Add(-time.Hour).Format(time.RFC3339Nano),
			UpdatedAt: updated.Format(time.RFC3339Nano),
			Progress:  map[string]*ProgressData{},
		},
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.db

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"sessions", "answer_events", "global_sequence"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SessionRepo().Save(ctx, record("a", time.Now())); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.SessionRepo().Get(ctx, "a"); err != nil {
		t.Errorf("get after reopen: %v", err)
	}
}

func TestSessionSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	rec, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if rec != nil {
		t.Fatal("expected nil session when none exist")
	}

	now := time.Date(2025, 3, 1, 9, 0, 0, 123, time.UTC)
	in := record("s1", now)
	in.Snapshot.CatalogVersion = "v1.0.0"
	in.Snapshot.Progress["rf-cutoff"] = &ProgressData{
		Correct:     2,
		Repetitions: 2,
		Interval:    3,
		Ease:        2.7,
		NextDue:     now.Add(72 * time.Hour).Format(time.RFC3339Nano),
		LastAnswer:  "best",
	}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if rec == nil {
		t.Fatal("expected non-nil session")
	}
	if rec.ID != "s1" {
		t.Errorf("id = %q, want s1", rec.ID)
	}
	if !rec.UpdatedAt.Equal(now) {
		t.Errorf("updated_at = %v, want %v", rec.UpdatedAt, now)
	}
	if rec.Snapshot.CatalogVersion != "v1.0.0" {
		t.Errorf("catalog_version = %q", rec.Snapshot.CatalogVersion)
	}
	p := rec.Snapshot.Progress["rf-cutoff"]
	if p == nil || p.Correct != 2 || p.Ease != 2.7 || p.LastAnswer != "best" {
		t.Errorf("progress = %+v", p)
	}
}

func TestSessionSaveUpserts(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	if err := repo.Save(ctx, record("s1", base)); err != nil {
		t.Fatalf("save: %v", err)
	}
	updated := record("s1", base.Add(time.Minute))
	updated.Snapshot.Progress["x"] = &ProgressData{Incorrect: 1}
	if err := repo.Save(ctx, updated); err != nil {
		t.Fatalf("save again: %v", err)
	}

	if n := countRows(t, s, "sessions"); n != 1 {
		t.Fatalf("sessions = %d, want 1", n)
	}
	got, err := repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.UpdatedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("updated_at = %v", got.UpdatedAt)
	}
	if got.Snapshot.Progress["x"] == nil {
		t.Error("expected replaced snapshot to include new progress")
	}
}

func TestSessionGetNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.SessionRepo().Get(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, i := range []int{1, 3, 2} {
		if err := repo.Save(ctx, record(fmt.Sprintf("s%d", i), base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	rec, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if rec.ID != "s3" {
		t.Errorf("latest = %q, want s3", rec.ID)
	}

	list, err := repo.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "s3" || list[1].ID != "s2" {
		t.Errorf("list = %+v", list)
	}
}

func TestSessionPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if err := repo.Save(ctx, record(fmt.Sprintf("s%d", i), base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, "sessions"); n != 5 {
		t.Errorf("remaining sessions = %d, want 5", n)
	}
	if _, err := repo.Get(ctx, "s1"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("s1 should be pruned, err = %v", err)
	}
	if _, err := repo.Get(ctx, "s2"); err != nil {
		t.Errorf("s2 should survive: %v", err)
	}
}

func TestSessionPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		if err := repo.Save(ctx, record(fmt.Sprintf("s%d", i), base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, "sessions"); n != 2 {
		t.Errorf("remaining sessions = %d, want 2", n)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAnswerEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	due := at.Add(24 * time.Hour)
	for i, q := range []string{"best", "bad", "timeout"} {
		sessionID := "s1"
		if i == 2 {
			sessionID = "s2"
		}
		err := repo.AppendAnswerEvent(ctx, AnswerEventData{
			Timestamp:      at.Add(time.Duration(i) * time.Minute),
			SessionID:      sessionID,
			ScenarioID:     fmt.Sprintf("sc%d", i),
			Quality:        q,
			ResponseTimeMs: int64(1000 * (i + 1)),
			Interval:       1,
			Ease:           2.6,
			NextDue:        due,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.QueryAnswerEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("events = %d, want 3", len(all))
	}
	if all[0].Sequence != 3 || all[0].Quality != "timeout" {
		t.Errorf("newest = %+v", all[0])
	}
	if !all[2].NextDue.Equal(due) || all[2].ResponseTimeMs != 1000 {
		t.Errorf("oldest = %+v", all[2])
	}
	if !all[2].Timestamp.Equal(at) || !all[0].Timestamp.Equal(at.Add(2*time.Minute)) {
		t.Errorf("timestamps = %v, %v", all[2].Timestamp, all[0].Timestamp)
	}

	limited, err := repo.QueryAnswerEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query limit: %v", err)
	}
	if len(limited) != 1 || limited[0].Sequence != 3 {
		t.Errorf("limited = %+v", limited)
	}

	bySession, err := repo.QueryAnswerEvents(ctx, QueryOpts{SessionID: "s1"})
	if err != nil {
		t.Fatalf("query session: %v", err)
	}
	if len(bySession) != 2 {
		t.Errorf("s1 events = %d, want 2", len(bySession))
	}

	after, err := repo.QueryAnswerEvents(ctx, QueryOpts{After: 1, Before: 3})
	if err != nil {
		t.Fatalf("query range: %v", err)
	}
	if len(after) != 1 || after[0].Sequence != 2 {
		t.Errorf("range = %+v", after)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("DRILLQ_DB", filepath.Join(dir, "env", "custom.db"))
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("env path: %v", err)
	}
	if p != filepath.Join(dir, "env", "custom.db") {
		t.Errorf("path = %q", p)
	}

	t.Setenv("DRILLQ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("xdg path: %v", err)
	}
	if p != filepath.Join(dir, "drillq", "drillq.db") {
		t.Errorf("path = %q", p)
	}
}
