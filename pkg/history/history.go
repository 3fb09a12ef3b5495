// Package history records crawl-run metadata (start/end time, feed and
// article counts, fatal error if any) in Postgres, in the teacher's
// database idiom (database/sql + github.com/lib/pq, transactions for
// multi-statement writes — see cmd/gemplex/crawl.go's updateDb* family).
//
// This is deliberately *not* a second copy of the Index: spec.md's
// non-goal "persistence of the index across runs" is untouched, since
// the Index itself is rebuilt from scratch every crawl and is never
// read back from here.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Recorder writes one row per crawl run. The zero value (via Open("")) is
// a disabled no-op recorder, so callers don't need to branch on whether
// history is configured.
type Recorder struct {
	db *sql.DB
}

// Open connects to dsn and ensures the crawl_runs table exists. An empty
// dsn yields a disabled Recorder whose methods are no-ops.
func Open(dsn string) (*Recorder, error) {
	if dsn == "" {
		return &Recorder{}, nil
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("history: ping: %w", err)
	}

	const schema = `
create table if not exists crawl_runs (
	id serial primary key,
	root_url text not null,
	started_at timestamptz not null,
	finished_at timestamptz not null,
	feed_count integer not null,
	article_count integer not null,
	token_count integer not null,
	fatal_error text
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Recorder{db: db}, nil
}

// Close releases the underlying connection pool, if any.
func (r *Recorder) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Stats summarizes one completed (or aborted) crawl run.
type Stats struct {
	FeedCount    int
	ArticleCount int
	TokenCount   int
}

// RecordRun inserts one row describing a crawl run. fatal, if non-nil,
// is stored as text; the run is otherwise assumed successful. A
// disabled Recorder silently does nothing.
func (r *Recorder) RecordRun(ctx context.Context, rootURL string, started, finished time.Time, stats Stats, fatal error) error {
	if r.db == nil {
		return nil
	}

	var fatalText sql.NullString
	if fatal != nil {
		fatalText = sql.NullString{String: fatal.Error(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
insert into crawl_runs
	(root_url, started_at, finished_at, feed_count, article_count, token_count, fatal_error)
values
	($1, $2, $3, $4, $5, $6, $7)`,
		rootURL, started, finished, stats.FeedCount, stats.ArticleCount, stats.TokenCount, fatalText,
	)
	if err != nil {
		return fmt.Errorf("history: record run: %w", err)
	}
	return nil
}
