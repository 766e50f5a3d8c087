// Package eventlog appends an immutable row per page submission. The log
// backs the audit requirement that the document history of what was asked and
// answered is retained indefinitely, independent of later edits.
package eventlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// Entry is one recorded page submission.
type Entry struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	TaskSlug   string
	PageSlug   string
	ActorID    string
	OccurredAt time.Time
}

// PostgresLog stores submission entries in PostgreSQL via database/sql.
type PostgresLog struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed submission log.
func NewPostgres(db *sql.DB) *PostgresLog {
	return &PostgresLog{db: db}
}

// Open connects with the lib/pq driver and verifies connectivity.
func Open(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open submission log db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping submission log db: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the page_submissions table if it does not exist.
func (l *PostgresLog) EnsureSchema(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS page_submissions (
			id          UUID PRIMARY KEY,
			document_id UUID NOT NULL,
			task_slug   TEXT NOT NULL,
			page_slug   TEXT NOT NULL,
			actor_id    TEXT NOT NULL,
			occurred_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure page_submissions schema: %w", err)
	}
	return nil
}

// Append records one submission.
func (l *PostgresLog) Append(ctx context.Context, e Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO page_submissions (id, document_id, task_slug, page_slug, actor_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.DocumentID, e.TaskSlug, e.PageSlug, e.ActorID, e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("append submission entry: %w", err)
	}
	return nil
}

// ListByDocument returns a document's submissions in occurrence order.
func (l *PostgresLog) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, document_id, task_slug, page_slug, actor_id, occurred_at
		FROM page_submissions WHERE document_id = $1 ORDER BY occurred_at`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list submission entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.DocumentID, &e.TaskSlug, &e.PageSlug, &e.ActorID, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan submission entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
