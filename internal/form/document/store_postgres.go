package document

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	dErrors "caseflow/pkg/domain-errors"
)

//go:embed schema.sql
var schema string

// PostgresStore persists documents in PostgreSQL with the page data held as a
// single JSONB column, mirroring the data[task][page] layout.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed document store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the documents table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure documents schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, doc *Document) error {
	data, err := json.Marshal(doc.Data)
	if err != nil {
		return fmt.Errorf("marshal document data: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO documents (id, journey_kind, crn, created_by, status, restricted, created_at, submitted_at, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		doc.ID, doc.JourneyKind, doc.CRN, doc.CreatedBy, doc.Status, doc.Restricted,
		doc.CreatedAt, doc.SubmittedAt, data,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	var (
		doc  Document
		data []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, journey_kind, crn, created_by, status, restricted, created_at, submitted_at, data
		FROM documents WHERE id = $1`, id,
	).Scan(&doc.ID, &doc.JourneyKind, &doc.CRN, &doc.CreatedBy, &doc.Status,
		&doc.Restricted, &doc.CreatedAt, &doc.SubmittedAt, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "document %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("select document: %w", err)
	}
	if err := json.Unmarshal(data, &doc.Data); err != nil {
		return nil, fmt.Errorf("unmarshal document data: %w", err)
	}
	return &doc, nil
}

// SaveTaskPageData replaces the data[task][page] entry in one atomic UPDATE;
// concurrent submissions to the same entry are last-write-wins.
func (s *PostgresStore) SaveTaskPageData(ctx context.Context, id uuid.UUID, taskSlug, pageSlug string, body map[string]any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal page body: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE documents
		SET data = jsonb_set(
			jsonb_set(data, ARRAY[$2], COALESCE(data->$2, '{}'::jsonb), true),
			ARRAY[$2, $3], $4::jsonb, true)
		WHERE id = $1 AND status = $5`,
		id, taskSlug, pageSlug, payload, StatusStarted,
	)
	if err != nil {
		return fmt.Errorf("save page data: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return s.classifyMissedWrite(ctx, id)
	}
	return nil
}

func (s *PostgresStore) Submit(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE documents SET status = $2, submitted_at = $3
		WHERE id = $1 AND status = $4`,
		id, StatusSubmitted, at, StatusStarted,
	)
	if err != nil {
		return fmt.Errorf("submit document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return s.classifyMissedWrite(ctx, id)
	}
	return nil
}

// classifyMissedWrite distinguishes a missing document from a read-only one
// after a guarded UPDATE matched no rows.
func (s *PostgresStore) classifyMissedWrite(ctx context.Context, id uuid.UUID) error {
	var status Status
	err := s.pool.QueryRow(ctx, `SELECT status FROM documents WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return dErrors.Newf(dErrors.CodeNotFound, "document %s not found", id)
	}
	if err != nil {
		return fmt.Errorf("select document status: %w", err)
	}
	return dErrors.Newf(dErrors.CodeConflict, "document %s is %s and read-only", id, status)
}
