package document

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists documents. Implementations: in-memory (tests and local
// runs), Postgres (self-hosted), and the case API client (when the document
// service owns storage). A Redis read-through cache can wrap any of them.
type Store interface {
	// Create persists a new started document.
	Create(ctx context.Context, doc *Document) error

	// Get loads a document by ID. Returns dErrors.CodeNotFound when absent.
	Get(ctx context.Context, id uuid.UUID) (*Document, error)

	// SaveTaskPageData atomically replaces the data[task][page] entry.
	// Returns dErrors.CodeConflict when the document is no longer writable.
	SaveTaskPageData(ctx context.Context, id uuid.UUID, taskSlug, pageSlug string, body map[string]any) error

	// Submit marks the document submitted, freezing its data.
	Submit(ctx context.Context, id uuid.UUID, at time.Time) error
}
