package document

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	dErrors "caseflow/pkg/domain-errors"
)

// InMemoryStore keeps documents in a map. Deep copies cross the boundary in
// both directions so callers can never mutate stored state through a shared
// reference.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]*Document
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[uuid.UUID]*Document)}
}

func (s *InMemoryStore) Create(_ context.Context, doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; exists {
		return dErrors.Newf(dErrors.CodeConflict, "document %s already exists", doc.ID)
	}
	s.docs[doc.ID] = copyDocument(doc)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id uuid.UUID) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "document %s not found", id)
	}
	return copyDocument(doc), nil
}

func (s *InMemoryStore) SaveTaskPageData(_ context.Context, id uuid.UUID, taskSlug, pageSlug string, body map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return dErrors.Newf(dErrors.CodeNotFound, "document %s not found", id)
	}
	if doc.Status != StatusStarted {
		return dErrors.Newf(dErrors.CodeConflict, "document %s is %s and read-only", id, doc.Status)
	}
	doc.setPageBody(taskSlug, pageSlug, copyBody(body))
	return nil
}

func (s *InMemoryStore) Submit(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return dErrors.Newf(dErrors.CodeNotFound, "document %s not found", id)
	}
	if doc.Status != StatusStarted {
		return dErrors.Newf(dErrors.CodeConflict, "document %s is already %s", id, doc.Status)
	}
	doc.Status = StatusSubmitted
	doc.SubmittedAt = &at
	return nil
}

func copyDocument(doc *Document) *Document {
	out := *doc
	out.Data = make(PageData, len(doc.Data))
	for task, pages := range doc.Data {
		out.Data[task] = make(map[string]map[string]any, len(pages))
		for page, body := range pages {
			out.Data[task][page] = copyBody(body)
		}
	}
	if doc.SubmittedAt != nil {
		at := *doc.SubmittedAt
		out.SubmittedAt = &at
	}
	return &out
}

func copyBody(body map[string]any) map[string]any {
	out := make(map[string]any, len(body))
	for k, v := range body {
		out[k] = copyValue(v)
	}
	return out
}

// copyValue deep-copies the JSON-compatible subset of values a body may hold.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyBody(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}
