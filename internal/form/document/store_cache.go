package document

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CachedStore is a read-through Redis cache in front of another store. Cache
// misses and Redis faults fall back to the inner store; writes invalidate the
// cached entry so the next read observes the replaced page data.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCached wraps inner with a Redis read-through cache.
func NewCached(inner Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(id uuid.UUID) string {
	return "caseflow:document:" + id.String()
}

func (s *CachedStore) Create(ctx context.Context, doc *Document) error {
	return s.inner.Create(ctx, doc)
}

func (s *CachedStore) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	if cached, err := s.client.Get(ctx, cacheKey(id)).Bytes(); err == nil {
		var doc Document
		if err := json.Unmarshal(cached, &doc); err == nil {
			return &doc, nil
		}
		// Unreadable entries are dropped and refetched.
		s.client.Del(ctx, cacheKey(id))
	}

	doc, err := s.inner.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(doc); err == nil {
		if err := s.client.Set(ctx, cacheKey(id), payload, s.ttl).Err(); err != nil {
			s.logger.WarnContext(ctx, "cache document failed", "document_id", id, "error", err)
		}
	}
	return doc, nil
}

func (s *CachedStore) SaveTaskPageData(ctx context.Context, id uuid.UUID, taskSlug, pageSlug string, body map[string]any) error {
	if err := s.inner.SaveTaskPageData(ctx, id, taskSlug, pageSlug, body); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CachedStore) Submit(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := s.inner.Submit(ctx, id, at); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CachedStore) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		s.logger.WarnContext(ctx, "invalidate cached document failed", "document_id", id, "error", err)
	}
}
