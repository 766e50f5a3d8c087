//go:build integration

package document

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caseflow/pkg/testutil/containers"
)

// countingStore counts reads so cache hits are observable.
type countingStore struct {
	Store
	gets int
}

func (s *countingStore) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	s.gets++
	return s.Store.Get(ctx, id)
}

func TestCachedStoreReadThrough(t *testing.T) {
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	require.NoError(t, rc.FlushAll(ctx))

	inner := &countingStore{Store: NewInMemoryStore()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cached := NewCached(inner, rc.Client, time.Minute, logger)

	doc := New("apply", "X320741", "user-1", time.Now().UTC())
	doc.setPageBody("basic-information", "case-responsibility", map[string]any{
		"isResponsibilityRetained": "yes",
	})
	require.NoError(t, cached.Create(ctx, doc))

	first, err := cached.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets)

	second, err := cached.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.gets, "second read must come from the cache")
	assert.Equal(t, first.Data, second.Data)
}

func TestCachedStoreWriteInvalidates(t *testing.T) {
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	require.NoError(t, rc.FlushAll(ctx))

	inner := &countingStore{Store: NewInMemoryStore()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cached := NewCached(inner, rc.Client, time.Minute, logger)

	doc := New("apply", "X320741", "user-1", time.Now().UTC())
	require.NoError(t, cached.Create(ctx, doc))
	_, err := cached.Get(ctx, doc.ID)
	require.NoError(t, err)

	require.NoError(t, cached.SaveTaskPageData(ctx, doc.ID, "basic-information", "board-review",
		map[string]any{"hasBoardTakenPlace": "yes"}))

	got, err := cached.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "yes", got.Data["basic-information"]["board-review"]["hasBoardTakenPlace"],
		"a read after a write must observe the new page data, not the cached document")
}

func TestCachedStoreSubmitInvalidates(t *testing.T) {
	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	require.NoError(t, rc.FlushAll(ctx))

	inner := NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cached := NewCached(inner, rc.Client, time.Minute, logger)

	doc := New("assess", "X320741", "user-1", time.Now().UTC())
	require.NoError(t, cached.Create(ctx, doc))
	_, err := cached.Get(ctx, doc.ID)
	require.NoError(t, err)

	require.NoError(t, cached.Submit(ctx, doc.ID, time.Now().UTC()))

	got, err := cached.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, got.Status)
}
