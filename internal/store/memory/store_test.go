package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/fantasyfeed/internal/store"
)

func TestBatchCommit(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	b := s.NewBatch()
	b.Set("matches", "b", "second")
	b.Set("matches", "a", "first")
	b.Set("matches", "c", "third")
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 0, s.Count("matches"), "nothing is visible before commit")

	require.NoError(t, b.Commit(ctx))
	assert.Equal(t, 1, s.Commits())

	ids, err := s.ListIDs(ctx, "matches", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	assert.ErrorIs(t, b.Commit(ctx), store.ErrBatchCommitted)
}

func TestBatchUpsertAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	b := s.NewBatch()
	b.Set("matches", "a", 1)
	require.NoError(t, b.Commit(ctx))

	b = s.NewBatch()
	b.Set("matches", "a", 2)
	b.Delete("matches", "missing")
	require.NoError(t, b.Commit(ctx))

	doc, ok := s.Get("matches", "a")
	require.True(t, ok)
	assert.Equal(t, 2, doc)
	assert.Equal(t, 1, s.Count("matches"))

	b = s.NewBatch()
	b.Delete("matches", "a")
	require.NoError(t, b.Commit(ctx))
	assert.Equal(t, 0, s.Count("matches"))
}

func TestFailedCommitIsAbandoned(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("unavailable")
	s.FailCommits(boom)

	b := s.NewBatch()
	b.Set("matches", "a", 1)
	assert.ErrorIs(t, b.Commit(ctx), boom)
	assert.Equal(t, 0, s.Count("matches"))
	assert.Equal(t, 0, s.Commits())
}
