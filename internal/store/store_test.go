package store

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionPath(t *testing.T) {
	assert.Equal(t, "artifacts/league-live/public/data/fantasyMatches2025", CollectionPath("league-live", "fantasyMatches2025"))

	c := NewCollections("league-live", "leagueChat", "fantasyMatches2025")
	assert.Equal(t, "artifacts/league-live/public/data/leagueChat", c.Chat)
	assert.Equal(t, "artifacts/league-live/public/data/fantasyMatches2025", c.Matches)
}

func TestChunk(t *testing.T) {
	writes := make([]Write, 1201)
	for i := range writes {
		writes[i] = Write{ID: strconv.Itoa(i)}
	}

	chunks := Chunk(writes, MaxWritesPerCommit)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 500)
	assert.Len(t, chunks[1], 500)
	assert.Len(t, chunks[2], 201)
	assert.Equal(t, "1200", chunks[2][200].ID)

	assert.Empty(t, Chunk(nil, MaxWritesPerCommit))
}

func TestWritesTakeOnce(t *testing.T) {
	var w Writes
	w.Set("c", "a", 1)
	w.Delete("c", "b")
	assert.Equal(t, 2, w.Len())

	writes, err := w.Take()
	require.NoError(t, err)
	assert.Equal(t, []Write{{Op: OpSet, Collection: "c", ID: "a", Doc: 1}, {Op: OpDelete, Collection: "c", ID: "b"}}, writes)

	_, err = w.Take()
	assert.ErrorIs(t, err, ErrBatchCommitted)
}
