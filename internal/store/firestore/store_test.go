package firestore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/fantasyfeed/internal/models"
	"github.com/omarshaarawi/fantasyfeed/internal/store"
)

// These tests need the Firestore emulator (gcloud emulators firestore start).
func newEmulatorStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	s, err := New(context.Background(), "fantasyfeed-test", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestEmulatorRoundTrip(t *testing.T) {
	s := newEmulatorStore(t)
	ctx := context.Background()
	collection := store.CollectionPath(uuid.NewString(), "fantasyMatches2025")

	b := s.NewBatch()
	for _, id := range []string{"Palmolive-1-3-7", "Palmolive-1-2-5", "Palmolive-2-3-7"} {
		b.Set(collection, id, &models.MatchDocument{ID: id, League: "Palmolive", Status: "Live"})
	}
	require.NoError(t, b.Commit(ctx))

	ids, err := s.ListIDs(ctx, collection, 2)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	b = s.NewBatch()
	b.Delete(collection, "Palmolive-1-3-7")
	b.Delete(collection, "Palmolive-1-2-5")
	b.Delete(collection, "Palmolive-2-3-7")
	require.NoError(t, b.Commit(ctx))

	ids, err = s.ListIDs(ctx, collection, 500)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEmulatorCommitAboveTransactionLimit(t *testing.T) {
	s := newEmulatorStore(t)
	ctx := context.Background()
	collection := store.CollectionPath(uuid.NewString(), "leagueChat")

	b := s.NewBatch()
	for i := 0; i < store.MaxWritesPerCommit+20; i++ {
		b.Set(collection, uuid.NewString(), map[string]any{"text": "gg", "n": i})
	}
	require.NoError(t, b.Commit(ctx))

	ids, err := s.ListIDs(ctx, collection, store.MaxWritesPerCommit)
	require.NoError(t, err)
	assert.Len(t, ids, store.MaxWritesPerCommit)
}
