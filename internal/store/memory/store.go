package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/omarshaarawi/fantasyfeed/internal/store"
)

// Store keeps documents in process. It backs dry runs and tests.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]any
	commits     int
	commitErr   error
}

func NewStore() *Store {
	return &Store{collections: make(map[string]map[string]any)}
}

func (s *Store) NewBatch() store.Batch {
	return &batch{store: s}
}

func (s *Store) ListIDs(ctx context.Context, collection string, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.collections[collection]))
	for id := range s.collections[collection] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) Get(collection, id string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][id]
	return doc, ok
}

func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}

// Commits reports how many batches were applied.
func (s *Store) Commits() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commits
}

// FailCommits makes every following commit return err. Pass nil to recover.
func (s *Store) FailCommits(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitErr = err
}

func (s *Store) apply(writes []store.Write) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.commitErr != nil {
		return s.commitErr
	}

	for _, w := range writes {
		switch w.Op {
		case store.OpSet:
			docs, ok := s.collections[w.Collection]
			if !ok {
				docs = make(map[string]any)
				s.collections[w.Collection] = docs
			}
			docs[w.ID] = w.Doc
		case store.OpDelete:
			delete(s.collections[w.Collection], w.ID)
		}
	}
	s.commits++
	return nil
}

type batch struct {
	store.Writes
	store *Store
}

func (b *batch) Commit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	writes, err := b.Take()
	if err != nil {
		return err
	}
	return b.store.apply(writes)
}
