// Package maintenance clears dashboard collections between seasons or runs.
package maintenance

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/omarshaarawi/fantasyfeed/internal/store"
)

const DefaultPageSize = 500

type Purger struct {
	store       store.Store
	collections store.Collections
	pageSize    int
}

func NewPurger(st store.Store, collections store.Collections, pageSize int) *Purger {
	if pageSize <= 0 || pageSize > store.MaxWritesPerCommit {
		pageSize = DefaultPageSize
	}
	return &Purger{store: st, collections: collections, pageSize: pageSize}
}

// Purge deletes a collection page by page and returns how many documents
// were removed. An empty collection costs one listing and no commits.
func (p *Purger) Purge(ctx context.Context, collection string) (int, error) {
	log := slog.With("collection", collection)
	log.Info("Starting cleanup")

	deleted := 0
	for {
		ids, err := p.store.ListIDs(ctx, collection, p.pageSize)
		if err != nil {
			return deleted, errors.Wrapf(err, "listing page after %d deleted", deleted)
		}
		if len(ids) == 0 {
			break
		}

		batch := p.store.NewBatch()
		for _, id := range ids {
			batch.Delete(collection, id)
		}
		if err := batch.Commit(ctx); err != nil {
			return deleted, errors.Wrapf(err, "deleting page of %d after %d deleted", len(ids), deleted)
		}

		deleted += len(ids)
		log.Info("Deleted batch", "documents", len(ids), "total", deleted)
	}

	if deleted == 0 {
		log.Info("Collection was already empty")
	} else {
		log.Info("Collection cleared", "total", deleted)
	}
	return deleted, nil
}

func (p *Purger) ClearChat(ctx context.Context) (int, error) {
	return p.Purge(ctx, p.collections.Chat)
}

func (p *Purger) ClearMatches(ctx context.Context) (int, error) {
	return p.Purge(ctx, p.collections.Matches)
}
