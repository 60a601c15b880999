package firestore

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/cockroachdb/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/omarshaarawi/fantasyfeed/internal/store"
)

type Store struct {
	client *firestore.Client
}

// New connects with a service account key file. An empty projectID is
// detected from the credentials.
func New(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to firestore with key %s", credentialsFile)
	}
	return &Store{client: client}, nil
}

func NewFromClient(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) NewBatch() store.Batch {
	return &batch{client: s.client}
}

func (s *Store) ListIDs(ctx context.Context, collection string, limit int) ([]string, error) {
	iter := s.client.Collection(collection).Select().Limit(limit).Documents(ctx)
	defer iter.Stop()

	var ids []string
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "listing %s", collection)
		}
		ids = append(ids, doc.Ref.ID)
	}
	return ids, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

type batch struct {
	store.Writes
	client *firestore.Client
}

// Commit writes each chunk of up to store.MaxWritesPerCommit writes in its
// own transaction. A failed chunk stops the commit; earlier chunks stay.
func (b *batch) Commit(ctx context.Context) error {
	writes, err := b.Take()
	if err != nil {
		return err
	}

	chunks := store.Chunk(writes, store.MaxWritesPerCommit)
	for i, chunk := range chunks {
		err := b.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			for _, w := range chunk {
				ref := b.client.Collection(w.Collection).Doc(w.ID)
				switch w.Op {
				case store.OpSet:
					if err := tx.Set(ref, w.Doc); err != nil {
						return err
					}
				case store.OpDelete:
					if err := tx.Delete(ref); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "committing chunk %d/%d (%d writes)", i+1, len(chunks), len(chunk))
		}
		if len(chunks) > 1 {
			slog.Debug("Committed chunk", "chunk", i+1, "chunks", len(chunks), "writes", len(chunk))
		}
	}
	return nil
}
