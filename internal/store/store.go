package store

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"
)

// MaxWritesPerCommit is the largest number of writes a backend sends in
// one atomic unit. Firestore rejects transactions above it.
const MaxWritesPerCommit = 500

var ErrBatchCommitted = errors.New("batch already committed")

// Store is a hierarchical document store. Collections are addressed by
// their full path, see CollectionPath.
type Store interface {
	NewBatch() Batch
	ListIDs(ctx context.Context, collection string, limit int) ([]string, error)
	Close() error
}

// Batch stages upserts and deletes and writes them on Commit. A batch is
// used by one pass only and is not safe for concurrent use.
type Batch interface {
	Set(collection, id string, doc any)
	Delete(collection, id string)
	Len() int
	Commit(ctx context.Context) error
}

// CollectionPath nests a collection under the deployment's public data area.
func CollectionPath(appID, collection string) string {
	return fmt.Sprintf("artifacts/%s/public/data/%s", appID, collection)
}

type Collections struct {
	Chat    string
	Matches string
}

func NewCollections(appID, chat, matches string) Collections {
	return Collections{
		Chat:    CollectionPath(appID, chat),
		Matches: CollectionPath(appID, matches),
	}
}

type Op int

const (
	OpSet Op = iota
	OpDelete
)

type Write struct {
	Op         Op
	Collection string
	ID         string
	Doc        any
}

// Writes is the staging buffer shared by the backends' batches.
type Writes struct {
	writes    []Write
	committed bool
}

func (w *Writes) Set(collection, id string, doc any) {
	w.writes = append(w.writes, Write{Op: OpSet, Collection: collection, ID: id, Doc: doc})
}

func (w *Writes) Delete(collection, id string) {
	w.writes = append(w.writes, Write{Op: OpDelete, Collection: collection, ID: id})
}

func (w *Writes) Len() int {
	return len(w.writes)
}

// Take hands the staged writes to a backend exactly once.
func (w *Writes) Take() ([]Write, error) {
	if w.committed {
		return nil, ErrBatchCommitted
	}
	w.committed = true
	return w.writes, nil
}

// Chunk splits writes into groups of at most size.
func Chunk(writes []Write, size int) [][]Write {
	if size <= 0 {
		size = MaxWritesPerCommit
	}
	var chunks [][]Write
	for len(writes) > size {
		chunks = append(chunks, writes[:size:size])
		writes = writes[size:]
	}
	if len(writes) > 0 {
		chunks = append(chunks, writes)
	}
	return chunks
}
