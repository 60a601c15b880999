package sqldoc

import (
	"context"
	"database/sql"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"

	"github.com/omarshaarawi/fantasyfeed/internal/store"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrNotFound = errors.New("document not found")

const upsertQuery = `INSERT INTO documents (collection_path, doc_id, body, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (collection_path, doc_id) DO UPDATE SET
    body = excluded.body,
    updated_at = excluded.updated_at`

// Store keeps every collection in one documents table keyed by
// (collection_path, doc_id) with a JSON body.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open connects, applies pending migrations and returns the store.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	if err := migrateUp(driver, dsn); err != nil {
		return nil, err
	}

	db, err := otelsqlx.Open(driver, dsn, otelsql.WithAttributes(attribute.String("db.system", driver)))
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", driver)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "connecting to %s", driver)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) NewBatch() store.Batch {
	return &batch{store: s}
}

func (s *Store) ListIDs(ctx context.Context, collection string, limit int) ([]string, error) {
	query := s.db.Rebind(`SELECT doc_id FROM documents WHERE collection_path = ? ORDER BY doc_id LIMIT ?`)

	var ids []string
	if err := s.db.SelectContext(ctx, &ids, query, collection, limit); err != nil {
		return nil, errors.Wrapf(err, "listing %s", collection)
	}
	return ids, nil
}

// Get decodes one document into dst.
func (s *Store) Get(ctx context.Context, collection, id string, dst any) error {
	query := s.db.Rebind(`SELECT body FROM documents WHERE collection_path = ? AND doc_id = ?`)

	var body string
	err := s.db.GetContext(ctx, &body, query, collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrapf(ErrNotFound, "%s/%s", collection, id)
	}
	if err != nil {
		return errors.Wrapf(err, "reading %s/%s", collection, id)
	}
	return sonic.UnmarshalString(body, dst)
}

func (s *Store) Close() error {
	return s.db.Close()
}

type batch struct {
	store.Writes
	store *Store
}

// Commit applies every staged write in one SQL transaction.
func (b *batch) Commit(ctx context.Context) error {
	writes, err := b.Take()
	if err != nil {
		return err
	}
	if len(writes) == 0 {
		return nil
	}

	db := b.store.db
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin document batch")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	upsert := db.Rebind(upsertQuery)
	remove := db.Rebind(`DELETE FROM documents WHERE collection_path = ? AND doc_id = ?`)
	updatedAt := b.store.now().UnixMilli()

	for _, w := range writes {
		switch w.Op {
		case store.OpSet:
			body, err := sonic.MarshalString(w.Doc)
			if err != nil {
				return errors.Wrapf(err, "encoding %s/%s", w.Collection, w.ID)
			}
			if _, err := tx.ExecContext(ctx, upsert, w.Collection, w.ID, body, updatedAt); err != nil {
				return errors.Wrapf(err, "upserting %s/%s", w.Collection, w.ID)
			}
		case store.OpDelete:
			if _, err := tx.ExecContext(ctx, remove, w.Collection, w.ID); err != nil {
				return errors.Wrapf(err, "deleting %s/%s", w.Collection, w.ID)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit document batch")
	}
	return nil
}
