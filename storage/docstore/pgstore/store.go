// Package pgstore is a docstore.Store keeping documents as JSONB rows in PostgreSQL,
// one table per collection: (id TEXT PRIMARY KEY, data JSONB, created_at TIMESTAMPTZ).
package pgstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

const uniqueViolation = "23505"

type Store struct {
	db *sqlx.DB
}

var _ docstore.Store = (*Store)(nil)

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func table(coll string) (string, error) {
	if !docstore.IsCollection(coll) {
		return "", errors.Errorf("unknown collection %q", coll)
	}
	return pq.QuoteIdentifier(coll), nil
}

// where builds the WHERE clause for f with keys in sorted order so queries are stable.
func where(f docstore.Filter) (string, []interface{}) {
	if len(f) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conds := make([]string, len(keys))
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		if k == docstore.IDKey {
			conds[i] = fmt.Sprintf("id = $%d", i+1)
		} else {
			conds[i] = fmt.Sprintf("data->>%s = $%d", pq.QuoteLiteral(k), i+1)
		}
		args[i] = f[k]
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *Store) Insert(ctx context.Context, coll, id string, doc interface{}) error {
	tbl, err := table(coll)
	if err != nil {
		return err
	}
	data, err := docstore.MarshalJSON(doc)
	if err != nil {
		return err
	}

	q := "INSERT INTO " + tbl + " (id, data) VALUES ($1, $2)"
	if _, err = s.db.ExecContext(ctx, q, id, data); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return docstore.ErrDuplicate
		}
		return errors.Wrapf(err, "inserting into %s", coll)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, coll string, f docstore.Filter, out interface{}) error {
	tbl, err := table(coll)
	if err != nil {
		return err
	}
	cond, args := where(f)

	var data []byte
	q := "SELECT data FROM " + tbl + cond + " ORDER BY created_at, id LIMIT 1"
	if err = s.db.GetContext(ctx, &data, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return docstore.ErrNoDocument
		}
		return errors.Wrapf(err, "selecting from %s", coll)
	}
	return docstore.UnmarshalJSON(data, out)
}

func (s *Store) Find(ctx context.Context, coll string, f docstore.Filter, out interface{}) error {
	tbl, err := table(coll)
	if err != nil {
		return err
	}
	cond, args := where(f)

	var docs [][]byte
	q := "SELECT data FROM " + tbl + cond + " ORDER BY created_at, id"
	if err = s.db.SelectContext(ctx, &docs, q, args...); err != nil {
		return errors.Wrapf(err, "selecting from %s", coll)
	}
	return docstore.DecodeAll(docs, out, docstore.UnmarshalJSON)
}

func (s *Store) Replace(ctx context.Context, coll, id string, doc interface{}) error {
	tbl, err := table(coll)
	if err != nil {
		return err
	}
	data, err := docstore.MarshalJSON(doc)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, "UPDATE "+tbl+" SET data = $2 WHERE id = $1", id, data)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return docstore.ErrDuplicate
		}
		return errors.Wrapf(err, "updating %s", coll)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrapf(err, "updating %s", coll)
	}
	if n == 0 {
		return docstore.ErrNoDocument
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, coll string, f docstore.Filter) (int64, error) {
	tbl, err := table(coll)
	if err != nil {
		return 0, err
	}
	cond, args := where(f)

	res, err := s.db.ExecContext(ctx, "DELETE FROM "+tbl+cond, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "deleting from %s", coll)
	}
	return res.RowsAffected()
}

func (s *Store) Close(context.Context) error {
	return s.db.Close()
}
