// Package docrepos implements the domain repositories over a docstore.Store.
package docrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

// collection is a typed view over one docstore collection.
// notFound is returned in place of docstore.ErrNoDocument.
type collection[T any] struct {
	store    docstore.Store
	name     string
	notFound error
}

func newID() string {
	return uuid.NewString()
}

func (c collection[T]) mapErr(err error) error {
	if errors.Cause(err) == docstore.ErrNoDocument {
		return c.notFound
	}
	return err
}

func (c collection[T]) insert(ctx context.Context, id string, doc T) error {
	return c.store.Insert(ctx, c.name, id, doc)
}

func (c collection[T]) get(ctx context.Context, f docstore.Filter) (T, error) {
	var doc T
	if err := c.store.Get(ctx, c.name, f, &doc); err != nil {
		var zero T
		return zero, c.mapErr(err)
	}
	return doc, nil
}

func (c collection[T]) byID(ctx context.Context, id string) (T, error) {
	return c.get(ctx, docstore.Filter{docstore.IDKey: id})
}

func (c collection[T]) find(ctx context.Context, f docstore.Filter) ([]T, error) {
	docs := make([]T, 0)
	if err := c.store.Find(ctx, c.name, f, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c collection[T]) ownedBy(ctx context.Context, ownerID string) ([]T, error) {
	return c.find(ctx, docstore.Filter{"user": ownerID})
}

func (c collection[T]) replace(ctx context.Context, id string, doc T) error {
	return c.mapErr(c.store.Replace(ctx, c.name, id, doc))
}

func (c collection[T]) deleteWhere(ctx context.Context, f docstore.Filter) error {
	n, err := c.store.Delete(ctx, c.name, f)
	if err != nil {
		return err
	}
	if n == 0 {
		return c.notFound
	}
	return nil
}

func (c collection[T]) deleteByID(ctx context.Context, id string) error {
	return c.deleteWhere(ctx, docstore.Filter{docstore.IDKey: id})
}
