package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

type doc struct {
	ID    string `bson:"_id"`
	Owner string `bson:"user"`
	Name  string `bson:"name"`
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New()
	const coll = docstore.Members

	for _, d := range []doc{{"1", "u1", "Ann"}, {"2", "u2", "Bob"}, {"3", "u1", "Cid"}} {
		require.NoError(t, s.Insert(ctx, coll, d.ID, d))
	}
	assert.Equal(t, docstore.ErrDuplicate, s.Insert(ctx, coll, "1", doc{ID: "1"}))

	var got doc
	require.NoError(t, s.Get(ctx, coll, docstore.Filter{docstore.IDKey: "2"}, &got))
	assert.Equal(t, doc{"2", "u2", "Bob"}, got)
	assert.Equal(t, docstore.ErrNoDocument, s.Get(ctx, coll, docstore.Filter{docstore.IDKey: "9"}, &got))
	assert.Equal(t, docstore.ErrNoDocument, s.Get(ctx, docstore.Feedback, docstore.Filter{}, &got))

	var owned []doc
	require.NoError(t, s.Find(ctx, coll, docstore.Filter{"user": "u1"}, &owned))
	assert.Equal(t, []doc{{"1", "u1", "Ann"}, {"3", "u1", "Cid"}}, owned)

	var none []doc
	require.NoError(t, s.Find(ctx, coll, docstore.Filter{"user": "u9"}, &none))
	assert.Empty(t, none)

	require.NoError(t, s.Replace(ctx, coll, "3", doc{"3", "u1", "Cyd"}))
	require.NoError(t, s.Get(ctx, coll, docstore.Filter{docstore.IDKey: "3"}, &got))
	assert.Equal(t, "Cyd", got.Name)
	assert.Equal(t, docstore.ErrNoDocument, s.Replace(ctx, coll, "9", doc{ID: "9"}))

	// replacing keeps the insertion order
	require.NoError(t, s.Find(ctx, coll, docstore.Filter{"user": "u1"}, &owned))
	assert.Equal(t, "1", owned[0].ID)

	n, err := s.Delete(ctx, coll, docstore.Filter{"user": "u1"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var rest []doc
	require.NoError(t, s.Find(ctx, coll, docstore.Filter{}, &rest))
	assert.Equal(t, []doc{{"2", "u2", "Bob"}}, rest)

	s.Reset()
	require.NoError(t, s.Find(ctx, coll, docstore.Filter{}, &rest))
	assert.Empty(t, rest)
}
