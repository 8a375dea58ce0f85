// Package mongostore is the MongoDB docstore.Store.
package mongostore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ docstore.Store = (*Store)(nil)

// indexes created by EnsureIndexes, per collection
var indexes = map[string][]mongo.IndexModel{
	docstore.Users: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	docstore.Members: {
		{Keys: bson.D{{Key: "user", Value: 1}}},
	},
	docstore.Attendance: {
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "memberId", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	docstore.Maintenance:    {{Keys: bson.D{{Key: "user", Value: 1}}}},
	docstore.Complaints:     {{Keys: bson.D{{Key: "user", Value: 1}}}},
	docstore.Feedback:       {{Keys: bson.D{{Key: "user", Value: 1}}}},
	docstore.Plans:          {{Keys: bson.D{{Key: "user", Value: 1}}}},
	docstore.Certifications: {{Keys: bson.D{{Key: "user", Value: 1}}}},
}

// Open connects to the MongoDB deployment at uri and waits for it to answer.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetRegistry(docstore.Registry).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "pinging mongo")
	}
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// EnsureIndexes creates the lookup and uniqueness indexes. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for coll, models := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "creating %s indexes", coll)
		}
	}
	return nil
}

func toBSON(f docstore.Filter) bson.D {
	d := bson.D{}
	for k, v := range f {
		d = append(d, bson.E{Key: k, Value: v})
	}
	return d
}

func (s *Store) Insert(ctx context.Context, coll, _ string, doc interface{}) error {
	if _, err := s.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return docstore.ErrDuplicate
		}
		return errors.Wrapf(err, "inserting into %s", coll)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, coll string, f docstore.Filter, out interface{}) error {
	err := s.db.Collection(coll).FindOne(ctx, toBSON(f)).Decode(out)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return docstore.ErrNoDocument
		}
		return errors.Wrapf(err, "finding in %s", coll)
	}
	return nil
}

func (s *Store) Find(ctx context.Context, coll string, f docstore.Filter, out interface{}) error {
	cur, err := s.db.Collection(coll).Find(ctx, toBSON(f))
	if err != nil {
		return errors.Wrapf(err, "finding in %s", coll)
	}
	var docs [][]byte
	for cur.Next(ctx) {
		docs = append(docs, append([]byte(nil), cur.Current...))
	}
	if err = cur.Err(); err != nil {
		_ = cur.Close(ctx)
		return errors.Wrapf(err, "iterating %s", coll)
	}
	if err = cur.Close(ctx); err != nil {
		return errors.Wrapf(err, "closing %s cursor", coll)
	}
	return docstore.DecodeAll(docs, out, docstore.Unmarshal)
}

func (s *Store) Replace(ctx context.Context, coll, id string, doc interface{}) error {
	res, err := s.db.Collection(coll).ReplaceOne(ctx, bson.D{{Key: docstore.IDKey, Value: id}}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return docstore.ErrDuplicate
		}
		return errors.Wrapf(err, "replacing in %s", coll)
	}
	if res.MatchedCount == 0 {
		return docstore.ErrNoDocument
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, coll string, f docstore.Filter) (int64, error) {
	res, err := s.db.Collection(coll).DeleteMany(ctx, toBSON(f))
	if err != nil {
		return 0, errors.Wrapf(err, "deleting from %s", coll)
	}
	return res.DeletedCount, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
