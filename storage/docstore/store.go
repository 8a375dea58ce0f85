// Package docstore is the small document-store contract the repositories are written against.
// Documents are Go structs carrying `bson` tags; every driver stores them through Registry.
package docstore

import (
	"context"
	"errors"
)

var (
	// ErrNoDocument is returned when no document matches.
	ErrNoDocument = errors.New("no document")
	// ErrDuplicate is returned when an insert violates the id or a unique index.
	ErrDuplicate = errors.New("duplicate document")
)

// collections
const (
	Users          = "users"
	Members        = "members"
	Attendance     = "attendance"
	Maintenance    = "maintenance"
	Complaints     = "complaints"
	Feedback       = "feedback"
	Plans          = "membership_plans"
	Certifications = "certifications"
)

var collections = map[string]bool{
	Users:          true,
	Members:        true,
	Attendance:     true,
	Maintenance:    true,
	Complaints:     true,
	Feedback:       true,
	Plans:          true,
	Certifications: true,
}

// IsCollection reports whether name is one of the known collections.
func IsCollection(name string) bool {
	return collections[name]
}

// IDKey is the document key holding the primary id.
const IDKey = "_id"

// Filter selects documents by equality on string fields. An empty Filter matches every document.
type Filter map[string]string

// Store is implemented by the mongo, postgres and in-memory drivers.
type Store interface {
	// Insert adds doc under id.
	Insert(ctx context.Context, coll, id string, doc interface{}) error
	// Get decodes the first document matching f into out.
	Get(ctx context.Context, coll string, f Filter, out interface{}) error
	// Find decodes every document matching f, in insertion order, into out (a pointer to a slice).
	Find(ctx context.Context, coll string, f Filter, out interface{}) error
	// Replace overwrites the document stored under id.
	Replace(ctx context.Context, coll, id string, doc interface{}) error
	// Delete removes the documents matching f and reports how many were removed.
	Delete(ctx context.Context, coll string, f Filter) (int64, error)
	Close(ctx context.Context) error
}
