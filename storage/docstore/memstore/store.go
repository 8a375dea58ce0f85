// Package memstore is an in-memory docstore.Store. Documents are kept BSON encoded,
// so they round-trip exactly as they would through MongoDB.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/mkraj-7838/GYM-Discovery-and-Manangement-APP-sub000/storage/docstore"
)

type (
	Store struct {
		mutex sync.RWMutex
		seq   int64
		colls map[string]map[string]*record
	}

	record struct {
		seq  int64
		data []byte
	}
)

var _ docstore.Store = (*Store)(nil)

func New() *Store {
	return &Store{colls: make(map[string]map[string]*record)}
}

func (s *Store) table(coll string) map[string]*record {
	t, ok := s.colls[coll]
	if !ok {
		t = make(map[string]*record)
		s.colls[coll] = t
	}
	return t
}

// matching returns the records of coll matching f in insertion order. Callers hold the lock.
func (s *Store) matching(coll string, f docstore.Filter) []*record {
	recs := make([]*record, 0)
	for _, rec := range s.colls[coll] {
		if docstore.Matches(rec.data, f) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	return recs
}

func (s *Store) Insert(_ context.Context, coll, id string, doc interface{}) error {
	data, err := docstore.Marshal(doc)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	t := s.table(coll)
	if _, exists := t[id]; exists {
		return docstore.ErrDuplicate
	}
	s.seq++
	t[id] = &record{seq: s.seq, data: data}
	return nil
}

func (s *Store) Get(_ context.Context, coll string, f docstore.Filter, out interface{}) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	recs := s.matching(coll, f)
	if len(recs) == 0 {
		return docstore.ErrNoDocument
	}
	return docstore.Unmarshal(recs[0].data, out)
}

func (s *Store) Find(_ context.Context, coll string, f docstore.Filter, out interface{}) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	recs := s.matching(coll, f)
	docs := make([][]byte, len(recs))
	for i, rec := range recs {
		docs[i] = rec.data
	}
	return docstore.DecodeAll(docs, out, docstore.Unmarshal)
}

func (s *Store) Replace(_ context.Context, coll, id string, doc interface{}) error {
	data, err := docstore.Marshal(doc)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	rec, ok := s.colls[coll][id]
	if !ok {
		return docstore.ErrNoDocument
	}
	rec.data = data
	return nil
}

func (s *Store) Delete(_ context.Context, coll string, f docstore.Filter) (int64, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var n int64
	t := s.colls[coll]
	for id, rec := range t {
		if docstore.Matches(rec.data, f) {
			delete(t, id)
			n++
		}
	}
	return n, nil
}

// Reset drops every collection.
func (s *Store) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.colls = make(map[string]map[string]*record)
}

func (s *Store) Close(context.Context) error {
	return nil
}
