// Package keyspace stores JSON documents of one kind under a shared key
// prefix, one string key per document.
package keyspace

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/smartprop/internal/db"
)

// store is the consumer interface for document keyspaces (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	SetMulti(ctx context.Context, items []db.SetItem) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// DecodeFunc builds a document from its id and stored bytes.
type DecodeFunc[T any] func(id string, raw []byte) (T, error)

// EncodeFunc serializes a document for storage.
type EncodeFunc[T any] func(doc T) ([]byte, error)

// Entry is a document paired with its id for bulk writes.
type Entry[T any] struct {
	ID  string
	Doc T
}

// Space is a typed view over "<prefix><kind>:<id>" keys.
type Space[T any] struct {
	store  store
	prefix string
	decode DecodeFunc[T]
	encode EncodeFunc[T]
	// skipped is called for stored documents that fail to decode during List.
	skipped func(id string, err error)
}

// New creates a keyspace for documents of the given kind.
func New[T any](s store, prefix, kind string, decode DecodeFunc[T], encode EncodeFunc[T]) *Space[T] {
	return &Space[T]{
		store:   s,
		prefix:  prefix + kind + ":",
		decode:  decode,
		encode:  encode,
		skipped: func(string, error) {},
	}
}

// OnSkip registers a callback for undecodable documents skipped by List.
func (s *Space[T]) OnSkip(fn func(id string, err error)) *Space[T] {
	if fn != nil {
		s.skipped = fn
	}
	return s
}

// Key returns the storage key for an id.
func (s *Space[T]) Key(id string) string {
	return s.prefix + id
}

// ID extracts the id from a storage key.
func (s *Space[T]) ID(key string) string {
	return strings.TrimPrefix(key, s.prefix)
}

// Get loads one document. A missing key returns db.ErrKeyNotFound.
func (s *Space[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	raw, err := s.store.Get(ctx, s.Key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return zero, db.ErrKeyNotFound
		}
		return zero, fmt.Errorf("get %s: %w", s.Key(id), err)
	}
	doc, err := s.decode(id, raw)
	if err != nil {
		// %v: stored corruption must not surface as ErrInvalidInput.
		return zero, fmt.Errorf("decode %s: %v", s.Key(id), err)
	}
	return doc, nil
}

// List loads every document, ordered by key. Documents removed between SCAN
// and GET are omitted, as are documents that fail to decode.
func (s *Space[T]) List(ctx context.Context) ([]T, error) {
	keys, err := s.store.Scan(ctx, s.prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan %s*: %w", s.prefix, err)
	}
	if len(keys) == 0 {
		return []T{}, nil
	}
	sort.Strings(keys)

	values, err := s.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get multi %s*: %w", s.prefix, err)
	}

	docs := make([]T, 0, len(values))
	for i, raw := range values {
		if raw == nil {
			continue
		}
		id := s.ID(keys[i])
		doc, err := s.decode(id, raw)
		if err != nil {
			s.skipped(id, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Put stores documents in a single pipelined round-trip.
func (s *Space[T]) Put(ctx context.Context, entries ...Entry[T]) error {
	if len(entries) == 0 {
		return nil
	}
	items := make([]db.SetItem, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("entry %d: id is required", i)
		}
		data, err := s.encode(e.Doc)
		if err != nil {
			return fmt.Errorf("encode %s: %w", s.Key(e.ID), err)
		}
		items[i] = db.SetItem{Key: s.Key(e.ID), Value: data}
	}
	if err := s.store.SetMulti(ctx, items); err != nil {
		return fmt.Errorf("set multi %s*: %w", s.prefix, err)
	}
	return nil
}
