package keyspace

import (
	"context"

	"github.com/kailas-cloud/smartprop/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn      func(ctx context.Context, key string) ([]byte, error)
	getMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	setMultiFn func(ctx context.Context, items []db.SetItem) error
	scanFn     func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) GetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, keys)
	}
	return make([][]byte, len(keys)), nil
}

func (m *mockStore) SetMulti(ctx context.Context, items []db.SetItem) error {
	if m.setMultiFn != nil {
		return m.setMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

type doc struct {
	ID   string
	Body string
}

func decodeDoc(id string, raw []byte) (doc, error) {
	if string(raw) == "corrupt" {
		return doc{}, errCorrupt
	}
	return doc{ID: id, Body: string(raw)}, nil
}

func encodeDoc(d doc) ([]byte, error) {
	return []byte(d.Body), nil
}

func newTestSpace() (*Space[doc], *mockStore) {
	ms := &mockStore{}
	return New(ms, "smartprop:", "docs", decodeDoc, encodeDoc), ms
}
