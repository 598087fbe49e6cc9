package user

import (
	"context"
	"strings"

	"github.com/kailas-cloud/smartprop/internal/db"
)

// memStore is an in-memory consumer store for tests.
type memStore struct {
	data map[string]string
	err  error
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return []byte(v), nil
}

func (m *memStore) GetMulti(_ context.Context, keys []string) ([][]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]byte, len(keys))
	for i, k := range keys {
		if v, ok := m.data[k]; ok {
			out[i] = []byte(v)
		}
	}
	return out, nil
}

func (m *memStore) SetMulti(_ context.Context, items []db.SetItem) error {
	if m.err != nil {
		return m.err
	}
	for _, it := range items {
		m.data[it.Key] = string(it.Value)
	}
	return nil
}

func (m *memStore) Scan(_ context.Context, pattern string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
