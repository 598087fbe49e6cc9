package property

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kailas-cloud/smartprop/internal/db"
	"github.com/kailas-cloud/smartprop/internal/domain"
	domprop "github.com/kailas-cloud/smartprop/internal/domain/property"
	"github.com/kailas-cloud/smartprop/internal/repository/keyspace"
)

const kind = "properties"

// store is the consumer interface for properties (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	SetMulti(ctx context.Context, items []db.SetItem) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/property.Repository and usecase/search.PropertyReader.
type Repo struct {
	space *keyspace.Space[domprop.Record]
}

// New creates a property repository. Keys are "<prefix>properties:<id>".
func New(s store, prefix string, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	space := keyspace.New(s, prefix, kind, domprop.Decode, domprop.Encode).
		OnSkip(func(id string, err error) {
			logger.Warn("skipping malformed property", zap.String("id", id), zap.Error(err))
		})
	return &Repo{space: space}
}

// List returns all properties ordered by id.
func (r *Repo) List(ctx context.Context) ([]domprop.Record, error) {
	return r.space.List(ctx)
}

// Get returns one property or domain.ErrPropertyNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domprop.Record, error) {
	rec, err := r.space.Get(ctx, id)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, domain.ErrPropertyNotFound
	}
	return rec, err
}

// Put stores properties keyed by id, overwriting existing documents.
func (r *Repo) Put(ctx context.Context, props map[string]domprop.Record) error {
	out := make([]keyspace.Entry[domprop.Record], 0, len(props))
	for id, rec := range props {
		out = append(out, keyspace.Entry[domprop.Record]{ID: id, Doc: rec})
	}
	return r.space.Put(ctx, out...)
}
