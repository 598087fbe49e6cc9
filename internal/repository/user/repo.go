package user

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kailas-cloud/smartprop/internal/db"
	"github.com/kailas-cloud/smartprop/internal/domain"
	domuser "github.com/kailas-cloud/smartprop/internal/domain/user"
	"github.com/kailas-cloud/smartprop/internal/repository/keyspace"
)

const kind = "users"

// store is the consumer interface for users (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	SetMulti(ctx context.Context, items []db.SetItem) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/user.Repository.
type Repo struct {
	space *keyspace.Space[domuser.Record]
}

// New creates a user repository. Keys are "<prefix>users:<id>".
func New(s store, prefix string, logger *zap.Logger) *Repo {
	if logger == nil {
		logger = zap.NewNop()
	}
	space := keyspace.New(s, prefix, kind, domuser.Decode, domuser.Encode).
		OnSkip(func(id string, err error) {
			logger.Warn("skipping malformed user", zap.String("id", id), zap.Error(err))
		})
	return &Repo{space: space}
}

// List returns all users ordered by id.
func (r *Repo) List(ctx context.Context) ([]domuser.Record, error) {
	return r.space.List(ctx)
}

// Get returns one user or domain.ErrUserNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domuser.Record, error) {
	rec, err := r.space.Get(ctx, id)
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, domain.ErrUserNotFound
	}
	return rec, err
}

// Put stores users keyed by id, overwriting existing documents.
func (r *Repo) Put(ctx context.Context, users map[string]domuser.Record) error {
	return r.space.Put(ctx, entries(users)...)
}

func entries(users map[string]domuser.Record) []keyspace.Entry[domuser.Record] {
	out := make([]keyspace.Entry[domuser.Record], 0, len(users))
	for id, rec := range users {
		out = append(out, keyspace.Entry[domuser.Record]{ID: id, Doc: rec})
	}
	return out
}
