package user

import (
	"context"

	domuser "github.com/kailas-cloud/smartprop/internal/domain/user"
)

// Repository defines the storage contract for users.
type Repository interface {
	List(ctx context.Context) ([]domuser.Record, error)
	Get(ctx context.Context, id string) (domuser.Record, error)
}
