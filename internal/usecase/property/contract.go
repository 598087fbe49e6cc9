package property

import (
	"context"

	domprop "github.com/kailas-cloud/smartprop/internal/domain/property"
)

// Repository defines the storage contract for property listings.
type Repository interface {
	List(ctx context.Context) ([]domprop.Record, error)
	Get(ctx context.Context, id string) (domprop.Record, error)
}
