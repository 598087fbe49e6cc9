package search

import (
	"context"

	"github.com/kailas-cloud/smartprop/internal/domain/property"
)

// PropertyReader loads the candidate property collection for a search.
type PropertyReader interface {
	List(ctx context.Context) ([]property.Record, error)
}
