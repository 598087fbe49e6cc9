package smartprop

import "github.com/kailas-cloud/smartprop/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidInput     = domain.ErrInvalidInput
	ErrUserNotFound     = domain.ErrUserNotFound
	ErrPropertyNotFound = domain.ErrPropertyNotFound
)
