package property

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/smartprop/internal/domain"
	domprop "github.com/kailas-cloud/smartprop/internal/domain/property"
)

// Service serves property listings.
type Service struct {
	repo Repository
}

// New creates a property service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all properties in storage order.
func (s *Service) List(ctx context.Context) ([]domprop.Record, error) {
	props, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return props, nil
}

// Get retrieves a property by id.
func (s *Service) Get(ctx context.Context, id string) (domprop.Record, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewInvalidInput("property id is required")
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}
