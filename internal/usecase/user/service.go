package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/smartprop/internal/domain"
	domuser "github.com/kailas-cloud/smartprop/internal/domain/user"
)

// Service serves user profiles.
type Service struct {
	repo Repository
}

// New creates a user service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]domuser.Record, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get retrieves a user by id.
func (s *Service) Get(ctx context.Context, id string) (domuser.Record, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewInvalidInput("user id is required")
	}
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
