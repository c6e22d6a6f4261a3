package service

import (
	"context"

	"github.com/spec-kit/recommendation-service/internal/domain"
	"github.com/spec-kit/recommendation-service/internal/repository"
)

// UserService exposes identity lookups to authenticated callers.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// CurrentUser echoes the caller.
func (s *UserService) CurrentUser(_ context.Context, caller domain.Caller) (domain.Caller, error) {
	if err := requireRole(caller, domain.RoleUser); err != nil {
		return domain.Caller{}, err
	}
	return caller, nil
}

// ListProfessors returns users who can receive requests.
func (s *UserService) ListProfessors(ctx context.Context, caller domain.Caller) ([]domain.User, error) {
	if err := requireRole(caller, domain.RoleUser); err != nil {
		return nil, err
	}
	return s.users.ListProfessors(ctx)
}
