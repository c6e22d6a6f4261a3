package service

import (
	"context"
	"strings"

	"github.com/spec-kit/recommendation-service/internal/domain"
	"github.com/spec-kit/recommendation-service/internal/repository"
	apperrors "github.com/spec-kit/recommendation-service/pkg/util/errorutil"
)

// RequestTypeService manages the request-type catalog.
type RequestTypeService struct {
	types repository.RequestTypeRepository
}

// NewRequestTypeService constructs the service.
func NewRequestTypeService(types repository.RequestTypeRepository) *RequestTypeService {
	return &RequestTypeService{types: types}
}

// ListAll returns the catalog.
func (s *RequestTypeService) ListAll(ctx context.Context, caller domain.Caller) ([]domain.RequestType, error) {
	if err := requireRole(caller, domain.RoleUser); err != nil {
		return nil, err
	}
	return s.types.ListAll(ctx)
}

// Create adds a catalog entry. Names are unique.
func (s *RequestTypeService) Create(ctx context.Context, caller domain.Caller, name string) (*domain.RequestType, error) {
	if err := requireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewInvalidArgument("request type name is required", nil)
	}

	rt := &domain.RequestType{Name: name}
	if err := s.types.Create(ctx, rt); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("RequestType "+name+" already exists", map[string]any{"request_type": name})
		}
		return nil, err
	}
	return rt, nil
}
