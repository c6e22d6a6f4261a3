package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recommendation-service/internal/auth"
	"github.com/spec-kit/recommendation-service/internal/domain"
	"github.com/spec-kit/recommendation-service/internal/repository"
	apperrors "github.com/spec-kit/recommendation-service/pkg/util/errorutil"
)

// AuthService mints bearer tokens for known users. Sign-in itself happens upstream.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, tokenMgr *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokenMgr: tokenMgr}
}

// IssueToken signs a token for the user with email.
func (s *AuthService) IssueToken(ctx context.Context, email string) (*domain.User, string, time.Time, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, "", time.Time{}, apperrors.NewInvalidArgument("email is required", nil)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewNotFound("User with email " + email)
		}
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(*user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}
