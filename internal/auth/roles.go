package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recommendation-service/internal/domain"
	apperrors "github.com/spec-kit/recommendation-service/pkg/util/errorutil"
)

// RequireRole ensures the caller holds role.
func RequireRole(role domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, ok := CallerFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !caller.HasRole(role) {
			return apperrors.NewForbidden("role " + string(role) + " required")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures some caller was loaded.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CallerFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
