package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recommendation-service/internal/api/dto"
	"github.com/spec-kit/recommendation-service/internal/service"
)

// UsersHandler exposes identity endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// CurrentUser handles GET /api/currentUser.
func (h *UsersHandler) CurrentUser(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	current, err := h.users.CurrentUser(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CurrentUserResponse{
		User:  dto.NewUserResponse(current.User),
		Roles: current.Roles,
	}})
}

// Professors handles GET /api/admin/users/professors.
func (h *UsersHandler) Professors(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	profs, err := h.users.ListProfessors(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(profs)})
}
