package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recommendation-service/internal/api/dto"
	"github.com/spec-kit/recommendation-service/internal/domain"
	"github.com/spec-kit/recommendation-service/internal/service"
	apperrors "github.com/spec-kit/recommendation-service/pkg/util/errorutil"
)

// ProfessorRequestsHandler serves the professor inbox.
type ProfessorRequestsHandler struct {
	service *service.RecommendationService
}

// NewProfessorRequestsHandler constructs handler.
func NewProfessorRequestsHandler(svc *service.RecommendationService) *ProfessorRequestsHandler {
	return &ProfessorRequestsHandler{service: svc}
}

// ListAll GET /api/recommendationrequest/professor/all.
func (h *ProfessorRequestsHandler) ListAll(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	reqs, err := h.service.ListForProfessor(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRecommendationRequestResponses(reqs)})
}

// ListFiltered GET /api/recommendationrequest/professor/filtered?status=.
// The status is matched exactly as given.
func (h *ProfessorRequestsHandler) ListFiltered(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	status := c.Query("status")
	if status == "" {
		return apperrors.NewInvalidArgument("status is required", nil)
	}
	reqs, err := h.service.ListForProfessorByStatus(c.UserContext(), caller, domain.RequestStatus(status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRecommendationRequestResponses(reqs)})
}
