package handlers

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recommendation-service/internal/api/dto"
	"github.com/spec-kit/recommendation-service/internal/domain"
	"github.com/spec-kit/recommendation-service/internal/service"
	apperrors "github.com/spec-kit/recommendation-service/pkg/util/errorutil"
)

// RecommendationRequestsHandler serves requester and admin endpoints.
type RecommendationRequestsHandler struct {
	service  *service.RecommendationService
	validate *validator.Validate
}

// NewRecommendationRequestsHandler constructs handler.
func NewRecommendationRequestsHandler(svc *service.RecommendationService, validate *validator.Validate) *RecommendationRequestsHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &RecommendationRequestsHandler{service: svc, validate: validate}
}

// Get GET /api/recommendationrequest?id=.
func (h *RecommendationRequestsHandler) Get(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := queryID(c)
	if err != nil {
		return err
	}
	req, err := h.service.GetByID(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRecommendationRequestResponse(*req)})
}

// ListMine GET /api/recommendationrequest/requester/all.
func (h *RecommendationRequestsHandler) ListMine(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	reqs, err := h.service.ListMine(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRecommendationRequestResponses(reqs)})
}

// ListAll GET /api/recommendationrequest/admin/all.
func (h *RecommendationRequestsHandler) ListAll(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	reqs, err := h.service.ListAll(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRecommendationRequestResponses(reqs)})
}

// Create POST /api/recommendationrequest/post.
func (h *RecommendationRequestsHandler) Create(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var q dto.CreateRecommendationQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewInvalidArgument("invalid query parameters", nil)
	}
	if err := h.validate.Struct(q); err != nil {
		return validationError(err)
	}
	dueDate, err := parseDateTime("due_date", q.DueDate)
	if err != nil {
		return err
	}

	req, err := h.service.Create(c.UserContext(), caller, service.CreateRecommendationInput{
		RequestTypeToken: q.RequestTypeID,
		Details:          q.Details,
		ProfessorID:      q.ProfessorID,
		DueDate:          dueDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRecommendationRequestResponse(*req)})
}

// UpdateAsOwner PUT /api/recommendationrequest?id=.
func (h *RecommendationRequestsHandler) UpdateAsOwner(c *fiber.Ctx) error {
	return h.update(c, h.service.UpdateAsOwner)
}

// UpdateAsProfessor PUT /api/recommendationrequest/professor?id=.
func (h *RecommendationRequestsHandler) UpdateAsProfessor(c *fiber.Ctx) error {
	return h.update(c, h.service.UpdateAsProfessor)
}

// DeleteAsOwner DELETE /api/recommendationrequest?id=.
func (h *RecommendationRequestsHandler) DeleteAsOwner(c *fiber.Ctx) error {
	return h.delete(c, h.service.DeleteAsOwner)
}

// DeleteAsAdmin DELETE /api/recommendationrequest/admin?id=.
func (h *RecommendationRequestsHandler) DeleteAsAdmin(c *fiber.Ctx) error {
	return h.delete(c, h.service.DeleteAsAdmin)
}

type updateFunc func(ctx context.Context, caller domain.Caller, id int64, input service.RecommendationUpdateInput) (*domain.RecommendationRequest, error)

type deleteFunc func(ctx context.Context, caller domain.Caller, id int64) (string, error)

func (h *RecommendationRequestsHandler) update(c *fiber.Ctx, apply updateFunc) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := queryID(c)
	if err != nil {
		return err
	}
	var body dto.UpdateRecommendationRequest
	if err := c.BodyParser(&body); err != nil {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}
	if err := h.validate.Struct(body); err != nil {
		return validationError(err)
	}

	req, err := apply(c.UserContext(), caller, id, service.RecommendationUpdateInput{
		RequestType:      domain.RequestType{ID: body.RequestType.ID, Name: body.RequestType.RequestType},
		Details:          body.Details,
		Status:           body.Status,
		DueDate:          *body.DueDate,
		SubmissionDate:   body.SubmissionDate,
		CompletionDate:   body.CompletionDate,
		LastModifiedDate: body.LastModifiedDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRecommendationRequestResponse(*req)})
}

func (h *RecommendationRequestsHandler) delete(c *fiber.Ctx, remove deleteFunc) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	id, err := queryID(c)
	if err != nil {
		return err
	}
	msg, err := remove(c.UserContext(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: msg})
}
