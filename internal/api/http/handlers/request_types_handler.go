package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recommendation-service/internal/api/dto"
	"github.com/spec-kit/recommendation-service/internal/service"
	apperrors "github.com/spec-kit/recommendation-service/pkg/util/errorutil"
)

// RequestTypesHandler serves the request-type catalog.
type RequestTypesHandler struct {
	service  *service.RequestTypeService
	validate *validator.Validate
}

// NewRequestTypesHandler constructs handler.
func NewRequestTypesHandler(svc *service.RequestTypeService, validate *validator.Validate) *RequestTypesHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &RequestTypesHandler{service: svc, validate: validate}
}

// ListAll GET /api/requesttypes/all.
func (h *RequestTypesHandler) ListAll(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	types, err := h.service.ListAll(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRequestTypeResponses(types)})
}

// Create POST /api/requesttypes/post?request_type=.
func (h *RequestTypesHandler) Create(c *fiber.Ctx) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var q dto.CreateRequestTypeQuery
	if err := c.QueryParser(&q); err != nil {
		return apperrors.NewInvalidArgument("invalid query parameters", nil)
	}
	if err := h.validate.Struct(q); err != nil {
		return validationError(err)
	}
	rt, err := h.service.Create(c.UserContext(), caller, q.RequestType)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRequestTypeResponse(*rt)})
}
