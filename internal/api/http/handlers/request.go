package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/recommendation-service/internal/auth"
	"github.com/spec-kit/recommendation-service/internal/domain"
	apperrors "github.com/spec-kit/recommendation-service/pkg/util/errorutil"
)

// localDateTimeLayout is what an HTML datetime-local input submits.
const localDateTimeLayout = "2006-01-02T15:04:05"

func callerFrom(c *fiber.Ctx) (domain.Caller, error) {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return domain.Caller{}, apperrors.NewUnauthorized("user required")
	}
	return caller, nil
}

func queryID(c *fiber.Ctx) (int64, error) {
	raw := c.Query("id")
	if raw == "" {
		return 0, apperrors.NewInvalidArgument("id is required", nil)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewInvalidArgument("id must be numeric", map[string]any{"id": raw})
	}
	return id, nil
}

func parseDateTime(field, val string) (time.Time, error) {
	val = strings.TrimSpace(val)
	for _, layout := range []string{time.RFC3339, localDateTimeLayout} {
		if t, err := time.Parse(layout, val); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.NewInvalidArgument(field+" must be an RFC3339 or 2006-01-02T15:04:05 timestamp", map[string]any{field: val})
}

// validationError flattens validator failures into details keyed by field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewInvalidArgument("invalid payload", nil)
	}
	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		details[fe.Namespace()] = fe.Tag()
	}
	return apperrors.NewInvalidArgument("invalid payload", details)
}
