package handlers

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/recommendation-service/internal/api/dto"
	apperrors "github.com/spec-kit/recommendation-service/pkg/util/errorutil"
)

func TestParseDateTime(t *testing.T) {
	want := time.Date(2024, 12, 1, 9, 30, 0, 0, time.UTC)

	got, err := parseDateTime("due_date", "2024-12-01T09:30:00Z")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = parseDateTime("due_date", "2024-12-01T09:30:00")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	_, err = parseDateTime("due_date", "tomorrow")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}

func TestValidationErrorDetails(t *testing.T) {
	err := validator.New().Struct(dto.UpdateRecommendationRequest{Status: "LOST"})
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(validationError(err))
	assert.Equal(t, apperrors.CodeInvalidArgument, domainErr.Code)
	assert.Equal(t, "oneof", domainErr.Details["UpdateRecommendationRequest.Status"])
	assert.Equal(t, "required", domainErr.Details["UpdateRecommendationRequest.DueDate"])
	assert.Equal(t, "gt", domainErr.Details["UpdateRecommendationRequest.RequestType.ID"])
}

func TestValidationErrorWithoutFieldErrors(t *testing.T) {
	domainErr := apperrors.ToDomainError(validationError(assert.AnError))
	assert.Equal(t, "invalid payload", domainErr.Message)
	assert.Nil(t, domainErr.Details)
}
