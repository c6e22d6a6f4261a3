package dto

import (
	"time"

	"github.com/spec-kit/recommendation-service/internal/domain"
)

// RecommendationRequestResponse is the full view of a request.
type RecommendationRequestResponse struct {
	ID               int64                `json:"id"`
	Requester        UserResponse         `json:"requester"`
	Professor        UserResponse         `json:"professor"`
	RequestType      RequestTypeResponse  `json:"request_type"`
	Details          string               `json:"details"`
	Status           domain.RequestStatus `json:"status"`
	DueDate          time.Time            `json:"due_date"`
	SubmissionDate   *time.Time           `json:"submission_date"`
	CompletionDate   *time.Time           `json:"completion_date"`
	LastModifiedDate *time.Time           `json:"last_modified_date"`
}

// CreateRecommendationQuery carries the create parameters. request_type_id is a
// catalog id, or OTHER / -1 for the catch-all type.
type CreateRecommendationQuery struct {
	RequestTypeID string `query:"request_type_id" validate:"required"`
	Details       string `query:"details" validate:"max=4000"`
	ProfessorID   int64  `query:"professor_id" validate:"required,gt=0"`
	DueDate       string `query:"due_date" validate:"required"`
}

// RequestTypeRef points at a catalog entry by id.
type RequestTypeRef struct {
	ID          int64  `json:"id" validate:"gt=0"`
	RequestType string `json:"request_type"`
}

// UpdateRecommendationRequest replaces the mutable fields of a request. Requester
// and professor are not part of it; they never change.
type UpdateRecommendationRequest struct {
	RequestType      RequestTypeRef       `json:"request_type"`
	Details          string               `json:"details" validate:"max=4000"`
	Status           domain.RequestStatus `json:"status" validate:"required,oneof=PENDING COMPLETED DENIED"`
	DueDate          *time.Time           `json:"due_date" validate:"required"`
	SubmissionDate   *time.Time           `json:"submission_date"`
	CompletionDate   *time.Time           `json:"completion_date"`
	LastModifiedDate *time.Time           `json:"last_modified_date"`
}

// MessageResponse acknowledges a deletion.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewRecommendationRequestResponse(r domain.RecommendationRequest) RecommendationRequestResponse {
	return RecommendationRequestResponse{
		ID:               r.ID,
		Requester:        NewUserResponse(r.Requester),
		Professor:        NewUserResponse(r.Professor),
		RequestType:      NewRequestTypeResponse(r.RequestType),
		Details:          r.Details,
		Status:           r.Status,
		DueDate:          r.DueDate,
		SubmissionDate:   r.SubmissionDate,
		CompletionDate:   r.CompletionDate,
		LastModifiedDate: r.LastModifiedDate,
	}
}

func NewRecommendationRequestResponses(reqs []domain.RecommendationRequest) []RecommendationRequestResponse {
	out := make([]RecommendationRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, NewRecommendationRequestResponse(r))
	}
	return out
}
