package dto

import "github.com/spec-kit/recommendation-service/internal/domain"

// RequestTypeResponse is a catalog entry.
type RequestTypeResponse struct {
	ID          int64  `json:"id"`
	RequestType string `json:"request_type"`
}

// CreateRequestTypeQuery is the admin catalog insert.
type CreateRequestTypeQuery struct {
	RequestType string `query:"request_type" validate:"required,max=255"`
}

func NewRequestTypeResponse(rt domain.RequestType) RequestTypeResponse {
	return RequestTypeResponse{ID: rt.ID, RequestType: rt.Name}
}

func NewRequestTypeResponses(types []domain.RequestType) []RequestTypeResponse {
	out := make([]RequestTypeResponse, 0, len(types))
	for _, rt := range types {
		out = append(out, NewRequestTypeResponse(rt))
	}
	return out
}
