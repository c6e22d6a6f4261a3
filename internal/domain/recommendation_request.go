package domain

import "time"

// RequestStatus is the lifecycle state of a recommendation request. Values are
// stored verbatim, so filters compare exactly as supplied.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusCompleted RequestStatus = "COMPLETED"
	RequestStatusDenied    RequestStatus = "DENIED"
)

// Closes reports whether a professor setting this status stamps the completion date.
func (s RequestStatus) Closes() bool {
	return s == RequestStatusCompleted || s == RequestStatusDenied
}

// RecommendationRequest tracks a requester asking a professor for a letter.
type RecommendationRequest struct {
	ID               int64
	Requester        User
	Professor        User
	RequestType      RequestType
	Details          string
	Status           RequestStatus
	DueDate          time.Time
	SubmissionDate   *time.Time
	CompletionDate   *time.Time
	LastModifiedDate *time.Time
}
