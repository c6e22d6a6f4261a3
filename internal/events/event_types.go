package events

import (
	"time"

	"github.com/spec-kit/recommendation-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRequestCreated       EventType = "recommendation_request_created"
	EventRequestUpdated       EventType = "recommendation_request_updated"
	EventRequestStatusChanged EventType = "recommendation_request_status_changed"
	EventRequestDeleted       EventType = "recommendation_request_deleted"
)

// Actor identifies who triggered an event.
type Actor struct {
	UserID int64         `json:"user_id"`
	Roles  []domain.Role `json:"roles"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	RequestID int64     `json:"request_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// RequestCreatedPayload payload.
type RequestCreatedPayload struct {
	RequesterID   int64     `json:"requester_id"`
	ProfessorID   int64     `json:"professor_id"`
	RequestTypeID int64     `json:"request_type_id"`
	DueDate       time.Time `json:"due_date"`
}

// RequestUpdatedPayload payload.
type RequestUpdatedPayload struct {
	Scope string `json:"scope"`
}

// RequestStatusChangedPayload payload.
type RequestStatusChangedPayload struct {
	ProfessorID    int64                `json:"professor_id"`
	RequesterID    int64                `json:"requester_id"`
	OldStatus      domain.RequestStatus `json:"old_status"`
	NewStatus      domain.RequestStatus `json:"new_status"`
	CompletionDate *time.Time           `json:"completion_date,omitempty"`
}

// RequestDeletedPayload payload.
type RequestDeletedPayload struct {
	Scope string `json:"scope"`
}
