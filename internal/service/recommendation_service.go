package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/recommendation-service/internal/domain"
	"github.com/spec-kit/recommendation-service/internal/events"
	"github.com/spec-kit/recommendation-service/internal/repository"
	apperrors "github.com/spec-kit/recommendation-service/pkg/util/errorutil"
)

const recommendationRequestEntity = "RecommendationRequest"

// Scopes recorded on update and delete events.
const (
	ScopeOwner     = "owner"
	ScopeProfessor = "professor"
	ScopeAdmin     = "admin"
)

// RecommendationService coordinates recommendation request workflows.
type RecommendationService struct {
	requests   repository.RecommendationRequestRepository
	users      repository.UserRepository
	resolver   *RequestTypeResolver
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// RecommendationDependencies bundles collaborators for the service.
type RecommendationDependencies struct {
	RequestRepo repository.RecommendationRequestRepository
	UserRepo    repository.UserRepository
	Resolver    *RequestTypeResolver
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Clock       func() time.Time
}

// CreateRecommendationInput describes a new request.
type CreateRecommendationInput struct {
	RequestTypeToken string
	Details          string
	ProfessorID      int64
	DueDate          time.Time
}

// RecommendationUpdateInput carries the mutable fields of a request. It replaces
// them wholesale. Only RequestType.ID is read from the request type.
type RecommendationUpdateInput struct {
	RequestType      domain.RequestType
	Details          string
	Status           domain.RequestStatus
	DueDate          time.Time
	SubmissionDate   *time.Time
	CompletionDate   *time.Time
	LastModifiedDate *time.Time
}

// NewRecommendationService constructs the service.
func NewRecommendationService(deps RecommendationDependencies) *RecommendationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &RecommendationService{
		requests:   deps.RequestRepo,
		users:      deps.UserRepo,
		resolver:   deps.Resolver,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        clock,
	}
}

// GetByID returns a request visible to its requester or its professor. Anyone else
// gets the same NotFound as for a missing id.
func (s *RecommendationService) GetByID(ctx context.Context, caller domain.Caller, id int64) (*domain.RecommendationRequest, error) {
	if err := requireRole(caller, domain.RoleUser); err != nil {
		return nil, err
	}
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, recommendationRequestEntity, id)
	}
	if !req.Requester.SameAs(caller.User) && !req.Professor.SameAs(caller.User) {
		return nil, apperrors.NewEntityNotFound(recommendationRequestEntity, id)
	}
	return req, nil
}

// ListMine returns requests issued by the caller.
func (s *RecommendationService) ListMine(ctx context.Context, caller domain.Caller) ([]domain.RecommendationRequest, error) {
	if err := requireRole(caller, domain.RoleUser); err != nil {
		return nil, err
	}
	return s.requests.ListByRequester(ctx, caller.ID())
}

// ListForProfessor returns requests addressed to the caller.
func (s *RecommendationService) ListForProfessor(ctx context.Context, caller domain.Caller) ([]domain.RecommendationRequest, error) {
	if err := requireRole(caller, domain.RoleProfessor); err != nil {
		return nil, err
	}
	return s.requests.ListByProfessor(ctx, caller.ID())
}

// ListForProfessorByStatus narrows ListForProfessor to an exact status value.
func (s *RecommendationService) ListForProfessorByStatus(ctx context.Context, caller domain.Caller, status domain.RequestStatus) ([]domain.RecommendationRequest, error) {
	if err := requireRole(caller, domain.RoleProfessor); err != nil {
		return nil, err
	}
	return s.requests.ListByProfessorAndStatus(ctx, caller.ID(), status)
}

// ListAll returns every request.
func (s *RecommendationService) ListAll(ctx context.Context, caller domain.Caller) ([]domain.RecommendationRequest, error) {
	if err := requireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.requests.ListAll(ctx)
}

// Create files a PENDING request from the caller to a professor. The professor is
// checked before the request type is resolved.
func (s *RecommendationService) Create(ctx context.Context, caller domain.Caller, input CreateRecommendationInput) (*domain.RecommendationRequest, error) {
	if err := requireRole(caller, domain.RoleUser); err != nil {
		return nil, err
	}

	professor, err := s.users.GetByID(ctx, input.ProfessorID)
	if err != nil {
		return nil, notFoundOr(err, "User", input.ProfessorID)
	}

	requestType, err := s.resolver.Resolve(ctx, input.RequestTypeToken)
	if err != nil {
		return nil, err
	}

	req := &domain.RecommendationRequest{
		Requester:   caller.User,
		Professor:   *professor,
		RequestType: *requestType,
		Details:     input.Details,
		Status:      domain.RequestStatusPending,
		DueDate:     input.DueDate,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: req.ID,
		Actor:     callerActor(caller),
		Payload: events.RequestCreatedPayload{
			RequesterID:   req.Requester.ID,
			ProfessorID:   req.Professor.ID,
			RequestTypeID: req.RequestType.ID,
			DueDate:       req.DueDate,
		},
	})
	return req, nil
}

// UpdateAsOwner replaces the mutable fields of a request the caller issued. The
// payload is trusted as is, completion date included.
func (s *RecommendationService) UpdateAsOwner(ctx context.Context, caller domain.Caller, id int64, input RecommendationUpdateInput) (*domain.RecommendationRequest, error) {
	if err := requireRole(caller, domain.RoleUser); err != nil {
		return nil, err
	}
	req, err := s.requests.GetByIDAndRequester(ctx, id, caller.ID())
	if err != nil {
		return nil, notFoundOr(err, recommendationRequestEntity, id)
	}

	requestType, err := s.resolver.Lookup(ctx, input.RequestType.ID)
	if err != nil {
		return nil, err
	}
	input.RequestType = *requestType

	oldStatus := req.Status
	applyUpdate(req, input)
	if err := s.save(ctx, req); err != nil {
		return nil, err
	}

	s.publishUpdate(ctx, caller, req, oldStatus, ScopeOwner)
	return req, nil
}

// UpdateAsProfessor replaces the mutable fields of any request. A resulting status of
// COMPLETED or DENIED stamps the completion date with the current time.
func (s *RecommendationService) UpdateAsProfessor(ctx context.Context, caller domain.Caller, id int64, input RecommendationUpdateInput) (*domain.RecommendationRequest, error) {
	if err := requireRole(caller, domain.RoleProfessor); err != nil {
		return nil, err
	}
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, recommendationRequestEntity, id)
	}

	requestType, err := s.resolver.Lookup(ctx, input.RequestType.ID)
	if err != nil {
		return nil, err
	}
	input.RequestType = *requestType

	oldStatus := req.Status
	applyUpdate(req, input)
	if req.Status.Closes() {
		now := s.now()
		req.CompletionDate = &now
	}
	if err := s.save(ctx, req); err != nil {
		return nil, err
	}

	s.publishUpdate(ctx, caller, req, oldStatus, ScopeProfessor)
	return req, nil
}

// DeleteAsOwner removes a request the caller issued.
func (s *RecommendationService) DeleteAsOwner(ctx context.Context, caller domain.Caller, id int64) (string, error) {
	if err := requireRole(caller, domain.RoleUser); err != nil {
		return "", err
	}
	req, err := s.requests.GetByIDAndRequester(ctx, id, caller.ID())
	if err != nil {
		return "", notFoundOr(err, recommendationRequestEntity, id)
	}
	return s.delete(ctx, caller, req, ScopeOwner)
}

// DeleteAsAdmin removes any request.
func (s *RecommendationService) DeleteAsAdmin(ctx context.Context, caller domain.Caller, id int64) (string, error) {
	if err := requireRole(caller, domain.RoleAdmin); err != nil {
		return "", err
	}
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return "", notFoundOr(err, recommendationRequestEntity, id)
	}
	return s.delete(ctx, caller, req, ScopeAdmin)
}

func (s *RecommendationService) delete(ctx context.Context, caller domain.Caller, req *domain.RecommendationRequest, scope string) (string, error) {
	if err := s.requests.Delete(ctx, req.ID); err != nil {
		return "", notFoundOr(err, recommendationRequestEntity, req.ID)
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestDeleted,
		RequestID: req.ID,
		Actor:     callerActor(caller),
		Payload:   events.RequestDeletedPayload{Scope: scope},
	})
	return fmt.Sprintf("%s with id %d deleted", recommendationRequestEntity, req.ID), nil
}

func (s *RecommendationService) save(ctx context.Context, req *domain.RecommendationRequest) error {
	if err := s.requests.Update(ctx, req); err != nil {
		// Deleted between lookup and write.
		return notFoundOr(err, recommendationRequestEntity, req.ID)
	}
	return nil
}

func applyUpdate(req *domain.RecommendationRequest, input RecommendationUpdateInput) {
	req.RequestType = input.RequestType
	req.Details = input.Details
	req.Status = input.Status
	req.DueDate = input.DueDate
	req.SubmissionDate = input.SubmissionDate
	req.CompletionDate = input.CompletionDate
	req.LastModifiedDate = input.LastModifiedDate
}

func (s *RecommendationService) publishUpdate(ctx context.Context, caller domain.Caller, req *domain.RecommendationRequest, oldStatus domain.RequestStatus, scope string) {
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestUpdated,
		RequestID: req.ID,
		Actor:     callerActor(caller),
		Payload:   events.RequestUpdatedPayload{Scope: scope},
	})
	if oldStatus == req.Status {
		return
	}
	s.publishEvent(ctx, events.Event{
		Type:      events.EventRequestStatusChanged,
		RequestID: req.ID,
		Actor:     callerActor(caller),
		Payload: events.RequestStatusChangedPayload{
			ProfessorID:    req.Professor.ID,
			RequesterID:    req.Requester.ID,
			OldStatus:      oldStatus,
			NewStatus:      req.Status,
			CompletionDate: req.CompletionDate,
		},
	})
}

func (s *RecommendationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func requireRole(caller domain.Caller, role domain.Role) error {
	if !caller.HasRole(role) {
		return apperrors.NewForbidden("role " + string(role) + " required")
	}
	return nil
}

func callerActor(caller domain.Caller) events.Actor {
	return events.Actor{UserID: caller.ID(), Roles: caller.Roles}
}

// notFoundOr maps a missing row to "<entity> with id <id> not found" and passes
// other errors through.
func notFoundOr(err error, entity string, id any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewEntityNotFound(entity, id)
	}
	return err
}
