package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recommendation-service/internal/domain"
)

// RecommendationRequestFilter narrows listings. Nil fields are not applied.
type RecommendationRequestFilter struct {
	ID          *int64
	RequesterID *int64
	ProfessorID *int64
	Status      *domain.RequestStatus
}

// RecommendationRequestRepository encapsulates recommendation request persistence.
type RecommendationRequestRepository interface {
	Create(ctx context.Context, req *domain.RecommendationRequest) error
	Update(ctx context.Context, req *domain.RecommendationRequest) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.RecommendationRequest, error)
	GetByIDAndRequester(ctx context.Context, id, requesterID int64) (*domain.RecommendationRequest, error)
	ListAll(ctx context.Context) ([]domain.RecommendationRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]domain.RecommendationRequest, error)
	ListByProfessor(ctx context.Context, professorID int64) ([]domain.RecommendationRequest, error)
	ListByProfessorAndStatus(ctx context.Context, professorID int64, status domain.RequestStatus) ([]domain.RecommendationRequest, error)
	ListWithFilter(ctx context.Context, filter RecommendationRequestFilter) ([]domain.RecommendationRequest, error)
}

type recommendationRequestRepository struct {
	db DBTX
}

// NewRecommendationRequestRepository instantiates repository.
func NewRecommendationRequestRepository(db DBTX) RecommendationRequestRepository {
	return &recommendationRequestRepository{db: db}
}

func (r *recommendationRequestRepository) Create(ctx context.Context, req *domain.RecommendationRequest) error {
	const query = `
        INSERT INTO recommendation_requests (requester_id, professor_id, request_type_id, details, status,
            due_date, submission_date, completion_date, last_modified_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id`
	return r.db.QueryRow(ctx, query,
		req.Requester.ID,
		req.Professor.ID,
		req.RequestType.ID,
		req.Details,
		req.Status,
		req.DueDate,
		req.SubmissionDate,
		req.CompletionDate,
		req.LastModifiedDate,
	).Scan(&req.ID)
}

// Update writes the mutable columns. Requester and professor are never rewritten.
func (r *recommendationRequestRepository) Update(ctx context.Context, req *domain.RecommendationRequest) error {
	const query = `
        UPDATE recommendation_requests SET request_type_id=$1, details=$2, status=$3, due_date=$4,
            submission_date=$5, completion_date=$6, last_modified_date=$7
        WHERE id=$8`
	cmd, err := r.db.Exec(ctx, query,
		req.RequestType.ID,
		req.Details,
		req.Status,
		req.DueDate,
		req.SubmissionDate,
		req.CompletionDate,
		req.LastModifiedDate,
		req.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *recommendationRequestRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM recommendation_requests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *recommendationRequestRepository) GetByID(ctx context.Context, id int64) (*domain.RecommendationRequest, error) {
	return r.fetchSingle(ctx, RecommendationRequestFilter{ID: &id})
}

// GetByIDAndRequester matches both keys in one query, so a foreign record looks absent.
func (r *recommendationRequestRepository) GetByIDAndRequester(ctx context.Context, id, requesterID int64) (*domain.RecommendationRequest, error) {
	return r.fetchSingle(ctx, RecommendationRequestFilter{ID: &id, RequesterID: &requesterID})
}

func (r *recommendationRequestRepository) fetchSingle(ctx context.Context, filter RecommendationRequestFilter) (*domain.RecommendationRequest, error) {
	query, args := buildRecommendationQuery(filter)
	return scanRecommendationRequest(r.db.QueryRow(ctx, query, args...))
}

func (r *recommendationRequestRepository) ListAll(ctx context.Context) ([]domain.RecommendationRequest, error) {
	return r.ListWithFilter(ctx, RecommendationRequestFilter{})
}

func (r *recommendationRequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]domain.RecommendationRequest, error) {
	return r.ListWithFilter(ctx, RecommendationRequestFilter{RequesterID: &requesterID})
}

func (r *recommendationRequestRepository) ListByProfessor(ctx context.Context, professorID int64) ([]domain.RecommendationRequest, error) {
	return r.ListWithFilter(ctx, RecommendationRequestFilter{ProfessorID: &professorID})
}

func (r *recommendationRequestRepository) ListByProfessorAndStatus(ctx context.Context, professorID int64, status domain.RequestStatus) ([]domain.RecommendationRequest, error) {
	return r.ListWithFilter(ctx, RecommendationRequestFilter{ProfessorID: &professorID, Status: &status})
}

func (r *recommendationRequestRepository) ListWithFilter(ctx context.Context, filter RecommendationRequestFilter) ([]domain.RecommendationRequest, error) {
	query, args := buildRecommendationQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.RecommendationRequest{}
	for rows.Next() {
		req, err := scanRecommendationRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *req)
	}
	return result, rows.Err()
}

func buildRecommendationQuery(filter RecommendationRequestFilter) (string, []any) {
	base := `SELECT rr.id, rr.details, rr.status, rr.due_date, rr.submission_date, rr.completion_date,
                    rr.last_modified_date, rt.id, rt.request_type, ` +
		userColumnList("rq") + `, ` + userColumnList("pf") + `
             FROM recommendation_requests rr
             JOIN request_types rt ON rt.id = rr.request_type_id
             JOIN users rq ON rq.id = rr.requester_id
             JOIN users pf ON pf.id = rr.professor_id`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.ID != nil {
		args = append(args, *filter.ID)
		clauses = append(clauses, fmt.Sprintf("rr.id=$%d", len(args)))
	}
	if filter.RequesterID != nil {
		args = append(args, *filter.RequesterID)
		clauses = append(clauses, fmt.Sprintf("rr.requester_id=$%d", len(args)))
	}
	if filter.ProfessorID != nil {
		args = append(args, *filter.ProfessorID)
		clauses = append(clauses, fmt.Sprintf("rr.professor_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		clauses = append(clauses, fmt.Sprintf("rr.status=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY rr.id`, base, strings.Join(clauses, " AND "))
	return query, args
}

func scanRecommendationRequest(row rowScanner) (*domain.RecommendationRequest, error) {
	var req domain.RecommendationRequest
	targets := []any{
		&req.ID,
		&req.Details,
		&req.Status,
		&req.DueDate,
		&req.SubmissionDate,
		&req.CompletionDate,
		&req.LastModifiedDate,
		&req.RequestType.ID,
		&req.RequestType.Name,
	}
	targets = append(targets, userScanTargets(&req.Requester)...)
	targets = append(targets, userScanTargets(&req.Professor)...)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return &req, nil
}
