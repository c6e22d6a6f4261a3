package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recommendation-service/internal/domain"
)

// RequestTypeRepository manages the request-type catalog.
type RequestTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RequestType, error)
	GetByName(ctx context.Context, name string) (*domain.RequestType, error)
	ListAll(ctx context.Context) ([]domain.RequestType, error)
	Create(ctx context.Context, requestType *domain.RequestType) error
	CreateIfAbsent(ctx context.Context, name string) (*domain.RequestType, error)
}

type requestTypeRepository struct {
	db DBTX
}

// NewRequestTypeRepository builds the repository.
func NewRequestTypeRepository(db DBTX) RequestTypeRepository {
	return &requestTypeRepository{db: db}
}

func (r *requestTypeRepository) GetByID(ctx context.Context, id int64) (*domain.RequestType, error) {
	const query = `SELECT id, request_type FROM request_types WHERE id=$1`
	return scanRequestType(r.db.QueryRow(ctx, query, id))
}

func (r *requestTypeRepository) GetByName(ctx context.Context, name string) (*domain.RequestType, error) {
	const query = `SELECT id, request_type FROM request_types WHERE request_type=$1`
	return scanRequestType(r.db.QueryRow(ctx, query, name))
}

func (r *requestTypeRepository) ListAll(ctx context.Context) ([]domain.RequestType, error) {
	const query = `SELECT id, request_type FROM request_types ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.RequestType{}
	for rows.Next() {
		rt, err := scanRequestType(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rt)
	}
	return result, rows.Err()
}

// Create inserts a new entry; a duplicate name surfaces as a unique violation.
func (r *requestTypeRepository) Create(ctx context.Context, requestType *domain.RequestType) error {
	const query = `INSERT INTO request_types (request_type) VALUES ($1) RETURNING id`
	return r.db.QueryRow(ctx, query, requestType.Name).Scan(&requestType.ID)
}

// CreateIfAbsent inserts name unless it exists and returns the stored row either way.
// The unique constraint on request_type keeps concurrent callers to a single row.
func (r *requestTypeRepository) CreateIfAbsent(ctx context.Context, name string) (*domain.RequestType, error) {
	const query = `
        INSERT INTO request_types (request_type) VALUES ($1)
        ON CONFLICT (request_type) DO NOTHING
        RETURNING id, request_type`
	rt, err := scanRequestType(r.db.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return r.GetByName(ctx, name)
	}
	return rt, err
}

func scanRequestType(row rowScanner) (*domain.RequestType, error) {
	var rt domain.RequestType
	if err := row.Scan(&rt.ID, &rt.Name); err != nil {
		return nil, err
	}
	return &rt, nil
}
