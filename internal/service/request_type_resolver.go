package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/recommendation-service/internal/domain"
	"github.com/spec-kit/recommendation-service/internal/repository"
	apperrors "github.com/spec-kit/recommendation-service/pkg/util/errorutil"
)

const otherRequestTypeLockKey = "lock:request_types:other"

// Tokens that ask for the catch-all "Other" request type.
const (
	OtherRequestTypeToken   = "OTHER"
	OtherRequestTypeIDToken = "-1"
)

// Locker serializes work across replicas.
type Locker interface {
	Acquire(ctx context.Context, key string) (func(), error)
}

// RequestTypeResolver maps a client token to a catalog entry.
type RequestTypeResolver struct {
	types  repository.RequestTypeRepository
	locker Locker
	logger *zap.Logger
}

// NewRequestTypeResolver builds a resolver. locker may be nil.
func NewRequestTypeResolver(types repository.RequestTypeRepository, locker Locker, logger *zap.Logger) *RequestTypeResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestTypeResolver{types: types, locker: locker, logger: logger}
}

// Resolve returns the request type named by token. "OTHER" and "-1" select the
// "Other" entry, creating it on first use; any other token must be a catalog id.
func (r *RequestTypeResolver) Resolve(ctx context.Context, token string) (*domain.RequestType, error) {
	if token == OtherRequestTypeToken || token == OtherRequestTypeIDToken {
		return r.resolveOther(ctx)
	}

	id, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return nil, apperrors.NewInvalidArgument("Invalid request type ID format", map[string]any{"request_type_id": token})
	}

	rt, err := r.types.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewEntityNotFound("RequestType", token)
		}
		return nil, err
	}
	return rt, nil
}

// Lookup returns the catalog entry with id.
func (r *RequestTypeResolver) Lookup(ctx context.Context, id int64) (*domain.RequestType, error) {
	rt, err := r.types.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "RequestType", id)
	}
	return rt, nil
}

func (r *RequestTypeResolver) resolveOther(ctx context.Context) (*domain.RequestType, error) {
	rt, err := r.types.GetByName(ctx, domain.OtherRequestTypeName)
	if err == nil {
		return rt, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if r.locker != nil {
		release, lockErr := r.locker.Acquire(ctx, otherRequestTypeLockKey)
		if lockErr != nil {
			// The unique index still keeps a single row.
			r.logger.Warn("request type lock unavailable", zap.Error(lockErr))
		} else {
			defer release()
		}
	}
	return r.types.CreateIfAbsent(ctx, domain.OtherRequestTypeName)
}
