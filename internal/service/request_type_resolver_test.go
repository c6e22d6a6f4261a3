package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/recommendation-service/internal/domain"
	apperrors "github.com/spec-kit/recommendation-service/pkg/util/errorutil"
)

func TestResolveOtherReturnsExisting(t *testing.T) {
	types := newFakeTypeRepo(domain.RequestType{ID: 99, Name: "Other"})
	locker := &fakeLocker{}
	resolver := NewRequestTypeResolver(types, locker, zap.NewNop())

	for _, token := range []string{"OTHER", "-1"} {
		rt, err := resolver.Resolve(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, int64(99), rt.ID)
		assert.Equal(t, "Other", rt.Name)
	}
	assert.Zero(t, types.creates)
	assert.Empty(t, locker.acquired)
}

func TestResolveOtherCreatesOnFirstUse(t *testing.T) {
	types := newFakeTypeRepo(domain.RequestType{ID: 1, Name: "PhD program"})
	locker := &fakeLocker{}
	resolver := NewRequestTypeResolver(types, locker, zap.NewNop())

	rt, err := resolver.Resolve(context.Background(), "OTHER")
	require.NoError(t, err)
	assert.Equal(t, "Other", rt.Name)
	assert.Equal(t, 1, types.creates)
	assert.Equal(t, []string{otherRequestTypeLockKey}, locker.acquired)
	assert.Equal(t, 1, locker.released)
}

func TestResolveOtherIsCaseSensitive(t *testing.T) {
	resolver := NewRequestTypeResolver(newFakeTypeRepo(), nil, nil)

	_, err := resolver.Resolve(context.Background(), "other")
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidArgument))
}

func TestResolveOtherFallsBackWhenLockUnavailable(t *testing.T) {
	types := newFakeTypeRepo()
	resolver := NewRequestTypeResolver(types, &fakeLocker{err: errors.New("redis down")}, zap.NewNop())

	rt, err := resolver.Resolve(context.Background(), "-1")
	require.NoError(t, err)
	assert.Equal(t, "Other", rt.Name)
	assert.Equal(t, 1, types.count())
}

func TestResolveOtherConcurrentFirstUseCreatesOneRow(t *testing.T) {
	types := newFakeTypeRepo()
	resolver := NewRequestTypeResolver(types, &fakeLocker{}, zap.NewNop())

	var wg sync.WaitGroup
	ids := make([]int64, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rt, err := resolver.Resolve(context.Background(), "OTHER")
			if err == nil {
				ids[i] = rt.ID
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, types.count())
	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestResolveNonNumericToken(t *testing.T) {
	resolver := NewRequestTypeResolver(newFakeTypeRepo(), nil, nil)

	_, err := resolver.Resolve(context.Background(), "abc")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeInvalidArgument, domainErr.Code)
	assert.Equal(t, "Invalid request type ID format", domainErr.Message)
}

func TestResolveMissingID(t *testing.T) {
	resolver := NewRequestTypeResolver(newFakeTypeRepo(domain.RequestType{ID: 1, Name: "PhD program"}), nil, nil)

	_, err := resolver.Resolve(context.Background(), "42")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, apperrors.CodeNotFound, domainErr.Code)
	assert.Equal(t, "RequestType with id 42 not found", domainErr.Message)
}

func TestResolveExistingID(t *testing.T) {
	resolver := NewRequestTypeResolver(newFakeTypeRepo(domain.RequestType{ID: 1, Name: "PhD program"}), nil, nil)

	rt, err := resolver.Resolve(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestType{ID: 1, Name: "PhD program"}, *rt)
}
