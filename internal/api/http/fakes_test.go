package http

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/recommendation-service/internal/domain"
	"github.com/spec-kit/recommendation-service/internal/repository"
)

type memStore struct {
	mu       sync.Mutex
	users    map[int64]domain.User
	types    map[int64]domain.RequestType
	requests map[int64]domain.RecommendationRequest
	nextID   int64
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]domain.User{},
		types:    map[int64]domain.RequestType{},
		requests: map[int64]domain.RecommendationRequest{},
		nextID:   100,
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

type memUsers struct{ *memStore }

func (m memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m memUsers) ListProfessors(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.User{}
	for _, u := range m.users {
		if u.Professor {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memUsers) Upsert(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == 0 {
		user.ID = m.id()
	}
	m.users[user.ID] = *user
	return nil
}

type memTypes struct{ *memStore }

func (m memTypes) GetByID(_ context.Context, id int64) (*domain.RequestType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.types[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &rt, nil
}

func (m memTypes) GetByName(_ context.Context, name string) (*domain.RequestType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byName(name)
}

func (m memTypes) byName(name string) (*domain.RequestType, error) {
	for _, rt := range m.types {
		if rt.Name == name {
			return &rt, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m memTypes) ListAll(_ context.Context) ([]domain.RequestType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.RequestType{}
	for _, rt := range m.types {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memTypes) Create(_ context.Context, rt *domain.RequestType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt.ID = m.id()
	m.types[rt.ID] = *rt
	return nil
}

func (m memTypes) CreateIfAbsent(_ context.Context, name string) (*domain.RequestType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rt, err := m.byName(name); err == nil {
		return rt, nil
	}
	rt := domain.RequestType{ID: m.id(), Name: name}
	m.types[rt.ID] = rt
	return &rt, nil
}

type memRequests struct{ *memStore }

func (m memRequests) Create(_ context.Context, req *domain.RecommendationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	req.ID = m.id()
	m.requests[req.ID] = *req
	return nil
}

func (m memRequests) Update(_ context.Context, req *domain.RecommendationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[req.ID]; !ok {
		return pgx.ErrNoRows
	}
	m.requests[req.ID] = *req
	return nil
}

func (m memRequests) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.requests, id)
	return nil
}

func (m memRequests) GetByID(ctx context.Context, id int64) (*domain.RecommendationRequest, error) {
	return m.first(ctx, repository.RecommendationRequestFilter{ID: &id})
}

func (m memRequests) GetByIDAndRequester(ctx context.Context, id, requesterID int64) (*domain.RecommendationRequest, error) {
	return m.first(ctx, repository.RecommendationRequestFilter{ID: &id, RequesterID: &requesterID})
}

func (m memRequests) first(ctx context.Context, filter repository.RecommendationRequestFilter) (*domain.RecommendationRequest, error) {
	list, _ := m.ListWithFilter(ctx, filter)
	if len(list) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &list[0], nil
}

func (m memRequests) ListAll(ctx context.Context) ([]domain.RecommendationRequest, error) {
	return m.ListWithFilter(ctx, repository.RecommendationRequestFilter{})
}

func (m memRequests) ListByRequester(ctx context.Context, requesterID int64) ([]domain.RecommendationRequest, error) {
	return m.ListWithFilter(ctx, repository.RecommendationRequestFilter{RequesterID: &requesterID})
}

func (m memRequests) ListByProfessor(ctx context.Context, professorID int64) ([]domain.RecommendationRequest, error) {
	return m.ListWithFilter(ctx, repository.RecommendationRequestFilter{ProfessorID: &professorID})
}

func (m memRequests) ListByProfessorAndStatus(ctx context.Context, professorID int64, status domain.RequestStatus) ([]domain.RecommendationRequest, error) {
	return m.ListWithFilter(ctx, repository.RecommendationRequestFilter{ProfessorID: &professorID, Status: &status})
}

func (m memRequests) ListWithFilter(_ context.Context, f repository.RecommendationRequestFilter) ([]domain.RecommendationRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.RecommendationRequest{}
	for _, r := range m.requests {
		if (f.ID != nil && r.ID != *f.ID) ||
			(f.RequesterID != nil && r.Requester.ID != *f.RequesterID) ||
			(f.ProfessorID != nil && r.Professor.ID != *f.ProfessorID) ||
			(f.Status != nil && r.Status != *f.Status) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
