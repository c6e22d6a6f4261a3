package service

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/recommendation-service/internal/domain"
	"github.com/spec-kit/recommendation-service/internal/events"
	"github.com/spec-kit/recommendation-service/internal/repository"
)

type fakeRequestRepo struct {
	records map[int64]domain.RecommendationRequest
	nextID  int64
	deletes []int64
	updates int
}

func newFakeRequestRepo(records ...domain.RecommendationRequest) *fakeRequestRepo {
	repo := &fakeRequestRepo{records: map[int64]domain.RecommendationRequest{}, nextID: 1}
	for _, r := range records {
		repo.records[r.ID] = r
		if r.ID >= repo.nextID {
			repo.nextID = r.ID + 1
		}
	}
	return repo
}

func (f *fakeRequestRepo) Create(_ context.Context, req *domain.RecommendationRequest) error {
	req.ID = f.nextID
	f.nextID++
	f.records[req.ID] = *req
	return nil
}

func (f *fakeRequestRepo) Update(_ context.Context, req *domain.RecommendationRequest) error {
	if _, ok := f.records[req.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.updates++
	f.records[req.ID] = *req
	return nil
}

func (f *fakeRequestRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return pgx.ErrNoRows
	}
	f.deletes = append(f.deletes, id)
	delete(f.records, id)
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.RecommendationRequest, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &r, nil
}

func (f *fakeRequestRepo) GetByIDAndRequester(_ context.Context, id, requesterID int64) (*domain.RecommendationRequest, error) {
	r, ok := f.records[id]
	if !ok || r.Requester.ID != requesterID {
		return nil, pgx.ErrNoRows
	}
	return &r, nil
}

func (f *fakeRequestRepo) ListAll(ctx context.Context) ([]domain.RecommendationRequest, error) {
	return f.ListWithFilter(ctx, repository.RecommendationRequestFilter{})
}

func (f *fakeRequestRepo) ListByRequester(ctx context.Context, requesterID int64) ([]domain.RecommendationRequest, error) {
	return f.ListWithFilter(ctx, repository.RecommendationRequestFilter{RequesterID: &requesterID})
}

func (f *fakeRequestRepo) ListByProfessor(ctx context.Context, professorID int64) ([]domain.RecommendationRequest, error) {
	return f.ListWithFilter(ctx, repository.RecommendationRequestFilter{ProfessorID: &professorID})
}

func (f *fakeRequestRepo) ListByProfessorAndStatus(ctx context.Context, professorID int64, status domain.RequestStatus) ([]domain.RecommendationRequest, error) {
	return f.ListWithFilter(ctx, repository.RecommendationRequestFilter{ProfessorID: &professorID, Status: &status})
}

func (f *fakeRequestRepo) ListWithFilter(_ context.Context, filter repository.RecommendationRequestFilter) ([]domain.RecommendationRequest, error) {
	result := []domain.RecommendationRequest{}
	for _, r := range f.records {
		if filter.ID != nil && r.ID != *filter.ID {
			continue
		}
		if filter.RequesterID != nil && r.Requester.ID != *filter.RequesterID {
			continue
		}
		if filter.ProfessorID != nil && r.Professor.ID != *filter.ProfessorID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

type fakeUserRepo struct {
	users map[int64]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[int64]domain.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListProfessors(_ context.Context) ([]domain.User, error) {
	result := []domain.User{}
	for _, u := range f.users {
		if u.Professor {
			result = append(result, u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *domain.User) error {
	if user.ID == 0 {
		user.ID = int64(len(f.users) + 1)
	}
	f.users[user.ID] = *user
	return nil
}

// fakeTypeRepo enforces unique names like the database index does.
type fakeTypeRepo struct {
	mu      sync.Mutex
	types   map[int64]domain.RequestType
	nextID  int64
	creates int
}

func newFakeTypeRepo(types ...domain.RequestType) *fakeTypeRepo {
	repo := &fakeTypeRepo{types: map[int64]domain.RequestType{}, nextID: 1}
	for _, t := range types {
		repo.types[t.ID] = t
		if t.ID >= repo.nextID {
			repo.nextID = t.ID + 1
		}
	}
	return repo
}

func (f *fakeTypeRepo) GetByID(_ context.Context, id int64) (*domain.RequestType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.types[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &t, nil
}

func (f *fakeTypeRepo) GetByName(_ context.Context, name string) (*domain.RequestType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byNameLocked(name)
}

func (f *fakeTypeRepo) byNameLocked(name string) (*domain.RequestType, error) {
	for _, t := range f.types {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTypeRepo) ListAll(_ context.Context) ([]domain.RequestType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []domain.RequestType{}
	for _, t := range f.types {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (f *fakeTypeRepo) Create(_ context.Context, rt *domain.RequestType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.byNameLocked(rt.Name); err == nil {
		return &pgconn.PgError{Code: "23505", ConstraintName: "uq_request_types_request_type"}
	}
	rt.ID = f.nextID
	f.nextID++
	f.creates++
	f.types[rt.ID] = *rt
	return nil
}

func (f *fakeTypeRepo) CreateIfAbsent(_ context.Context, name string) (*domain.RequestType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, err := f.byNameLocked(name); err == nil {
		return existing, nil
	}
	rt := domain.RequestType{ID: f.nextID, Name: name}
	f.nextID++
	f.creates++
	f.types[rt.ID] = rt
	return &rt, nil
}

func (f *fakeTypeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.types)
}

type fakeLocker struct {
	mu       sync.Mutex
	err      error
	acquired []string
	released int
}

func (l *fakeLocker) Acquire(_ context.Context, key string) (func(), error) {
	if l.err != nil {
		return nil, l.err
	}
	l.mu.Lock()
	l.acquired = append(l.acquired, key)
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.released++
		l.mu.Unlock()
	}, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}
