package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"excel-analytics-api/internal/domain/user"
)

type UserRepository struct {
	mu     sync.RWMutex
	nextID uint64
	byID   map[uuid.UUID]*userRecord
}

type userRecord struct {
	id uint64
	u  user.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[uuid.UUID]*userRecord)}
}

func (r *UserRepository) FetchUserByID(_ context.Context, id user.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	u := rec.u
	return &u, nil
}

func (r *UserRepository) FetchUserByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.byID {
		if rec.u.Email == email {
			u := rec.u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FetchUsers(context.Context) (user.Users, error) {
	r.mu.RLock()
	recs := make([]*userRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		recs = append(recs, rec)
	}
	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool { return recs[i].id > recs[j].id })

	us := make(user.Users, len(recs))
	for i, rec := range recs {
		u := rec.u
		us[i] = &u
	}
	return us, nil
}

func (r *UserRepository) CreateUser(_ context.Context, req user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.byID {
		if rec.u.Email == req.Email {
			return nil, user.ErrEmailAlreadyExists
		}
	}

	r.nextID++
	req.UUID = uuid.New()
	req.CreatedAt = time.Now().UTC()
	r.byID[req.UUID] = &userRecord{id: r.nextID, u: req}

	u := req
	return &u, nil
}

func (r *UserRepository) DeleteUser(_ context.Context, id user.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	delete(r.byID, id)

	u := rec.u
	return &u, nil
}
