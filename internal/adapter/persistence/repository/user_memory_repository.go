package repository

import (
	"context"
	"sync"

	"fnol_intake/internal/domain/entities"
	"fnol_intake/internal/usecase/interfaces"
)

type UserMemoryRepository struct {
	mu     sync.RWMutex
	users  map[string]entities.User
	emails map[string]string
}

var _ interfaces.IUserRepository = (*UserMemoryRepository)(nil)

func NewUserMemoryRepository() *UserMemoryRepository {
	return &UserMemoryRepository{
		users:  make(map[string]entities.User),
		emails: make(map[string]string),
	}
}

func (r *UserMemoryRepository) Create(_ context.Context, u entities.User) (entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[u.Email]; taken {
		return entities.User{}, interfaces.ErrEmailTaken
	}
	r.emails[u.Email] = u.ID
	r.users[u.ID] = u
	return u, nil
}

func (r *UserMemoryRepository) GetByID(_ context.Context, id string) (entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[id], nil
}

func (r *UserMemoryRepository) GetByEmail(_ context.Context, email string) (entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.users[r.emails[email]], nil
}

func (r *UserMemoryRepository) GetByIDs(_ context.Context, ids []string) (map[string]entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]entities.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (r *UserMemoryRepository) UpdateInsuranceCompany(_ context.Context, id string, company string) (entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return entities.User{}, nil
	}
	u.InsuranceCompany = company
	r.users[id] = u
	return u, nil
}
