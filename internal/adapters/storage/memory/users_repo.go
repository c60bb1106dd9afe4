package memory

import (
	"context"
	"sync"

	"pet-tracker/internal/domain/users"
)

type userRepo struct {
	mu   sync.RWMutex
	byID map[string]users.Profile
}

func NewUserRepo() users.Repository {
	return &userRepo{byID: make(map[string]users.Profile)}
}

func (r *userRepo) Get(ctx context.Context, userID string) (users.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[userID]
	if !ok {
		return users.Profile{}, users.ErrNotFound
	}
	return p, nil
}

func (r *userRepo) Upsert(ctx context.Context, p users.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[p.UserID] = p
	return nil
}
