package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/prpercival/meal-share/internal/errs"
	"github.com/prpercival/meal-share/internal/model"
)

// UserRepo implements UserRepository in memory.
type UserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]model.User
}

// NewUserRepo constructs an empty user repository.
func NewUserRepo() *UserRepo { return &UserRepo{users: make(map[uuid.UUID]model.User)} }

// Create inserts a new user.
func (r *UserRepo) Create(ctx context.Context, u model.User) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; ok {
		return fmt.Errorf("user %s: %w", u.ID, errs.ErrAlreadyExists)
	}
	r.users[u.ID] = u.Clone()
	return nil
}

// GetByID loads a copy of a user.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	if err := alive(ctx); err != nil {
		return model.User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return model.User{}, fmt.Errorf("user %s: %w", id, errs.ErrNotFound)
	}
	return u.Clone(), nil
}

// List returns copies of all users sorted by name.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Save replaces an existing profile.
func (r *UserRepo) Save(ctx context.Context, u model.User) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return fmt.Errorf("user %s: %w", u.ID, errs.ErrNotFound)
	}
	r.users[u.ID] = u.Clone()
	return nil
}
