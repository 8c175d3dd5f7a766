package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/prpercival/meal-share/internal/errs"
	"github.com/prpercival/meal-share/internal/model"
)

// PantryRepo implements PantryRepository in memory.
type PantryRepo struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID][]model.PantryItem
}

// NewPantryRepo constructs an empty pantry store.
func NewPantryRepo() *PantryRepo {
	return &PantryRepo{byUser: make(map[uuid.UUID][]model.PantryItem)}
}

// Add inserts an item.
func (r *PantryRepo) Add(ctx context.Context, it model.PantryItem) error {
	if err := alive(ctx); err != nil {
		return err
	}
	if it.UserID == uuid.Nil {
		return fmt.Errorf("pantry item %s: empty user: %w", it.ID, errs.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byUser[it.UserID] {
		if e.ID == it.ID {
			return fmt.Errorf("pantry item %s: %w", it.ID, errs.ErrAlreadyExists)
		}
	}
	r.byUser[it.UserID] = append(r.byUser[it.UserID], it.Clone())
	return nil
}

// Remove deletes one of the user's items.
func (r *PantryRepo) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	items := r.byUser[userID]
	for i, e := range items {
		if e.ID == itemID {
			r.byUser[userID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("pantry item %s: %w", itemID, errs.ErrNotFound)
}

// ListByUser returns copies of the user's items in insertion order.
func (r *PantryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PantryItem, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := r.byUser[userID]
	out := make([]model.PantryItem, 0, len(src))
	for _, it := range src {
		out = append(out, it.Clone())
	}
	return out, nil
}
