package memory

import (
	"context"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/prpercival/meal-share/internal/model"
	"github.com/prpercival/meal-share/internal/repository"
)

// ShoppingListRepo implements ShoppingListRepository in memory.
type ShoppingListRepo struct {
	mu     sync.Mutex
	byUser map[uuid.UUID][]model.ShoppingListItem
}

// NewShoppingListRepo constructs an empty shopping-list store.
func NewShoppingListRepo() *ShoppingListRepo {
	return &ShoppingListRepo{byUser: make(map[uuid.UUID][]model.ShoppingListItem)}
}

// ListByUser returns copies of the user's items.
func (r *ShoppingListRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ShoppingListItem, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneItems(r.byUser[userID]), nil
}

// Update runs fn on a copy of the user's list while holding the lock and stores the
// result unless fn fails.
func (r *ShoppingListRepo) Update(ctx context.Context, userID uuid.UUID, fn repository.ShoppingListUpdate) ([]model.ShoppingListItem, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	next, err := fn(cloneItems(r.byUser[userID]))
	if err != nil {
		return nil, err
	}
	r.byUser[userID] = cloneItems(next)
	return cloneItems(next), nil
}

func cloneItems(in []model.ShoppingListItem) []model.ShoppingListItem {
	out := make([]model.ShoppingListItem, 0, len(in))
	for _, it := range in {
		out = append(out, it.Clone())
	}
	return out
}
