package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/prpercival/meal-share/internal/errs"
	"github.com/prpercival/meal-share/internal/model"
)

// PlannedMealRepo implements PlannedMealRepository in memory.
type PlannedMealRepo struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID][]model.PlannedMeal
}

// NewPlannedMealRepo constructs an empty planned-meal store.
func NewPlannedMealRepo() *PlannedMealRepo {
	return &PlannedMealRepo{byUser: make(map[uuid.UUID][]model.PlannedMeal)}
}

// Append adds a planned meal.
func (r *PlannedMealRepo) Append(ctx context.Context, m model.PlannedMeal) error {
	if err := alive(ctx); err != nil {
		return err
	}
	if m.UserID == uuid.Nil {
		return fmt.Errorf("planned meal %s: empty user: %w", m.ID, errs.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byUser[m.UserID] {
		if e.ID == m.ID {
			return fmt.Errorf("planned meal %s: %w", m.ID, errs.ErrAlreadyExists)
		}
	}
	r.byUser[m.UserID] = append(r.byUser[m.UserID], m.Clone())
	return nil
}

// ListByUser returns the user's planned meals in insertion order.
func (r *PlannedMealRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PlannedMeal, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	src := r.byUser[userID]
	out := make([]model.PlannedMeal, 0, len(src))
	for _, m := range src {
		out = append(out, m.Clone())
	}
	return out, nil
}

// HasExchange reports whether any of the user's meals references exchangeID.
func (r *PlannedMealRepo) HasExchange(ctx context.Context, userID, exchangeID uuid.UUID) (bool, error) {
	if err := alive(ctx); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.byUser[userID] {
		if m.ExchangeID != nil && *m.ExchangeID == exchangeID {
			return true, nil
		}
	}
	return false, nil
}
