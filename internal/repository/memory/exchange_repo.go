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

// ExchangeRepo implements ExchangeRepository in memory. The portion counter is only
// read and written while mu is held, so check-and-decrement cannot interleave.
type ExchangeRepo struct {
	mu        sync.Mutex
	exchanges map[uuid.UUID]*model.AvailableMealExchange
}

// NewExchangeRepo constructs an empty exchange ledger.
func NewExchangeRepo() *ExchangeRepo {
	return &ExchangeRepo{exchanges: make(map[uuid.UUID]*model.AvailableMealExchange)}
}

// Create inserts a new exchange after checking the portion invariant.
func (r *ExchangeRepo) Create(ctx context.Context, e model.AvailableMealExchange) error {
	if err := alive(ctx); err != nil {
		return err
	}
	if e.TotalPortions < 0 || e.AvailablePortions < 0 || e.AvailablePortions > e.TotalPortions {
		return fmt.Errorf("exchange %s: portions %d/%d: %w", e.ID, e.AvailablePortions, e.TotalPortions, errs.ErrInvalidInput)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exchanges[e.ID]; ok {
		return fmt.Errorf("exchange %s: %w", e.ID, errs.ErrAlreadyExists)
	}
	cp := e
	r.exchanges[e.ID] = &cp
	return nil
}

// GetByID loads a copy of an exchange.
func (r *ExchangeRepo) GetByID(ctx context.Context, id uuid.UUID) (model.AvailableMealExchange, error) {
	if err := alive(ctx); err != nil {
		return model.AvailableMealExchange{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exchanges[id]
	if !ok {
		return model.AvailableMealExchange{}, fmt.Errorf("exchange %s: %w", id, errs.ErrNotFound)
	}
	return *e, nil
}

// List returns copies ordered by cooking date, then ID for a stable order.
func (r *ExchangeRepo) List(ctx context.Context) ([]model.AvailableMealExchange, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.Lock()
	out := make([]model.AvailableMealExchange, 0, len(r.exchanges))
	for _, e := range r.exchanges {
		out = append(out, *e)
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CookingDate.Equal(out[j].CookingDate) {
			return out[i].CookingDate.Before(out[j].CookingDate)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// TakePortion decrements AvailablePortions by one if any are left.
func (r *ExchangeRepo) TakePortion(ctx context.Context, id uuid.UUID) (model.AvailableMealExchange, error) {
	if err := alive(ctx); err != nil {
		return model.AvailableMealExchange{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exchanges[id]
	if !ok {
		return model.AvailableMealExchange{}, fmt.Errorf("exchange %s: %w", id, errs.ErrNotFound)
	}
	if e.AvailablePortions <= 0 {
		return model.AvailableMealExchange{}, fmt.Errorf("exchange %s: %w", id, errs.ErrSoldOut)
	}
	e.AvailablePortions--
	return *e, nil
}

// ReturnPortion increments AvailablePortions by one, capped at TotalPortions.
// It ignores context cancellation: it compensates a TakePortion that already happened.
func (r *ExchangeRepo) ReturnPortion(_ context.Context, id uuid.UUID) (model.AvailableMealExchange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exchanges[id]
	if !ok {
		return model.AvailableMealExchange{}, fmt.Errorf("exchange %s: %w", id, errs.ErrNotFound)
	}
	if e.AvailablePortions < e.TotalPortions {
		e.AvailablePortions++
	}
	return *e, nil
}
