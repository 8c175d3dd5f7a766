package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/prpercival/meal-share/internal/model"
)

// ExchangeRepository is the ledger of meal exchanges and their portion counters.
type ExchangeRepository interface {
	// Create inserts a new exchange.
	Create(ctx context.Context, e model.AvailableMealExchange) error
	// GetByID loads a copy of an exchange.
	GetByID(ctx context.Context, id uuid.UUID) (model.AvailableMealExchange, error)
	// List returns copies of all exchanges ordered by cooking date.
	List(ctx context.Context) ([]model.AvailableMealExchange, error)
	// TakePortion atomically checks availability and decrements the counter by one.
	// Returns ErrNotFound or ErrSoldOut without touching state.
	TakePortion(ctx context.Context, id uuid.UUID) (model.AvailableMealExchange, error)
	// ReturnPortion undoes a TakePortion, never exceeding TotalPortions.
	ReturnPortion(ctx context.Context, id uuid.UUID) (model.AvailableMealExchange, error)
}
