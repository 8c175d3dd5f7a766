package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/prpercival/meal-share/internal/model"
)

// PlannedMealRepository stores per-user planned meals. The store only grows.
type PlannedMealRepository interface {
	// Append adds a planned meal for its UserID.
	Append(ctx context.Context, m model.PlannedMeal) error
	// ListByUser returns the user's planned meals in insertion order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PlannedMeal, error)
	// HasExchange reports whether the user has a planned meal referencing exchangeID.
	HasExchange(ctx context.Context, userID, exchangeID uuid.UUID) (bool, error)
}
