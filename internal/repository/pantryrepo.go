package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/prpercival/meal-share/internal/model"
)

// PantryRepository stores per-user pantry inventory.
type PantryRepository interface {
	// Add inserts an item for its UserID.
	Add(ctx context.Context, it model.PantryItem) error
	// Remove deletes an item; ErrNotFound if the user has no such item.
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	// ListByUser returns copies of the user's items in insertion order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.PantryItem, error)
}
