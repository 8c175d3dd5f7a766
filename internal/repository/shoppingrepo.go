package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/prpercival/meal-share/internal/model"
)

// ShoppingListUpdate receives a copy of the user's list and returns the list to store.
// Returning an error discards the change.
type ShoppingListUpdate func(items []model.ShoppingListItem) ([]model.ShoppingListItem, error)

// ShoppingListRepository stores per-user shopping lists.
type ShoppingListRepository interface {
	// ListByUser returns copies of the user's items in insertion order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ShoppingListItem, error)
	// Update applies fn to the user's list as one critical section and returns the stored result.
	Update(ctx context.Context, userID uuid.UUID, fn ShoppingListUpdate) ([]model.ShoppingListItem, error)
}
