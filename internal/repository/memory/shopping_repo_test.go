package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/prpercival/meal-share/internal/model"
)

func TestShoppingListRepo_Update_StoresResult(t *testing.T) {
	r := NewShoppingListRepo()
	ctx := context.Background()
	user := uuid.Must(uuid.NewV4())
	recipe := uuid.Must(uuid.NewV4())

	out, err := r.Update(ctx, user, func(items []model.ShoppingListItem) ([]model.ShoppingListItem, error) {
		require.Empty(t, items)
		return append(items, model.ShoppingListItem{ID: uuid.Must(uuid.NewV4()), UserID: user, Name: "Eggs", Amount: 2, Unit: "large", RecipeID: &recipe}), nil
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	*out[0].RecipeID = uuid.Nil
	list, err := r.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, recipe, *list[0].RecipeID)
}

func TestShoppingListRepo_Update_ErrorDiscards(t *testing.T) {
	r := NewShoppingListRepo()
	ctx := context.Background()
	user := uuid.Must(uuid.NewV4())
	boom := errors.New("boom")

	_, err := r.Update(ctx, user, func(items []model.ShoppingListItem) ([]model.ShoppingListItem, error) {
		return append(items, model.ShoppingListItem{Name: "Milk"}), boom
	})
	require.ErrorIs(t, err, boom)

	list, err := r.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestShoppingListRepo_PerUser(t *testing.T) {
	r := NewShoppingListRepo()
	ctx := context.Background()
	a, b := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())

	_, err := r.Update(ctx, a, func(items []model.ShoppingListItem) ([]model.ShoppingListItem, error) {
		return append(items, model.ShoppingListItem{Name: "Rice"}), nil
	})
	require.NoError(t, err)

	list, err := r.ListByUser(ctx, b)
	require.NoError(t, err)
	require.Empty(t, list)
}
