package memory

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/prpercival/meal-share/internal/errs"
	"github.com/prpercival/meal-share/internal/model"
)

func TestPantryRepo_AddListRemove(t *testing.T) {
	r := NewPantryRepo()
	ctx := context.Background()
	user := uuid.Must(uuid.NewV4())
	exp := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	flour := model.PantryItem{ID: uuid.Must(uuid.NewV4()), UserID: user, Name: "Flour", Amount: 5, Unit: "cups", Category: model.CategoryBaking}
	milk := model.PantryItem{ID: uuid.Must(uuid.NewV4()), UserID: user, Name: "Milk", Amount: 1, Unit: "gallon", Category: model.CategoryDairy, ExpiresAt: &exp}
	require.NoError(t, r.Add(ctx, flour))
	require.NoError(t, r.Add(ctx, milk))
	require.ErrorIs(t, r.Add(ctx, milk), errs.ErrAlreadyExists)

	list, err := r.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Flour", list[0].Name)

	*list[1].ExpiresAt = exp.Add(time.Hour)
	again, err := r.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Equal(t, exp, *again[1].ExpiresAt)

	require.NoError(t, r.Remove(ctx, user, flour.ID))
	require.ErrorIs(t, r.Remove(ctx, user, flour.ID), errs.ErrNotFound)

	list, err = r.ListByUser(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, milk.ID, list[0].ID)
}

func TestPantryRepo_Remove_OtherUser(t *testing.T) {
	r := NewPantryRepo()
	ctx := context.Background()
	owner, other := uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())
	it := model.PantryItem{ID: uuid.Must(uuid.NewV4()), UserID: owner, Name: "Salt", Amount: 1, Unit: "container"}
	require.NoError(t, r.Add(ctx, it))

	require.ErrorIs(t, r.Remove(ctx, other, it.ID), errs.ErrNotFound)
}

func TestPantryRepo_Add_EmptyUser(t *testing.T) {
	r := NewPantryRepo()
	err := r.Add(context.Background(), model.PantryItem{ID: uuid.Must(uuid.NewV4()), Name: "Salt"})
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}
