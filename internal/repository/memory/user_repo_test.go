package memory

import (
	"context"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"

	"github.com/prpercival/meal-share/internal/errs"
	"github.com/prpercival/meal-share/internal/model"
)

func TestUserRepo_CopiesInAndOut(t *testing.T) {
	r := NewUserRepo()
	ctx := context.Background()
	u := model.User{ID: uuid.Must(uuid.NewV4()), Name: "Maria", DietaryPreferences: []string{"vegetarian"}}
	require.NoError(t, r.Create(ctx, u))
	require.ErrorIs(t, r.Create(ctx, u), errs.ErrAlreadyExists)

	u.DietaryPreferences[0] = "vegan"
	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"vegetarian"}, got.DietaryPreferences)

	got.Name = "Maria G."
	again, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Maria", again.Name)

	require.NoError(t, r.Save(ctx, got))
	again, err = r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Maria G.", again.Name)
}

func TestUserRepo_Save_Unknown(t *testing.T) {
	r := NewUserRepo()
	require.ErrorIs(t, r.Save(context.Background(), model.User{ID: uuid.Must(uuid.NewV4())}), errs.ErrNotFound)

	_, err := r.GetByID(context.Background(), uuid.Must(uuid.NewV4()))
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestPlannedMealRepo_HasExchange(t *testing.T) {
	r := NewPlannedMealRepo()
	ctx := context.Background()
	user := uuid.Must(uuid.NewV4())
	ex := uuid.Must(uuid.NewV4())

	ok, err := r.HasExchange(ctx, user, ex)
	require.NoError(t, err)
	require.False(t, ok)

	m := model.PlannedMeal{ID: uuid.Must(uuid.NewV4()), UserID: user, ExchangeID: &ex, Source: model.SourceExchange}
	require.NoError(t, r.Append(ctx, m))
	require.ErrorIs(t, r.Append(ctx, m), errs.ErrAlreadyExists)

	ok, err = r.HasExchange(ctx, user, ex)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.HasExchange(ctx, uuid.Must(uuid.NewV4()), ex)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRecipeRepo_ListShared_NewestFirst(t *testing.T) {
	r := NewRecipeRepo()
	ctx := context.Background()
	older := model.SharedRecipe{ID: uuid.Must(uuid.NewV4()), Notes: "old"}
	newer := model.SharedRecipe{ID: uuid.Must(uuid.NewV4()), Notes: "new"}
	newer.SharedAt = older.SharedAt.AddDate(0, 0, 1)
	require.NoError(t, r.Share(ctx, older))
	require.NoError(t, r.Share(ctx, newer))

	list, err := r.ListShared(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "new", list[0].Notes)
}
