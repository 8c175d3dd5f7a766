package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap/zaptest"

	"github.com/prpercival/meal-share/internal/model"
	"github.com/prpercival/meal-share/internal/repository"
	"github.com/prpercival/meal-share/internal/repository/memory"
)

var cookingDate = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

type fixture struct {
	stores   *memory.Stores
	cook     model.User
	claimer  model.User
	recipe   model.Recipe
	exchange model.AvailableMealExchange
}

func newFixture(t *testing.T, avail, total int) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{stores: memory.NewStores()}

	f.cook = model.User{ID: uuid.Must(uuid.NewV4()), Name: "Maria", Location: model.Location{Address: "12 Elm St"}}
	f.claimer = model.User{ID: uuid.Must(uuid.NewV4()), Name: "Sam", Location: model.Location{Address: "4 Oak Ave"}}
	f.recipe = model.Recipe{
		ID:       uuid.Must(uuid.NewV4()),
		AuthorID: f.cook.ID,
		Title:    "Shakshuka",
		Servings: 6,
		Ingredients: []model.Ingredient{
			{Name: "Eggs", Amount: 6, Unit: "pcs"},
			{Name: "Crushed tomatoes", Amount: 2, Unit: "cans"},
			{Name: "Olive oil", Amount: 2, Unit: "tbsp"},
		},
		DietaryTags: []string{"vegetarian", "gluten-free"},
		Nutrition:   model.Nutrition{Calories: 1200, Protein: 60, Carbs: 90, Fat: 70, Fiber: 18},
	}
	f.exchange = model.AvailableMealExchange{
		ID:                uuid.Must(uuid.NewV4()),
		CookID:            f.cook.ID,
		RecipeID:          f.recipe.ID,
		TotalPortions:     total,
		AvailablePortions: avail,
		CookingDate:       cookingDate,
		PickupLocation:    "12 Elm St",
	}

	for _, u := range []model.User{f.cook, f.claimer} {
		if err := f.stores.Users.Create(ctx, u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	if err := f.stores.Recipes.Create(ctx, f.recipe); err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	if err := f.stores.Exchanges.Create(ctx, f.exchange); err != nil {
		t.Fatalf("seed exchange: %v", err)
	}
	return f
}

func (f *fixture) exchangeService(t *testing.T, allowRepeat bool) *ExchangeServiceImpl {
	t.Helper()
	s := f.stores
	return NewExchangeService(s.Exchanges, s.Planned, s.Recipes, s.Users, allowRepeat, zaptest.NewLogger(t))
}

func (f *fixture) shoppingService(t *testing.T) *ShoppingServiceImpl {
	t.Helper()
	return NewShoppingService(f.stores.Shopping, f.stores.Pantry, nil, nil, zaptest.NewLogger(t))
}

func (f *fixture) planService(t *testing.T) *PlanServiceImpl {
	t.Helper()
	return NewPlanService(f.stores.Planned, f.stores.Recipes, f.shoppingService(t), zaptest.NewLogger(t))
}

// failingPlanned rejects every Append.
type failingPlanned struct {
	repository.PlannedMealRepository
	err error
}

func (f failingPlanned) Append(context.Context, model.PlannedMeal) error { return f.err }

// cancellingPlanned cancels the caller's context once a meal has been appended.
type cancellingPlanned struct {
	repository.PlannedMealRepository
	cancel context.CancelFunc
}

func (c cancellingPlanned) Append(ctx context.Context, m model.PlannedMeal) error {
	defer c.cancel()
	return c.PlannedMealRepository.Append(ctx, m)
}

var errBoom = errors.New("boom")
