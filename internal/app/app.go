// Package app is the facade the UI talks to. The acting user travels in the context
// (see session.WithUserID); mutations report their outcome as a Result and never
// return an error or panic.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/prpercival/meal-share/internal/config"
	"github.com/prpercival/meal-share/internal/matcher"
	"github.com/prpercival/meal-share/internal/model"
	"github.com/prpercival/meal-share/internal/repository/memory"
	"github.com/prpercival/meal-share/internal/scaling"
	"github.com/prpercival/meal-share/internal/seed"
	"github.com/prpercival/meal-share/internal/service"
	"github.com/prpercival/meal-share/internal/session"
)

// App wires services into UI-facing operations.
type App struct {
	log         *zap.Logger
	cfg         config.Config
	defaultUser uuid.UUID

	catalog   service.CatalogService
	exchanges service.ExchangeService
	plan      service.PlanService
	shopping  service.ShoppingService
	pantry    service.PantryService
	users     service.UserService
}

// New validates cfg, seeds fresh stores from the embedded catalog and wires services.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	data, err := seed.Load()
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	st := memory.NewStores()
	if err := seed.Apply(ctx, st, data); err != nil {
		return nil, fmt.Errorf("apply seed: %w", err)
	}
	a, err := NewWithStores(cfg, st, log)
	if err != nil {
		return nil, err
	}
	a.defaultUser = data.CurrentUser
	return a, nil
}

// NewWithStores wires services over existing stores.
func NewWithStores(cfg config.Config, st *memory.Stores, log *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	names, units, err := matcher.New(cfg.NameMatch, cfg.UnitMatch)
	if err != nil {
		return nil, err
	}
	shopping := service.NewShoppingService(st.Shopping, st.Pantry, names, units, log)
	return &App{
		log:       log.Named("app"),
		cfg:       cfg,
		catalog:   service.NewCatalogService(st.Recipes, st.Users, log),
		exchanges: service.NewExchangeService(st.Exchanges, st.Planned, st.Recipes, st.Users, cfg.AllowRepeatClaims, log),
		plan:      service.NewPlanService(st.Planned, st.Recipes, shopping, log),
		shopping:  shopping,
		pantry:    service.NewPantryService(st.Pantry, log),
		users:     service.NewUserService(st.Users, log),
	}, nil
}

// DefaultUser is the member the seed catalog signs in, or uuid.Nil.
func (a *App) DefaultUser() uuid.UUID { return a.defaultUser }

// Catalog exposes recipe, user and taxonomy lookups.
func (a *App) Catalog() service.CatalogService { return a.catalog }

// read runs a query through the logging and recovery chain.
func read[T any](ctx context.Context, a *App, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	return chain[T](a.log, op, fn)(ctx)
}

// mutate resolves the acting user, runs fn through the chain and folds the error
// into a Result.
func mutate[T any](ctx context.Context, a *App, op, okText string, fn func(ctx context.Context, user uuid.UUID) (T, error)) Result[T] {
	v, err := chain[T](a.log, op, currentUser(fn))(ctx)
	if err != nil {
		return failed[T](err)
	}
	return ok(v, okText)
}

// currentUser resolves the acting user before calling fn.
func currentUser[T any](fn func(ctx context.Context, user uuid.UUID) (T, error)) func(ctx context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		user, err := session.RequireUser(ctx)
		if err != nil {
			var zero T
			return zero, err
		}
		return fn(ctx, user)
	}
}

// --- Reads ---

// AvailableMealExchanges lists every exchange, sold-out ones included, so the UI can
// show them as unavailable.
func (a *App) AvailableMealExchanges(ctx context.Context) ([]model.AvailableMealExchange, error) {
	return read(ctx, a, "AvailableMealExchanges", a.exchanges.List)
}

// CurrentUserPlannedMeals lists the acting user's planned meals.
func (a *App) CurrentUserPlannedMeals(ctx context.Context) ([]model.PlannedMeal, error) {
	return read(ctx, a, "CurrentUserPlannedMeals", currentUser(a.plan.List))
}

// CurrentUserWeek lists the acting user's meals for the week starting at weekStart.
func (a *App) CurrentUserWeek(ctx context.Context, weekStart time.Time) ([]model.PlannedMeal, error) {
	return read(ctx, a, "CurrentUserWeek", currentUser(func(ctx context.Context, user uuid.UUID) ([]model.PlannedMeal, error) {
		return a.plan.Week(ctx, user, weekStart)
	}))
}

// CurrentUserShoppingList lists the acting user's shopping list.
func (a *App) CurrentUserShoppingList(ctx context.Context) ([]model.ShoppingListItem, error) {
	return read(ctx, a, "CurrentUserShoppingList", currentUser(a.shopping.List))
}

// CurrentUserPantry lists the acting user's pantry.
func (a *App) CurrentUserPantry(ctx context.Context) ([]model.PantryItem, error) {
	return read(ctx, a, "CurrentUserPantry", currentUser(a.pantry.List))
}

// ExpiringPantryItems lists pantry items expiring within the configured window.
func (a *App) ExpiringPantryItems(ctx context.Context) ([]model.PantryItem, error) {
	return read(ctx, a, "ExpiringPantryItems", currentUser(func(ctx context.Context, user uuid.UUID) ([]model.PantryItem, error) {
		return a.pantry.Expiring(ctx, user, a.cfg.ExpiryWindow)
	}))
}

// CheckPantryAvailability looks an ingredient up in the acting user's pantry.
func (a *App) CheckPantryAvailability(ctx context.Context, name string, required float64, unit string) (model.PantryAvailability, error) {
	return read(ctx, a, "CheckPantryAvailability", currentUser(func(ctx context.Context, user uuid.UUID) (model.PantryAvailability, error) {
		return a.shopping.CheckPantryAvailability(ctx, user, name, required, unit)
	}))
}

// ScaleRecipe previews a recipe at the serving count typed by the user.
func (a *App) ScaleRecipe(ctx context.Context, recipeID uuid.UUID, servings string) (model.ScaledRecipe, error) {
	return read(ctx, a, "ScaleRecipe", func(ctx context.Context) (model.ScaledRecipe, error) {
		target, err := scaling.ParseServings(servings)
		if err != nil {
			return model.ScaledRecipe{}, err
		}
		r, err := a.catalog.Recipe(ctx, recipeID)
		if err != nil {
			return model.ScaledRecipe{}, err
		}
		return scaling.Scale(r, target)
	})
}

// IsAlreadyClaimed reports whether the acting user holds a portion of the exchange.
func (a *App) IsAlreadyClaimed(ctx context.Context, exchangeID uuid.UUID) (bool, error) {
	return read(ctx, a, "IsAlreadyClaimed", currentUser(func(ctx context.Context, user uuid.UUID) (bool, error) {
		return a.exchanges.IsAlreadyClaimed(ctx, user, exchangeID)
	}))
}

// --- Mutations ---

// ClaimMealPortion claims one portion of an exchange for the acting user.
func (a *App) ClaimMealPortion(ctx context.Context, exchangeID uuid.UUID) Result[service.ClaimResult] {
	return mutate(ctx, a, "ClaimMealPortion", "Portion claimed! It's on your meal plan.",
		func(ctx context.Context, user uuid.UUID) (service.ClaimResult, error) {
			return a.exchanges.Claim(ctx, user, exchangeID)
		})
}

// OfferMeal publishes an exchange cooked by the acting user.
func (a *App) OfferMeal(ctx context.Context, in service.OfferInput) Result[model.AvailableMealExchange] {
	return mutate(ctx, a, "OfferMeal", "Your meal is now up for exchange.",
		func(ctx context.Context, user uuid.UUID) (model.AvailableMealExchange, error) {
			return a.exchanges.Offer(ctx, user, in)
		})
}

// AddRecipeToSchedule plans a recipe for the acting user.
func (a *App) AddRecipeToSchedule(ctx context.Context, recipeID uuid.UUID, date time.Time, mealType model.MealType) Result[model.PlannedMeal] {
	return mutate(ctx, a, "AddRecipeToSchedule", "Added to your meal plan.",
		func(ctx context.Context, user uuid.UUID) (model.PlannedMeal, error) {
			return a.plan.AddRecipeToSchedule(ctx, user, recipeID, date, mealType)
		})
}

// AddIngredientsToShoppingList merges items into the acting user's list. recipeID may
// be uuid.Nil.
func (a *App) AddIngredientsToShoppingList(ctx context.Context, items []model.IngredientLine, recipeID uuid.UUID) Result[[]model.ShoppingListItem] {
	return mutate(ctx, a, "AddIngredientsToShoppingList", "Ingredients added to your shopping list.",
		func(ctx context.Context, user uuid.UUID) ([]model.ShoppingListItem, error) {
			return a.shopping.AddIngredients(ctx, user, items, recipeID)
		})
}

// ToggleShoppingItem flips the purchased flag of a list entry.
func (a *App) ToggleShoppingItem(ctx context.Context, itemID uuid.UUID) Result[model.ShoppingListItem] {
	return mutate(ctx, a, "ToggleShoppingItem", "",
		func(ctx context.Context, user uuid.UUID) (model.ShoppingListItem, error) {
			return a.shopping.TogglePurchased(ctx, user, itemID)
		})
}

// ClearPurchasedItems removes purchased entries from the acting user's list.
func (a *App) ClearPurchasedItems(ctx context.Context) Result[int] {
	return mutate(ctx, a, "ClearPurchasedItems", "Purchased items cleared.",
		func(ctx context.Context, user uuid.UUID) (int, error) {
			return a.shopping.ClearPurchased(ctx, user)
		})
}

// AddPantryItem stores a new pantry item for the acting user.
func (a *App) AddPantryItem(ctx context.Context, in service.PantryInput) Result[model.PantryItem] {
	return mutate(ctx, a, "AddPantryItem", "Added to your pantry.",
		func(ctx context.Context, user uuid.UUID) (model.PantryItem, error) {
			return a.pantry.Add(ctx, user, in)
		})
}

// RemovePantryItem deletes a pantry item of the acting user.
func (a *App) RemovePantryItem(ctx context.Context, itemID uuid.UUID) Result[struct{}] {
	return mutate(ctx, a, "RemovePantryItem", "Removed from your pantry.",
		func(ctx context.Context, user uuid.UUID) (struct{}, error) {
			return struct{}{}, a.pantry.Remove(ctx, user, itemID)
		})
}

// UseScaledRecipe plans the scaled recipe once and adds its ingredients to the list.
func (a *App) UseScaledRecipe(ctx context.Context, in service.UseScaledInput) Result[service.UseScaledResult] {
	return mutate(ctx, a, "UseScaledRecipe", "Recipe added to your plan and shopping list.",
		func(ctx context.Context, user uuid.UUID) (service.UseScaledResult, error) {
			return a.plan.UseScaledRecipe(ctx, user, in)
		})
}

// AutoMarkPantryItems marks list entries the pantry already covers.
func (a *App) AutoMarkPantryItems(ctx context.Context) Result[int] {
	return mutate(ctx, a, "AutoMarkPantryItems", "Items you already have are checked off.",
		func(ctx context.Context, user uuid.UUID) (int, error) {
			return a.shopping.AutoMarkPantryItems(ctx, user)
		})
}

// UpdateSettings applies and saves a profile change of the acting user.
func (a *App) UpdateSettings(ctx context.Context, ch service.SettingsChange) Result[model.User] {
	return mutate(ctx, a, "UpdateSettings", "Settings saved.",
		func(ctx context.Context, user uuid.UUID) (model.User, error) {
			u, err := a.catalog.User(ctx, user)
			if err != nil {
				return model.User{}, err
			}
			next, err := a.users.ApplySettings(u, ch)
			if err != nil {
				return model.User{}, err
			}
			if err := a.users.Save(ctx, next); err != nil {
				return model.User{}, err
			}
			return next, nil
		})
}
