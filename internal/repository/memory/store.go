// Package memory contains process-lifetime implementations of repository interfaces.
// Every method copies values in and out so callers never share state with the store.
package memory

import (
	"context"

	"github.com/prpercival/meal-share/internal/repository"
)

// Compile-time contract assertions.
var (
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.RecipeRepository       = (*RecipeRepo)(nil)
	_ repository.ExchangeRepository     = (*ExchangeRepo)(nil)
	_ repository.PlannedMealRepository  = (*PlannedMealRepo)(nil)
	_ repository.ShoppingListRepository = (*ShoppingListRepo)(nil)
	_ repository.PantryRepository       = (*PantryRepo)(nil)
)

// Stores bundles one instance of every repository.
type Stores struct {
	Users     *UserRepo
	Recipes   *RecipeRepo
	Exchanges *ExchangeRepo
	Planned   *PlannedMealRepo
	Shopping  *ShoppingListRepo
	Pantry    *PantryRepo
}

// NewStores constructs empty repositories.
func NewStores() *Stores {
	return &Stores{
		Users:     NewUserRepo(),
		Recipes:   NewRecipeRepo(),
		Exchanges: NewExchangeRepo(),
		Planned:   NewPlannedMealRepo(),
		Shopping:  NewShoppingListRepo(),
		Pantry:    NewPantryRepo(),
	}
}

// alive returns the context error, if any, before a store touches its state.
func alive(ctx context.Context) error { return ctx.Err() }
