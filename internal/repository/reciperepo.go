package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/prpercival/meal-share/internal/model"
)

// RecipeRepository provides read access to the recipe catalog and shared recipes.
type RecipeRepository interface {
	// Create inserts a catalog recipe.
	Create(ctx context.Context, r model.Recipe) error
	// GetByID loads a copy of a recipe.
	GetByID(ctx context.Context, id uuid.UUID) (model.Recipe, error)
	// List returns copies of all recipes.
	List(ctx context.Context) ([]model.Recipe, error)
	// Share stores a shared-recipe record.
	Share(ctx context.Context, s model.SharedRecipe) error
	// ListShared returns shared recipes, newest first.
	ListShared(ctx context.Context) ([]model.SharedRecipe, error)
}
