package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/prpercival/meal-share/internal/errs"
	"github.com/prpercival/meal-share/internal/model"
)

// RecipeRepo implements RecipeRepository in memory.
type RecipeRepo struct {
	mu      sync.RWMutex
	recipes map[uuid.UUID]model.Recipe
	shared  []model.SharedRecipe
}

// NewRecipeRepo constructs an empty recipe repository.
func NewRecipeRepo() *RecipeRepo {
	return &RecipeRepo{recipes: make(map[uuid.UUID]model.Recipe)}
}

// Create inserts a catalog recipe.
func (r *RecipeRepo) Create(ctx context.Context, rc model.Recipe) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[rc.ID]; ok {
		return fmt.Errorf("recipe %s: %w", rc.ID, errs.ErrAlreadyExists)
	}
	r.recipes[rc.ID] = rc.Clone()
	return nil
}

// GetByID loads a copy of a recipe.
func (r *RecipeRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Recipe, error) {
	if err := alive(ctx); err != nil {
		return model.Recipe{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rc, ok := r.recipes[id]
	if !ok {
		return model.Recipe{}, fmt.Errorf("recipe %s: %w", id, errs.ErrNotFound)
	}
	return rc.Clone(), nil
}

// List returns copies of all recipes sorted by title.
func (r *RecipeRepo) List(ctx context.Context) ([]model.Recipe, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]model.Recipe, 0, len(r.recipes))
	for _, rc := range r.recipes {
		out = append(out, rc.Clone())
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

// Share stores a shared-recipe record.
func (r *RecipeRepo) Share(ctx context.Context, s model.SharedRecipe) error {
	if err := alive(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.shared {
		if e.ID == s.ID {
			return fmt.Errorf("shared recipe %s: %w", s.ID, errs.ErrAlreadyExists)
		}
	}
	r.shared = append(r.shared, s.Clone())
	return nil
}

// ListShared returns shared recipes, newest first.
func (r *RecipeRepo) ListShared(ctx context.Context) ([]model.SharedRecipe, error) {
	if err := alive(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]model.SharedRecipe, 0, len(r.shared))
	for _, s := range r.shared {
		out = append(out, s.Clone())
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].SharedAt.After(out[j].SharedAt) })
	return out, nil
}
