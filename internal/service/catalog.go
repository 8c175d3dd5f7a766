package service

import (
	"context"
	"strings"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/prpercival/meal-share/internal/model"
	"github.com/prpercival/meal-share/internal/repository"
)

// CatalogService exposes the read side of the domain catalog.
type CatalogService interface {
	Recipes(ctx context.Context) ([]model.Recipe, error)
	Recipe(ctx context.Context, id uuid.UUID) (model.Recipe, error)
	RecipesByTag(ctx context.Context, tag string) ([]model.Recipe, error)
	SharedRecipes(ctx context.Context) ([]model.SharedRecipe, error)
	ShareRecipe(ctx context.Context, userID, recipeID uuid.UUID, notes string, tags []string) (model.SharedRecipe, error)
	User(ctx context.Context, id uuid.UUID) (model.User, error)
	SearchDietaryPreferences(query string) []string
	SearchCookingSpecialties(query string) []string
}

type CatalogServiceImpl struct {
	base
	recipes repository.RecipeRepository
	users   repository.UserRepository
}

// NewCatalogService constructs CatalogService.
func NewCatalogService(recipes repository.RecipeRepository, users repository.UserRepository, log *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{base: newBase(log, "catalog"), recipes: recipes, users: users}
}

func (s *CatalogServiceImpl) Recipes(ctx context.Context) ([]model.Recipe, error) {
	return s.recipes.List(ctx)
}

func (s *CatalogServiceImpl) Recipe(ctx context.Context, id uuid.UUID) (model.Recipe, error) {
	return s.recipes.GetByID(ctx, id)
}

// RecipesByTag returns recipes carrying the exact dietary tag.
func (s *CatalogServiceImpl) RecipesByTag(ctx context.Context, tag string) ([]model.Recipe, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, invalid("empty tag")
	}
	all, err := s.recipes.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Recipe, 0, len(all))
	for _, r := range all {
		if r.HasTag(tag) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *CatalogServiceImpl) SharedRecipes(ctx context.Context) ([]model.SharedRecipe, error) {
	return s.recipes.ListShared(ctx)
}

// ShareRecipe records that userID shared a catalog recipe.
func (s *CatalogServiceImpl) ShareRecipe(ctx context.Context, userID, recipeID uuid.UUID, notes string, tags []string) (model.SharedRecipe, error) {
	if err := requireUser(userID); err != nil {
		return model.SharedRecipe{}, err
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return model.SharedRecipe{}, err
	}
	r, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		return model.SharedRecipe{}, err
	}
	id, err := s.newID()
	if err != nil {
		return model.SharedRecipe{}, err
	}
	sr := model.SharedRecipe{
		ID:       id,
		Recipe:   r,
		SharedBy: userID,
		SharedAt: s.now(),
		Notes:    strings.TrimSpace(notes),
		Tags:     append([]string(nil), tags...),
	}
	if err := s.recipes.Share(ctx, sr); err != nil {
		return model.SharedRecipe{}, err
	}
	s.log.Info("recipe shared", zap.Stringer("user", userID), zap.Stringer("recipe", recipeID))
	return sr, nil
}

func (s *CatalogServiceImpl) User(ctx context.Context, id uuid.UUID) (model.User, error) {
	return s.users.GetByID(ctx, id)
}

// SearchDietaryPreferences filters the dietary taxonomy by a free-text query.
func (s *CatalogServiceImpl) SearchDietaryPreferences(query string) []string {
	return model.FilterTags(model.DietaryPreferences, query)
}

// SearchCookingSpecialties filters the specialty taxonomy by a free-text query.
func (s *CatalogServiceImpl) SearchCookingSpecialties(query string) []string {
	return model.FilterTags(model.CookingSpecialties, query)
}
