package service

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap/zaptest"

	"github.com/prpercival/meal-share/internal/errs"
)

func TestCatalogService_Recipes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1, 1)
	s := NewCatalogService(f.stores.Recipes, f.stores.Users, zaptest.NewLogger(t))

	all, err := s.Recipes(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("recipes: %d %v", len(all), err)
	}
	veg, _ := s.RecipesByTag(ctx, "vegetarian")
	vegan, _ := s.RecipesByTag(ctx, "vegan")
	if len(veg) != 1 || len(vegan) != 0 {
		t.Fatalf("by tag: vegetarian=%d vegan=%d", len(veg), len(vegan))
	}
	if _, err := s.RecipesByTag(ctx, ""); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if _, err := s.Recipe(ctx, uuid.Must(uuid.NewV4())); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCatalogService_ShareRecipe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1, 1)
	s := NewCatalogService(f.stores.Recipes, f.stores.Users, zaptest.NewLogger(t))

	sr, err := s.ShareRecipe(ctx, f.claimer.ID, f.recipe.ID, " family favourite ", []string{"weeknight"})
	if err != nil {
		t.Fatalf("share: %v", err)
	}
	if sr.SharedBy != f.claimer.ID || sr.Recipe.ID != f.recipe.ID || sr.Notes != "family favourite" {
		t.Fatalf("unexpected shared recipe: %+v", sr)
	}
	shared, _ := s.SharedRecipes(ctx)
	if len(shared) != 1 || shared[0].ID != sr.ID {
		t.Fatalf("shared recipes: %+v", shared)
	}
	if _, err := s.ShareRecipe(ctx, uuid.Must(uuid.NewV4()), f.recipe.ID, "", nil); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound for unknown user, got %v", err)
	}
}

func TestCatalogService_Search(t *testing.T) {
	s := NewCatalogService(nil, nil, nil)

	free := s.SearchDietaryPreferences("FREE")
	want := map[string]bool{"gluten-free": true, "dairy-free": true, "nut-free": true, "egg-free": true, "soy-free": true, "sugar-free": true}
	if len(free) != len(want) {
		t.Fatalf("want %d matches, got %v", len(want), free)
	}
	for _, tag := range free {
		if !want[tag] {
			t.Fatalf("unexpected tag %q", tag)
		}
	}
	if got := s.SearchCookingSpecialties("grill"); len(got) != 1 || got[0] != "bbq-grilling" {
		t.Fatalf("grill: %v", got)
	}
	if got := s.SearchCookingSpecialties(""); len(got) != 20 {
		t.Fatalf("empty query should return all, got %d", len(got))
	}
}
