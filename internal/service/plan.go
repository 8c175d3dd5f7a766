package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/prpercival/meal-share/internal/model"
	"github.com/prpercival/meal-share/internal/repository"
	"github.com/prpercival/meal-share/internal/scaling"
)

// PlanService defines operations over a user's planned meals.
type PlanService interface {
	// AddRecipeToSchedule plans a catalog recipe for a day and meal slot.
	AddRecipeToSchedule(ctx context.Context, userID, recipeID uuid.UUID, date time.Time, mealType model.MealType) (model.PlannedMeal, error)
	// UseScaledRecipe scales a recipe, plans it once and merges its ingredients into the shopping list.
	UseScaledRecipe(ctx context.Context, userID uuid.UUID, in UseScaledInput) (UseScaledResult, error)
	// List returns all planned meals of the user.
	List(ctx context.Context, userID uuid.UUID) ([]model.PlannedMeal, error)
	// Week returns the user's meals in the seven days starting at weekStart.
	Week(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]model.PlannedMeal, error)
}

// UseScaledInput selects the recipe, target servings and slot for UseScaledRecipe.
type UseScaledInput struct {
	RecipeID       uuid.UUID
	TargetServings int
	Date           time.Time
	MealType       model.MealType
	Source         model.MealSource // defaults to self-cook
}

// UseScaledResult reports everything UseScaledRecipe changed.
type UseScaledResult struct {
	Scaled       model.ScaledRecipe
	PlannedMeal  model.PlannedMeal
	ShoppingList []model.ShoppingListItem
}

type PlanServiceImpl struct {
	base
	planned  repository.PlannedMealRepository
	recipes  repository.RecipeRepository
	shopping ShoppingService
}

// NewPlanService constructs PlanService.
func NewPlanService(planned repository.PlannedMealRepository, recipes repository.RecipeRepository, shopping ShoppingService, log *zap.Logger) *PlanServiceImpl {
	return &PlanServiceImpl{base: newBase(log, "plan"), planned: planned, recipes: recipes, shopping: shopping}
}

// AddRecipeToSchedule validates the slot and recipe and appends a self-cooked meal.
func (s *PlanServiceImpl) AddRecipeToSchedule(ctx context.Context, userID, recipeID uuid.UUID, date time.Time, mealType model.MealType) (model.PlannedMeal, error) {
	if err := validateSlot(userID, date, mealType); err != nil {
		return model.PlannedMeal{}, err
	}
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return model.PlannedMeal{}, err
	}
	m, err := s.appendMeal(ctx, userID, recipeID, date, mealType, model.SourceSelfCook, 0)
	if err != nil {
		return model.PlannedMeal{}, err
	}
	s.log.Info("recipe scheduled",
		zap.Stringer("user", userID),
		zap.Stringer("recipe", recipeID),
		zap.Time("date", m.ScheduledDate),
		zap.String("meal_type", string(mealType)),
	)
	return m, nil
}

// UseScaledRecipe creates exactly one planned meal for the scaled recipe and merges the
// scaled ingredients into the user's shopping list. All input is validated first.
func (s *PlanServiceImpl) UseScaledRecipe(ctx context.Context, userID uuid.UUID, in UseScaledInput) (UseScaledResult, error) {
	if in.Source == "" {
		in.Source = model.SourceSelfCook
	}
	if !in.Source.Valid() || in.Source == model.SourceExchange {
		return UseScaledResult{}, invalid("source %q", in.Source)
	}
	if err := validateSlot(userID, in.Date, in.MealType); err != nil {
		return UseScaledResult{}, err
	}
	recipe, err := s.recipes.GetByID(ctx, in.RecipeID)
	if err != nil {
		return UseScaledResult{}, err
	}
	scaled, err := scaling.Scale(recipe, in.TargetServings)
	if err != nil {
		return UseScaledResult{}, err
	}
	if err := validateLines(scaled.Recipe.Ingredients); err != nil {
		return UseScaledResult{}, err
	}

	meal, err := s.appendMeal(ctx, userID, recipe.ID, in.Date, in.MealType, in.Source, in.TargetServings)
	if err != nil {
		return UseScaledResult{}, err
	}
	// The meal is already in; the merge must not be cut short by cancellation.
	list, err := s.shopping.AddIngredients(context.WithoutCancel(ctx), userID, scaled.Recipe.Ingredients, recipe.ID)
	if err != nil {
		s.log.Error("merge scaled ingredients", zap.Stringer("planned_meal", meal.ID), zap.Error(err))
		return UseScaledResult{}, fmt.Errorf("planned meal %s created, shopping list not updated: %w", meal.ID, err)
	}

	s.log.Info("scaled recipe used",
		zap.Stringer("user", userID),
		zap.Stringer("recipe", recipe.ID),
		zap.Int("servings", in.TargetServings),
		zap.Int("ingredients", len(scaled.Recipe.Ingredients)),
	)
	return UseScaledResult{Scaled: scaled, PlannedMeal: meal, ShoppingList: list}, nil
}

// List returns the user's planned meals in insertion order.
func (s *PlanServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.PlannedMeal, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.planned.ListByUser(ctx, userID)
}

// Week returns meals dated within [weekStart, weekStart+7d) ordered by day and slot.
func (s *PlanServiceImpl) Week(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]model.PlannedMeal, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	all, err := s.planned.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	from := model.Day(weekStart)
	to := from.AddDate(0, 0, 7)
	out := make([]model.PlannedMeal, 0, len(all))
	for _, m := range all {
		if !m.ScheduledDate.Before(from) && m.ScheduledDate.Before(to) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ScheduledDate.Equal(out[j].ScheduledDate) {
			return out[i].ScheduledDate.Before(out[j].ScheduledDate)
		}
		return out[i].MealType.Order() < out[j].MealType.Order()
	})
	return out, nil
}

func (s *PlanServiceImpl) appendMeal(ctx context.Context, userID, recipeID uuid.UUID, date time.Time, mealType model.MealType, src model.MealSource, servings int) (model.PlannedMeal, error) {
	id, err := s.newID()
	if err != nil {
		return model.PlannedMeal{}, err
	}
	m := model.PlannedMeal{
		ID:            id,
		UserID:        userID,
		RecipeID:      recipeID,
		ScheduledDate: model.Day(date),
		MealType:      mealType,
		Source:        src,
		Servings:      servings,
		CreatedAt:     s.now(),
	}
	if err := s.planned.Append(ctx, m); err != nil {
		return model.PlannedMeal{}, err
	}
	return m, nil
}

func validateSlot(userID uuid.UUID, date time.Time, mealType model.MealType) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if date.IsZero() {
		return invalid("empty date")
	}
	if !mealType.Valid() {
		return invalid("meal type %q", mealType)
	}
	return nil
}
