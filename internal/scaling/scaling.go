// Package scaling recomputes recipe quantities and nutrition for a new serving count.
package scaling

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/prpercival/meal-share/internal/errs"
	"github.com/prpercival/meal-share/internal/model"
)

// Decimal places kept for each kind of quantity.
const (
	amountPlaces = 2
	macroPlaces  = 1
)

// ParseServings converts user input into a positive serving count.
func ParseServings(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("validation: servings %q is not a whole number: %w", s, errs.ErrInvalidInput)
	}
	if n <= 0 {
		return 0, fmt.Errorf("validation: servings must be positive, got %d: %w", n, errs.ErrInvalidInput)
	}
	return n, nil
}

// Scale returns a new recipe sized for target servings. The input recipe is not modified.
//
// Ingredient amounts are multiplied by target/servings and rounded half-up to two
// decimals. Batch nutrition is scaled the same way (calories to a whole number, macros
// to one decimal); PerServing divides those scaled totals by target.
func Scale(r model.Recipe, target int) (model.ScaledRecipe, error) {
	if target <= 0 {
		return model.ScaledRecipe{}, fmt.Errorf("validation: target servings must be positive, got %d: %w", target, errs.ErrInvalidInput)
	}
	if r.Servings <= 0 {
		return model.ScaledRecipe{}, fmt.Errorf("validation: recipe %s has %d servings: %w", r.ID, r.Servings, errs.ErrInvalidInput)
	}

	factor := decimal.NewFromInt(int64(target)).Div(decimal.NewFromInt(int64(r.Servings)))

	out := r.Clone()
	out.Servings = target
	for i := range out.Ingredients {
		out.Ingredients[i].Amount = Round(decimal.NewFromFloat(r.Ingredients[i].Amount).Mul(factor), amountPlaces)
	}
	out.Nutrition = scaleNutrition(r.Nutrition, factor)

	return model.ScaledRecipe{
		Recipe:           out,
		OriginalServings: r.Servings,
		Factor:           factor.InexactFloat64(),
		PerServing:       PerServing(out.Nutrition, target),
	}, nil
}

// PerServing divides batch nutrition by servings. Servings <= 0 yields the zero value.
func PerServing(n model.Nutrition, servings int) model.Nutrition {
	if servings <= 0 {
		return model.Nutrition{}
	}
	by := decimal.NewFromInt(int64(servings))
	return mapNutrition(n, func(d decimal.Decimal) decimal.Decimal { return d.Div(by) })
}

func scaleNutrition(n model.Nutrition, factor decimal.Decimal) model.Nutrition {
	return mapNutrition(n, func(d decimal.Decimal) decimal.Decimal { return d.Mul(factor) })
}

func mapNutrition(n model.Nutrition, f func(decimal.Decimal) decimal.Decimal) model.Nutrition {
	return model.Nutrition{
		Calories: int(f(decimal.NewFromInt(int64(n.Calories))).Round(0).IntPart()),
		Protein:  Round(f(decimal.NewFromFloat(n.Protein)), macroPlaces),
		Carbs:    Round(f(decimal.NewFromFloat(n.Carbs)), macroPlaces),
		Fat:      Round(f(decimal.NewFromFloat(n.Fat)), macroPlaces),
		Fiber:    Round(f(decimal.NewFromFloat(n.Fiber)), macroPlaces),
	}
}

// Round rounds d half away from zero to places decimals.
func Round(d decimal.Decimal, places int32) float64 {
	return d.Round(places).InexactFloat64()
}
