// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Location is a coordinate pair with a free-text address.
type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

// User is a community member: a cook, a claimer, or both.
type User struct {
	ID                 uuid.UUID
	Name               string
	Email              string
	Bio                string
	Location           Location
	DietaryPreferences []string
	CookingSpecialties []string
	Rating             float64
	ExchangeCount      int
	JoinedAt           time.Time
}

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	u.DietaryPreferences = append([]string(nil), u.DietaryPreferences...)
	u.CookingSpecialties = append([]string(nil), u.CookingSpecialties...)
	return u
}

// Ingredient is a single recipe line.
type Ingredient struct {
	Name   string
	Amount float64
	Unit   string
}

// IngredientLine is an ingredient headed for the shopping list.
type IngredientLine = Ingredient

// Nutrition holds nutrient totals for a batch (or a single serving, depending on context).
type Nutrition struct {
	Calories int
	Protein  float64 // grams
	Carbs    float64 // grams
	Fat      float64 // grams
	Fiber    float64 // grams
}

// Recipe is an immutable catalog entry. Nutrition is per batch of Servings.
type Recipe struct {
	ID           uuid.UUID
	AuthorID     uuid.UUID
	Title        string
	Description  string
	Ingredients  []Ingredient
	Instructions []string
	PrepTime     time.Duration
	CookTime     time.Duration
	Servings     int
	DietaryTags  []string
	Nutrition    Nutrition
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	r.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	r.Instructions = append([]string(nil), r.Instructions...)
	r.DietaryTags = append([]string(nil), r.DietaryTags...)
	return r
}

// HasTag reports whether the recipe carries the dietary tag (exact match).
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// ScaledRecipe is a recipe recomputed for a new serving count.
type ScaledRecipe struct {
	Recipe           Recipe    // new value; Servings == target
	OriginalServings int       // servings of the source recipe
	Factor           float64   // target / original
	PerServing       Nutrition // Recipe.Nutrition divided by the target serving count
}

// AvailableMealExchange is a cook's offer of a fixed number of portions.
// Invariant: 0 <= AvailablePortions <= TotalPortions.
type AvailableMealExchange struct {
	ID                uuid.UUID
	CookID            uuid.UUID
	RecipeID          uuid.UUID
	TotalPortions     int
	AvailablePortions int
	CookingDate       time.Time
	PickupLocation    string
	Notes             string
	CreatedAt         time.Time
}

// SoldOut reports whether no portions are left.
func (e AvailableMealExchange) SoldOut() bool { return e.AvailablePortions <= 0 }

// Claimed returns the number of portions already taken.
func (e AvailableMealExchange) Claimed() int { return e.TotalPortions - e.AvailablePortions }

// PlannedMeal is a scheduled recipe instance for one user.
type PlannedMeal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	RecipeID      uuid.UUID
	ScheduledDate time.Time // calendar day at UTC midnight
	MealType      MealType
	Source        MealSource
	ExchangeID    *uuid.UUID // set when Source == SourceExchange
	Servings      int        // 0 means the recipe's own serving count
	CreatedAt     time.Time
}

// Clone returns a copy that does not alias ExchangeID.
func (p PlannedMeal) Clone() PlannedMeal {
	if p.ExchangeID != nil {
		id := *p.ExchangeID
		p.ExchangeID = &id
	}
	return p
}

// ShoppingListItem is an accumulated entry of a user's shopping list.
type ShoppingListItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Amount    float64
	Unit      string
	Purchased bool
	RecipeID  *uuid.UUID // recipe that first introduced the entry
	AddedAt   time.Time
}

// Clone returns a copy that does not alias RecipeID.
func (s ShoppingListItem) Clone() ShoppingListItem {
	if s.RecipeID != nil {
		id := *s.RecipeID
		s.RecipeID = &id
	}
	return s
}

// PantryItem is a user's on-hand ingredient.
type PantryItem struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Amount    float64
	Unit      string
	Category  PantryCategory
	ExpiresAt *time.Time
	Location  string // e.g. "fridge", "spice rack"
	AddedAt   time.Time
}

// Clone returns a copy that does not alias ExpiresAt.
func (p PantryItem) Clone() PantryItem {
	if p.ExpiresAt != nil {
		t := *p.ExpiresAt
		p.ExpiresAt = &t
	}
	return p
}

// ExpiredAt reports whether the item is past its expiration date at now.
func (p PantryItem) ExpiredAt(now time.Time) bool {
	return p.ExpiresAt != nil && !p.ExpiresAt.After(now)
}

// PantryAvailability is the outcome of a pantry lookup for one ingredient.
type PantryAvailability struct {
	Available       bool
	PantryItem      *PantryItem // first matching pantry item, if any
	AmountAvailable float64     // PantryItem.Amount when matched
	UnitsCompatible bool
}

// SharedRecipe associates a recipe with the member who shared it.
type SharedRecipe struct {
	ID       uuid.UUID
	Recipe   Recipe
	SharedBy uuid.UUID
	SharedAt time.Time
	Notes    string
	Tags     []string
}

// Clone returns a deep copy of s.
func (s SharedRecipe) Clone() SharedRecipe {
	s.Recipe = s.Recipe.Clone()
	s.Tags = append([]string(nil), s.Tags...)
	return s
}

// Day truncates t to its calendar day at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
