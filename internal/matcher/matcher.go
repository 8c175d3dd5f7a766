// Package matcher decides which pantry item stands in for a shopping-list ingredient
// and whether their units can be compared.
package matcher

import (
	"fmt"

	"github.com/prpercival/meal-share/internal/model"
	"github.com/prpercival/meal-share/internal/textkey"
)

// IngredientMatcher picks the pantry item that corresponds to an ingredient name.
type IngredientMatcher interface {
	// Match returns the index of the matching item in pantry, or false.
	Match(name string, pantry []model.PantryItem) (int, bool)
}

// UnitPolicy decides whether a pantry unit can satisfy a requested unit.
type UnitPolicy interface {
	Compatible(pantryUnit, wantUnit string) bool
}

// Substring matches when either folded name contains the other. First match wins.
type Substring struct{}

// Match implements IngredientMatcher.
func (Substring) Match(name string, pantry []model.PantryItem) (int, bool) {
	if textkey.Fold(name) == "" {
		return 0, false
	}
	for i, it := range pantry {
		if textkey.Fold(it.Name) == "" {
			continue
		}
		if textkey.Contains(it.Name, name) || textkey.Contains(name, it.Name) {
			return i, true
		}
	}
	return 0, false
}

// Exact matches on folded names only.
type Exact struct{}

// Match implements IngredientMatcher.
func (Exact) Match(name string, pantry []model.PantryItem) (int, bool) {
	key := textkey.Fold(name)
	for i, it := range pantry {
		if textkey.Fold(it.Name) == key {
			return i, true
		}
	}
	return 0, false
}

// containerUnits are pantry packaging units measured out by the spoon.
var containerUnits = map[string]bool{"bottle": true, "container": true}

// spoonUnits are the shopping units a containerUnit may satisfy.
var spoonUnits = map[string]bool{"tbsp": true, "tsp": true}

// Whitelist accepts identical units (case-insensitive) and a bottle or container in the
// pantry against a tbsp or tsp request. Nothing else converts.
type Whitelist struct{}

// Compatible implements UnitPolicy.
func (Whitelist) Compatible(pantryUnit, wantUnit string) bool {
	p, w := textkey.Fold(pantryUnit), textkey.Fold(wantUnit)
	if p == w {
		return true
	}
	return containerUnits[p] && spoonUnits[w]
}

// SameUnit accepts identical units only.
type SameUnit struct{}

// Compatible implements UnitPolicy.
func (SameUnit) Compatible(pantryUnit, wantUnit string) bool {
	return textkey.Fold(pantryUnit) == textkey.Fold(wantUnit)
}

// Check looks the ingredient up in pantry. It only reads pantry.
func Check(m IngredientMatcher, u UnitPolicy, pantry []model.PantryItem, name string, required float64, unit string) model.PantryAvailability {
	i, ok := m.Match(name, pantry)
	if !ok {
		return model.PantryAvailability{}
	}
	it := pantry[i].Clone()
	res := model.PantryAvailability{
		PantryItem:      &it,
		AmountAvailable: it.Amount,
		UnitsCompatible: u.Compatible(it.Unit, unit),
	}
	res.Available = res.UnitsCompatible && it.Amount >= required
	return res
}

// Names of the built-in strategies, as used in configuration.
const (
	NameSubstring = "substring"
	NameExact     = "exact"
	UnitWhitelist = "whitelist"
	UnitExact     = "exact"
)

// New returns the strategies registered under the given names.
func New(nameMatch, unitMatch string) (IngredientMatcher, UnitPolicy, error) {
	var m IngredientMatcher
	switch nameMatch {
	case NameSubstring, "":
		m = Substring{}
	case NameExact:
		m = Exact{}
	default:
		return nil, nil, fmt.Errorf("unknown name matcher %q", nameMatch)
	}
	var u UnitPolicy
	switch unitMatch {
	case UnitWhitelist, "":
		u = Whitelist{}
	case UnitExact:
		u = SameUnit{}
	default:
		return nil, nil, fmt.Errorf("unknown unit policy %q", unitMatch)
	}
	return m, u, nil
}
