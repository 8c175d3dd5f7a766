package model

// MealType is the slot of the day a meal is planned for.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Valid reports whether m is a known slot.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Order is the position of the slot within a day.
func (m MealType) Order() int {
	switch m {
	case MealBreakfast:
		return 0
	case MealLunch:
		return 1
	case MealDinner:
		return 2
	case MealSnack:
		return 3
	}
	return 4
}

// MealSource records how a planned meal came to be.
type MealSource string

const (
	SourceSelfCook  MealSource = "self-cook"
	SourceExchange  MealSource = "exchange"
	SourceGroupCook MealSource = "group-cook"
)

// Valid reports whether s is a known source.
func (s MealSource) Valid() bool {
	switch s {
	case SourceSelfCook, SourceExchange, SourceGroupCook:
		return true
	}
	return false
}

// PantryCategory is the closed set of pantry shelves.
type PantryCategory string

const (
	CategoryProduce    PantryCategory = "produce"
	CategoryDairy      PantryCategory = "dairy"
	CategoryMeat       PantryCategory = "meat"
	CategorySeafood    PantryCategory = "seafood"
	CategoryGrains     PantryCategory = "grains"
	CategoryBaking     PantryCategory = "baking"
	CategorySpices     PantryCategory = "spices"
	CategoryCondiments PantryCategory = "condiments"
	CategoryCanned     PantryCategory = "canned"
	CategoryFrozen     PantryCategory = "frozen"
	CategoryBeverages  PantryCategory = "beverages"
	CategoryOther      PantryCategory = "other"
)

// PantryCategories lists every category in display order.
var PantryCategories = []PantryCategory{
	CategoryProduce, CategoryDairy, CategoryMeat, CategorySeafood, CategoryGrains,
	CategoryBaking, CategorySpices, CategoryCondiments, CategoryCanned, CategoryFrozen,
	CategoryBeverages, CategoryOther,
}

// Valid reports whether c is a known category.
func (c PantryCategory) Valid() bool {
	for _, k := range PantryCategories {
		if c == k {
			return true
		}
	}
	return false
}
