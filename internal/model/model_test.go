package model

import (
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
)

func TestFilterTags(t *testing.T) {
	cases := []struct {
		name  string
		tags  []string
		query string
		want  []string
	}{
		{"word suffix", DietaryPreferences, "free", []string{"gluten-free", "dairy-free", "nut-free", "egg-free", "soy-free", "sugar-free"}},
		{"case and space", DietaryPreferences, "  VEG ", []string{"vegetarian", "vegan"}},
		{"inside a word", CookingSpecialties, "grill", []string{"bbq-grilling"}},
		{"across hyphen", CookingSpecialties, "middle-east", []string{"middle-eastern"}},
		{"no match", CookingSpecialties, "sous vide", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FilterTags(tc.tags, tc.query))
		})
	}

	all := FilterTags(DietaryPreferences, "")
	require.Equal(t, DietaryPreferences, all)
	all[0] = "changed"
	require.Equal(t, "vegetarian", DietaryPreferences[0])
}

func TestTaxonomyMembership(t *testing.T) {
	require.True(t, IsDietaryPreference("keto"))
	require.False(t, IsDietaryPreference("Keto"))
	require.True(t, IsCookingSpecialty("street-food"))
	require.False(t, IsCookingSpecialty("vegan"))
}

func TestEnums(t *testing.T) {
	require.True(t, MealSnack.Valid())
	require.False(t, MealType("brunch").Valid())
	require.Less(t, MealBreakfast.Order(), MealLunch.Order())
	require.Less(t, MealDinner.Order(), MealSnack.Order())

	require.True(t, SourceGroupCook.Valid())
	require.False(t, MealSource("takeout").Valid())

	require.Len(t, PantryCategories, 12)
	require.True(t, CategoryBeverages.Valid())
	require.False(t, PantryCategory("cellar").Valid())
}

func TestClonesDoNotAlias(t *testing.T) {
	r := Recipe{Ingredients: []Ingredient{{Name: "Salt", Amount: 1, Unit: "tsp"}}, DietaryTags: []string{"vegan"}}
	c := r.Clone()
	c.Ingredients[0].Amount = 9
	c.DietaryTags[0] = "keto"
	require.Equal(t, 1.0, r.Ingredients[0].Amount)
	require.Equal(t, "vegan", r.DietaryTags[0])

	id := uuid.Must(uuid.NewV4())
	m := PlannedMeal{ExchangeID: &id}
	mc := m.Clone()
	*mc.ExchangeID = uuid.Nil
	require.Equal(t, id, *m.ExchangeID)

	exp := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := PantryItem{ExpiresAt: &exp}
	require.True(t, p.ExpiredAt(exp))
	require.False(t, p.ExpiredAt(exp.Add(-time.Second)))
	require.False(t, PantryItem{}.ExpiredAt(exp))
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	got := Day(time.Date(2025, 3, 14, 23, 30, 0, 0, loc))
	require.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), got)
}
