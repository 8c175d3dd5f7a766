package model

import (
	"strings"

	"github.com/prpercival/meal-share/internal/textkey"
)

// DietaryPreferences is the closed list of dietary tags a user or recipe may carry.
var DietaryPreferences = []string{
	"vegetarian",
	"vegan",
	"pescatarian",
	"gluten-free",
	"dairy-free",
	"nut-free",
	"egg-free",
	"soy-free",
	"low-carb",
	"low-fat",
	"low-sodium",
	"keto",
	"paleo",
	"halal",
	"kosher",
	"high-protein",
	"sugar-free",
}

// CookingSpecialties is the closed list of cuisines and techniques a cook may list.
var CookingSpecialties = []string{
	"italian",
	"mexican",
	"chinese",
	"japanese",
	"indian",
	"thai",
	"mediterranean",
	"middle-eastern",
	"french",
	"korean",
	"southern-comfort",
	"bbq-grilling",
	"baking",
	"pastry-desserts",
	"soups-stews",
	"slow-cooking",
	"meal-prep",
	"plant-based",
	"farm-to-table",
	"street-food",
}

// IsDietaryPreference reports whether tag is in DietaryPreferences.
func IsDietaryPreference(tag string) bool { return inList(DietaryPreferences, tag) }

// IsCookingSpecialty reports whether tag is in CookingSpecialties.
func IsCookingSpecialty(tag string) bool { return inList(CookingSpecialties, tag) }

func inList(list []string, tag string) bool {
	for _, t := range list {
		if t == tag {
			return true
		}
	}
	return false
}

// FilterTags returns the tags matching a free-text query. A tag matches when the query
// is a case-insensitive substring of the whole tag or of any of its hyphen-separated
// words, so "free" finds "gluten-free" and "dairy-free". An empty query matches all.
func FilterTags(tags []string, query string) []string {
	q := textkey.Fold(query)
	if q == "" {
		return append([]string(nil), tags...)
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tagMatches(tag, q) {
			out = append(out, tag)
		}
	}
	return out
}

func tagMatches(tag, foldedQuery string) bool {
	t := textkey.Fold(tag)
	if strings.Contains(t, foldedQuery) {
		return true
	}
	for _, w := range strings.Split(t, "-") {
		if strings.Contains(w, foldedQuery) {
			return true
		}
	}
	return false
}
