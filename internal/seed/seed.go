// Package seed decodes the embedded static catalog and loads it into the memory
// repositories.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/prpercival/meal-share/internal/errs"
	"github.com/prpercival/meal-share/internal/model"
	"github.com/prpercival/meal-share/internal/repository/memory"
	"github.com/prpercival/meal-share/internal/textkey"
)

//go:embed catalog.yaml
var catalogYAML []byte

// namespace derives stable IDs for rows the catalog does not name explicitly.
var namespace = uuid.Must(uuid.FromString("0b7e6c1e-5a4f-4d59-9a8e-6f3b2f1c9d40"))

type document struct {
	CurrentUser string           `yaml:"current_user"`
	Users       []userDoc        `yaml:"users"`
	Recipes     []recipeDoc      `yaml:"recipes"`
	Exchanges   []exchangeDoc    `yaml:"exchanges"`
	Shared      []sharedDoc      `yaml:"shared_recipes"`
	Pantry      []pantryDoc      `yaml:"pantry"`
	Shopping    []shoppingDoc    `yaml:"shopping_list"`
	Planned     []plannedMealDoc `yaml:"planned_meals"`
}

type userDoc struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	Email              string   `yaml:"email"`
	Bio                string   `yaml:"bio,omitempty"`
	Location           location `yaml:"location"`
	DietaryPreferences []string `yaml:"dietary_preferences"`
	CookingSpecialties []string `yaml:"cooking_specialties"`
	Rating             float64  `yaml:"rating"`
	ExchangeCount      int      `yaml:"exchange_count"`
	JoinedAt           string   `yaml:"joined_at"`
}

type location struct {
	Lat     float64 `yaml:"lat"`
	Lng     float64 `yaml:"lng"`
	Address string  `yaml:"address"`
}

type recipeDoc struct {
	ID           string             `yaml:"id"`
	Author       string             `yaml:"author"`
	Title        string             `yaml:"title"`
	Description  string             `yaml:"description"`
	Servings     int                `yaml:"servings"`
	PrepTime     string             `yaml:"prep_time"`
	CookTime     string             `yaml:"cook_time"`
	DietaryTags  []string           `yaml:"dietary_tags"`
	Ingredients  []model.Ingredient `yaml:"ingredients"`
	Instructions []string           `yaml:"instructions"`
	Nutrition    model.Nutrition    `yaml:"nutrition"`
}

type exchangeDoc struct {
	ID                string `yaml:"id"`
	Cook              string `yaml:"cook"`
	Recipe            string `yaml:"recipe"`
	TotalPortions     int    `yaml:"total_portions"`
	AvailablePortions int    `yaml:"available_portions"`
	CookingDate       string `yaml:"cooking_date"`
	PickupLocation    string `yaml:"pickup_location"`
	Notes             string `yaml:"notes,omitempty"`
}

type sharedDoc struct {
	ID       string   `yaml:"id"`
	Recipe   string   `yaml:"recipe"`
	SharedBy string   `yaml:"shared_by"`
	SharedAt string   `yaml:"shared_at"`
	Notes    string   `yaml:"notes,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
}

type pantryDoc struct {
	User      string  `yaml:"user"`
	Name      string  `yaml:"name"`
	Amount    float64 `yaml:"amount"`
	Unit      string  `yaml:"unit"`
	Category  string  `yaml:"category"`
	ExpiresAt string  `yaml:"expires_at,omitempty"`
	Location  string  `yaml:"location,omitempty"`
}

type shoppingDoc struct {
	User      string  `yaml:"user"`
	Name      string  `yaml:"name"`
	Amount    float64 `yaml:"amount"`
	Unit      string  `yaml:"unit"`
	Purchased bool    `yaml:"purchased,omitempty"`
	Recipe    string  `yaml:"recipe,omitempty"`
}

type plannedMealDoc struct {
	User     string `yaml:"user"`
	Recipe   string `yaml:"recipe"`
	Date     string `yaml:"date"`
	MealType string `yaml:"meal_type"`
	Source   string `yaml:"source"`
	Exchange string `yaml:"exchange,omitempty"`
	Servings int    `yaml:"servings,omitempty"`
}

// Data is a validated catalog ready to be applied.
type Data struct {
	CurrentUser uuid.UUID
	Users       []model.User
	Recipes     []model.Recipe
	Exchanges   []model.AvailableMealExchange
	Shared      []model.SharedRecipe
	Pantry      []model.PantryItem
	Shopping    []model.ShoppingListItem
	Planned     []model.PlannedMeal
}

// Load decodes and validates the embedded catalog.
func Load() (*Data, error) {
	return Parse(catalogYAML)
}

// Parse decodes and validates a catalog document.
func Parse(raw []byte) (*Data, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	b := builder{
		users:     make(map[uuid.UUID]struct{}),
		recipes:   make(map[uuid.UUID]model.Recipe),
		exchanges: make(map[uuid.UUID]struct{}),
		lines:     make(map[uuid.UUID]map[string]struct{}),
	}
	return b.build(doc)
}

type builder struct {
	users     map[uuid.UUID]struct{}
	recipes   map[uuid.UUID]model.Recipe
	exchanges map[uuid.UUID]struct{}
	lines     map[uuid.UUID]map[string]struct{} // folded shopping keys per user
}

func (b *builder) build(doc document) (*Data, error) {
	d := &Data{}
	for i, u := range doc.Users {
		m, err := b.user(u)
		if err != nil {
			return nil, fmt.Errorf("users[%d]: %w", i, err)
		}
		d.Users = append(d.Users, m)
	}
	for i, r := range doc.Recipes {
		m, err := b.recipe(r)
		if err != nil {
			return nil, fmt.Errorf("recipes[%d]: %w", i, err)
		}
		d.Recipes = append(d.Recipes, m)
	}
	for i, e := range doc.Exchanges {
		m, err := b.exchange(e)
		if err != nil {
			return nil, fmt.Errorf("exchanges[%d]: %w", i, err)
		}
		d.Exchanges = append(d.Exchanges, m)
	}
	for i, s := range doc.Shared {
		m, err := b.shared(s)
		if err != nil {
			return nil, fmt.Errorf("shared_recipes[%d]: %w", i, err)
		}
		d.Shared = append(d.Shared, m)
	}
	for i, p := range doc.Pantry {
		m, err := b.pantry(i, p)
		if err != nil {
			return nil, fmt.Errorf("pantry[%d]: %w", i, err)
		}
		d.Pantry = append(d.Pantry, m)
	}
	for i, s := range doc.Shopping {
		m, err := b.shopping(i, s)
		if err != nil {
			return nil, fmt.Errorf("shopping_list[%d]: %w", i, err)
		}
		d.Shopping = append(d.Shopping, m)
	}
	for i, p := range doc.Planned {
		m, err := b.planned(i, p)
		if err != nil {
			return nil, fmt.Errorf("planned_meals[%d]: %w", i, err)
		}
		d.Planned = append(d.Planned, m)
	}
	if doc.CurrentUser != "" {
		id, err := b.userRef(doc.CurrentUser)
		if err != nil {
			return nil, fmt.Errorf("current_user: %w", err)
		}
		d.CurrentUser = id
	}
	return d, nil
}

func (b *builder) user(u userDoc) (model.User, error) {
	id, err := parseID(u.ID)
	if err != nil {
		return model.User{}, err
	}
	if _, dup := b.users[id]; dup {
		return model.User{}, bad("duplicate user %s", id)
	}
	if strings.TrimSpace(u.Name) == "" {
		return model.User{}, bad("empty name")
	}
	if err := checkTags(u.DietaryPreferences, model.IsDietaryPreference); err != nil {
		return model.User{}, err
	}
	if err := checkTags(u.CookingSpecialties, model.IsCookingSpecialty); err != nil {
		return model.User{}, err
	}
	joined, err := parseTime(u.JoinedAt)
	if err != nil {
		return model.User{}, err
	}
	b.users[id] = struct{}{}
	return model.User{
		ID:                 id,
		Name:               u.Name,
		Email:              u.Email,
		Bio:                u.Bio,
		Location:           model.Location{Lat: u.Location.Lat, Lng: u.Location.Lng, Address: u.Location.Address},
		DietaryPreferences: u.DietaryPreferences,
		CookingSpecialties: u.CookingSpecialties,
		Rating:             u.Rating,
		ExchangeCount:      u.ExchangeCount,
		JoinedAt:           joined,
	}, nil
}

func (b *builder) recipe(r recipeDoc) (model.Recipe, error) {
	id, err := parseID(r.ID)
	if err != nil {
		return model.Recipe{}, err
	}
	if _, dup := b.recipes[id]; dup {
		return model.Recipe{}, bad("duplicate recipe %s", id)
	}
	author, err := b.userRef(r.Author)
	if err != nil {
		return model.Recipe{}, err
	}
	if strings.TrimSpace(r.Title) == "" {
		return model.Recipe{}, bad("empty title")
	}
	if r.Servings <= 0 {
		return model.Recipe{}, bad("servings %d", r.Servings)
	}
	if err := checkTags(r.DietaryTags, model.IsDietaryPreference); err != nil {
		return model.Recipe{}, err
	}
	for _, in := range r.Ingredients {
		if strings.TrimSpace(in.Name) == "" || in.Amount < 0 {
			return model.Recipe{}, bad("ingredient %q amount %v", in.Name, in.Amount)
		}
	}
	prep, err := parseDuration(r.PrepTime)
	if err != nil {
		return model.Recipe{}, err
	}
	cook, err := parseDuration(r.CookTime)
	if err != nil {
		return model.Recipe{}, err
	}
	m := model.Recipe{
		ID:           id,
		AuthorID:     author,
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		PrepTime:     prep,
		CookTime:     cook,
		Servings:     r.Servings,
		DietaryTags:  r.DietaryTags,
		Nutrition:    r.Nutrition,
	}
	b.recipes[id] = m
	return m, nil
}

func (b *builder) exchange(e exchangeDoc) (model.AvailableMealExchange, error) {
	id, err := parseID(e.ID)
	if err != nil {
		return model.AvailableMealExchange{}, err
	}
	if _, dup := b.exchanges[id]; dup {
		return model.AvailableMealExchange{}, bad("duplicate exchange %s", id)
	}
	cook, err := b.userRef(e.Cook)
	if err != nil {
		return model.AvailableMealExchange{}, err
	}
	recipe, err := b.recipeRef(e.Recipe)
	if err != nil {
		return model.AvailableMealExchange{}, err
	}
	if e.TotalPortions < 0 || e.AvailablePortions < 0 || e.AvailablePortions > e.TotalPortions {
		return model.AvailableMealExchange{}, bad("portions %d/%d", e.AvailablePortions, e.TotalPortions)
	}
	date, err := parseTime(e.CookingDate)
	if err != nil {
		return model.AvailableMealExchange{}, err
	}
	b.exchanges[id] = struct{}{}
	return model.AvailableMealExchange{
		ID:                id,
		CookID:            cook,
		RecipeID:          recipe.ID,
		TotalPortions:     e.TotalPortions,
		AvailablePortions: e.AvailablePortions,
		CookingDate:       date,
		PickupLocation:    e.PickupLocation,
		Notes:             e.Notes,
	}, nil
}

func (b *builder) shared(s sharedDoc) (model.SharedRecipe, error) {
	id, err := parseID(s.ID)
	if err != nil {
		return model.SharedRecipe{}, err
	}
	recipe, err := b.recipeRef(s.Recipe)
	if err != nil {
		return model.SharedRecipe{}, err
	}
	by, err := b.userRef(s.SharedBy)
	if err != nil {
		return model.SharedRecipe{}, err
	}
	at, err := parseTime(s.SharedAt)
	if err != nil {
		return model.SharedRecipe{}, err
	}
	return model.SharedRecipe{ID: id, Recipe: recipe.Clone(), SharedBy: by, SharedAt: at, Notes: s.Notes, Tags: s.Tags}, nil
}

func (b *builder) pantry(i int, p pantryDoc) (model.PantryItem, error) {
	user, err := b.userRef(p.User)
	if err != nil {
		return model.PantryItem{}, err
	}
	if strings.TrimSpace(p.Name) == "" || !(p.Amount > 0) {
		return model.PantryItem{}, bad("item %q amount %v", p.Name, p.Amount)
	}
	cat := model.PantryCategory(p.Category)
	if cat == "" {
		cat = model.CategoryOther
	}
	if !cat.Valid() {
		return model.PantryItem{}, bad("category %q", p.Category)
	}
	it := model.PantryItem{
		ID:       derivedID("pantry", user, i),
		UserID:   user,
		Name:     p.Name,
		Amount:   p.Amount,
		Unit:     p.Unit,
		Category: cat,
		Location: p.Location,
	}
	if p.ExpiresAt != "" {
		exp, err := parseTime(p.ExpiresAt)
		if err != nil {
			return model.PantryItem{}, err
		}
		it.ExpiresAt = &exp
	}
	return it, nil
}

func (b *builder) shopping(i int, s shoppingDoc) (model.ShoppingListItem, error) {
	user, err := b.userRef(s.User)
	if err != nil {
		return model.ShoppingListItem{}, err
	}
	if strings.TrimSpace(s.Name) == "" || s.Amount < 0 {
		return model.ShoppingListItem{}, bad("item %q amount %v", s.Name, s.Amount)
	}
	key := textkey.Pair(s.Name, s.Unit)
	seen := b.lines[user]
	if seen == nil {
		seen = make(map[string]struct{})
		b.lines[user] = seen
	}
	if _, dup := seen[key]; dup {
		return model.ShoppingListItem{}, bad("duplicate shopping item %q %q", s.Name, s.Unit)
	}
	seen[key] = struct{}{}
	it := model.ShoppingListItem{
		ID:        derivedID("shopping", user, i),
		UserID:    user,
		Name:      s.Name,
		Amount:    s.Amount,
		Unit:      s.Unit,
		Purchased: s.Purchased,
	}
	if s.Recipe != "" {
		r, err := b.recipeRef(s.Recipe)
		if err != nil {
			return model.ShoppingListItem{}, err
		}
		it.RecipeID = &r.ID
	}
	return it, nil
}

func (b *builder) planned(i int, p plannedMealDoc) (model.PlannedMeal, error) {
	user, err := b.userRef(p.User)
	if err != nil {
		return model.PlannedMeal{}, err
	}
	recipe, err := b.recipeRef(p.Recipe)
	if err != nil {
		return model.PlannedMeal{}, err
	}
	date, err := time.Parse(time.DateOnly, p.Date)
	if err != nil {
		return model.PlannedMeal{}, bad("date %q", p.Date)
	}
	mt, src := model.MealType(p.MealType), model.MealSource(p.Source)
	if !mt.Valid() || !src.Valid() {
		return model.PlannedMeal{}, bad("meal type %q source %q", p.MealType, p.Source)
	}
	m := model.PlannedMeal{
		ID:            derivedID("planned", user, i),
		UserID:        user,
		RecipeID:      recipe.ID,
		ScheduledDate: model.Day(date),
		MealType:      mt,
		Source:        src,
		Servings:      p.Servings,
	}
	if (src == model.SourceExchange) != (p.Exchange != "") {
		return model.PlannedMeal{}, bad("source %q with exchange %q", p.Source, p.Exchange)
	}
	if p.Exchange != "" {
		ex, err := parseID(p.Exchange)
		if err != nil {
			return model.PlannedMeal{}, err
		}
		if _, ok := b.exchanges[ex]; !ok {
			return model.PlannedMeal{}, bad("unknown exchange %s", ex)
		}
		m.ExchangeID = &ex
	}
	return m, nil
}

func (b *builder) userRef(s string) (uuid.UUID, error) {
	id, err := parseID(s)
	if err != nil {
		return uuid.Nil, err
	}
	if _, ok := b.users[id]; !ok {
		return uuid.Nil, bad("unknown user %s", id)
	}
	return id, nil
}

func (b *builder) recipeRef(s string) (model.Recipe, error) {
	id, err := parseID(s)
	if err != nil {
		return model.Recipe{}, err
	}
	r, ok := b.recipes[id]
	if !ok {
		return model.Recipe{}, bad("unknown recipe %s", id)
	}
	return r, nil
}

func bad(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, errs.ErrInvalidInput)...)
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.FromString(s)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, bad("id %q", s)
	}
	return id, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, bad("time %q", s)
	}
	return t.UTC(), nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, bad("duration %q", s)
	}
	return d, nil
}

func checkTags(tags []string, known func(string) bool) error {
	for _, t := range tags {
		if !known(t) {
			return bad("unknown tag %q", t)
		}
	}
	return nil
}

func derivedID(kind string, user uuid.UUID, i int) uuid.UUID {
	return uuid.NewV5(namespace, fmt.Sprintf("%s/%s/%d", kind, user, i))
}

// Apply inserts d into the stores. Each store is filled by its own goroutine; the
// first failure cancels the rest.
func Apply(ctx context.Context, st *memory.Stores, d *Data) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for _, u := range d.Users {
			if err := st.Users.Create(ctx, u); err != nil {
				return fmt.Errorf("seed user %s: %w", u.ID, err)
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, r := range d.Recipes {
			if err := st.Recipes.Create(ctx, r); err != nil {
				return fmt.Errorf("seed recipe %s: %w", r.ID, err)
			}
		}
		for _, s := range d.Shared {
			if err := st.Recipes.Share(ctx, s); err != nil {
				return fmt.Errorf("seed shared recipe %s: %w", s.ID, err)
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, e := range d.Exchanges {
			if err := st.Exchanges.Create(ctx, e); err != nil {
				return fmt.Errorf("seed exchange %s: %w", e.ID, err)
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, m := range d.Planned {
			if err := st.Planned.Append(ctx, m); err != nil {
				return fmt.Errorf("seed planned meal %s: %w", m.ID, err)
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, it := range d.Pantry {
			if err := st.Pantry.Add(ctx, it); err != nil {
				return fmt.Errorf("seed pantry item %s: %w", it.ID, err)
			}
		}
		return nil
	})
	g.Go(func() error {
		byUser := make(map[uuid.UUID][]model.ShoppingListItem)
		var order []uuid.UUID
		for _, it := range d.Shopping {
			if _, ok := byUser[it.UserID]; !ok {
				order = append(order, it.UserID)
			}
			byUser[it.UserID] = append(byUser[it.UserID], it)
		}
		for _, user := range order {
			items := byUser[user]
			_, err := st.Shopping.Update(ctx, user, func(list []model.ShoppingListItem) ([]model.ShoppingListItem, error) {
				return append(list, items...), nil
			})
			if err != nil {
				return fmt.Errorf("seed shopping list of %s: %w", user, err)
			}
		}
		return nil
	})
	return g.Wait()
}
