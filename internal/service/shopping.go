package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/prpercival/meal-share/internal/errs"
	"github.com/prpercival/meal-share/internal/matcher"
	"github.com/prpercival/meal-share/internal/model"
	"github.com/prpercival/meal-share/internal/repository"
	"github.com/prpercival/meal-share/internal/textkey"
)

// ShoppingService defines operations over a user's shopping list.
type ShoppingService interface {
	// List returns the user's shopping list.
	List(ctx context.Context, userID uuid.UUID) ([]model.ShoppingListItem, error)
	// AddIngredients merges items into the list keyed by case-insensitive (name, unit).
	// recipeID may be uuid.Nil.
	AddIngredients(ctx context.Context, userID uuid.UUID, items []model.IngredientLine, recipeID uuid.UUID) ([]model.ShoppingListItem, error)
	// SetPurchased sets the purchased flag of one item.
	SetPurchased(ctx context.Context, userID, itemID uuid.UUID, purchased bool) (model.ShoppingListItem, error)
	// TogglePurchased flips the purchased flag of one item.
	TogglePurchased(ctx context.Context, userID, itemID uuid.UUID) (model.ShoppingListItem, error)
	// Remove deletes one item.
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	// ClearPurchased deletes all purchased items and returns how many were removed.
	ClearPurchased(ctx context.Context, userID uuid.UUID) (int, error)
	// CheckPantryAvailability looks an ingredient up in the user's pantry without changing it.
	CheckPantryAvailability(ctx context.Context, userID uuid.UUID, name string, required float64, unit string) (model.PantryAvailability, error)
	// AutoMarkPantryItems marks every unpurchased item covered by the pantry as purchased.
	AutoMarkPantryItems(ctx context.Context, userID uuid.UUID) (int, error)
}

type ShoppingServiceImpl struct {
	base
	lists  repository.ShoppingListRepository
	pantry repository.PantryRepository
	names  matcher.IngredientMatcher
	units  matcher.UnitPolicy
}

// NewShoppingService constructs ShoppingService. Nil strategies fall back to
// substring name matching and the whitelist unit policy.
func NewShoppingService(
	lists repository.ShoppingListRepository,
	pantry repository.PantryRepository,
	names matcher.IngredientMatcher,
	units matcher.UnitPolicy,
	log *zap.Logger,
) *ShoppingServiceImpl {
	if names == nil {
		names = matcher.Substring{}
	}
	if units == nil {
		units = matcher.Whitelist{}
	}
	return &ShoppingServiceImpl{base: newBase(log, "shopping"), lists: lists, pantry: pantry, names: names, units: units}
}

// List returns the user's shopping list.
func (s *ShoppingServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.ShoppingListItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.lists.ListByUser(ctx, userID)
}

// AddIngredients validates the whole batch, then merges it in one critical section.
// A matching entry grows by the incoming amount; units are not converted.
func (s *ShoppingServiceImpl) AddIngredients(ctx context.Context, userID uuid.UUID, items []model.IngredientLine, recipeID uuid.UUID) ([]model.ShoppingListItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := validateLines(items); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return s.lists.ListByUser(ctx, userID)
	}

	var added, merged int
	out, err := s.lists.Update(ctx, userID, func(list []model.ShoppingListItem) ([]model.ShoppingListItem, error) {
		index := make(map[string]int, len(list))
		for i, it := range list {
			index[textkey.Pair(it.Name, it.Unit)] = i
		}
		for _, in := range items {
			key := textkey.Pair(in.Name, in.Unit)
			if i, ok := index[key]; ok {
				list[i].Amount += in.Amount
				merged++
				continue
			}
			id, err := s.newID()
			if err != nil {
				return nil, err
			}
			it := model.ShoppingListItem{
				ID:      id,
				UserID:  userID,
				Name:    strings.TrimSpace(in.Name),
				Amount:  in.Amount,
				Unit:    strings.TrimSpace(in.Unit),
				AddedAt: s.now(),
			}
			if recipeID != uuid.Nil {
				rid := recipeID
				it.RecipeID = &rid
			}
			index[key] = len(list)
			list = append(list, it)
			added++
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("ingredients added",
		zap.Stringer("user", userID),
		zap.Int("added", added),
		zap.Int("merged", merged),
	)
	return out, nil
}

// SetPurchased sets the purchased flag of one item.
func (s *ShoppingServiceImpl) SetPurchased(ctx context.Context, userID, itemID uuid.UUID, purchased bool) (model.ShoppingListItem, error) {
	return s.updateItem(ctx, userID, itemID, func(it *model.ShoppingListItem) { it.Purchased = purchased })
}

// TogglePurchased flips the purchased flag of one item.
func (s *ShoppingServiceImpl) TogglePurchased(ctx context.Context, userID, itemID uuid.UUID) (model.ShoppingListItem, error) {
	return s.updateItem(ctx, userID, itemID, func(it *model.ShoppingListItem) { it.Purchased = !it.Purchased })
}

func (s *ShoppingServiceImpl) updateItem(ctx context.Context, userID, itemID uuid.UUID, fn func(*model.ShoppingListItem)) (model.ShoppingListItem, error) {
	if err := requireUser(userID); err != nil {
		return model.ShoppingListItem{}, err
	}
	var got model.ShoppingListItem
	_, err := s.lists.Update(ctx, userID, func(list []model.ShoppingListItem) ([]model.ShoppingListItem, error) {
		for i := range list {
			if list[i].ID == itemID {
				fn(&list[i])
				got = list[i].Clone()
				return list, nil
			}
		}
		return nil, fmt.Errorf("shopping item %s: %w", itemID, errs.ErrNotFound)
	})
	if err != nil {
		return model.ShoppingListItem{}, err
	}
	return got, nil
}

// Remove deletes one item.
func (s *ShoppingServiceImpl) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	_, err := s.lists.Update(ctx, userID, func(list []model.ShoppingListItem) ([]model.ShoppingListItem, error) {
		for i := range list {
			if list[i].ID == itemID {
				return append(list[:i], list[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("shopping item %s: %w", itemID, errs.ErrNotFound)
	})
	return err
}

// ClearPurchased deletes all purchased items.
func (s *ShoppingServiceImpl) ClearPurchased(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	var removed int
	_, err := s.lists.Update(ctx, userID, func(list []model.ShoppingListItem) ([]model.ShoppingListItem, error) {
		kept := list[:0]
		for _, it := range list {
			if it.Purchased {
				removed++
				continue
			}
			kept = append(kept, it)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// CheckPantryAvailability reports whether the pantry covers required units of name.
func (s *ShoppingServiceImpl) CheckPantryAvailability(ctx context.Context, userID uuid.UUID, name string, required float64, unit string) (model.PantryAvailability, error) {
	if err := requireUser(userID); err != nil {
		return model.PantryAvailability{}, err
	}
	if strings.TrimSpace(name) == "" {
		return model.PantryAvailability{}, invalid("empty ingredient name")
	}
	pantry, err := s.pantry.ListByUser(ctx, userID)
	if err != nil {
		return model.PantryAvailability{}, err
	}
	return matcher.Check(s.names, s.units, pantry, name, required, unit), nil
}

// AutoMarkPantryItems marks unpurchased items the pantry can cover. The pantry is not
// depleted, so one pantry item may cover several list entries.
func (s *ShoppingServiceImpl) AutoMarkPantryItems(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	pantry, err := s.pantry.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	var marked int
	_, err = s.lists.Update(ctx, userID, func(list []model.ShoppingListItem) ([]model.ShoppingListItem, error) {
		for i := range list {
			if list[i].Purchased {
				continue
			}
			if matcher.Check(s.names, s.units, pantry, list[i].Name, list[i].Amount, list[i].Unit).Available {
				list[i].Purchased = true
				marked++
			}
		}
		return list, nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("pantry items marked", zap.Stringer("user", userID), zap.Int("marked", marked))
	return marked, nil
}

// validateLines rejects blank names and negative or non-finite amounts.
func validateLines(items []model.IngredientLine) error {
	for i, in := range items {
		if strings.TrimSpace(in.Name) == "" {
			return invalid("item[%d] empty name", i)
		}
		if in.Amount < 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
			return invalid("item[%d] amount %v", i, in.Amount)
		}
	}
	return nil
}
