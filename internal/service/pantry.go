package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/prpercival/meal-share/internal/model"
	"github.com/prpercival/meal-share/internal/repository"
)

// PantryService defines operations over a user's pantry.
type PantryService interface {
	// Add stores a new pantry item.
	Add(ctx context.Context, userID uuid.UUID, in PantryInput) (model.PantryItem, error)
	// Remove deletes a pantry item.
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
	// List returns the user's pantry.
	List(ctx context.Context, userID uuid.UUID) ([]model.PantryItem, error)
	// Expiring returns items that expire within the window and have not expired yet.
	Expiring(ctx context.Context, userID uuid.UUID, within time.Duration) ([]model.PantryItem, error)
	// Expired returns items past their expiration date.
	Expired(ctx context.Context, userID uuid.UUID) ([]model.PantryItem, error)
}

// PantryInput is the pantry form.
type PantryInput struct {
	Name      string
	Amount    float64
	Unit      string
	Category  model.PantryCategory // defaults to other
	ExpiresAt *time.Time
	Location  string
}

type PantryServiceImpl struct {
	base
	repo repository.PantryRepository
}

// NewPantryService constructs PantryService.
func NewPantryService(repo repository.PantryRepository, log *zap.Logger) *PantryServiceImpl {
	return &PantryServiceImpl{base: newBase(log, "pantry"), repo: repo}
}

// Add validates the form and stores the item.
// Validation rules:
// - name not blank
// - amount > 0 and finite
// - category empty or one of model.PantryCategories
func (s *PantryServiceImpl) Add(ctx context.Context, userID uuid.UUID, in PantryInput) (model.PantryItem, error) {
	if err := requireUser(userID); err != nil {
		return model.PantryItem{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.PantryItem{}, invalid("empty pantry item name")
	}
	if !(in.Amount > 0) || math.IsInf(in.Amount, 0) {
		return model.PantryItem{}, invalid("pantry item amount %v", in.Amount)
	}
	cat := in.Category
	if cat == "" {
		cat = model.CategoryOther
	}
	if !cat.Valid() {
		return model.PantryItem{}, invalid("pantry category %q", in.Category)
	}
	id, err := s.newID()
	if err != nil {
		return model.PantryItem{}, err
	}
	it := model.PantryItem{
		ID:        id,
		UserID:    userID,
		Name:      name,
		Amount:    in.Amount,
		Unit:      strings.TrimSpace(in.Unit),
		Category:  cat,
		ExpiresAt: in.ExpiresAt,
		Location:  strings.TrimSpace(in.Location),
		AddedAt:   s.now(),
	}
	it = it.Clone()
	if err := s.repo.Add(ctx, it); err != nil {
		return model.PantryItem{}, err
	}
	s.log.Info("pantry item added", zap.Stringer("user", userID), zap.Stringer("item", it.ID), zap.String("name", it.Name))
	return it, nil
}

// Remove deletes a pantry item.
func (s *PantryServiceImpl) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, userID, itemID); err != nil {
		return err
	}
	s.log.Info("pantry item removed", zap.Stringer("user", userID), zap.Stringer("item", itemID))
	return nil
}

// List returns the user's pantry in insertion order.
func (s *PantryServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]model.PantryItem, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// Expiring returns items with now < ExpiresAt <= now+within, soonest first.
func (s *PantryServiceImpl) Expiring(ctx context.Context, userID uuid.UUID, within time.Duration) ([]model.PantryItem, error) {
	if within < 0 {
		return nil, invalid("negative window %s", within)
	}
	now := s.now()
	limit := now.Add(within)
	return s.filterByExpiry(ctx, userID, func(exp time.Time) bool {
		return exp.After(now) && !exp.After(limit)
	})
}

// Expired returns items with ExpiresAt <= now, soonest first.
func (s *PantryServiceImpl) Expired(ctx context.Context, userID uuid.UUID) ([]model.PantryItem, error) {
	now := s.now()
	return s.filterByExpiry(ctx, userID, func(exp time.Time) bool { return !exp.After(now) })
}

func (s *PantryServiceImpl) filterByExpiry(ctx context.Context, userID uuid.UUID, keep func(time.Time) bool) ([]model.PantryItem, error) {
	items, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, it := range items {
		if it.ExpiresAt != nil && keep(*it.ExpiresAt) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExpiresAt.Before(*out[j].ExpiresAt) })
	return out, nil
}
