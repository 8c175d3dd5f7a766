package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/prpercival/meal-share/internal/errs"
	"github.com/prpercival/meal-share/internal/model"
	"github.com/prpercival/meal-share/internal/repository"
)

// ExchangeService defines operations over the exchange ledger.
type ExchangeService interface {
	// List returns every exchange, sold out or not.
	List(ctx context.Context) ([]model.AvailableMealExchange, error)
	// ListOpen returns exchanges with portions left.
	ListOpen(ctx context.Context) ([]model.AvailableMealExchange, error)
	// Get returns a single exchange.
	Get(ctx context.Context, id uuid.UUID) (model.AvailableMealExchange, error)
	// Offer publishes a new exchange cooked by cookID.
	Offer(ctx context.Context, cookID uuid.UUID, in OfferInput) (model.AvailableMealExchange, error)
	// Claim reserves one portion for userID and plans it as dinner on the cooking date.
	Claim(ctx context.Context, userID, exchangeID uuid.UUID) (ClaimResult, error)
	// IsAlreadyClaimed reports whether userID has a planned meal from the exchange.
	IsAlreadyClaimed(ctx context.Context, userID, exchangeID uuid.UUID) (bool, error)
}

// OfferInput describes a new exchange.
type OfferInput struct {
	RecipeID       uuid.UUID
	Portions       int
	CookingDate    time.Time
	PickupLocation string
	Notes          string
}

// ClaimResult is the state after a successful claim.
type ClaimResult struct {
	Exchange    model.AvailableMealExchange
	PlannedMeal model.PlannedMeal
}

type ExchangeServiceImpl struct {
	base
	exchanges   repository.ExchangeRepository
	planned     repository.PlannedMealRepository
	recipes     repository.RecipeRepository
	users       repository.UserRepository
	allowRepeat bool
	claimLocks  keyedMutex
}

// NewExchangeService constructs ExchangeService. With allowRepeat false a user can hold
// at most one planned meal per exchange.
func NewExchangeService(
	exchanges repository.ExchangeRepository,
	planned repository.PlannedMealRepository,
	recipes repository.RecipeRepository,
	users repository.UserRepository,
	allowRepeat bool,
	log *zap.Logger,
) *ExchangeServiceImpl {
	return &ExchangeServiceImpl{
		base:        newBase(log, "exchange"),
		exchanges:   exchanges,
		planned:     planned,
		recipes:     recipes,
		users:       users,
		allowRepeat: allowRepeat,
	}
}

// List returns snapshot copies of all exchanges.
func (s *ExchangeServiceImpl) List(ctx context.Context) ([]model.AvailableMealExchange, error) {
	return s.exchanges.List(ctx)
}

// ListOpen filters List down to exchanges that can still be claimed.
func (s *ExchangeServiceImpl) ListOpen(ctx context.Context) ([]model.AvailableMealExchange, error) {
	all, err := s.exchanges.List(ctx)
	if err != nil {
		return nil, err
	}
	open := all[:0]
	for _, e := range all {
		if !e.SoldOut() {
			open = append(open, e)
		}
	}
	return open, nil
}

// Get returns one exchange.
func (s *ExchangeServiceImpl) Get(ctx context.Context, id uuid.UUID) (model.AvailableMealExchange, error) {
	if id == uuid.Nil {
		return model.AvailableMealExchange{}, invalid("empty exchange id")
	}
	return s.exchanges.GetByID(ctx, id)
}

// Offer validates the offer and stores it with every portion available.
func (s *ExchangeServiceImpl) Offer(ctx context.Context, cookID uuid.UUID, in OfferInput) (model.AvailableMealExchange, error) {
	if err := requireUser(cookID); err != nil {
		return model.AvailableMealExchange{}, err
	}
	if in.Portions <= 0 {
		return model.AvailableMealExchange{}, invalid("portions must be positive, got %d", in.Portions)
	}
	if in.CookingDate.IsZero() {
		return model.AvailableMealExchange{}, invalid("empty cooking date")
	}
	if _, err := s.users.GetByID(ctx, cookID); err != nil {
		return model.AvailableMealExchange{}, err
	}
	if _, err := s.recipes.GetByID(ctx, in.RecipeID); err != nil {
		return model.AvailableMealExchange{}, err
	}
	id, err := s.newID()
	if err != nil {
		return model.AvailableMealExchange{}, err
	}
	e := model.AvailableMealExchange{
		ID:                id,
		CookID:            cookID,
		RecipeID:          in.RecipeID,
		TotalPortions:     in.Portions,
		AvailablePortions: in.Portions,
		CookingDate:       in.CookingDate,
		PickupLocation:    strings.TrimSpace(in.PickupLocation),
		Notes:             strings.TrimSpace(in.Notes),
		CreatedAt:         s.now(),
	}
	if err := s.exchanges.Create(ctx, e); err != nil {
		return model.AvailableMealExchange{}, err
	}
	s.log.Info("exchange offered",
		zap.Stringer("exchange", e.ID),
		zap.Stringer("cook", cookID),
		zap.Int("portions", e.TotalPortions),
	)
	return e, nil
}

// Claim takes one portion and appends the matching planned meal. On any failure the
// ledger and the planned-meal store are left as they were.
func (s *ExchangeServiceImpl) Claim(ctx context.Context, userID, exchangeID uuid.UUID) (ClaimResult, error) {
	if err := requireUser(userID); err != nil {
		return ClaimResult{}, err
	}
	if exchangeID == uuid.Nil {
		return ClaimResult{}, invalid("empty exchange id")
	}

	if !s.allowRepeat {
		unlock := s.claimLocks.lock(userID)
		defer unlock()
		claimed, err := s.planned.HasExchange(ctx, userID, exchangeID)
		if err != nil {
			return ClaimResult{}, err
		}
		if claimed {
			s.log.Info("claim rejected", zap.Stringer("exchange", exchangeID), zap.Stringer("user", userID), zap.Error(errs.ErrAlreadyClaimed))
			return ClaimResult{}, errs.ErrAlreadyClaimed
		}
	}

	mealID, err := s.newID()
	if err != nil {
		return ClaimResult{}, err
	}

	ex, err := s.exchanges.TakePortion(ctx, exchangeID)
	if err != nil {
		if errors.Is(err, errs.ErrSoldOut) || errors.Is(err, errs.ErrNotFound) {
			s.log.Info("claim rejected", zap.Stringer("exchange", exchangeID), zap.Stringer("user", userID), zap.Error(err))
		}
		return ClaimResult{}, err
	}

	exID := ex.ID
	meal := model.PlannedMeal{
		ID:            mealID,
		UserID:        userID,
		RecipeID:      ex.RecipeID,
		ScheduledDate: model.Day(ex.CookingDate),
		MealType:      model.MealDinner,
		Source:        model.SourceExchange,
		ExchangeID:    &exID,
		CreatedAt:     s.now(),
	}
	if err := s.planned.Append(ctx, meal); err != nil {
		if _, rerr := s.exchanges.ReturnPortion(ctx, exchangeID); rerr != nil {
			s.log.Error("return portion after failed claim", zap.Stringer("exchange", exchangeID), zap.Error(rerr))
		}
		return ClaimResult{}, err
	}

	s.log.Info("portion claimed",
		zap.Stringer("exchange", ex.ID),
		zap.Stringer("user", userID),
		zap.Int("available", ex.AvailablePortions),
	)
	return ClaimResult{Exchange: ex, PlannedMeal: meal}, nil
}

// IsAlreadyClaimed scans the user's planned meals for the exchange. Read-only.
func (s *ExchangeServiceImpl) IsAlreadyClaimed(ctx context.Context, userID, exchangeID uuid.UUID) (bool, error) {
	if err := requireUser(userID); err != nil {
		return false, err
	}
	return s.planned.HasExchange(ctx, userID, exchangeID)
}
