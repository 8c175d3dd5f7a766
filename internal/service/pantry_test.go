package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap/zaptest"

	"github.com/prpercival/meal-share/internal/errs"
	"github.com/prpercival/meal-share/internal/model"
	"github.com/prpercival/meal-share/internal/repository/memory"
)

func TestPantryService_Add_Validation(t *testing.T) {
	ctx := context.Background()
	s := NewPantryService(memory.NewPantryRepo(), zaptest.NewLogger(t))
	user := uuid.Must(uuid.NewV4())

	cases := []struct {
		name string
		in   PantryInput
	}{
		{"empty name", PantryInput{Name: " ", Amount: 1}},
		{"zero amount", PantryInput{Name: "Rice", Amount: 0}},
		{"negative amount", PantryInput{Name: "Rice", Amount: -2}},
		{"unknown category", PantryInput{Name: "Rice", Amount: 1, Category: "cellar"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Add(ctx, user, tc.in); !errors.Is(err, errs.ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		})
	}

	it, err := s.Add(ctx, user, PantryInput{Name: " Basmati rice ", Amount: 2, Unit: "kg", Location: "pantry shelf"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if it.Name != "Basmati rice" || it.Category != model.CategoryOther || it.UserID != user {
		t.Fatalf("unexpected item: %+v", it)
	}
}

func TestPantryService_RemoveAndList(t *testing.T) {
	ctx := context.Background()
	s := NewPantryService(memory.NewPantryRepo(), zaptest.NewLogger(t))
	user := uuid.Must(uuid.NewV4())

	a, _ := s.Add(ctx, user, PantryInput{Name: "Milk", Amount: 1, Unit: "l", Category: model.CategoryDairy})
	b, _ := s.Add(ctx, user, PantryInput{Name: "Cumin", Amount: 50, Unit: "g", Category: model.CategorySpices})

	if err := s.Remove(ctx, user, a.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, user, a.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	list, _ := s.List(ctx, user)
	if len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("unexpected list: %+v", list)
	}
	other, _ := s.List(ctx, uuid.Must(uuid.NewV4()))
	if len(other) != 0 {
		t.Fatalf("pantries must be per user, got %+v", other)
	}
}

func TestPantryService_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewPantryService(memory.NewPantryRepo(), zaptest.NewLogger(t))
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	user := uuid.Must(uuid.NewV4())

	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}
	add := func(name string, exp *time.Time) {
		t.Helper()
		if _, err := s.Add(ctx, user, PantryInput{Name: name, Amount: 1, ExpiresAt: exp}); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	add("yogurt", at(48*time.Hour))
	add("spinach", at(12*time.Hour))
	add("old bread", at(-time.Hour))
	add("honey", nil)
	add("cheese", at(10*24*time.Hour))

	soon, err := s.Expiring(ctx, user, 72*time.Hour)
	if err != nil {
		t.Fatalf("expiring: %v", err)
	}
	if len(soon) != 2 || soon[0].Name != "spinach" || soon[1].Name != "yogurt" {
		t.Fatalf("expiring: %+v", soon)
	}
	gone, _ := s.Expired(ctx, user)
	if len(gone) != 1 || gone[0].Name != "old bread" {
		t.Fatalf("expired: %+v", gone)
	}
	if _, err := s.Expiring(ctx, user, -time.Hour); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}
