// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/prpercival/meal-share/internal/model"
)

// UserRepository provides access to member profiles.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u model.User) error
	// GetByID loads a copy of a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	// List returns copies of all users.
	List(ctx context.Context) ([]model.User, error)
	// Save replaces the stored profile with u.
	Save(ctx context.Context, u model.User) error
}
