// Package session carries the acting user through a context.
package session

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/prpercival/meal-share/internal/errs"
)

type ctxKey string

const userIDKey ctxKey = "mealshare.userID"

// WithUserID stores the acting user ID in context.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromCtx fetches the acting user ID from context.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	v := ctx.Value(userIDKey)
	if v == nil {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// RequireUser is UserIDFromCtx returning errs.ErrNoSession on a miss.
func RequireUser(ctx context.Context) (uuid.UUID, error) {
	id, ok := UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, fmt.Errorf("acting user: %w", errs.ErrNoSession)
	}
	return id, nil
}
