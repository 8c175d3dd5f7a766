// Package service contains the application services of the meal-share domain:
// exchange claims, meal planning, shopping list, pantry, catalog and user settings.
// Every operation takes the acting user explicitly.
package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/prpercival/meal-share/internal/errs"
)

// base carries the collaborators every service needs.
type base struct {
	log   *zap.Logger
	now   func() time.Time
	newID func() (uuid.UUID, error)
}

func newBase(log *zap.Logger, name string) base {
	if log == nil {
		log = zap.NewNop()
	}
	return base{log: log.Named(name), now: time.Now, newID: uuid.NewV4}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("validation: "+format+": %w", append(args, errs.ErrInvalidInput)...)
}

func requireUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return invalid("empty userID")
	}
	return nil
}

// keyedMutex serializes work per key.
type keyedMutex struct {
	mu sync.Mutex
	m  map[uuid.UUID]*sync.Mutex
}

func (k *keyedMutex) lock(key uuid.UUID) (unlock func()) {
	k.mu.Lock()
	if k.m == nil {
		k.m = make(map[uuid.UUID]*sync.Mutex)
	}
	l, ok := k.m[key]
	if !ok {
		l = &sync.Mutex{}
		k.m[key] = l
	}
	k.mu.Unlock()
	l.Lock()
	return l.Unlock
}
