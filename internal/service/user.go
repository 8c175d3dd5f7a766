package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/prpercival/meal-share/internal/model"
	"github.com/prpercival/meal-share/internal/repository"
)

// UserService edits member profiles.
type UserService interface {
	// ApplySettings returns a copy of u with the change applied. u is not modified.
	ApplySettings(u model.User, ch SettingsChange) (model.User, error)
	// Save persists the profile.
	Save(ctx context.Context, u model.User) error
}

// SettingsChange carries profile edits. Nil fields are left unchanged.
type SettingsChange struct {
	Name               *string
	Bio                *string
	Location           *model.Location
	DietaryPreferences []string // nil keeps, empty clears
	CookingSpecialties []string // nil keeps, empty clears
}

type UserServiceImpl struct {
	base
	users repository.UserRepository
}

// NewUserService constructs UserService.
func NewUserService(users repository.UserRepository, log *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{base: newBase(log, "user"), users: users}
}

// ApplySettings validates the change against the taxonomies.
// Validation rules:
// - name, when set, not blank
// - location address, when set, not blank
// - every tag in its closed list; duplicates collapse
func (s *UserServiceImpl) ApplySettings(u model.User, ch SettingsChange) (model.User, error) {
	out := u.Clone()
	if ch.Name != nil {
		name := strings.TrimSpace(*ch.Name)
		if name == "" {
			return u, invalid("empty name")
		}
		out.Name = name
	}
	if ch.Bio != nil {
		out.Bio = strings.TrimSpace(*ch.Bio)
	}
	if ch.Location != nil {
		loc := *ch.Location
		loc.Address = strings.TrimSpace(loc.Address)
		if loc.Address == "" {
			return u, invalid("empty address")
		}
		out.Location = loc
	}
	if ch.DietaryPreferences != nil {
		tags, err := checkTags(ch.DietaryPreferences, model.IsDietaryPreference, "dietary preference")
		if err != nil {
			return u, err
		}
		out.DietaryPreferences = tags
	}
	if ch.CookingSpecialties != nil {
		tags, err := checkTags(ch.CookingSpecialties, model.IsCookingSpecialty, "cooking specialty")
		if err != nil {
			return u, err
		}
		out.CookingSpecialties = tags
	}
	return out, nil
}

// Save persists u; the user must already exist.
func (s *UserServiceImpl) Save(ctx context.Context, u model.User) error {
	if err := requireUser(u.ID); err != nil {
		return err
	}
	if err := s.users.Save(ctx, u.Clone()); err != nil {
		return err
	}
	s.log.Info("settings saved", zap.Stringer("user", u.ID))
	return nil
}

func checkTags(in []string, known func(string) bool, kind string) ([]string, error) {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if !known(t) {
			return nil, invalid("unknown %s %q", kind, t)
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}
