// Package config holds the tunables of the meal-share service layer.
package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/prpercival/meal-share/internal/matcher"
)

// Config configures logging and the business policies that are open to choice.
type Config struct {
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string
	// Dev switches to zap's development encoder.
	Dev bool

	// AllowRepeatClaims lets one user claim the same exchange more than once.
	AllowRepeatClaims bool

	// NameMatch selects the pantry name matcher: substring or exact.
	NameMatch string
	// UnitMatch selects the unit policy: whitelist or exact.
	UnitMatch string

	// ExpiryWindow is how far ahead pantry items count as expiring soon.
	ExpiryWindow time.Duration
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		LogLevel:          "info",
		AllowRepeatClaims: true,
		NameMatch:         matcher.NameSubstring,
		UnitMatch:         matcher.UnitWhitelist,
		ExpiryWindow:      72 * time.Hour,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if _, _, err := matcher.New(c.NameMatch, c.UnitMatch); err != nil {
		return err
	}
	if c.ExpiryWindow < 0 {
		return fmt.Errorf("expiry window must not be negative, got %s", c.ExpiryWindow)
	}
	return nil
}

// NewLogger builds the process logger described by c.
func (c Config) NewLogger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
