// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the referenced exchange, recipe, user or item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSoldOut indicates a claim against an exchange with no portions left.
	ErrSoldOut = errors.New("sold out")

	// ErrInvalidInput indicates a rejected argument (bad serving count, empty required field).
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyClaimed indicates a repeat claim while repeat claims are disabled.
	ErrAlreadyClaimed = errors.New("already claimed")

	// ErrAlreadyExists indicates an ID collision on insert.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNoSession indicates the call carried no acting user.
	ErrNoSession = errors.New("no session")
)
