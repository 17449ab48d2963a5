// Copyright 2025 Andamio Labs

package sidefxstore

import "errors"

var (
	// ErrNotFound is returned when a requested side-effect call record is
	// not found in the database.
	ErrNotFound = errors.New("side effect call not found")
)
