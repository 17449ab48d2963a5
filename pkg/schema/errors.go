// Copyright 2025 Andamio Labs
//
// Sentinel errors for the schema package.

package schema

import "errors"

// Sentinel errors for schema composition and path resolution.
var (
	// ErrInvalidPath is returned when a dotted-path expression cannot be
	// parsed.
	ErrInvalidPath = errors.New("invalid dotted path")

	// ErrTypeMismatch is returned when a path segment expects an object or
	// array but finds a value of a different shape.
	ErrTypeMismatch = errors.New("path type mismatch")

	// ErrDuplicateKey is returned by createSchemas when a key appears in
	// both txParams and sideEffectParams.
	ErrDuplicateKey = errors.New("key present in both txParams and sideEffectParams")

	// ErrUnknownKey is returned when validating a map that contains a key
	// not declared by a strict schema.
	ErrUnknownKey = errors.New("unknown key")

	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrWrongKind is returned when a field's runtime type does not match
	// its declared Kind.
	ErrWrongKind = errors.New("field has wrong kind")

	// ErrNotOneOf is returned when a field's value is not among its
	// declared allowed values.
	ErrNotOneOf = errors.New("field value not in allowed set")
)
