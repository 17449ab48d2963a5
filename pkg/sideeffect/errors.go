// Copyright 2025 Andamio Labs

package sideeffect

import "errors"

var (
	// ErrPathParamMissing is returned when an endpoint placeholder names a
	// context path that does not resolve to a value.
	ErrPathParamMissing = errors.New("path parameter did not resolve to a value")

	// ErrBodyFieldFailed is returned when a Body FieldSource evaluation
	// fails (a context or onChainData path type mismatch) or the resulting
	// body cannot be JSON-encoded.
	ErrBodyFieldFailed = errors.New("body field evaluation failed")

	// ErrTransportFailed wraps a non-nil error returned by a Transport.
	ErrTransportFailed = errors.New("transport call failed")

	// ErrCriticalFailures is returned by Run when ThrowOnCriticalFailure is
	// set and at least one critical side effect did not succeed.
	ErrCriticalFailures = errors.New("one or more critical side effects failed")
)
