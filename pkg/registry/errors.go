// Copyright 2025 Andamio Labs

package registry

import "errors"

var (
	// ErrDuplicateTransactionName is returned by New when two definitions
	// share a TxType.
	ErrDuplicateTransactionName = errors.New("duplicate transaction name")
)
