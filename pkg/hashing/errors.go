// Copyright 2025 Andamio Labs

package hashing

import "errors"

// ErrEncode is returned when a document cannot be canonicalized prior to
// hashing (e.g. a value encoding/json cannot marshal).
var ErrEncode = errors.New("failed to encode document for hashing")
