// Copyright 2025 Andamio Labs

package cbortx

import "errors"

// ErrCborDecode signals malformed or unparseable transaction CBOR: a
// typed, thrown error, since a preview UI that can't decode a transaction
// has nothing meaningful left to render.
var ErrCborDecode = errors.New("malformed transaction cbor")
