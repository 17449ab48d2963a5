// Copyright 2025 Andamio Labs

package hashing

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// blake2b256Hex returns the lowercase hex encoding of the 32-byte
// Blake2b-256 digest of data.
func blake2b256Hex(data []byte) (string, error) {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Blake2b256Hex is the exported form of blake2b256Hex, for packages outside
// hashing that need a plain Blake2b-256 digest over arbitrary bytes (the
// transaction-id hash over a decoded body, for instance) without going
// through one of the document-specific hash functions below.
func Blake2b256Hex(data []byte) (string, error) {
	return blake2b256Hex(data)
}

func blake2b256(data []byte) ([]byte, error) {
	h, err := blake2b.New256(nil)
	if err != nil {
		return nil, fmt.Errorf("init blake2b-256: %w", err)
	}
	if _, err := h.Write(data); err != nil {
		return nil, fmt.Errorf("hash: %w", err)
	}
	return h.Sum(nil), nil
}
