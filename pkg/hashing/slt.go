// Copyright 2025 Andamio Labs
//
// SLT (Student Learning Target) hashing, reproducing the on-chain
// blake2b_256 ∘ serialiseData ∘ toBuiltinData ∘ map stringToBuiltinByteString
// computation over a module's ordered list of learning targets.

package hashing

import (
	"encoding/hex"
	"strings"
)

// ComputeSltHash hashes an ordered sequence of UTF-8 strings the way the
// on-chain validator does: each string is CBOR byte-string encoded (using
// Plutus's indefinite chunked encoding for strings over 64 bytes), the
// sequence is wrapped in a CBOR indefinite-length array, and the result is
// hashed with Blake2b-256. Returns a 64-character lowercase hex string.
func ComputeSltHash(slts []string) (string, error) {
	b := newCBORBuilder()
	b.writeIndefiniteArrayOpen()
	for _, s := range slts {
		b.writeByteString([]byte(s))
	}
	b.writeIndefiniteArrayClose()
	return blake2b256Hex(b.bytes())
}

// ComputeSltHashDefinite is the alternate Plutus-chunked variant: strings
// longer than 64 bytes are still split into 64-byte chunks, but the chunk
// sequence is wrapped in a definite-length CBOR array (chunk count known
// up front) instead of an indefinite byte string. The outer array of SLTs
// remains indefinite-length in both variants. Spec §9 leaves selection
// between the two variants to the caller via the protocol YAML; see
// DESIGN.md for the Open Question this resolves.
func ComputeSltHashDefinite(slts []string) (string, error) {
	b := newCBORBuilder()
	b.writeIndefiniteArrayOpen()
	for _, s := range slts {
		writeDefiniteChunkedByteString(b, []byte(s))
	}
	b.writeIndefiniteArrayClose()
	return blake2b256Hex(b.bytes())
}

func writeDefiniteChunkedByteString(b *cborBuilder, data []byte) {
	if len(data) <= plutusChunkSize {
		b.writeDefiniteByteString(data)
		return
	}

	numChunks := (len(data) + plutusChunkSize - 1) / plutusChunkSize
	b.writeHead(4, uint64(numChunks)) // definite-length array of chunks
	for off := 0; off < len(data); off += plutusChunkSize {
		end := off + plutusChunkSize
		if end > len(data) {
			end = len(data)
		}
		b.writeDefiniteByteString(data[off:end])
	}
}

// VerifySltHash reports whether expected (case-insensitive) matches
// ComputeSltHash(slts).
func VerifySltHash(slts []string, expected string) bool {
	got, err := ComputeSltHash(slts)
	if err != nil {
		return false
	}
	return strings.EqualFold(got, expected)
}

// IsValidSltHash reports whether s is a syntactically valid hash: exactly
// 64 hex characters (either case).
func IsValidSltHash(s string) bool {
	return isHex64(s)
}

func isHex64(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
