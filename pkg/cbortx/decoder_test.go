package cbortx

import (
	"encoding/hex"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func repeatedBytes(b byte, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// cborHead encodes a CBOR major-type/argument head for small arguments.
func cborHead(major byte, n uint64) []byte {
	m := major << 5
	switch {
	case n < 24:
		return []byte{m | byte(n)}
	case n <= 0xff:
		return []byte{m | 24, byte(n)}
	default:
		return []byte{m | 25, byte(n >> 8), byte(n)}
	}
}

func cborByteString(b []byte) []byte { return append(cborHead(2, uint64(len(b))), b...) }
func cborUint(n uint64) []byte       { return cborHead(0, n) }
func cborMap1(k, v []byte) []byte    { return append(append(cborHead(5, 1), k...), v...) }

// buildMintRaw hand-encodes a Cardano multiasset map ({policy: {assetName:
// quantity}}), whose keys are CBOR byte strings. Go's map type can't use a
// []byte key, and fxamacker/cbor's Go-type-driven encoder has no way to
// produce a byte-string-keyed map from a Go map literal, so this one
// sub-structure of the test fixture is built as raw CBOR bytes and spliced
// in via cbor.RawMessage.
func buildMintRaw(policy, assetName []byte, qty int64) []byte {
	inner := cborMap1(cborByteString(assetName), cborUint(uint64(qty)))
	return cborMap1(cborByteString(policy), inner)
}

func buildTestBody(t *testing.T) []byte {
	t.Helper()

	policy := repeatedBytes(0xAB, 28)
	assetName := []byte("MODULE_1")
	mintRaw := cbor.RawMessage(buildMintRaw(policy, assetName, 1))

	body := map[uint64]any{
		fieldInputs: []any{
			[]any{repeatedBytes(0x01, 32), uint64(0)},
		},
		fieldOutputs: []any{
			map[uint64]any{
				0: []byte{0x61, 0x62, 0x63},
				1: []any{uint64(2_000_000), mintRaw},
			},
		},
		fieldFee:  uint64(200_000),
		fieldMint: mintRaw,
	}

	raw, err := cbor.Marshal(body)
	if err != nil {
		t.Fatalf("marshal test body: %v", err)
	}
	return raw
}

func TestDecodeTransactionCborBareBody(t *testing.T) {
	raw := buildTestBody(t)

	tx, err := DecodeTransactionCbor(raw)
	if err != nil {
		t.Fatal(err)
	}
	if tx.Fee != 200_000 {
		t.Fatalf("expected fee 200000, got %d", tx.Fee)
	}
	if len(tx.Inputs) != 1 || tx.Inputs[0].TxHash != hex.EncodeToString(repeatedBytes(0x01, 32)) {
		t.Fatalf("unexpected inputs: %+v", tx.Inputs)
	}
	if len(tx.Outputs) != 1 || tx.Outputs[0].Lovelace != 2_000_000 {
		t.Fatalf("unexpected outputs: %+v", tx.Outputs)
	}
	if len(tx.Mints) != 1 {
		t.Fatalf("expected one mint entry, got %+v", tx.Mints)
	}
	if tx.Mints[0].AssetName != "MODULE_1" || tx.Mints[0].Quantity != 1 {
		t.Fatalf("unexpected mint: %+v", tx.Mints[0])
	}
	if len(tx.TxID) != 64 {
		t.Fatalf("expected 64 hex char txId, got %q", tx.TxID)
	}
}

func TestDecodeTransactionCborSignedArrayForm(t *testing.T) {
	bodyRaw := buildTestBody(t)

	signed := []any{cbor.RawMessage(bodyRaw), map[uint64]any{}, true, nil}
	raw, err := cbor.Marshal(signed)
	if err != nil {
		t.Fatal(err)
	}

	tx, err := DecodeTransactionCbor(raw)
	if err != nil {
		t.Fatal(err)
	}
	if tx.Fee != 200_000 {
		t.Fatalf("expected fee 200000, got %d", tx.Fee)
	}
}

func TestExtractMintsByPolicyAndAssetNames(t *testing.T) {
	raw := buildTestBody(t)
	policyHex := hex.EncodeToString(repeatedBytes(0xAB, 28))

	mints, err := ExtractMintsByPolicy(raw, policyHex)
	if err != nil {
		t.Fatal(err)
	}
	if len(mints) != 1 {
		t.Fatalf("expected one mint for policy, got %+v", mints)
	}

	names, err := ExtractAssetNames(raw, policyHex)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "MODULE_1" {
		t.Fatalf("unexpected asset names %+v", names)
	}
}

func TestExtractTxIdIsDeterministic(t *testing.T) {
	raw := buildTestBody(t)
	id1, err := ExtractTxId(raw)
	if err != nil {
		t.Fatal(err)
	}
	id2, err := ExtractTxId(raw)
	if err != nil {
		t.Fatal(err)
	}
	if id1 != id2 {
		t.Fatal("expected deterministic tx id")
	}
}

func TestDecodeTransactionCborMalformedInput(t *testing.T) {
	if _, err := DecodeTransactionCbor([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatal("expected decode error for malformed input")
	}
}
