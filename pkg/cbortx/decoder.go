// Copyright 2025 Andamio Labs
//
// Cardano transaction CBOR decoding: a read-only projection of a signed or
// unsigned transaction blob into the fields a preview UI needs (inputs,
// outputs, fee, mints) without re-deriving or normalizing amounts. Auxiliary
// data (transaction metadata) is not decoded.

package cbortx

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/andamio-labs/txcore/pkg/hashing"
)

// body field indices per the Cardano transaction body CDDL.
const (
	fieldInputs  = 0
	fieldOutputs = 1
	fieldFee     = 2
	fieldMint    = 9
)

// TxInput is one consumed UTxO reference.
type TxInput struct {
	TxHash string
	Index  uint32
}

// TxOutput is one produced UTxO. Address is left as raw bytes, hex-encoded:
// bech32 rendering is a presentation concern outside this decoder.
type TxOutput struct {
	AddressHex string
	Lovelace   uint64
	Assets     []NativeAsset
}

// NativeAsset is one multi-asset amount attached to an output or a mint.
type NativeAsset struct {
	PolicyID  string
	AssetName string
	Quantity  int64
}

// Transaction is the structured, read-only view decodeTransactionCbor
// produces. Metadata is always nil: the decoder does not read auxiliary
// data.
type Transaction struct {
	TxID     string
	Fee      uint64
	Inputs   []TxInput
	Outputs  []TxOutput
	Mints    []NativeAsset
	Metadata map[string]any
}

// DecodeTransactionCbor decodes raw (a signed or unsigned transaction) into
// a Transaction. It tolerates both the four-element signed-transaction array
// form ([body, witnessSet, isValid, auxiliaryData]) and a bare transaction
// body. Unknown body fields are ignored rather than rejected.
func DecodeTransactionCbor(raw []byte) (Transaction, error) {
	bodyRaw, err := extractBodyRaw(raw)
	if err != nil {
		return Transaction{}, err
	}

	var fields map[uint64]cbor.RawMessage
	if err := cbor.Unmarshal(bodyRaw, &fields); err != nil {
		return Transaction{}, fmt.Errorf("%w: %v", ErrCborDecode, err)
	}

	txID, err := hashing.Blake2b256Hex(bodyRaw)
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: %v", ErrCborDecode, err)
	}

	tx := Transaction{TxID: txID}

	if f, ok := fields[fieldFee]; ok {
		fee, err := decodeUint64(f)
		if err != nil {
			return Transaction{}, fmt.Errorf("%w: fee: %v", ErrCborDecode, err)
		}
		tx.Fee = fee
	}

	if f, ok := fields[fieldInputs]; ok {
		inputs, err := decodeInputs(f)
		if err != nil {
			return Transaction{}, fmt.Errorf("%w: inputs: %v", ErrCborDecode, err)
		}
		tx.Inputs = inputs
	}

	if f, ok := fields[fieldOutputs]; ok {
		outputs, err := decodeOutputs(f)
		if err != nil {
			return Transaction{}, fmt.Errorf("%w: outputs: %v", ErrCborDecode, err)
		}
		tx.Outputs = outputs
	}

	if f, ok := fields[fieldMint]; ok {
		mints, err := decodeMint(f)
		if err != nil {
			return Transaction{}, fmt.Errorf("%w: mint: %v", ErrCborDecode, err)
		}
		tx.Mints = mints
	}

	return tx, nil
}

// extractBodyRaw returns the raw CBOR bytes of the transaction body,
// unwrapping the signed-transaction array form if present.
func extractBodyRaw(raw []byte) (cbor.RawMessage, error) {
	var asArray []cbor.RawMessage
	if err := cbor.Unmarshal(raw, &asArray); err == nil && len(asArray) > 0 {
		return asArray[0], nil
	}

	var asBody cbor.RawMessage
	if err := cbor.Unmarshal(raw, &asBody); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCborDecode, err)
	}
	return asBody, nil
}

func decodeUint64(raw cbor.RawMessage) (uint64, error) {
	var v uint64
	if err := cbor.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	return v, nil
}

func decodeInputs(raw cbor.RawMessage) ([]TxInput, error) {
	var pairs [][]cbor.RawMessage
	if err := cbor.Unmarshal(raw, &pairs); err != nil {
		return nil, err
	}

	out := make([]TxInput, 0, len(pairs))
	for _, p := range pairs {
		if len(p) < 2 {
			continue
		}
		var txHash []byte
		if err := cbor.Unmarshal(p[0], &txHash); err != nil {
			return nil, err
		}
		idx, err := decodeUint64(p[1])
		if err != nil {
			return nil, err
		}
		out = append(out, TxInput{TxHash: hex.EncodeToString(txHash), Index: uint32(idx)})
	}
	return out, nil
}

// decodeOutputs decodes the body's output list; each output's value is
// either a bare lovelace amount or [lovelace, multiasset].
func decodeOutputs(raw cbor.RawMessage) ([]TxOutput, error) {
	var rawOutputs []cbor.RawMessage
	if err := cbor.Unmarshal(raw, &rawOutputs); err != nil {
		return nil, err
	}

	out := make([]TxOutput, 0, len(rawOutputs))
	for _, o := range rawOutputs {
		output, err := decodeOutput(o)
		if err != nil {
			return nil, err
		}
		out = append(out, output)
	}
	return out, nil
}

func decodeOutput(raw cbor.RawMessage) (TxOutput, error) {
	// Babbage-and-later outputs are maps keyed 0=address, 1=amount, ...
	var asMap map[uint64]cbor.RawMessage
	if err := cbor.Unmarshal(raw, &asMap); err == nil && len(asMap) > 0 {
		var out TxOutput
		if addr, ok := asMap[0]; ok {
			var addrBytes []byte
			if err := cbor.Unmarshal(addr, &addrBytes); err != nil {
				return TxOutput{}, err
			}
			out.AddressHex = hex.EncodeToString(addrBytes)
		}
		if amt, ok := asMap[1]; ok {
			lovelace, assets, err := decodeValue(amt)
			if err != nil {
				return TxOutput{}, err
			}
			out.Lovelace = lovelace
			out.Assets = assets
		}
		return out, nil
	}

	// Pre-Babbage outputs are a 2-element array: [address, value].
	var asArray []cbor.RawMessage
	if err := cbor.Unmarshal(raw, &asArray); err != nil || len(asArray) < 2 {
		return TxOutput{}, fmt.Errorf("unrecognized output shape")
	}

	var addrBytes []byte
	if err := cbor.Unmarshal(asArray[0], &addrBytes); err != nil {
		return TxOutput{}, err
	}
	lovelace, assets, err := decodeValue(asArray[1])
	if err != nil {
		return TxOutput{}, err
	}
	return TxOutput{AddressHex: hex.EncodeToString(addrBytes), Lovelace: lovelace, Assets: assets}, nil
}

// decodeValue decodes a Cardano "value": either a bare uint64 lovelace
// amount, or [lovelace, multiasset-map].
func decodeValue(raw cbor.RawMessage) (uint64, []NativeAsset, error) {
	var bare uint64
	if err := cbor.Unmarshal(raw, &bare); err == nil {
		return bare, nil, nil
	}

	var pair []cbor.RawMessage
	if err := cbor.Unmarshal(raw, &pair); err != nil || len(pair) < 2 {
		return 0, nil, fmt.Errorf("unrecognized value shape")
	}
	lovelace, err := decodeUint64(pair[0])
	if err != nil {
		return 0, nil, err
	}
	assets, err := decodeMultiasset(pair[1])
	if err != nil {
		return 0, nil, err
	}
	return lovelace, assets, nil
}

func decodeMint(raw cbor.RawMessage) ([]NativeAsset, error) {
	return decodeMultiasset(raw)
}

// decodeMultiasset decodes a CBOR map keyed by policy-id byte strings, each
// value a map keyed by asset-name byte strings mapping to a signed
// quantity. Byte-string map keys don't decode into Go's native string type
// (which expects a CBOR text string), so this is decoded through the
// generic `any` representation and walked by hand; a byte slice cannot be
// a Go map key, so the decoder hands those keys back as cbor.ByteString.
func decodeMultiasset(raw cbor.RawMessage) ([]NativeAsset, error) {
	var generic any
	if err := cbor.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}

	policies, ok := generic.(map[any]any)
	if !ok {
		return nil, nil
	}

	var out []NativeAsset
	for policyKey, assetsAny := range policies {
		policyBytes, ok := policyKey.(cbor.ByteString)
		if !ok {
			continue
		}
		assets, ok := assetsAny.(map[any]any)
		if !ok {
			continue
		}
		for assetKey, qtyAny := range assets {
			assetBytes, ok := assetKey.(cbor.ByteString)
			if !ok {
				continue
			}
			qty, err := toInt64(qtyAny)
			if err != nil {
				return nil, err
			}
			out = append(out, NativeAsset{
				PolicyID:  hex.EncodeToString([]byte(policyBytes)),
				AssetName: string(assetBytes),
				Quantity:  qty,
			})
		}
	}
	return out, nil
}

func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case uint64:
		return int64(t), nil
	case *big.Int:
		return t.Int64(), nil
	default:
		return 0, fmt.Errorf("unsupported quantity type %T", v)
	}
}

// ExtractMints returns every mint entry across the transaction.
func ExtractMints(raw []byte) ([]NativeAsset, error) {
	tx, err := DecodeTransactionCbor(raw)
	if err != nil {
		return nil, err
	}
	return tx.Mints, nil
}

// ExtractMintsByPolicy returns only the mints under policyID (hex-encoded).
func ExtractMintsByPolicy(raw []byte, policyID string) ([]NativeAsset, error) {
	mints, err := ExtractMints(raw)
	if err != nil {
		return nil, err
	}
	out := make([]NativeAsset, 0, len(mints))
	for _, m := range mints {
		if m.PolicyID == policyID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ExtractAssetNames returns just the asset-name strings minted under
// policyID.
func ExtractAssetNames(raw []byte, policyID string) ([]string, error) {
	mints, err := ExtractMintsByPolicy(raw, policyID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(mints))
	for _, m := range mints {
		names = append(names, m.AssetName)
	}
	return names, nil
}

// ExtractTxId returns only the transaction hash.
func ExtractTxId(raw []byte) (string, error) {
	tx, err := DecodeTransactionCbor(raw)
	if err != nil {
		return "", err
	}
	return tx.TxID, nil
}
