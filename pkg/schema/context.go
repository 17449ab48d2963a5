// Copyright 2025 Andamio Labs
//
// Runtime context shapes: SubmissionContext and ConfirmationContext, the
// two record types FieldSource expressions evaluate against.

package schema

import "time"

// Mint is one entry of a ConfirmationContext's OnChainData.Mints.
type Mint struct {
	PolicyID  string
	AssetName string
	Quantity  int64
}

// OnChainData is the decoded, indexable view of a confirmed transaction,
// produced only by the monitoring service once a block includes it.
type OnChainData struct {
	Mints    []Mint
	Outputs  []map[string]any
	Inputs   []map[string]any
	Metadata map[string]any
	DataHash string
}

// SubmissionContext is produced by the caller immediately after a
// transaction has been handed to the blockchain.
type SubmissionContext struct {
	TxHash       string
	SignedCbor   string
	UnsignedCbor string
	UserID       string
	WalletAddr   string
	BuildInputs  map[string]any
	Timestamp    time.Time
}

// ConfirmationContext extends SubmissionContext with data only available
// once the transaction has been confirmed.
type ConfirmationContext struct {
	SubmissionContext
	BlockHeight int64
	OnChainData *OnChainData
}

// ToMap flattens a SubmissionContext into the map[string]any shape Path
// resolution and FieldSource evaluation operate over.
func (c SubmissionContext) ToMap() map[string]any {
	return map[string]any{
		"txHash":       c.TxHash,
		"signedCbor":   c.SignedCbor,
		"unsignedCbor": c.UnsignedCbor,
		"userId":       c.UserID,
		"walletAddress": c.WalletAddr,
		"buildInputs":  c.BuildInputs,
		"timestamp":    c.Timestamp,
	}
}

// ToMap flattens a ConfirmationContext, nesting its OnChainData (when
// present) under the "onChainData" key that FieldSource's onChainData
// variant resolves against.
func (c ConfirmationContext) ToMap() map[string]any {
	m := c.SubmissionContext.ToMap()
	m["blockHeight"] = c.BlockHeight
	if c.OnChainData != nil {
		m["onChainData"] = onChainDataToMap(*c.OnChainData)
	}
	return m
}

func onChainDataToMap(d OnChainData) map[string]any {
	mints := make([]any, len(d.Mints))
	for i, mint := range d.Mints {
		mints[i] = map[string]any{
			"policyId":  mint.PolicyID,
			"assetName": mint.AssetName,
			"quantity":  mint.Quantity,
		}
	}

	outputs := make([]any, len(d.Outputs))
	for i, o := range d.Outputs {
		outputs[i] = o
	}
	inputs := make([]any, len(d.Inputs))
	for i, in := range d.Inputs {
		inputs[i] = in
	}

	m := map[string]any{
		"mints":   mints,
		"outputs": outputs,
		"inputs":  inputs,
	}
	if d.Metadata != nil {
		m["metadata"] = d.Metadata
	}
	if d.DataHash != "" {
		m["dataHash"] = d.DataHash
	}
	return m
}
