// Copyright 2025 Andamio Labs
//
// The closed set of transaction names, protocol references, and the
// TransactionDefinition value type the registry indexes.

package registry

import (
	"github.com/andamio-labs/txcore/pkg/schema"
	"github.com/andamio-labs/txcore/pkg/sideeffect"
)

// TransactionName is a stable identifier drawn from a closed, globally
// unique enumeration.
type TransactionName string

// ProtocolVersion tags a protocol revision. Definitions for different
// versions may coexist; consumers filter by version.
type ProtocolVersion string

const (
	VersionV1 ProtocolVersion = "v1"
	VersionV2 ProtocolVersion = "v2"
)

// ProtocolSpec is an opaque reference to the external on-chain protocol
// specification a definition implements. The registry never parses
// yamlPath itself; it is metadata for implementers to keep in lockstep
// with the referenced YAML (see pkg/protocolspec for the loader).
type ProtocolSpec struct {
	Version        ProtocolVersion
	ID             string
	YamlPath       string
	RequiredTokens []string
}

// TransactionCost is expressed in lovelace, the smallest on-chain unit.
type TransactionCost struct {
	TxFee           int64
	MinDeposit      int64
	AdditionalCosts []int64
}

// BuildTxConfig names the transaction-building endpoint and the schemas
// that validate its input.
type BuildTxConfig struct {
	Schemas       schema.Schemas
	BuilderPath   string
	EstimatedCost *TransactionCost
	InputHelpers  []string
}

// UI carries the presentation metadata a caller's front end renders
// without the core importing any UI framework itself.
type UI struct {
	ButtonText     string
	Title          string
	Description    []string
	FooterLink     string
	FooterLinkText string
	SuccessInfo    string
}

// Docs points at human-facing documentation for a transaction.
type Docs struct {
	ProtocolDocs string
	ApiDocs      string
	Examples     []string
}

// TransactionDefinition is an immutable, fully self-describing record of
// one supported on-chain transaction: its protocol reference, its input
// schema, its submission/confirmation side effects, and its UI copy.
// Definitions are constructed once, at registry build time, and never
// mutated afterward.
type TransactionDefinition struct {
	TxType         TransactionName
	Role           string
	ProtocolSpec   ProtocolSpec
	BuildTxConfig  BuildTxConfig
	OnSubmit       []sideeffect.SideEffect
	OnConfirmation []sideeffect.SideEffect
	UI             UI
	Docs           Docs
}
