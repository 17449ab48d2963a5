// Copyright 2025 Andamio Labs
//
// Schema composition: createSchemas splits a single input map between an
// on-chain-parameters schema and a side-effect-only-parameters schema,
// validating that the two projections partition the input disjointly.

package schema

import "fmt"

// Schemas is the result of composing a definition's on-chain and
// side-effect-only parameters.
type Schemas struct {
	TxAPISchema      Object
	SideEffectSchema Object
	InputSchema      inputSchema
}

// CreateSchemasParams names the two disjoint parameter groups a definition
// separates its input into.
type CreateSchemasParams struct {
	TxParams         []Field
	SideEffectParams []Field
}

// CreateSchemas builds the composed Schemas for a definition. It returns
// ErrDuplicateKey if a field name appears in both groups.
func CreateSchemas(p CreateSchemasParams) (Schemas, error) {
	txKeys := fieldKeySet(p.TxParams)
	for _, f := range p.SideEffectParams {
		if _, dup := txKeys[f.Name]; dup {
			return Schemas{}, fmt.Errorf("%w: %q", ErrDuplicateKey, f.Name)
		}
	}

	txSchema := Object{Fields: p.TxParams}
	seSchema := Object{Fields: p.SideEffectParams}

	return Schemas{
		TxAPISchema:      txSchema,
		SideEffectSchema: seSchema,
		InputSchema: inputSchema{
			txKeys: fieldKeySet(p.TxParams),
			seKeys: fieldKeySet(p.SideEffectParams),
			tx:     txSchema,
			se:     seSchema,
		},
	}, nil
}

// inputSchema validates the disjoint union of a txApiSchema and a
// sideEffectSchema: it succeeds iff both constituent schemas succeed on
// their respective projections of the input.
type inputSchema struct {
	txKeys map[string]struct{}
	seKeys map[string]struct{}
	tx     Object
	se     Object
}

// Validate implements the same contract as Object.Validate.
func (s inputSchema) Validate(value any) IssueList {
	m, ok := value.(map[string]any)
	if !ok {
		return IssueList{{Field: "", Err: fmt.Errorf("%w: expected object, got %T", ErrWrongKind, value)}}
	}

	var issues IssueList
	issues = append(issues, s.tx.Validate(project(m, s.txKeys))...)
	issues = append(issues, s.se.Validate(project(m, s.seKeys))...)
	return issues
}

// UnseparatedSchema wraps a single Object as an "unseparated" input schema:
// when a definition has no sideEffectParams split, all keys are available
// at runtime in buildInputs.
func UnseparatedSchema(o Object) Validator { return o }

// Validator is satisfied by both Object and the composed inputSchema, so
// callers holding only an "inputSchema" reference (separated or not) can
// validate uniformly.
type Validator interface {
	Validate(value any) IssueList
}

var (
	_ Validator = Object{}
	_ Validator = inputSchema{}
)
