// Copyright 2025 Andamio Labs
//
// Test helpers for authoring per-definition side-effect tests without
// pulling in a real transport: mock context builders, the same
// path-resolution and body-construction steps the engine performs
// internally, and an in-memory recording transport.

package testharness

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andamio-labs/txcore/pkg/schema"
	"github.com/andamio-labs/txcore/pkg/sideeffect"
)

// SubmissionContextOverrides are applied over a baseline SubmissionContext
// so a test only has to name the fields it cares about.
type SubmissionContextOverrides struct {
	TxHash       string
	SignedCbor   string
	UnsignedCbor string
	UserID       string
	WalletAddr   string
	BuildInputs  map[string]any
}

// CreateMockSubmissionContext builds a SubmissionContext with sensible
// defaults, overridden field-by-field by overrides.
func CreateMockSubmissionContext(overrides SubmissionContextOverrides) schema.SubmissionContext {
	ctx := schema.SubmissionContext{
		TxHash:      "mock-tx-hash",
		UserID:      "mock-user",
		WalletAddr:  "mock-wallet-addr",
		BuildInputs: map[string]any{},
		Timestamp:   time.Unix(0, 0).UTC(),
	}
	if overrides.TxHash != "" {
		ctx.TxHash = overrides.TxHash
	}
	if overrides.SignedCbor != "" {
		ctx.SignedCbor = overrides.SignedCbor
	}
	if overrides.UnsignedCbor != "" {
		ctx.UnsignedCbor = overrides.UnsignedCbor
	}
	if overrides.UserID != "" {
		ctx.UserID = overrides.UserID
	}
	if overrides.WalletAddr != "" {
		ctx.WalletAddr = overrides.WalletAddr
	}
	if overrides.BuildInputs != nil {
		ctx.BuildInputs = overrides.BuildInputs
	}
	return ctx
}

// ConfirmationContextOverrides extends SubmissionContextOverrides with the
// confirmation-only fields.
type ConfirmationContextOverrides struct {
	SubmissionContextOverrides
	BlockHeight int64
	OnChainData *schema.OnChainData
}

// CreateMockConfirmationContext builds a ConfirmationContext with sensible
// defaults, overridden field-by-field by overrides.
func CreateMockConfirmationContext(overrides ConfirmationContextOverrides) schema.ConfirmationContext {
	ctx := schema.ConfirmationContext{
		SubmissionContext: CreateMockSubmissionContext(overrides.SubmissionContextOverrides),
		BlockHeight:       1,
		OnChainData:       overrides.OnChainData,
	}
	if overrides.BlockHeight != 0 {
		ctx.BlockHeight = overrides.BlockHeight
	}
	return ctx
}

// GetValueFromPath is a thin re-export of schema.GetValueFromPath for test
// code that wants to assert against a context map without importing
// pkg/schema directly.
func GetValueFromPath(obj any, path string) (any, bool, error) {
	return schema.GetValueFromPath(obj, path)
}

// ResolvePathParams mirrors the engine's endpoint placeholder substitution,
// exported so a test can assert on the resolved URL without running the
// full engine.
func ResolvePathParams(endpoint string, pathParams map[string]string, ctxMap map[string]any) (string, error) {
	resolved := endpoint
	for name, pathExpr := range pathParams {
		placeholder := "{" + name + "}"
		if !strings.Contains(resolved, placeholder) {
			continue
		}
		value, present, err := schema.GetValueFromPath(ctxMap, pathExpr)
		if err != nil {
			return "", fmt.Errorf("path param %q: %w", name, err)
		}
		if !present {
			return "", fmt.Errorf("path param %q (%s) resolved to nothing", name, pathExpr)
		}
		resolved = strings.ReplaceAll(resolved, placeholder, fmt.Sprintf("%v", value))
	}
	return resolved, nil
}

// ConstructRequestBody mirrors the engine's body-construction step,
// exported so a test can assert on the body map a side effect would send
// without running the full engine.
func ConstructRequestBody(body map[string]schema.FieldSource, ctxMap map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(body))
	for key, fs := range body {
		value, present, err := fs.Evaluate(ctxMap)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		if !present {
			continue
		}
		out[key] = value
	}
	return out, nil
}

// ValidateSideEffect reports whether se's endpoint and body expressions
// can all be resolved against ctxMap without error (absence is fine;
// type-mismatch is not). It does not invoke any transport.
func ValidateSideEffect(se sideeffect.SideEffect, ctxMap map[string]any) error {
	if !sideeffect.ShouldExecute(se) {
		return nil
	}
	if _, err := ResolvePathParams(se.Endpoint, se.PathParams, ctxMap); err != nil {
		return err
	}
	if se.Method != sideeffect.MethodGet {
		if _, err := ConstructRequestBody(se.Body, ctxMap); err != nil {
			return err
		}
	}
	return nil
}

// RecordingTransport is an in-memory sideeffect.Transport: it captures
// every request it receives and returns scripted responses in call order,
// falling back to a bare 200 OK once the script runs out.
type RecordingTransport struct {
	Requests  []sideeffect.Request
	Responses []*sideeffect.Response
}

// Do implements sideeffect.Transport.
func (t *RecordingTransport) Do(ctx context.Context, req sideeffect.Request) (*sideeffect.Response, error) {
	t.Requests = append(t.Requests, req)
	idx := len(t.Requests) - 1
	if idx < len(t.Responses) {
		return t.Responses[idx], nil
	}
	return &sideeffect.Response{StatusCode: 200, Status: "200 OK"}, nil
}

// TestSideEffect runs a single side effect through the real engine against
// ctxMap, using transport (typically a *RecordingTransport), and returns
// the per-side-effect result.
func TestSideEffect(se sideeffect.SideEffect, ctxMap map[string]any, transport sideeffect.Transport) (sideeffect.Result, error) {
	run, err := sideeffect.Run(context.Background(), []sideeffect.SideEffect{se}, ctxMap, sideeffect.ExecutionOptions{
		FetchImpl: transport,
	})
	if err != nil {
		return sideeffect.Result{}, err
	}
	if len(run.Results) == 0 {
		return sideeffect.Result{}, fmt.Errorf("engine produced no result for side effect %q", se.Def)
	}
	return run.Results[0], nil
}
