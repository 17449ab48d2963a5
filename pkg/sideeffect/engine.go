// Copyright 2025 Andamio Labs
//
// Engine executes a transaction definition's side effects against a
// runtime context: resolve endpoint placeholders, build the request body,
// invoke the transport, and aggregate the outcome.

package sideeffect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/andamio-labs/txcore/pkg/schema"
)

// ExecutionOptions configures a Run.
type ExecutionOptions struct {
	// ApiBaseUrl is prepended to every side effect's Endpoint.
	ApiBaseUrl string

	// AuthToken, when non-empty, is sent as "Authorization: Bearer <token>".
	AuthToken string

	// FetchImpl is the Transport to invoke requests through. A nil value
	// defaults to an HTTPTransport backed by a new http.Client.
	FetchImpl Transport

	// ThrowOnCriticalFailure, when true, makes Run return
	// ErrCriticalFailures after completing the full pass if any critical
	// side effect did not succeed. Non-critical failures never cause Run
	// to return an error; they are reported only in RunResult.
	ThrowOnCriticalFailure bool

	// Metrics, when non-nil, receives one observation per executed side
	// effect (skipped side effects are also counted, under a distinct
	// outcome label).
	Metrics *Metrics
}

func (o ExecutionOptions) transport() Transport {
	if o.FetchImpl != nil {
		return o.FetchImpl
	}
	return NewHTTPTransport()
}

// Run executes every side effect in list against ctxMap, in declaration
// order, one at a time. Side effects whose Endpoint is the NotImplemented
// sentinel are skipped and recorded with Skipped=true.
func Run(ctx context.Context, list []SideEffect, ctxMap map[string]any, opts ExecutionOptions) (RunResult, error) {
	out := RunResult{Success: true, Results: make([]Result, 0, len(list))}
	transport := opts.transport()

	for _, se := range list {
		if !ShouldExecute(se) {
			res := Result{Def: se.Def, Skipped: true, Success: true}
			out.Results = append(out.Results, res)
			opts.Metrics.observe(res)
			continue
		}

		start := time.Now()
		res := runOne(ctx, se, ctxMap, opts, transport)
		res.Duration = time.Since(start)
		res.Def = se.Def
		out.Results = append(out.Results, res)
		opts.Metrics.observe(res)

		if !res.Success && se.Critical {
			out.Success = false
			out.CriticalErrors = append(out.CriticalErrors, fmt.Sprintf("%s: %s", se.Def, res.Error))
		}
	}

	if opts.ThrowOnCriticalFailure && len(out.CriticalErrors) > 0 {
		return out, ErrCriticalFailures
	}
	return out, nil
}

// runOne executes a single side effect. All failures are reported through
// the returned Result so that one failing side effect never aborts the rest
// of the run.
func runOne(ctx context.Context, se SideEffect, ctxMap map[string]any, opts ExecutionOptions, transport Transport) Result {
	endpoint, err := resolveEndpoint(se, ctxMap)
	if err != nil {
		return Result{Error: err.Error()}
	}

	var bodyBytes []byte
	if se.Method != MethodGet && len(se.Body) > 0 {
		body, err := constructBody(se, ctxMap)
		if err != nil {
			return Result{Error: err.Error()}
		}
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return Result{Error: fmt.Errorf("%w: %v", ErrBodyFieldFailed, err).Error()}
		}
	}

	headers := map[string]string{}
	if bodyBytes != nil {
		headers["Content-Type"] = "application/json"
	}
	if opts.AuthToken != "" {
		headers["Authorization"] = "Bearer " + opts.AuthToken
	}

	resp, err := transport.Do(ctx, Request{
		Method:  se.Method,
		URL:     opts.ApiBaseUrl + endpoint,
		Headers: headers,
		Body:    bodyBytes,
	})
	if err != nil {
		return Result{Error: fmt.Errorf("%w: %v", ErrTransportFailed, err).Error()}
	}
	if !resp.OK() {
		return Result{
			Success: false,
			Status:  resp.StatusCode,
			Error:   fmt.Sprintf("non-2xx response: %s", resp.Status),
		}
	}

	return Result{Success: true, Status: resp.StatusCode}
}

// resolveEndpoint substitutes every "{name}" placeholder in se.Endpoint with
// the value at the corresponding PathParams[name] path, resolved against
// ctxMap.
func resolveEndpoint(se SideEffect, ctxMap map[string]any) (string, error) {
	endpoint := se.Endpoint
	for name, pathExpr := range se.PathParams {
		placeholder := "{" + name + "}"
		if !strings.Contains(endpoint, placeholder) {
			continue
		}

		value, present, err := schema.GetValueFromPath(ctxMap, pathExpr)
		if err != nil {
			return "", fmt.Errorf("path param %q: %w", name, err)
		}
		if !present {
			return "", fmt.Errorf("path param %q (%s): %w", name, pathExpr, ErrPathParamMissing)
		}
		endpoint = strings.ReplaceAll(endpoint, placeholder, fmt.Sprintf("%v", value))
	}
	return endpoint, nil
}

// constructBody evaluates every entry of se.Body against ctxMap, omitting
// keys whose FieldSource resolves to absent.
func constructBody(se SideEffect, ctxMap map[string]any) (map[string]any, error) {
	body := make(map[string]any, len(se.Body))
	for key, fs := range se.Body {
		value, present, err := fs.Evaluate(ctxMap)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrBodyFieldFailed, key, err)
		}
		if !present {
			continue
		}
		body[key] = value
	}
	return body, nil
}
