// Copyright 2025 Andamio Labs
//
// Side-effect declarations: the immutable SideEffect record and its Method
// and RetryPolicy companions.

package sideeffect

import (
	"time"

	"github.com/andamio-labs/txcore/pkg/schema"
)

// Method is one of the HTTP verbs a SideEffect may use.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPatch  Method = "PATCH"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// NotImplemented is the sentinel endpoint value meaning "skip this side
// effect at runtime." No other sentinel values are recognized.
const NotImplemented = "Not implemented"

// RetryPolicy is consumed by the monitoring service for onConfirmation side
// effects; the in-process engine never retries and surfaces this purely as
// data.
type RetryPolicy struct {
	MaxAttempts int
	BackoffMs   int
}

// SideEffect is one HTTP request a transaction definition issues on submit
// or on confirmation.
type SideEffect struct {
	// Def is a human-readable name used in logs and in result reporting.
	Def string

	Method Method

	// Endpoint is a path template with "{name}" placeholders, or the
	// NotImplemented sentinel.
	Endpoint string

	// PathParams maps a placeholder name to a dotted context path.
	PathParams map[string]string

	// Body maps a body key to a FieldSource expression.
	Body map[string]schema.FieldSource

	// Critical marks a side effect whose failure should flip the aggregate
	// result's Success flag and be collected into CriticalErrors.
	Critical bool

	// Retry is plain data for the monitoring service; the engine ignores it.
	Retry *RetryPolicy
}

// ShouldExecute reports whether se should actually be invoked, i.e. its
// endpoint is not the NotImplemented sentinel.
func ShouldExecute(se SideEffect) bool {
	return se.Endpoint != NotImplemented
}

// ExecutableSideEffects filters list down to the side effects ShouldExecute
// returns true for.
func ExecutableSideEffects(list []SideEffect) []SideEffect {
	out := make([]SideEffect, 0, len(list))
	for _, se := range list {
		if ShouldExecute(se) {
			out = append(out, se)
		}
	}
	return out
}

// Result is the per-side-effect outcome appended to an Engine run's
// Results slice, in declaration order.
type Result struct {
	Def      string
	Skipped  bool
	Success  bool
	Error    string
	Status   int
	Duration time.Duration
}

// RunResult is the aggregate outcome of executing a definition's onSubmit
// list against a SubmissionContext.
type RunResult struct {
	Success        bool
	Results        []Result
	CriticalErrors []string
}
