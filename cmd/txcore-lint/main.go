// Copyright 2025 Andamio Labs
//
// txcore-lint audits the protocol specification YAML files referenced by
// the compiled-in transaction registry: every definition's YamlPath must
// exist, parse, and agree with the registry on protocol version, id, and
// required tokens. It exits non-zero if any definition fails the audit.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/andamio-labs/txcore/pkg/lintconfig"
	"github.com/andamio-labs/txcore/pkg/protocolspec"
	"github.com/andamio-labs/txcore/pkg/registry"
	"github.com/andamio-labs/txcore/pkg/sideeffect"
	"github.com/andamio-labs/txcore/pkg/txdefs"
)

// costToleranceLovelace is how far a definition's estimated cost may drift
// from its protocol spec's declared cost before the audit flags it.
const costToleranceLovelace = int64(1000)

func main() {
	cfg, err := lintconfig.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	reg := txdefs.Default()
	failures := auditRegistry(reg, cfg.ProtocolSpecDir)
	sentinels := sentinelEndpoints(reg)

	if len(sentinels) > 0 {
		fmt.Printf("txcore-lint: %d sentinel (\"Not implemented\") endpoint(s):\n", len(sentinels))
		sort.Strings(sentinels)
		for _, s := range sentinels {
			fmt.Printf("  %s\n", s)
		}
	}

	if len(failures) == 0 {
		fmt.Printf("txcore-lint: %d definitions audited, no issues found\n", len(reg.GetAllTransactionDefinitions()))
		return
	}

	sort.Strings(failures)
	for _, f := range failures {
		fmt.Fprintln(os.Stderr, f)
	}
	fmt.Fprintf(os.Stderr, "txcore-lint: %d issue(s) found\n", len(failures))
	os.Exit(1)
}

// sentinelEndpoints lists every "Def (onSubmit|onConfirmation)" pairing
// whose endpoint is the NotImplemented sentinel, across every definition.
// This is informational only: the Open Question of whether a sentinel is a
// long-term API or a migration artefact is left to a human to resolve.
func sentinelEndpoints(reg *registry.Registry) []string {
	var out []string
	for _, def := range reg.GetAllTransactionDefinitions() {
		for _, se := range def.OnSubmit {
			if !sideeffect.ShouldExecute(se) {
				out = append(out, fmt.Sprintf("%s: onSubmit/%s", def.TxType, se.Def))
			}
		}
		for _, se := range def.OnConfirmation {
			if !sideeffect.ShouldExecute(se) {
				out = append(out, fmt.Sprintf("%s: onConfirmation/%s", def.TxType, se.Def))
			}
		}
	}
	return out
}

// auditRegistry checks every definition in reg against the protocol spec
// YAML it names, relative to specDir. It never stops at the first failure:
// every definition is checked and every issue reported.
func auditRegistry(reg *registry.Registry, specDir string) []string {
	var failures []string

	for _, def := range reg.GetAllTransactionDefinitions() {
		path := filepath.Join(specDir, def.ProtocolSpec.YamlPath)

		f, err := protocolspec.Load(path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", def.TxType, err))
			continue
		}
		if err := f.Validate(); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", def.TxType, err))
			continue
		}

		if string(def.ProtocolSpec.Version) != f.Version {
			failures = append(failures, fmt.Sprintf("%s: registry version %q does not match spec version %q",
				def.TxType, def.ProtocolSpec.Version, f.Version))
		}
		if def.ProtocolSpec.ID != f.ID {
			failures = append(failures, fmt.Sprintf("%s: registry id %q does not match spec id %q",
				def.TxType, def.ProtocolSpec.ID, f.ID))
		}
		if missing := missingTokens(def.ProtocolSpec.RequiredTokens, f.RequiredTokens); len(missing) > 0 {
			failures = append(failures, fmt.Sprintf("%s: spec is missing required tokens %v declared by the registry",
				def.TxType, missing))
		}
		if msg := costMismatch(def, f); msg != "" {
			failures = append(failures, fmt.Sprintf("%s: %s", def.TxType, msg))
		}
	}

	return failures
}

// costMismatch compares a definition's estimated cost against its spec
// file's declared cost, beyond costToleranceLovelace. A definition that
// names no EstimatedCost is not audited for cost.
func costMismatch(def registry.TransactionDefinition, f *protocolspec.File) string {
	if def.BuildTxConfig.EstimatedCost == nil {
		return ""
	}
	est := def.BuildTxConfig.EstimatedCost

	if diff := abs64(est.TxFee - f.Cost.TxFeeLovelace); diff > costToleranceLovelace {
		return fmt.Sprintf("estimated tx fee %d lovelace differs from spec's %d by more than the %d tolerance",
			est.TxFee, f.Cost.TxFeeLovelace, costToleranceLovelace)
	}
	if diff := abs64(est.MinDeposit - f.Cost.MinDepositLovelace); diff > costToleranceLovelace {
		return fmt.Sprintf("estimated min deposit %d lovelace differs from spec's %d by more than the %d tolerance",
			est.MinDeposit, f.Cost.MinDepositLovelace, costToleranceLovelace)
	}
	return ""
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// missingTokens returns the entries of want not present in have.
func missingTokens(want, have []string) []string {
	haveSet := make(map[string]struct{}, len(have))
	for _, t := range have {
		haveSet[t] = struct{}{}
	}
	var missing []string
	for _, t := range want {
		if _, ok := haveSet[t]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}
