package protocolspec

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSpec(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := writeSpec(t, dir, "course-module-mint.yaml", `
version: v1
id: course-module-mint
required_tokens:
  - COURSE_MODULE_TOKEN
cost:
  tx_fee_lovelace: 200000
  min_deposit_lovelace: 2000000
  additional_costs_lovelace: [500000]
monitoring:
  poll_interval: 30s
  retry_count: 3
  retry_delay: 5s
`)

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Version != "v1" || f.ID != "course-module-mint" {
		t.Fatalf("unexpected version/id: %+v", f)
	}
	if len(f.RequiredTokens) != 1 || f.RequiredTokens[0] != "COURSE_MODULE_TOKEN" {
		t.Fatalf("unexpected required tokens: %+v", f.RequiredTokens)
	}
	if f.Cost.TxFeeLovelace != 200000 || f.Cost.MinDepositLovelace != 2000000 {
		t.Fatalf("unexpected cost: %+v", f.Cost)
	}
	if len(f.Cost.AdditionalCosts) != 1 || f.Cost.AdditionalCosts[0] != 500000 {
		t.Fatalf("unexpected additional costs: %+v", f.Cost.AdditionalCosts)
	}
	if f.Monitoring.PollInterval.Duration() != 30*time.Second {
		t.Fatalf("unexpected poll interval: %v", f.Monitoring.PollInterval.Duration())
	}
	if f.Monitoring.RetryCount != 3 {
		t.Fatalf("unexpected retry count: %d", f.Monitoring.RetryCount)
	}
	if f.Monitoring.RetryDelay.Duration() != 5*time.Second {
		t.Fatalf("unexpected retry delay: %v", f.Monitoring.RetryDelay.Duration())
	}
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("TXCORE_TEST_POLICY_ID", "abc123")

	dir := t.TempDir()
	path := writeSpec(t, dir, "with-env.yaml", `
version: v2
id: ${TXCORE_TEST_ID:-fallback-id}
required_tokens:
  - ${TXCORE_TEST_POLICY_ID}
`)

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.ID != "fallback-id" {
		t.Fatalf("expected default to apply for unset var, got %q", f.ID)
	}
	if len(f.RequiredTokens) != 1 || f.RequiredTokens[0] != "abc123" {
		t.Fatalf("expected env var to be substituted, got %+v", f.RequiredTokens)
	}
}

func TestValidateRequiresVersionAndID(t *testing.T) {
	f := &File{}
	if err := f.Validate(); err == nil {
		t.Fatal("expected error for missing version and id")
	}
	f.Version = "v1"
	if err := f.Validate(); err == nil {
		t.Fatal("expected error for missing id")
	}
	f.ID = "x"
	if err := f.Validate(); err != nil {
		t.Fatalf("expected valid file to pass: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
