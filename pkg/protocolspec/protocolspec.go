// Copyright 2025 Andamio Labs
//
// Protocol specification loading: the YAML files a TransactionDefinition's
// ProtocolSpec.YamlPath names are the authoritative source for required
// tokens, cost estimates, and monitoring-service retry defaults. This
// package loads and validates them; the registry itself treats YamlPath as
// opaque.

package protocolspec

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration for YAML unmarshaling as a Go duration
// string ("30s", "5m").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Cost mirrors registry.TransactionCost, duplicated here (rather than
// imported) so this package has no dependency on the registry: protocol
// specs are meant to be loadable before any registry exists, e.g. by a
// standalone audit tool.
type Cost struct {
	TxFeeLovelace      int64   `yaml:"tx_fee_lovelace"`
	MinDepositLovelace int64   `yaml:"min_deposit_lovelace"`
	AdditionalCosts    []int64 `yaml:"additional_costs_lovelace"`
}

// Monitoring carries retry defaults consumed only by the external
// monitoring service (never by the engine, which never retries).
type Monitoring struct {
	PollInterval Duration `yaml:"poll_interval"`
	RetryCount   int      `yaml:"retry_count"`
	RetryDelay   Duration `yaml:"retry_delay"`
}

// File is the parsed shape of one protocol specification YAML document.
type File struct {
	Version        string     `yaml:"version"`
	ID             string     `yaml:"id"`
	RequiredTokens []string   `yaml:"required_tokens"`
	Cost           Cost       `yaml:"cost"`
	Monitoring     Monitoring `yaml:"monitoring"`
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default} in a spec file,
// for environment-specific overrides (e.g. a devnet policy ID) without a
// second copy of the YAML per environment.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultValue := ""
		if len(groups) >= 4 {
			defaultValue = groups[3]
		}
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})
}

// Load reads and parses a protocol specification file at path, expanding
// ${VAR_NAME} environment references first.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read protocol spec %s: %w", path, err)
	}

	expanded := substituteEnvVars(string(data))

	var f File
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return nil, fmt.Errorf("parse protocol spec %s: %w", path, err)
	}
	return &f, nil
}

// Validate checks that a loaded spec has the minimum fields a registry
// cross-check needs.
func (f *File) Validate() error {
	if f.Version == "" {
		return fmt.Errorf("protocol spec missing version")
	}
	if f.ID == "" {
		return fmt.Errorf("protocol spec missing id")
	}
	return nil
}
