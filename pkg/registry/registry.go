// Copyright 2025 Andamio Labs
//
// Registry indexes a closed set of TransactionDefinitions by name, built
// once from the definitions handed to New. Lookups never panic or throw;
// an unknown name comes back as a plain "not found" boolean.

package registry

import (
	"fmt"
	"sort"
)

// Registry is a read-only, constant-time-lookup index over
// TransactionDefinitions. It is immutable after New returns.
type Registry struct {
	byName []TransactionDefinition
	index  map[TransactionName]int
}

// New builds a Registry from defs. It returns ErrDuplicateTransactionName
// if two definitions share a TxType.
func New(defs ...TransactionDefinition) (*Registry, error) {
	index := make(map[TransactionName]int, len(defs))
	for i, d := range defs {
		if _, dup := index[d.TxType]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTransactionName, d.TxType)
		}
		index[d.TxType] = i
	}
	byName := make([]TransactionDefinition, len(defs))
	copy(byName, defs)
	return &Registry{byName: byName, index: index}, nil
}

// MustNew is New but panics on error. Intended for package-level
// txdefs.Default() style aggregators where the definition set is a
// compile-time constant.
func MustNew(defs ...TransactionDefinition) *Registry {
	r, err := New(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// GetTransactionDefinition returns the definition registered under name,
// and whether it was found.
func (r *Registry) GetTransactionDefinition(name TransactionName) (TransactionDefinition, bool) {
	i, ok := r.index[name]
	if !ok {
		return TransactionDefinition{}, false
	}
	return r.byName[i], true
}

// GetAllTransactionDefinitions returns every registered definition, in
// registration order.
func (r *Registry) GetAllTransactionDefinitions() []TransactionDefinition {
	out := make([]TransactionDefinition, len(r.byName))
	copy(out, r.byName)
	return out
}

// GetTransactionsByRole filters definitions by their Role tag.
func (r *Registry) GetTransactionsByRole(role string) []TransactionDefinition {
	var out []TransactionDefinition
	for _, d := range r.byName {
		if d.Role == role {
			out = append(out, d)
		}
	}
	return out
}

// GetTransactionsByVersion filters definitions by protocol version.
func (r *Registry) GetTransactionsByVersion(version ProtocolVersion) []TransactionDefinition {
	var out []TransactionDefinition
	for _, d := range r.byName {
		if d.ProtocolSpec.Version == version {
			out = append(out, d)
		}
	}
	return out
}

// GetTransactionsByVersionAndRole filters by both protocol version and role.
func (r *Registry) GetTransactionsByVersionAndRole(version ProtocolVersion, role string) []TransactionDefinition {
	var out []TransactionDefinition
	for _, d := range r.byName {
		if d.ProtocolSpec.Version == version && d.Role == role {
			out = append(out, d)
		}
	}
	return out
}

// HasTransaction reports whether name is registered.
func (r *Registry) HasTransaction(name TransactionName) bool {
	_, ok := r.index[name]
	return ok
}

// GetAvailableVersions returns the sorted, deduplicated set of protocol
// versions present in the registry.
func (r *Registry) GetAvailableVersions() []ProtocolVersion {
	seen := make(map[ProtocolVersion]struct{})
	for _, d := range r.byName {
		seen[d.ProtocolSpec.Version] = struct{}{}
	}
	out := make([]ProtocolVersion, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GetTransactionCountByVersion returns how many definitions are registered
// per protocol version.
func (r *Registry) GetTransactionCountByVersion() map[ProtocolVersion]int {
	counts := make(map[ProtocolVersion]int)
	for _, d := range r.byName {
		counts[d.ProtocolSpec.Version]++
	}
	return counts
}
