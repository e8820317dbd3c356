package models

import (
	"strings"

	"github.com/samber/lo"
)

// SignerRole represents the organisational role of a signer.
// The set is open: roles outside the known constants are kept verbatim.
type SignerRole string

const (
	RoleFounder SignerRole = "Founder"
	RoleAdmin   SignerRole = "Admin"
	RoleMember  SignerRole = "Member"
	RoleAdvisor SignerRole = "Advisor"
)

// KnownRoles lists the roles offered by the interactive prompts
var KnownRoles = []SignerRole{RoleFounder, RoleAdmin, RoleMember, RoleAdvisor}

// SignerField names a mutable field of a Signer
type SignerField string

const (
	SignerFieldName    SignerField = "name"
	SignerFieldAddress SignerField = "address"
	SignerFieldRole    SignerField = "role"
)

// Signer is a named address authorized under a policy
type Signer struct {
	Name    string     `json:"name" yaml:"name" toml:"name"`
	Address string     `json:"address" yaml:"address" toml:"address"`
	Role    SignerRole `json:"role" yaml:"role" toml:"role"`
}

// NewSigner returns an empty signer with the default role
func NewSigner() Signer {
	return Signer{Role: RoleMember}
}

// IsValid reports whether both name and address are filled in
func (s Signer) IsValid() bool {
	return strings.TrimSpace(s.Name) != "" && strings.TrimSpace(s.Address) != ""
}

// SignerRegistry holds the signers of a policy. It never becomes empty.
type SignerRegistry struct {
	signers []Signer
}

// NewSignerRegistry creates a registry holding a single empty signer
func NewSignerRegistry() *SignerRegistry {
	return &SignerRegistry{signers: []Signer{NewSigner()}}
}

// NewSignerRegistryFrom creates a registry from existing signers.
// An empty input yields a registry with one empty signer.
func NewSignerRegistryFrom(signers []Signer) *SignerRegistry {
	if len(signers) == 0 {
		return NewSignerRegistry()
	}
	r := &SignerRegistry{signers: make([]Signer, len(signers))}
	for i, s := range signers {
		if s.Role == "" {
			s.Role = RoleMember
		}
		r.signers[i] = s
	}
	return r
}

// Add appends an empty Member signer
func (r *SignerRegistry) Add() {
	r.signers = append(r.signers, NewSigner())
}

// Remove deletes the signer at index. Removing the last remaining signer
// or an out-of-range index is a no-op.
func (r *SignerRegistry) Remove(index int) {
	if len(r.signers) <= 1 || index < 0 || index >= len(r.signers) {
		return
	}
	r.signers = append(r.signers[:index], r.signers[index+1:]...)
}

// Update sets one field of the signer at index. No validation happens here.
func (r *SignerRegistry) Update(index int, field SignerField, value string) {
	if index < 0 || index >= len(r.signers) {
		return
	}
	switch field {
	case SignerFieldName:
		r.signers[index].Name = value
	case SignerFieldAddress:
		r.signers[index].Address = value
	case SignerFieldRole:
		r.signers[index].Role = SignerRole(value)
	}
}

// Replace discards every signer and installs n fresh empty ones (at least one)
func (r *SignerRegistry) Replace(n int) {
	if n < 1 {
		n = 1
	}
	r.signers = lo.Times(n, func(int) Signer { return NewSigner() })
}

// ValidCount returns the number of signers with both name and address set
func (r *SignerRegistry) ValidCount() int {
	return lo.CountBy(r.signers, Signer.IsValid)
}

// Valid returns a copy of the valid signers in registry order
func (r *SignerRegistry) Valid() []Signer {
	return lo.Filter(r.signers, func(s Signer, _ int) bool { return s.IsValid() })
}

// Len returns the number of rows in the registry
func (r *SignerRegistry) Len() int {
	return len(r.signers)
}

// Signers returns a copy of all rows
func (r *SignerRegistry) Signers() []Signer {
	out := make([]Signer, len(r.signers))
	copy(out, r.signers)
	return out
}

// Clone returns an independent copy of the registry
func (r *SignerRegistry) Clone() *SignerRegistry {
	return &SignerRegistry{signers: r.Signers()}
}
