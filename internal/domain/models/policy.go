package models

import (
	"fmt"
	"strings"
)

// PolicyMode controls which configuration surfaces a policy exposes
type PolicyMode string

const (
	// ModeSimple hides presets and forces the timelock off
	ModeSimple PolicyMode = "simple"
	// ModeAdvanced exposes the timelock window and presets
	ModeAdvanced PolicyMode = "advanced"
	// ModeFull additionally exposes the structural editor
	ModeFull PolicyMode = "full"
)

// AllModes lists the modes in the order they are offered
var AllModes = []PolicyMode{ModeSimple, ModeAdvanced, ModeFull}

// ParsePolicyMode converts a string to a PolicyMode
func ParsePolicyMode(s string) (PolicyMode, error) {
	switch PolicyMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSimple:
		return ModeSimple, nil
	case ModeAdvanced:
		return ModeAdvanced, nil
	case ModeFull:
		return ModeFull, nil
	default:
		return "", fmt.Errorf("unknown policy mode %q (expected simple, advanced or full)", s)
	}
}

// ExposesTimelock reports whether the mode offers timelock and preset controls
func (m PolicyMode) ExposesTimelock() bool {
	return m == ModeAdvanced || m == ModeFull
}

// DefaultRequiredSignatures is the threshold a new policy starts with
const DefaultRequiredSignatures = 2

// MultisigPolicy is the policy declaration built up by the creation wizard
type MultisigPolicy struct {
	Mode               PolicyMode      `json:"mode"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	RequiredSignatures int             `json:"requiredSignatures"`
	Signers            *SignerRegistry `json:"-"`
	TimelockEnabled    bool            `json:"timelockEnabled"`
	Timelock           TimelockWindow  `json:"timelock"`
	PresetConfig       PresetTag       `json:"presetConfig"`
}

// NewMultisigPolicy creates a policy with one empty signer and the default threshold
func NewMultisigPolicy(mode PolicyMode) *MultisigPolicy {
	p := &MultisigPolicy{
		Mode:               ModeSimple,
		RequiredSignatures: DefaultRequiredSignatures,
		Signers:            NewSignerRegistry(),
		PresetConfig:       PresetCustom,
	}
	p.OnModeChange(mode)
	return p
}

// OnModeChange switches the policy mode. Entering Simple mode is a one-way
// cascade: the timelock is switched off and both boundaries are cleared.
func (p *MultisigPolicy) OnModeChange(mode PolicyMode) {
	p.Mode = mode
	if mode == ModeSimple {
		p.TimelockEnabled = false
		p.Timelock.Reset()
	}
	p.Timelock.Recompute(p.timelockActive())
}

// SetTimelockEnabled flips the top-level timelock switch and re-derives slots
func (p *MultisigPolicy) SetTimelockEnabled(enabled bool) {
	p.TimelockEnabled = enabled
	p.Timelock.Recompute(p.timelockActive())
}

// SetBoundary mutates one timelock boundary field
func (p *MultisigPolicy) SetBoundary(which BoundaryKind, field BoundaryField, value string) {
	p.Timelock.SetBoundary(which, field, value, p.timelockActive())
}

// DescribeTimelock summarises the timelock window for display
func (p *MultisigPolicy) DescribeTimelock() string {
	return p.Timelock.Describe(p.timelockActive())
}

// TimelockActive reports whether timelock constraints apply to this policy
func (p *MultisigPolicy) TimelockActive() bool {
	return p.timelockActive()
}

func (p *MultisigPolicy) timelockActive() bool {
	return p.Mode != ModeSimple && p.TimelockEnabled
}

// Snapshot returns a deep copy suitable for read-only rendering
func (p *MultisigPolicy) Snapshot() *MultisigPolicy {
	cp := *p
	if p.Signers != nil {
		cp.Signers = p.Signers.Clone()
	} else {
		cp.Signers = NewSignerRegistry()
	}
	cp.Timelock = p.Timelock.Clone()
	return &cp
}
