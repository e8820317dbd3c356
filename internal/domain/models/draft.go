package models

// PolicyDraft is a policy declaration read from a file. Struct tags on the
// draft bound the input domain; cross-field invariants are left to the
// policy validator.
type PolicyDraft struct {
	Mode               string         `json:"mode" yaml:"mode" toml:"mode" validate:"omitempty,oneof=simple advanced full"`
	Name               string         `json:"name" yaml:"name" toml:"name" validate:"max=128"`
	Description        string         `json:"description" yaml:"description" toml:"description" validate:"max=1024"`
	RequiredSignatures int            `json:"requiredSignatures" yaml:"requiredSignatures" toml:"required_signatures" validate:"gte=0"`
	Preset             string         `json:"preset" yaml:"preset" toml:"preset" validate:"omitempty,oneof=custom 2-of-3 3-of-5"`
	Signers            []SignerDraft  `json:"signers" yaml:"signers" toml:"signers" validate:"dive"`
	Timelock           *TimelockDraft `json:"timelock" yaml:"timelock" toml:"timelock"`
}

// SignerDraft is a signer row in a draft file
type SignerDraft struct {
	Name    string `json:"name" yaml:"name" toml:"name" validate:"max=128"`
	Address string `json:"address" yaml:"address" toml:"address" validate:"max=256"`
	Role    string `json:"role" yaml:"role" toml:"role"`
}

// TimelockDraft is the timelock section of a draft file
type TimelockDraft struct {
	Enabled bool          `json:"enabled" yaml:"enabled" toml:"enabled"`
	After   BoundaryDraft `json:"after" yaml:"after" toml:"after"`
	Before  BoundaryDraft `json:"before" yaml:"before" toml:"before"`
}

// BoundaryDraft is one timelock boundary in a draft file
type BoundaryDraft struct {
	Enabled bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	Date    string `json:"date" yaml:"date" toml:"date"`
	Time    string `json:"time" yaml:"time" toml:"time"`
}

// Override replaces the draft's mode and preset with non-empty values.
// Overrides must be applied before ToPolicy so the timelock section is read
// under the overriding mode.
func (d *PolicyDraft) Override(mode PolicyMode, preset PresetTag) {
	if mode != "" {
		d.Mode = string(mode)
	}
	if preset != "" {
		d.Preset = string(preset)
	}
}

// ToPolicy builds a policy from the draft the same way the wizard would:
// mode first (running the cascade), then the preset, then explicit values.
// Explicit signers fill the preset rows in order; an explicit threshold
// overrides the preset's. The preset tag is kept even when overridden.
func (d *PolicyDraft) ToPolicy(defaultMode PolicyMode) *MultisigPolicy {
	mode := defaultMode
	if parsed, err := ParsePolicyMode(d.Mode); err == nil {
		mode = parsed
	}

	p := NewMultisigPolicy(mode)
	p.Name = d.Name
	p.Description = d.Description

	if d.Preset != "" {
		ApplyPreset(p, PresetTag(d.Preset))
	}

	for i, s := range d.Signers {
		if i >= p.Signers.Len() {
			p.Signers.Add()
		}
		p.Signers.Update(i, SignerFieldName, s.Name)
		p.Signers.Update(i, SignerFieldAddress, s.Address)
		if s.Role != "" {
			p.Signers.Update(i, SignerFieldRole, s.Role)
		}
	}

	if d.RequiredSignatures > 0 {
		p.RequiredSignatures = d.RequiredSignatures
	}

	if d.Timelock != nil && mode.ExposesTimelock() {
		p.Timelock.After = TimelockBoundary{Enabled: d.Timelock.After.Enabled, Date: d.Timelock.After.Date, Time: d.Timelock.After.Time}
		p.Timelock.Before = TimelockBoundary{Enabled: d.Timelock.Before.Enabled, Date: d.Timelock.Before.Date, Time: d.Timelock.Before.Time}
		p.SetTimelockEnabled(d.Timelock.Enabled)
	}

	return p
}
