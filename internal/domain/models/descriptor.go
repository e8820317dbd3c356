package models

import "time"

// PolicyDescriptor is the final declaration produced when the wizard reaches
// the Created step. It carries only valid signers and resolved slots.
type PolicyDescriptor struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description,omitempty"`
	Mode               PolicyMode `json:"mode"`
	RequiredSignatures int        `json:"requiredSignatures"`
	Signers            []Signer   `json:"signers"`
	ValidAfter         *int64     `json:"validAfter,omitempty"`
	ValidBefore        *int64     `json:"validBefore,omitempty"`
	Preset             PresetTag  `json:"preset"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// NewPolicyDescriptor builds the descriptor body from a policy. ID and
// CreatedAt are left for the submitter to fill in.
func NewPolicyDescriptor(p *MultisigPolicy) *PolicyDescriptor {
	snap := p.Snapshot()
	d := &PolicyDescriptor{
		Name:               snap.Name,
		Description:        snap.Description,
		Mode:               snap.Mode,
		RequiredSignatures: snap.RequiredSignatures,
		Signers:            snap.Signers.Valid(),
		Preset:             snap.PresetConfig,
	}
	if snap.TimelockActive() {
		if snap.Timelock.After.Enabled {
			d.ValidAfter = snap.Timelock.After.Slot
		}
		if snap.Timelock.Before.Enabled {
			d.ValidBefore = snap.Timelock.Before.Slot
		}
	}
	return d
}
