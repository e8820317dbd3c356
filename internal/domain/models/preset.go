package models

import "github.com/samber/lo"

// PresetTag identifies a named signer/threshold configuration
type PresetTag string

const (
	PresetCustom PresetTag = "custom"
	Preset2Of3   PresetTag = "2-of-3"
	Preset3Of5   PresetTag = "3-of-5"
)

// Preset is a predefined threshold and signer count
type Preset struct {
	Tag                PresetTag `json:"tag"`
	Description        string    `json:"description"`
	RequiredSignatures int       `json:"requiredSignatures"`
	SignerCount        int       `json:"signerCount"`
}

var presets = []Preset{
	{Tag: Preset2Of3, Description: "Small team treasury", RequiredSignatures: 2, SignerCount: 3},
	{Tag: Preset3Of5, Description: "Council-controlled treasury", RequiredSignatures: 3, SignerCount: 5},
}

// Presets returns the catalogue of named presets
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// LookupPreset finds a preset by tag
func LookupPreset(tag PresetTag) (Preset, bool) {
	return lo.Find(presets, func(p Preset) bool { return p.Tag == tag })
}

// ApplyPreset replaces the threshold and the whole signer registry with the
// preset's values. Previously entered signers are discarded. Unknown tags and
// "custom" leave the policy untouched. It reports whether a preset was applied.
func ApplyPreset(p *MultisigPolicy, tag PresetTag) bool {
	preset, ok := LookupPreset(tag)
	if !ok {
		return false
	}

	if p.Signers == nil {
		p.Signers = NewSignerRegistry()
	}
	p.RequiredSignatures = preset.RequiredSignatures
	p.Signers.Replace(preset.SignerCount)
	p.PresetConfig = preset.Tag
	return true
}
