package usecase

import (
	"context"

	"github.com/samber/lo"
	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
)

// ListPresets returns the named policy presets
type ListPresets struct {
	config *config.RuntimeConfig
}

// NewListPresets creates a new list presets use case
func NewListPresets(cfg *config.RuntimeConfig) *ListPresets {
	return &ListPresets{config: cfg}
}

// PresetEntry is a preset annotated for display
type PresetEntry struct {
	models.Preset
	// Default marks the preset configured as the wizard default
	Default bool `json:"default"`
	// InRange reports whether the preset threshold fits the configured bounds
	InRange bool `json:"inRange"`
}

// ListPresetsResult contains the preset catalogue
type ListPresetsResult struct {
	Presets []PresetEntry
}

// Run returns every preset in catalogue order
func (uc *ListPresets) Run(ctx context.Context) (*ListPresetsResult, error) {
	entries := lo.Map(models.Presets(), func(p models.Preset, _ int) PresetEntry {
		return PresetEntry{
			Preset:  p,
			Default: p.Tag == uc.config.DefaultPreset,
			InRange: uc.config.Wizard.ThresholdInRange(p.RequiredSignatures),
		}
	})
	return &ListPresetsResult{Presets: entries}, nil
}
