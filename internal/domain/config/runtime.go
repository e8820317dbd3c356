package config

import (
	"time"

	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Wizard defaults (flags > env > config.local.json > treasury.toml)
	DefaultMode   models.PolicyMode
	DefaultPreset models.PresetTag
	Wizard        WizardConfig

	// Config source tracking
	ConfigSource string // "treasury.toml" or "defaults"
}

// WizardConfig tunes the policy creation wizard
type WizardConfig struct {
	// SubmitDelay is the simulated processing time of the Review -> Created step
	SubmitDelay time.Duration `toml:"submit_delay"`
	// MinSignatures and MaxSignatures bound the selectable threshold
	MinSignatures int `toml:"min_signatures"`
	MaxSignatures int `toml:"max_signatures"`
	// SkipModeStep starts the wizard directly on the configuration step
	SkipModeStep bool `toml:"skip_mode_step"`
}

// DefaultWizardConfig returns the wizard settings used when treasury.toml is absent
func DefaultWizardConfig() WizardConfig {
	return WizardConfig{
		SubmitDelay:   1500 * time.Millisecond,
		MinSignatures: 2,
		MaxSignatures: 7,
	}
}

// ThresholdInRange reports whether n is a selectable threshold
func (w WizardConfig) ThresholdInRange(n int) bool {
	return n >= w.MinSignatures && n <= w.MaxSignatures
}

// ProjectFile is the layout of treasury.toml
type ProjectFile struct {
	Defaults struct {
		Mode   string `toml:"mode"`
		Preset string `toml:"preset"`
	} `toml:"defaults"`
	Wizard WizardConfig `toml:"wizard"`
}
