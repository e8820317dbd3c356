package usecase

import (
	"context"

	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
)

// ShowConfigResult contains the result of showing configuration
type ShowConfigResult struct {
	Config       *config.LocalConfig
	ConfigPath   string
	Exists       bool
	ConfigSource string
	Wizard       config.WizardConfig
}

// ShowConfig is a use case for showing configuration
type ShowConfig struct {
	store   LocalConfigRepository
	runtime *config.RuntimeConfig
}

// NewShowConfig creates a new ShowConfig use case
func NewShowConfig(store LocalConfigRepository, runtime *config.RuntimeConfig) *ShowConfig {
	return &ShowConfig{
		store:   store,
		runtime: runtime,
	}
}

// Run executes the show config use case
func (uc *ShowConfig) Run(ctx context.Context) (*ShowConfigResult, error) {
	exists := uc.store.Exists()

	cfg, err := uc.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &ShowConfigResult{
		Config:       cfg,
		ConfigPath:   uc.store.GetPath(),
		Exists:       exists,
		ConfigSource: uc.runtime.ConfigSource,
		Wizard:       uc.runtime.Wizard,
	}, nil
}
