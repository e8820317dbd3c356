package app

import (
	"log/slog"

	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Logger *slog.Logger

	// Use cases
	CreatePolicy   *usecase.CreatePolicy
	ValidatePolicy *usecase.ValidatePolicy
	ListPresets    *usecase.ListPresets
	ShowConfig     *usecase.ShowConfig
	SetConfig      *usecase.SetConfig
	RemoveConfig   *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	logger *slog.Logger,
	createPolicy *usecase.CreatePolicy,
	validatePolicy *usecase.ValidatePolicy,
	listPresets *usecase.ListPresets,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:         cfg,
		Logger:         logger,
		CreatePolicy:   createPolicy,
		ValidatePolicy: validatePolicy,
		ListPresets:    listPresets,
		ShowConfig:     showConfig,
		SetConfig:      setConfig,
		RemoveConfig:   removeConfig,
	}, nil
}
