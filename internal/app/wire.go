//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treasury-cli/internal/adapters"
	"github.com/trebuchet-org/treasury-cli/internal/config"
	"github.com/trebuchet-org/treasury-cli/internal/logging"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewCreatePolicy,
		usecase.NewValidatePolicy,
		usecase.NewListPresets,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
