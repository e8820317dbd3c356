package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treasury-cli/internal/adapters/progress"
	"github.com/trebuchet-org/treasury-cli/internal/app"
	"github.com/trebuchet-org/treasury-cli/internal/cli/render"
	"github.com/trebuchet-org/treasury-cli/internal/config"
	"github.com/trebuchet-org/treasury-cli/internal/domain"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// Exit codes returned by HandleError
const (
	ExitError     = 1
	ExitInvalid   = 2
	ExitCancelled = 130
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "treasury",
		Short: "Multi-signature treasury policy wizard",
		Long: `Treasury walks you through declaring a multi-signature treasury policy:
who may sign, how many signatures are required and, optionally, the
time window in which transactions may execute.

Policies are built interactively (mode -> configuration -> review) or
non-interactively from a YAML, TOML or JSON draft file.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsApp(cmd.Name()) {
				return nil
			}

			projectRoot := config.FindProjectRoot()
			v := config.SetupViper(projectRoot, cmd)

			appInstance, err := app.InitApp(v, newProgressSink(cmd))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	createCmd := NewCreateCmd()
	createCmd.GroupID = "main"
	rootCmd.AddCommand(createCmd)

	validateCmd := NewValidateCmd()
	validateCmd.GroupID = "main"
	rootCmd.AddCommand(validateCmd)

	presetsCmd := NewPresetsCmd()
	presetsCmd.GroupID = "main"
	rootCmd.AddCommand(presetsCmd)

	configCmd := NewConfigCmd()
	configCmd.GroupID = "management"
	rootCmd.AddCommand(configCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// needsApp reports whether a command runs use cases
func needsApp(cmdName string) bool {
	switch cmdName {
	case "version", "help", "completion", "treasury":
		return false
	default:
		return true
	}
}

// newProgressSink picks the spinner unless output must stay machine readable
func newProgressSink(cmd *cobra.Command) usecase.ProgressSink {
	if f := cmd.Flag("json"); f != nil && f.Value.String() == "true" {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// HandleError prints err and returns the process exit code. Invalid policies
// have already been reported by the command, so only the code is returned.
func HandleError(w io.Writer, err error) int {
	switch {
	case errors.Is(err, domain.ErrPolicyInvalid):
		return ExitInvalid
	case errors.Is(err, domain.ErrWizardCancelled):
		fmt.Fprintln(w, render.FormatWarning("Policy creation cancelled"))
		return ExitCancelled
	default:
		fmt.Fprintln(w, render.FormatError(err.Error()))
		return ExitError
	}
}
