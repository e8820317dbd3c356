package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treasury-cli/internal/cli/render"
	"github.com/trebuchet-org/treasury-cli/internal/domain"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

// NewValidateCmd creates the validate command
func NewValidateCmd() *cobra.Command {
	var mode string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "validate <draft>",
		Short: "Check a policy draft without creating it",
		Long: `Load a policy draft and report every rule it breaks.

The draft is built into a policy exactly as the wizard would build it:
the mode is applied first, then the preset, then explicit values.
Exits with status 2 when the policy is invalid.

Examples:
  treasury validate policy.yaml
  treasury validate policy.toml --mode simple
  treasury validate policy.json --json`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ValidatePolicyParams{DraftPath: args[0]}
			if mode != "" {
				parsed, err := models.ParsePolicyMode(mode)
				if err != nil {
					return err
				}
				params.Mode = parsed
			}

			result, err := app.ValidatePolicy.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderer := render.NewPolicyRenderer(cmd.OutOrStdout(), jsonOutput)
			if err := renderer.RenderValidation(result); err != nil {
				return err
			}

			if !result.Validation.Valid {
				return domain.PolicyInvalidErr{Violations: result.Validation.Violations}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Override the draft's mode (simple, advanced, full)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")

	return cmd
}
