package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treasury-cli/internal/cli/render"
	"github.com/trebuchet-org/treasury-cli/internal/domain"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

type createFlags struct {
	mode     string
	from     string
	preset   string
	skipMode bool
	json     bool
}

// NewCreateCmd creates the create command
func NewCreateCmd() *cobra.Command {
	flags := &createFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a multi-signature treasury policy",
		Long: `Create a multi-signature treasury policy.

Without --from the wizard runs interactively:
  1. Mode          simple, advanced or full
  2. Configuration name, threshold, signers and (advanced/full) the timelock
  3. Review        confirm and create the policy

With --from the policy is read from a YAML, TOML or JSON draft and created
without prompts. Invalid drafts are reported and nothing is created.

Examples:
  treasury create
  treasury create --mode advanced --preset 3-of-5
  treasury create --from policy.yaml --json`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "Policy mode (simple, advanced, full)")
	cmd.Flags().StringVarP(&flags.from, "from", "f", "", "Create the policy from a draft file")
	cmd.Flags().StringVar(&flags.preset, "preset", "", "Start from a preset (2-of-3, 3-of-5)")
	cmd.Flags().BoolVar(&flags.skipMode, "skip-mode", false, "Start on the configuration step")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Output the created policy as JSON")

	return cmd
}

func runCreate(cmd *cobra.Command, flags *createFlags) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	params := usecase.CreatePolicyParams{
		DraftPath:    flags.from,
		SkipModeStep: flags.skipMode,
	}
	if flags.mode != "" {
		mode, err := models.ParsePolicyMode(flags.mode)
		if err != nil {
			return err
		}
		params.Mode = mode
	}
	if flags.preset != "" {
		tag := models.PresetTag(flags.preset)
		if _, ok := models.LookupPreset(tag); !ok && tag != models.PresetCustom {
			return fmt.Errorf("unknown preset %q", flags.preset)
		}
		params.Preset = tag
	}

	result, err := app.CreatePolicy.Run(cmd.Context(), params)

	var invalid domain.PolicyInvalidErr
	if errors.As(err, &invalid) && result != nil {
		renderer := render.NewPolicyRenderer(cmd.OutOrStdout(), flags.json)
		if rerr := renderer.RenderValidation(&usecase.ValidatePolicyResult{
			Path:       flags.from,
			Policy:     result.Policy,
			Validation: result.Validation,
			Timelock:   result.Timelock,
		}); rerr != nil {
			return rerr
		}
		return err
	}
	if err != nil {
		return err
	}

	renderer := render.NewPolicyRenderer(cmd.OutOrStdout(), flags.json)
	return renderer.Render(result)
}
