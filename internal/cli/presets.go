package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/treasury-cli/internal/cli/render"
)

// NewPresetsCmd creates the presets command
func NewPresetsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:          "presets",
		Short:        "List the named policy presets",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListPresets.Run(cmd.Context())
			if err != nil {
				return err
			}

			renderer := render.NewPresetsRenderer(cmd.OutOrStdout(), jsonOutput)
			return renderer.Render(result)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output presets as JSON")

	return cmd
}
