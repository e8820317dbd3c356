package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

// PresetsRenderer renders the preset catalogue
type PresetsRenderer struct {
	out  io.Writer
	json bool
}

// NewPresetsRenderer creates a new presets renderer
func NewPresetsRenderer(out io.Writer, asJSON bool) *PresetsRenderer {
	return &PresetsRenderer{
		out:  out,
		json: asJSON,
	}
}

// Render renders the preset table
func (r *PresetsRenderer) Render(result *usecase.ListPresetsResult) error {
	if r.json {
		data, err := json.MarshalIndent(result.Presets, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal presets: %w", err)
		}
		fmt.Fprintln(r.out, string(data))
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight:     "   ",
		MiddleHorizontal: "─",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	t.AppendHeader(table.Row{"Preset", "Threshold", "Signers", "Description"})
	for _, p := range result.Presets {
		tag := string(p.Tag)
		if p.Default {
			tag = color.New(color.FgGreen, color.Bold).Sprint(tag + " *")
		}
		threshold := strconv.Itoa(p.RequiredSignatures)
		if !p.InRange {
			threshold = color.New(color.FgYellow).Sprint(threshold + " !")
		}
		t.AppendRow(table.Row{tag, threshold, p.SignerCount, p.Description})
	}

	fmt.Fprintln(r.out, t.Render())
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, faintStyle.Sprint("Presets replace the threshold and every signer row. * marks the configured default."))
	return nil
}

var _ Renderer[*usecase.ListPresetsResult] = (*PresetsRenderer)(nil)
