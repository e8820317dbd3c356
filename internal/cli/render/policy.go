package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/treasury-cli/internal/domain"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	labelStyle     = color.New(color.Bold)
	idStyle        = color.New(color.FgCyan)
	faintStyle     = color.New(color.Faint)
	roleStyle      = color.New(color.FgYellow)
	violationStyle = color.New(color.FgRed)
)

// PolicyRenderer renders policies, descriptors and validation results
type PolicyRenderer struct {
	out  io.Writer
	json bool
}

// NewPolicyRenderer creates a new policy renderer
func NewPolicyRenderer(out io.Writer, asJSON bool) *PolicyRenderer {
	return &PolicyRenderer{
		out:  out,
		json: asJSON,
	}
}

// Render renders the outcome of the creation wizard
func (r *PolicyRenderer) Render(result *usecase.CreatePolicyResult) error {
	if r.json {
		return r.writeJSON(createOutput{
			Descriptor: result.Descriptor,
			Validation: result.Validation,
			Timelock:   result.Timelock,
		})
	}

	d := result.Descriptor
	if d == nil {
		fmt.Fprintln(r.out, FormatWarning("No policy was created"))
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess("Policy created"))
	fmt.Fprintln(r.out)

	r.field("ID", idStyle.Sprint(d.ID))
	r.field("Name", d.Name)
	if d.Description != "" {
		r.field("Description", d.Description)
	}
	r.field("Mode", titleCase(string(d.Mode)))
	r.field("Threshold", fmt.Sprintf("%d of %d signers", d.RequiredSignatures, len(d.Signers)))
	if d.Mode.ExposesTimelock() {
		r.field("Preset", string(d.Preset))
		r.field("Timelock", result.Timelock)
	}
	r.field("Created", faintStyle.Sprint(d.CreatedAt.Format("2006-01-02 15:04:05 UTC")))
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, renderSigners(d.Signers))
	return nil
}

// RenderValidation renders a draft validation report
func (r *PolicyRenderer) RenderValidation(result *usecase.ValidatePolicyResult) error {
	if r.json {
		return r.writeJSON(validateOutput{
			Path:       result.Path,
			Policy:     result.Policy,
			Signers:    result.Policy.Signers.Signers(),
			Validation: result.Validation,
			Timelock:   result.Timelock,
		})
	}

	p := result.Policy
	labelStyle.Fprintf(r.out, "%s\n\n", result.Path)

	r.field("Name", orNotSet(p.Name))
	if p.Description != "" {
		r.field("Description", p.Description)
	}
	r.field("Mode", titleCase(string(p.Mode)))
	r.field("Threshold", fmt.Sprintf("%d of %d valid signers", p.RequiredSignatures, p.Signers.ValidCount()))
	if p.Mode.ExposesTimelock() {
		r.field("Preset", string(p.PresetConfig))
		r.field("Timelock", result.Timelock)
	}
	fmt.Fprintln(r.out)

	fmt.Fprintln(r.out, renderSigners(p.Signers.Signers()))
	fmt.Fprintln(r.out)

	r.renderViolations(result.Validation)
	return nil
}

func (r *PolicyRenderer) renderViolations(v domain.ValidationResult) {
	if v.Valid {
		fmt.Fprintln(r.out, FormatSuccess("Policy is valid"))
		return
	}

	noun := "problem"
	if len(v.Violations) > 1 {
		noun = "problems"
	}
	fmt.Fprintln(r.out, violationStyle.Sprintf("❌ Policy has %d %s:", len(v.Violations), noun))
	for _, kind := range v.Violations {
		fmt.Fprintf(r.out, "  • %s %s\n", kind.Message(), faintStyle.Sprintf("(%s)", kind))
	}
}

func (r *PolicyRenderer) field(label, value string) {
	fmt.Fprintf(r.out, "%s %s\n", labelStyle.Sprintf("%-12s", label+":"), value)
}

func (r *PolicyRenderer) writeJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(r.out, string(data))
	return nil
}

type createOutput struct {
	Descriptor *models.PolicyDescriptor `json:"descriptor"`
	Validation domain.ValidationResult  `json:"validation"`
	Timelock   string                   `json:"timelock"`
}

type validateOutput struct {
	Path       string                  `json:"path"`
	Policy     *models.MultisigPolicy  `json:"policy"`
	Signers    []models.Signer         `json:"signers"`
	Validation domain.ValidationResult `json:"validation"`
	Timelock   string                  `json:"timelock"`
}

// renderSigners renders the signer table
func renderSigners(signers []models.Signer) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Box = table.BoxStyle{
		PaddingRight:     "   ",
		MiddleHorizontal: "─",
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, WidthMax: 44},
	})

	t.AppendHeader(table.Row{"#", "Name", "Address", "Role", "Format"})
	for i, s := range signers {
		t.AppendRow(table.Row{
			strconv.Itoa(i + 1),
			orNotSet(s.Name),
			orNotSet(s.Address),
			roleStyle.Sprint(s.Role),
			addressFormat(s.Address),
		})
	}
	return t.Render()
}

// addressFormat tells EVM addresses apart from free-form identifiers.
// Addresses are not validated beyond non-emptiness.
func addressFormat(address string) string {
	switch {
	case address == "":
		return ""
	case common.IsHexAddress(address):
		return "evm"
	default:
		return faintStyle.Sprint("other")
	}
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func orNotSet(s string) string {
	if s == "" {
		return faintStyle.Sprint("(not set)")
	}
	return s
}

var (
	_ Renderer[*usecase.CreatePolicyResult] = (*PolicyRenderer)(nil)
)
