package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/treasury-cli/internal/domain"
	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	headerStyle    = color.New(color.FgCyan, color.Bold)
	faintStyle     = color.New(color.Faint)
	violationStyle = color.New(color.FgRed)
	okStyle        = color.New(color.FgGreen)
)

var selectTemplates = &promptui.SelectTemplates{
	Label:    "{{ . }}",
	Active:   "▸ {{ . | cyan }}",
	Inactive: "  {{ . | faint }}",
	Selected: "✓ {{ . | green }}",
	Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select, / to search"),
}

// PromptAdapter collects policy input with promptui
type PromptAdapter struct {
	config *config.RuntimeConfig
	out    io.Writer
}

// NewPromptAdapter creates a new prompt adapter
func NewPromptAdapter(cfg *config.RuntimeConfig) *PromptAdapter {
	return &PromptAdapter{config: cfg, out: os.Stdout}
}

type option[T any] struct {
	label string
	value T
}

// choose runs a select over options and returns the chosen value
func choose[T any](p *PromptAdapter, label string, options []option[T], cursor int) (T, error) {
	var zero T
	if p.config.NonInteractive {
		return zero, domain.ErrNonInteractive
	}

	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.label
	}

	sel := promptui.Select{
		Label:     label,
		Items:     labels,
		Templates: selectTemplates,
		Size:      12,
		CursorPos: clamp(cursor, 0, len(labels)-1),
		Searcher:  createFuzzySearchFunc(labels),
	}

	index, _, err := sel.Run()
	if err != nil {
		return zero, wrapPromptErr(err)
	}
	return options[index].value, nil
}

// SelectMode asks which configuration mode to use
func (p *PromptAdapter) SelectMode(_ context.Context, current models.PolicyMode) (models.PolicyMode, error) {
	descriptions := map[models.PolicyMode]string{
		models.ModeSimple:   "Simple   - threshold and signers only",
		models.ModeAdvanced: "Advanced - adds presets and a timelock window",
		models.ModeFull:     "Full     - advanced plus the structure editor",
	}

	options := make([]option[models.PolicyMode], 0, len(models.AllModes))
	cursor := 0
	for i, m := range models.AllModes {
		options = append(options, option[models.PolicyMode]{label: descriptions[m], value: m})
		if m == current {
			cursor = i
		}
	}
	return choose(p, "Select policy mode", options, cursor)
}

// SelectConfigAction draws the configuration form and asks for the next action
func (p *PromptAdapter) SelectConfigAction(_ context.Context, view usecase.ConfigView) (usecase.ConfigAction, error) {
	p.printForm(view)

	policy := view.Policy
	options := []option[usecase.ConfigAction]{
		{label: fmt.Sprintf("Name: %s", placeholder(policy.Name)), value: usecase.ActionEditName},
		{label: fmt.Sprintf("Description: %s", placeholder(policy.Description)), value: usecase.ActionEditDescription},
		{label: fmt.Sprintf("Required signatures: %d", policy.RequiredSignatures), value: usecase.ActionEditThreshold},
	}
	if policy.Mode.ExposesTimelock() {
		options = append(options, option[usecase.ConfigAction]{
			label: fmt.Sprintf("Apply preset (current: %s)", policy.PresetConfig), value: usecase.ActionApplyPreset,
		})
	}
	options = append(options,
		option[usecase.ConfigAction]{label: "Add signer", value: usecase.ActionAddSigner},
		option[usecase.ConfigAction]{label: "Edit signer", value: usecase.ActionEditSigner},
	)
	if policy.Signers.Len() > 1 {
		options = append(options, option[usecase.ConfigAction]{label: "Remove signer", value: usecase.ActionRemoveSigner})
	}
	if policy.Mode.ExposesTimelock() {
		state := "off"
		if policy.TimelockEnabled {
			state = "on"
		}
		options = append(options, option[usecase.ConfigAction]{
			label: fmt.Sprintf("Timelock: %s (toggle)", state), value: usecase.ActionToggleTimelock,
		})
		if policy.TimelockActive() {
			options = append(options, option[usecase.ConfigAction]{label: "Edit timelock boundaries", value: usecase.ActionEditBoundary})
		}
	}

	cont := "Continue to review"
	if !view.CanAdvance {
		cont += " (blocked)"
	}
	options = append(options,
		option[usecase.ConfigAction]{label: cont, value: usecase.ActionContinue},
		option[usecase.ConfigAction]{label: "Back to mode selection", value: usecase.ActionBack},
		option[usecase.ConfigAction]{label: "Cancel", value: usecase.ActionCancel},
	)

	return choose(p, "Configure policy", options, 0)
}

// printForm writes the current policy and its violations above the menu
func (p *PromptAdapter) printForm(view usecase.ConfigView) {
	policy := view.Policy
	fmt.Fprintln(p.out)
	headerStyle.Fprintf(p.out, "%s policy\n", cases.Title(language.English).String(string(policy.Mode)))

	valid := policy.Signers.ValidCount()
	fmt.Fprintf(p.out, "Signers (%d valid, %d required):\n", valid, policy.RequiredSignatures)
	for i, s := range policy.Signers.Signers() {
		marker := okStyle.Sprint("✓")
		if !s.IsValid() {
			marker = violationStyle.Sprint("○")
		}
		fmt.Fprintf(p.out, "  %s #%d %s %s %s\n", marker, i+1,
			placeholder(s.Name), faintStyle.Sprint(placeholder(s.Address)), faintStyle.Sprintf("[%s]", s.Role))
	}

	if policy.Mode.ExposesTimelock() {
		fmt.Fprintf(p.out, "Timelock: %s\n", policy.DescribeTimelock())
	}

	for _, v := range view.Validation.Violations {
		violationStyle.Fprintf(p.out, "  ✗ %s\n", v.Message())
	}
	fmt.Fprintln(p.out)
}

// SelectPreset asks for a preset tag
func (p *PromptAdapter) SelectPreset(_ context.Context, current models.PresetTag) (models.PresetTag, error) {
	options := []option[models.PresetTag]{{label: "custom - keep current signers", value: models.PresetCustom}}
	cursor := 0
	for i, preset := range models.Presets() {
		options = append(options, option[models.PresetTag]{
			label: fmt.Sprintf("%s - %s", preset.Tag, preset.Description),
			value: preset.Tag,
		})
		if preset.Tag == current {
			cursor = i + 1
		}
	}
	return choose(p, "Select preset", options, cursor)
}

// SelectSigner asks for a signer row
func (p *PromptAdapter) SelectSigner(_ context.Context, signers []models.Signer, prompt string) (int, error) {
	options := make([]option[int], len(signers))
	for i, s := range signers {
		options[i] = option[int]{
			label: fmt.Sprintf("#%d %s (%s)", i+1, placeholder(s.Name), placeholder(s.Address)),
			value: i,
		}
	}
	return choose(p, prompt, options, 0)
}

// SelectRole asks for a signer role
func (p *PromptAdapter) SelectRole(_ context.Context, current models.SignerRole) (models.SignerRole, error) {
	options := make([]option[models.SignerRole], 0, len(models.KnownRoles)+1)
	cursor := 0
	for i, r := range models.KnownRoles {
		options = append(options, option[models.SignerRole]{label: string(r), value: r})
		if r == current {
			cursor = i
		}
	}
	// keep roles that came from a draft
	if cursor == 0 && current != "" && current != models.KnownRoles[0] {
		options = append(options, option[models.SignerRole]{label: string(current), value: current})
		cursor = len(options) - 1
	}
	return choose(p, "Select role", options, cursor)
}

// SelectBoundary asks which timelock boundary to edit
func (p *PromptAdapter) SelectBoundary(_ context.Context, window models.TimelockWindow) (models.BoundaryKind, error) {
	describe := func(name string, b models.TimelockBoundary) string {
		if !b.Enabled {
			return fmt.Sprintf("%s: disabled", name)
		}
		return fmt.Sprintf("%s: %s %s", name, placeholder(b.Date), placeholder(b.Time))
	}
	options := []option[models.BoundaryKind]{
		{label: describe("After", window.After), value: models.BoundaryAfter},
		{label: describe("Before", window.Before), value: models.BoundaryBefore},
	}
	return choose(p, "Select timelock boundary", options, 0)
}

// PromptText asks for a free text value
func (p *PromptAdapter) PromptText(_ context.Context, label, current string, validate func(string) error) (string, error) {
	if p.config.NonInteractive {
		return "", domain.ErrNonInteractive
	}

	prompt := promptui.Prompt{
		Label:     label,
		Default:   current,
		AllowEdit: true,
	}
	if validate != nil {
		prompt.Validate = promptui.ValidateFunc(validate)
	}

	result, err := prompt.Run()
	if err != nil {
		return "", wrapPromptErr(err)
	}
	return result, nil
}

// PromptThreshold asks for the number of required signatures within [min, max]
func (p *PromptAdapter) PromptThreshold(_ context.Context, current, min, max int) (int, error) {
	if max < min {
		max = min
	}
	options := make([]option[int], 0, max-min+1)
	for n := min; n <= max; n++ {
		options = append(options, option[int]{label: strconv.Itoa(n), value: n})
	}
	return choose(p, "Required signatures", options, current-min)
}

// Confirm asks a yes/no question; "no" is not an error
func (p *PromptAdapter) Confirm(_ context.Context, label string) (bool, error) {
	if p.config.NonInteractive {
		return false, domain.ErrNonInteractive
	}

	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	return false, wrapPromptErr(err)
}

// wrapPromptErr maps promptui interrupts to a wizard cancellation
func wrapPromptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return domain.ErrWizardCancelled
	}
	return fmt.Errorf("input cancelled: %w", err)
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

func placeholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(empty)"
	}
	return s
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Ensure the adapter implements the interface
var _ usecase.PolicyPrompter = (*PromptAdapter)(nil)
