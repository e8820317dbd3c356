package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trebuchet-org/treasury-cli/internal/domain"
	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
)

// CreatePolicy walks a multisig policy through the creation wizard
type CreatePolicy struct {
	config    *config.RuntimeConfig
	drafts    DraftLoader
	prompter  PolicyPrompter
	reviewer  ReviewConfirmer
	submitter PolicySubmitter
	progress  ProgressSink
	log       *slog.Logger
}

// NewCreatePolicy creates a new create policy use case
func NewCreatePolicy(
	cfg *config.RuntimeConfig,
	drafts DraftLoader,
	prompter PolicyPrompter,
	reviewer ReviewConfirmer,
	submitter PolicySubmitter,
	progress ProgressSink,
	log *slog.Logger,
) *CreatePolicy {
	return &CreatePolicy{
		config:    cfg,
		drafts:    drafts,
		prompter:  prompter,
		reviewer:  reviewer,
		submitter: submitter,
		progress:  progress,
		log:       log,
	}
}

// CreatePolicyParams contains parameters for creating a policy
type CreatePolicyParams struct {
	// DraftPath loads the policy from a file and skips the prompts
	DraftPath string
	// Mode overrides the configured default mode (empty keeps it)
	Mode models.PolicyMode
	// Preset is applied before the configuration step (empty keeps the default)
	Preset models.PresetTag
	// SkipModeStep starts the wizard on the configuration step
	SkipModeStep bool
}

// CreatePolicyResult contains the outcome of the wizard
type CreatePolicyResult struct {
	Descriptor *models.PolicyDescriptor
	Policy     *models.MultisigPolicy
	Validation domain.ValidationResult
	Timelock   string
	Step       domain.WizardStep
}

// Run executes the wizard until the policy is created or the user cancels
func (uc *CreatePolicy) Run(ctx context.Context, params CreatePolicyParams) (*CreatePolicyResult, error) {
	if params.DraftPath != "" {
		return uc.runFromDraft(ctx, params)
	}

	if uc.config.NonInteractive {
		return nil, fmt.Errorf("%w: pass --from <draft> to create a policy", domain.ErrNonInteractive)
	}

	wizard := domain.NewWizard(uc.newPolicy(params), uc.startStep(params))
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		step := wizard.Step()
		uc.log.Debug("wizard step", "step", step)

		var err error
		switch step {
		case domain.StepMode:
			err = uc.modeStep(ctx, wizard)
		case domain.StepConfiguration:
			err = uc.configurationStep(ctx, wizard)
		case domain.StepReview:
			err = uc.reviewStep(ctx, wizard)
		case domain.StepCreated:
			return uc.result(wizard), nil
		default:
			return nil, fmt.Errorf("unknown wizard step %q", step)
		}
		if err != nil {
			return nil, err
		}
	}
}

func (uc *CreatePolicy) newPolicy(params CreatePolicyParams) *models.MultisigPolicy {
	mode := uc.config.DefaultMode
	if params.Mode != "" {
		mode = params.Mode
	}
	policy := models.NewMultisigPolicy(mode)

	preset := uc.config.DefaultPreset
	if params.Preset != "" {
		preset = params.Preset
	}
	if mode.ExposesTimelock() {
		models.ApplyPreset(policy, preset)
	}
	return policy
}

func (uc *CreatePolicy) startStep(params CreatePolicyParams) domain.WizardStep {
	if params.SkipModeStep || uc.config.Wizard.SkipModeStep {
		return domain.StepConfiguration
	}
	return domain.StepMode
}

func (uc *CreatePolicy) modeStep(ctx context.Context, wizard *domain.Wizard) error {
	mode, err := uc.prompter.SelectMode(ctx, wizard.Policy().Mode)
	if err != nil {
		return err
	}
	wizard.SetMode(mode)
	wizard.Next()
	return nil
}

func (uc *CreatePolicy) configurationStep(ctx context.Context, wizard *domain.Wizard) error {
	policy := wizard.Policy()
	view := ConfigView{
		Policy:     policy,
		Validation: domain.Validate(policy),
		CanAdvance: wizard.CanAdvance(),
	}

	action, err := uc.prompter.SelectConfigAction(ctx, view)
	if err != nil {
		return err
	}
	uc.log.Debug("configuration action", "action", action)

	switch action {
	case ActionContinue:
		if !wizard.Next() {
			uc.progress.Error("Fix the highlighted problems before continuing")
		}
		return nil
	case ActionBack:
		wizard.Back()
		return nil
	case ActionCancel:
		return domain.ErrWizardCancelled
	default:
		return uc.applyAction(ctx, wizard, policy, action)
	}
}

// applyAction collects input for an editing action and applies it to the wizard's policy
func (uc *CreatePolicy) applyAction(ctx context.Context, wizard *domain.Wizard, policy *models.MultisigPolicy, action ConfigAction) error {
	switch action {
	case ActionEditName:
		name, err := uc.prompter.PromptText(ctx, "Policy name", policy.Name, requireNonEmpty)
		if err != nil {
			return err
		}
		wizard.Mutate(func(p *models.MultisigPolicy) { p.Name = strings.TrimSpace(name) })

	case ActionEditDescription:
		desc, err := uc.prompter.PromptText(ctx, "Description", policy.Description, nil)
		if err != nil {
			return err
		}
		wizard.Mutate(func(p *models.MultisigPolicy) { p.Description = desc })

	case ActionEditThreshold:
		n, err := uc.prompter.PromptThreshold(ctx, policy.RequiredSignatures,
			uc.config.Wizard.MinSignatures, uc.config.Wizard.MaxSignatures)
		if err != nil {
			return err
		}
		wizard.Mutate(func(p *models.MultisigPolicy) { p.RequiredSignatures = n })

	case ActionApplyPreset:
		tag, err := uc.prompter.SelectPreset(ctx, policy.PresetConfig)
		if err != nil {
			return err
		}
		if policy.Signers.ValidCount() > 0 && tag != models.PresetCustom {
			ok, err := uc.prompter.Confirm(ctx, "Applying a preset discards the current signers. Continue")
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
		}
		wizard.Mutate(func(p *models.MultisigPolicy) { models.ApplyPreset(p, tag) })

	case ActionAddSigner:
		wizard.Mutate(func(p *models.MultisigPolicy) { p.Signers.Add() })
		return uc.editSigner(ctx, wizard, policy.Signers.Len())

	case ActionEditSigner:
		idx, err := uc.prompter.SelectSigner(ctx, policy.Signers.Signers(), "Select signer to edit")
		if err != nil {
			return err
		}
		return uc.editSigner(ctx, wizard, idx)

	case ActionRemoveSigner:
		if policy.Signers.Len() <= 1 {
			uc.progress.Error("A policy needs at least one signer")
			return nil
		}
		idx, err := uc.prompter.SelectSigner(ctx, policy.Signers.Signers(), "Select signer to remove")
		if err != nil {
			return err
		}
		wizard.Mutate(func(p *models.MultisigPolicy) { p.Signers.Remove(idx) })

	case ActionToggleTimelock:
		if !policy.Mode.ExposesTimelock() {
			return nil
		}
		wizard.Mutate(func(p *models.MultisigPolicy) { p.SetTimelockEnabled(!p.TimelockEnabled) })

	case ActionEditBoundary:
		if !policy.TimelockActive() {
			return nil
		}
		return uc.editBoundary(ctx, wizard, policy.Timelock)

	default:
		return fmt.Errorf("unknown configuration action %q", action)
	}
	return nil
}

func (uc *CreatePolicy) editSigner(ctx context.Context, wizard *domain.Wizard, idx int) error {
	signers := wizard.Policy().Signers.Signers()
	if idx < 0 || idx >= len(signers) {
		return nil
	}
	current := signers[idx]

	name, err := uc.prompter.PromptText(ctx, fmt.Sprintf("Signer #%d name", idx+1), current.Name, nil)
	if err != nil {
		return err
	}
	address, err := uc.prompter.PromptText(ctx, fmt.Sprintf("Signer #%d address", idx+1), current.Address, nil)
	if err != nil {
		return err
	}
	role, err := uc.prompter.SelectRole(ctx, current.Role)
	if err != nil {
		return err
	}

	wizard.Mutate(func(p *models.MultisigPolicy) {
		p.Signers.Update(idx, models.SignerFieldName, strings.TrimSpace(name))
		p.Signers.Update(idx, models.SignerFieldAddress, strings.TrimSpace(address))
		p.Signers.Update(idx, models.SignerFieldRole, string(role))
	})
	return nil
}

func (uc *CreatePolicy) editBoundary(ctx context.Context, wizard *domain.Wizard, window models.TimelockWindow) error {
	which, err := uc.prompter.SelectBoundary(ctx, window)
	if err != nil {
		return err
	}
	current := window.After
	if which == models.BoundaryBefore {
		current = window.Before
	}

	enabled, err := uc.prompter.Confirm(ctx, fmt.Sprintf("Enable the %q boundary", which))
	if err != nil {
		return err
	}
	if !enabled {
		wizard.Mutate(func(p *models.MultisigPolicy) {
			p.SetBoundary(which, models.BoundaryFieldEnabled, "false")
		})
		return nil
	}

	date, err := uc.prompter.PromptText(ctx, "Date (YYYY-MM-DD, UTC)", current.Date, validateDate)
	if err != nil {
		return err
	}
	clock, err := uc.prompter.PromptText(ctx, "Time (HH:MM, UTC)", current.Time, nil)
	if err != nil {
		return err
	}

	wizard.Mutate(func(p *models.MultisigPolicy) {
		p.SetBoundary(which, models.BoundaryFieldEnabled, "true")
		p.SetBoundary(which, models.BoundaryFieldDate, strings.TrimSpace(date))
		p.SetBoundary(which, models.BoundaryFieldTime, strings.TrimSpace(clock))
	})
	return nil
}

func (uc *CreatePolicy) reviewStep(ctx context.Context, wizard *domain.Wizard) error {
	// the review screen draws its own progress, so no spinner events here
	outcome, err := uc.reviewer.Review(ctx, wizard, uc.submit)
	if err != nil {
		return err
	}

	switch outcome {
	case ReviewSubmitted:
		if wizard.Step() != domain.StepCreated {
			return fmt.Errorf("review finished without creating the policy")
		}
	case ReviewBack:
		wizard.Back()
	case ReviewCancelled:
		return domain.ErrWizardCancelled
	}
	return nil
}

// submit hands the policy to the submitter and logs the outcome
func (uc *CreatePolicy) submit(ctx context.Context, policy *models.MultisigPolicy) (*models.PolicyDescriptor, error) {
	descriptor, err := uc.submitter.Submit(ctx, policy)
	if err != nil {
		return nil, err
	}
	uc.log.Info("policy created", "id", descriptor.ID, "name", descriptor.Name)
	return descriptor, nil
}

// submitWithProgress wraps submit with spinner events for non-interactive runs
func (uc *CreatePolicy) submitWithProgress(ctx context.Context, policy *models.MultisigPolicy) (*models.PolicyDescriptor, error) {
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "submitting", Message: "Creating policy...", Spinner: true})
	defer uc.progress.OnProgress(ctx, ProgressEvent{Stage: "complete"})
	return uc.submit(ctx, policy)
}

// runFromDraft drives the same wizard without prompts
func (uc *CreatePolicy) runFromDraft(ctx context.Context, params CreatePolicyParams) (*CreatePolicyResult, error) {
	draft, err := uc.drafts.LoadDraft(ctx, params.DraftPath)
	if err != nil {
		return nil, err
	}

	draft.Override(params.Mode, params.Preset)
	wizard := domain.NewWizard(draft.ToPolicy(uc.config.DefaultMode), domain.StepConfiguration)
	if !wizard.Next() {
		result := uc.result(wizard)
		return result, domain.PolicyInvalidErr{Violations: result.Validation.Violations}
	}

	if _, err := wizard.Submit(ctx, uc.submitWithProgress); err != nil {
		return nil, err
	}
	if wizard.Step() != domain.StepCreated {
		return nil, errors.New("policy submission did not complete")
	}
	return uc.result(wizard), nil
}

func (uc *CreatePolicy) result(wizard *domain.Wizard) *CreatePolicyResult {
	policy := wizard.Policy()
	return &CreatePolicyResult{
		Descriptor: wizard.Descriptor(),
		Policy:     policy,
		Validation: domain.Validate(policy),
		Timelock:   policy.DescribeTimelock(),
		Step:       wizard.Step(),
	}
}

func requireNonEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" || models.ValidDate(s) {
		return nil
	}
	return errors.New("expected a date in YYYY-MM-DD format")
}
