package domain

import (
	"context"
	"fmt"
	"sync"

	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
)

// WizardStep is the current screen of the policy creation wizard
type WizardStep string

const (
	StepMode          WizardStep = "mode"
	StepConfiguration WizardStep = "configuration"
	StepReview        WizardStep = "review"
	StepCreated       WizardStep = "created"
)

// SubmitFunc hands a reviewed policy to whatever creates it
type SubmitFunc func(ctx context.Context, policy *models.MultisigPolicy) (*models.PolicyDescriptor, error)

// Wizard sequences Mode -> Configuration -> Review -> Created.
// Forward moves are gated by Validate, backward moves are unconditional,
// and any other request is a no-op that reports false.
type Wizard struct {
	mu         sync.Mutex
	step       WizardStep
	submitting bool
	policy     *models.MultisigPolicy
	descriptor *models.PolicyDescriptor
}

// NewWizard starts a wizard at StepMode or StepConfiguration. Any other start
// step falls back to StepMode.
func NewWizard(policy *models.MultisigPolicy, start WizardStep) *Wizard {
	if policy == nil {
		policy = models.NewMultisigPolicy(models.ModeSimple)
	}
	if start != StepConfiguration {
		start = StepMode
	}
	return &Wizard{step: start, policy: policy}
}

// Step returns the current step
func (w *Wizard) Step() WizardStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Submitting reports whether a submission is in flight
func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Policy returns a snapshot of the policy being edited
func (w *Wizard) Policy() *models.MultisigPolicy {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.policy.Snapshot()
}

// Validation returns the current verdict for the policy
func (w *Wizard) Validation() ValidationResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Validate(w.policy)
}

// Descriptor returns the created policy descriptor, or nil before StepCreated
func (w *Wizard) Descriptor() *models.PolicyDescriptor {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.descriptor
}

// Editable reports whether the policy can still be changed
func (w *Wizard) Editable() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.editable()
}

func (w *Wizard) editable() bool {
	return w.step == StepMode || w.step == StepConfiguration
}

// Mutate applies fn to the policy while the wizard is on an editable step.
// It reports whether fn ran.
func (w *Wizard) Mutate(fn func(p *models.MultisigPolicy)) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.editable() {
		return false
	}
	fn(w.policy)
	return true
}

// SetMode changes the policy mode, running the mode cascade
func (w *Wizard) SetMode(mode models.PolicyMode) bool {
	return w.Mutate(func(p *models.MultisigPolicy) { p.OnModeChange(mode) })
}

// CanAdvance reports whether Next would move the wizard forward
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canAdvance()
}

func (w *Wizard) canAdvance() bool {
	switch w.step {
	case StepMode:
		return true
	case StepConfiguration:
		return Validate(w.policy).Valid
	case StepReview, StepCreated:
		return false
	default:
		return false
	}
}

// Next moves forward one step. Review -> Created only happens through submit.
func (w *Wizard) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.canAdvance() {
		return false
	}
	switch w.step {
	case StepMode:
		w.step = StepConfiguration
	case StepConfiguration:
		w.step = StepReview
	case StepReview, StepCreated:
		return false
	}
	return true
}

// Back moves backward one step. It is refused while a submission is pending
// and once the policy has been created.
func (w *Wizard) Back() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.submitting {
		return false
	}
	switch w.step {
	case StepReview:
		w.step = StepConfiguration
	case StepConfiguration:
		w.step = StepMode
	case StepMode, StepCreated:
		return false
	}
	return true
}

// BeginSubmit enters the submitting sub-state of Review. Only one submission
// may be in flight; further calls return false until it settles.
func (w *Wizard) BeginSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepReview || w.submitting {
		return false
	}
	w.submitting = true
	return true
}

// CompleteSubmit finishes a pending submission and moves to Created
func (w *Wizard) CompleteSubmit(descriptor *models.PolicyDescriptor) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepReview || !w.submitting {
		return false
	}
	w.submitting = false
	w.descriptor = descriptor
	w.step = StepCreated
	return true
}

// AbortSubmit returns a pending submission to plain Review
func (w *Wizard) AbortSubmit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == StepReview {
		w.submitting = false
	}
}

// Submit runs a full submission through fn. It returns false without calling
// fn when the wizard is not on Review or a submission is already pending.
func (w *Wizard) Submit(ctx context.Context, fn SubmitFunc) (bool, error) {
	if !w.BeginSubmit() {
		return false, nil
	}

	descriptor, err := fn(ctx, w.Policy())
	if err != nil {
		w.AbortSubmit()
		return false, fmt.Errorf("failed to submit policy: %w", err)
	}

	return w.CompleteSubmit(descriptor), nil
}
