package usecase

import (
	"context"

	"github.com/trebuchet-org/treasury-cli/internal/domain"
	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
)

// DraftLoader reads policy drafts from disk
type DraftLoader interface {
	LoadDraft(ctx context.Context, path string) (*models.PolicyDraft, error)
}

// PolicySubmitter hands a reviewed policy to the system that creates it
type PolicySubmitter interface {
	Submit(ctx context.Context, policy *models.MultisigPolicy) (*models.PolicyDescriptor, error)
}

// ConfigAction is a user choice on the configuration step
type ConfigAction string

const (
	ActionEditName        ConfigAction = "edit-name"
	ActionEditDescription ConfigAction = "edit-description"
	ActionEditThreshold   ConfigAction = "edit-threshold"
	ActionApplyPreset     ConfigAction = "apply-preset"
	ActionAddSigner       ConfigAction = "add-signer"
	ActionEditSigner      ConfigAction = "edit-signer"
	ActionRemoveSigner    ConfigAction = "remove-signer"
	ActionToggleTimelock  ConfigAction = "toggle-timelock"
	ActionEditBoundary    ConfigAction = "edit-boundary"
	ActionContinue        ConfigAction = "continue"
	ActionBack            ConfigAction = "back"
	ActionCancel          ConfigAction = "cancel"
)

// ConfigView is what the prompter needs to draw the configuration step
type ConfigView struct {
	Policy     *models.MultisigPolicy
	Validation domain.ValidationResult
	CanAdvance bool
}

// PolicyPrompter collects policy input from the user.
// Every method returns domain.ErrWizardCancelled when the user aborts.
type PolicyPrompter interface {
	SelectMode(ctx context.Context, current models.PolicyMode) (models.PolicyMode, error)
	SelectConfigAction(ctx context.Context, view ConfigView) (ConfigAction, error)
	SelectPreset(ctx context.Context, current models.PresetTag) (models.PresetTag, error)
	SelectSigner(ctx context.Context, signers []models.Signer, prompt string) (int, error)
	SelectRole(ctx context.Context, current models.SignerRole) (models.SignerRole, error)
	SelectBoundary(ctx context.Context, window models.TimelockWindow) (models.BoundaryKind, error)
	PromptText(ctx context.Context, label, current string, validate func(string) error) (string, error)
	PromptThreshold(ctx context.Context, current, min, max int) (int, error)
	Confirm(ctx context.Context, label string) (bool, error)
}

// ReviewOutcome is how the review step ended
type ReviewOutcome string

const (
	ReviewSubmitted ReviewOutcome = "submitted"
	ReviewBack      ReviewOutcome = "back"
	ReviewCancelled ReviewOutcome = "cancelled"
)

// ReviewConfirmer shows the review step and drives the submission through
// the wizard's single-flight guard
type ReviewConfirmer interface {
	Review(ctx context.Context, wizard *domain.Wizard, submit domain.SubmitFunc) (ReviewOutcome, error)
}

// LocalConfigRepository manages local configuration persistence
type LocalConfigRepository interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
