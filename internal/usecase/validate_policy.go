package usecase

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/treasury-cli/internal/domain"
	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
)

// ValidatePolicy checks a policy draft without creating it
type ValidatePolicy struct {
	config *config.RuntimeConfig
	drafts DraftLoader
	log    *slog.Logger
}

// NewValidatePolicy creates a new validate policy use case
func NewValidatePolicy(cfg *config.RuntimeConfig, drafts DraftLoader, log *slog.Logger) *ValidatePolicy {
	return &ValidatePolicy{
		config: cfg,
		drafts: drafts,
		log:    log,
	}
}

// ValidatePolicyParams contains parameters for validating a draft
type ValidatePolicyParams struct {
	DraftPath string
	// Mode replaces the draft's mode before the policy is built
	Mode models.PolicyMode
}

// ValidatePolicyResult contains the policy as the wizard would see it
type ValidatePolicyResult struct {
	Path       string
	Policy     *models.MultisigPolicy
	Validation domain.ValidationResult
	Timelock   string
}

// Run loads the draft and evaluates every policy invariant
func (uc *ValidatePolicy) Run(ctx context.Context, params ValidatePolicyParams) (*ValidatePolicyResult, error) {
	draft, err := uc.drafts.LoadDraft(ctx, params.DraftPath)
	if err != nil {
		return nil, err
	}

	draft.Override(params.Mode, "")
	policy := draft.ToPolicy(uc.config.DefaultMode)

	result := domain.Validate(policy)
	uc.log.Debug("validated draft", "path", params.DraftPath, "valid", result.Valid, "violations", len(result.Violations))

	return &ValidatePolicyResult{
		Path:       params.DraftPath,
		Policy:     policy.Snapshot(),
		Validation: result,
		Timelock:   policy.DescribeTimelock(),
	}, nil
}
