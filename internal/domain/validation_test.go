package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
)

func signers(n int) *models.SignerRegistry {
	list := make([]models.Signer, n)
	for i := range list {
		list[i] = models.Signer{Name: "signer", Address: "0x" + string(rune('a'+i))}
	}
	return models.NewSignerRegistryFrom(list)
}

func timelockPolicy(after, before models.TimelockBoundary) *models.MultisigPolicy {
	p := models.NewMultisigPolicy(models.ModeAdvanced)
	p.Name = "Treasury"
	p.Signers = signers(2)
	p.Timelock.After = after
	p.Timelock.Before = before
	p.SetTimelockEnabled(true)
	return p
}

func TestValidate(t *testing.T) {
	start2025 := models.TimelockBoundary{Enabled: true, Date: "2025-01-01", Time: "00:00"}
	start2024 := models.TimelockBoundary{Enabled: true, Date: "2024-01-01", Time: "00:00"}

	tests := []struct {
		name     string
		policy   func() *models.MultisigPolicy
		expected []ViolationKind
	}{
		{
			name: "valid simple policy",
			policy: func() *models.MultisigPolicy {
				p := models.NewMultisigPolicy(models.ModeSimple)
				p.Name = "Treasury"
				p.Signers = signers(2)
				return p
			},
			expected: []ViolationKind{},
		},
		{
			name: "whitespace name is missing",
			policy: func() *models.MultisigPolicy {
				p := models.NewMultisigPolicy(models.ModeSimple)
				p.Name = "   "
				p.RequiredSignatures = 1
				p.Signers = signers(1)
				return p
			},
			expected: []ViolationKind{MissingName},
		},
		{
			name: "not enough valid signers",
			policy: func() *models.MultisigPolicy {
				p := models.NewMultisigPolicy(models.ModeSimple)
				p.Name = "Treasury"
				p.RequiredSignatures = 3
				p.Signers = signers(2)
				p.Signers.Add()
				return p
			},
			expected: []ViolationKind{InsufficientSigners},
		},
		{
			name: "fresh policy",
			policy: func() *models.MultisigPolicy {
				return models.NewMultisigPolicy(models.ModeAdvanced)
			},
			expected: []ViolationKind{MissingName, InsufficientSigners},
		},
		{
			name: "timelock on without boundaries",
			policy: func() *models.MultisigPolicy {
				return timelockPolicy(models.TimelockBoundary{}, models.TimelockBoundary{})
			},
			expected: []ViolationKind{TimelockNoParamSelected},
		},
		{
			name: "after incomplete",
			policy: func() *models.MultisigPolicy {
				return timelockPolicy(models.TimelockBoundary{Enabled: true, Date: "2025-01-01"}, models.TimelockBoundary{})
			},
			expected: []ViolationKind{TimelockAfterIncomplete},
		},
		{
			name: "before unparseable",
			policy: func() *models.MultisigPolicy {
				return timelockPolicy(models.TimelockBoundary{}, models.TimelockBoundary{Enabled: true, Date: "2025-13-01", Time: "00:00"})
			},
			expected: []ViolationKind{TimelockBeforeIncomplete},
		},
		{
			name: "both incomplete",
			policy: func() *models.MultisigPolicy {
				return timelockPolicy(models.TimelockBoundary{Enabled: true}, models.TimelockBoundary{Enabled: true, Time: "10:00"})
			},
			expected: []ViolationKind{TimelockAfterIncomplete, TimelockBeforeIncomplete},
		},
		{
			name: "range inverted",
			policy: func() *models.MultisigPolicy {
				return timelockPolicy(start2025, start2024)
			},
			expected: []ViolationKind{TimelockRangeInverted},
		},
		{
			name: "equal boundaries are inverted",
			policy: func() *models.MultisigPolicy {
				return timelockPolicy(start2025, start2025)
			},
			expected: []ViolationKind{TimelockRangeInverted},
		},
		{
			name: "one minute apart is valid",
			policy: func() *models.MultisigPolicy {
				return timelockPolicy(start2025, models.TimelockBoundary{Enabled: true, Date: "2025-01-01", Time: "00:01"})
			},
			expected: []ViolationKind{},
		},
		{
			name: "disabled boundary with stale inputs is ignored",
			policy: func() *models.MultisigPolicy {
				stale := start2024
				stale.Enabled = false
				return timelockPolicy(start2025, stale)
			},
			expected: []ViolationKind{},
		},
		{
			name: "timelock switched off skips window checks",
			policy: func() *models.MultisigPolicy {
				p := timelockPolicy(start2025, start2024)
				p.SetTimelockEnabled(false)
				return p
			},
			expected: []ViolationKind{},
		},
		{
			name: "every violation at once",
			policy: func() *models.MultisigPolicy {
				p := timelockPolicy(start2025, start2024)
				p.Name = ""
				p.RequiredSignatures = 5
				return p
			},
			expected: []ViolationKind{MissingName, InsufficientSigners, TimelockRangeInverted},
		},
		{
			name: "stale slot does not mask an incomplete boundary",
			policy: func() *models.MultisigPolicy {
				p := timelockPolicy(start2025, models.TimelockBoundary{})
				p.Timelock.After.Time = ""
				return p
			},
			expected: []ViolationKind{TimelockAfterIncomplete},
		},
		{
			name: "nil registry counts as zero signers",
			policy: func() *models.MultisigPolicy {
				return &models.MultisigPolicy{Name: "Treasury", RequiredSignatures: 1}
			},
			expected: []ViolationKind{InsufficientSigners},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.policy())
			assert.Equal(t, tt.expected, result.Violations)
			assert.Equal(t, len(tt.expected) == 0, result.Valid)
		})
	}
}

func TestValidate_NilPolicy(t *testing.T) {
	result := Validate(nil)

	assert.False(t, result.Valid)
	assert.Equal(t, []ViolationKind{MissingName, InsufficientSigners}, result.Violations)
}

func TestValidate_DoesNotMutate(t *testing.T) {
	p := timelockPolicy(
		models.TimelockBoundary{Enabled: true, Date: "2025-01-01", Time: "00:00"},
		models.TimelockBoundary{Enabled: true, Date: "2024-01-01", Time: "00:00"},
	)
	before := p.Snapshot()

	Validate(p)

	assert.Equal(t, before.Timelock, p.Timelock)
	assert.Equal(t, before.Signers.Signers(), p.Signers.Signers())
	assert.Equal(t, before.Name, p.Name)
}

func TestValidationResult_Has(t *testing.T) {
	r := ValidationResult{Violations: []ViolationKind{MissingName, TimelockRangeInverted}}

	assert.True(t, r.Has(TimelockRangeInverted))
	assert.False(t, r.Has(InsufficientSigners))
}

func TestViolationKind_Message(t *testing.T) {
	kinds := []ViolationKind{
		MissingName,
		InsufficientSigners,
		TimelockNoParamSelected,
		TimelockAfterIncomplete,
		TimelockBeforeIncomplete,
		TimelockRangeInverted,
	}
	for _, k := range kinds {
		assert.NotEqual(t, string(k), k.Message(), k)
	}
	assert.Equal(t, "Unknown", ViolationKind("Unknown").Message())
}

func TestErrors(t *testing.T) {
	err := PolicyInvalidErr{Violations: []ViolationKind{MissingName, InsufficientSigners}}
	assert.ErrorIs(t, err, ErrPolicyInvalid)
	assert.EqualError(t, err, "policy is invalid: MissingName, InsufficientSigners")

	draftErr := DraftErrors{
		{Field: "mode", Reason: "must be one of simple advanced full"},
		{Field: "signers[0].name", Reason: "must be at most 128 characters"},
	}
	assert.ErrorIs(t, draftErr, ErrInvalidDraft)
	assert.Equal(t, "invalid policy draft:\n  - mode: must be one of simple advanced full\n  - signers[0].name: must be at most 128 characters", draftErr.Error())
}
