package domain

import (
	"strings"

	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
)

// ViolationKind identifies a broken policy invariant
type ViolationKind string

const (
	MissingName              ViolationKind = "MissingName"
	InsufficientSigners      ViolationKind = "InsufficientSigners"
	TimelockNoParamSelected  ViolationKind = "TimelockNoParamSelected"
	TimelockAfterIncomplete  ViolationKind = "TimelockAfterIncomplete"
	TimelockBeforeIncomplete ViolationKind = "TimelockBeforeIncomplete"
	TimelockRangeInverted    ViolationKind = "TimelockRangeInverted"
)

// Message returns the inline message shown next to the offending control
func (v ViolationKind) Message() string {
	switch v {
	case MissingName:
		return "Policy name is required"
	case InsufficientSigners:
		return "Not enough valid signers for the required number of signatures"
	case TimelockNoParamSelected:
		return "Select at least one timelock boundary or turn the timelock off"
	case TimelockAfterIncomplete:
		return "The \"after\" boundary needs a valid date and time"
	case TimelockBeforeIncomplete:
		return "The \"before\" boundary needs a valid date and time"
	case TimelockRangeInverted:
		return "\"After\" must be earlier than \"before\", otherwise the policy would be useless"
	default:
		return string(v)
	}
}

// ValidationResult is the verdict of Validate
type ValidationResult struct {
	Valid      bool            `json:"valid"`
	Violations []ViolationKind `json:"violations"`
}

// Has reports whether the result contains the given violation
func (r ValidationResult) Has(kind ViolationKind) bool {
	for _, v := range r.Violations {
		if v == kind {
			return true
		}
	}
	return false
}

// Validate evaluates every policy invariant and returns all violations at once.
// It never mutates the policy and always returns.
func Validate(p *models.MultisigPolicy) ValidationResult {
	violations := make([]ViolationKind, 0)

	if p == nil {
		return ValidationResult{Valid: false, Violations: []ViolationKind{MissingName, InsufficientSigners}}
	}

	if strings.TrimSpace(p.Name) == "" {
		violations = append(violations, MissingName)
	}

	validSigners := 0
	if p.Signers != nil {
		validSigners = p.Signers.ValidCount()
	}
	if validSigners < p.RequiredSignatures {
		violations = append(violations, InsufficientSigners)
	}

	if p.TimelockActive() {
		violations = append(violations, validateTimelock(p.Timelock)...)
	}

	return ValidationResult{
		Valid:      len(violations) == 0,
		Violations: violations,
	}
}

// validateTimelock checks the window of a policy whose timelock is switched on.
// Slots are recomputed from the raw inputs so a stale derived value cannot
// mask an incomplete boundary.
func validateTimelock(w models.TimelockWindow) []ViolationKind {
	var violations []ViolationKind

	if !w.After.Enabled && !w.Before.Enabled {
		return []ViolationKind{TimelockNoParamSelected}
	}

	var after, before *int64
	if w.After.Enabled {
		after = models.ComputeSlot(w.After.Date, w.After.Time)
		if after == nil {
			violations = append(violations, TimelockAfterIncomplete)
		}
	}
	if w.Before.Enabled {
		before = models.ComputeSlot(w.Before.Date, w.Before.Time)
		if before == nil {
			violations = append(violations, TimelockBeforeIncomplete)
		}
	}

	if after != nil && before != nil && *after >= *before {
		violations = append(violations, TimelockRangeInverted)
	}

	return violations
}
