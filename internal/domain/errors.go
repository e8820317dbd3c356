package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrInvalidDraft is returned when a policy draft cannot be parsed or is out of domain
	ErrInvalidDraft = errors.New("invalid policy draft")

	// ErrUnsupportedDraftFormat is returned for draft files with an unknown extension
	ErrUnsupportedDraftFormat = errors.New("unsupported draft format")

	// ErrWizardCancelled is returned when the user aborts the wizard
	ErrWizardCancelled = errors.New("wizard cancelled")

	// ErrPolicyInvalid is returned when a policy fails validation where it must pass
	ErrPolicyInvalid = errors.New("policy is invalid")

	// ErrNonInteractive is returned when input is needed but prompts are disabled
	ErrNonInteractive = errors.New("interactive input not available in non-interactive mode")
)

// DraftFieldError describes a draft field rejected at the input boundary
type DraftFieldError struct {
	Field  string
	Reason string
}

func (e DraftFieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// DraftErrors collects every rejected field of a draft
type DraftErrors []DraftFieldError

func (e DraftErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = "  - " + fe.Error()
	}
	return fmt.Sprintf("%s:\n%s", ErrInvalidDraft, strings.Join(msgs, "\n"))
}

// Unwrap lets errors.Is match ErrInvalidDraft
func (e DraftErrors) Unwrap() error {
	return ErrInvalidDraft
}

// PolicyInvalidErr carries the violations that blocked an operation
type PolicyInvalidErr struct {
	Violations []ViolationKind
}

func (e PolicyInvalidErr) Error() string {
	names := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		names[i] = string(v)
	}
	return fmt.Sprintf("%s: %s", ErrPolicyInvalid, strings.Join(names, ", "))
}

// Unwrap lets errors.Is match ErrPolicyInvalid
func (e PolicyInvalidErr) Unwrap() error {
	return ErrPolicyInvalid
}
