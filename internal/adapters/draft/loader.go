package draft

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/trebuchet-org/treasury-cli/internal/domain"
	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

// LoaderAdapter reads policy drafts in YAML, TOML or JSON
type LoaderAdapter struct {
	wizard   config.WizardConfig
	validate *validator.Validate
}

// NewLoaderAdapter creates a new draft loader
func NewLoaderAdapter(cfg *config.RuntimeConfig) *LoaderAdapter {
	return &LoaderAdapter{
		wizard:   cfg.Wizard,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// LoadDraft reads and checks the draft at path. Structural problems are
// rejected here; policy invariants are left to the validator.
func (l *LoaderAdapter) LoadDraft(_ context.Context, path string) (*models.PolicyDraft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft %s: %w", path, err)
	}

	draft, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	if err := l.check(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func decode(path string, data []byte) (*models.PolicyDraft, error) {
	var d models.PolicyDraft

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrInvalidDraft, filepath.Base(path), err)
		}
	case ".toml":
		meta, err := toml.Decode(string(data), &d)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrInvalidDraft, filepath.Base(path), err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown field %q in %s", domain.ErrInvalidDraft, undecoded[0].String(), filepath.Base(path))
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrInvalidDraft, filepath.Base(path), err)
		}
	default:
		return nil, fmt.Errorf("%w: %q (use .yaml, .toml or .json)", domain.ErrUnsupportedDraftFormat, ext)
	}

	return &d, nil
}

// check enforces the input domain: struct tags plus the configured threshold range
func (l *LoaderAdapter) check(d *models.PolicyDraft) error {
	var fieldErrs domain.DraftErrors

	if err := l.validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidDraft, err)
		}
		for _, fe := range verrs {
			fieldErrs = append(fieldErrs, domain.DraftFieldError{
				Field:  fieldPath(fe.Namespace()),
				Reason: describeTag(fe),
			})
		}
	}

	if d.RequiredSignatures != 0 && !l.wizard.ThresholdInRange(d.RequiredSignatures) {
		fieldErrs = append(fieldErrs, domain.DraftFieldError{
			Field: "requiredSignatures",
			Reason: fmt.Sprintf("must be between %d and %d",
				l.wizard.MinSignatures, l.wizard.MaxSignatures),
		})
	}

	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	return nil
}

// fieldPath turns "PolicyDraft.Signers[0].Name" into "signers[0].name"
func fieldPath(ns string) string {
	ns = strings.TrimPrefix(ns, "PolicyDraft.")
	parts := strings.Split(ns, ".")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// Ensure LoaderAdapter implements DraftLoader
var _ usecase.DraftLoader = (*LoaderAdapter)(nil)
