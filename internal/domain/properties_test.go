package domain

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
)

// policyInput is the raw material a generated policy is assembled from
type policyInput struct {
	Mode           models.PolicyMode
	Name           string
	Required       int
	Signers        []models.Signer
	TimelockOn     bool
	After          models.TimelockBoundary
	Before         models.TimelockBoundary
	PresetBeforeOp models.PresetTag
}

func (in policyInput) build() *models.MultisigPolicy {
	p := models.NewMultisigPolicy(in.Mode)
	p.Name = in.Name
	p.RequiredSignatures = in.Required
	p.Signers = models.NewSignerRegistryFrom(in.Signers)
	models.ApplyPreset(p, in.PresetBeforeOp)
	p.Timelock.After = in.After
	p.Timelock.Before = in.Before
	p.SetTimelockEnabled(in.TimelockOn && in.Mode.ExposesTimelock())
	return p
}

func genMode() gopter.Gen {
	return gen.OneConstOf(models.ModeSimple, models.ModeAdvanced, models.ModeFull)
}

func genSigner() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("", "Alice", "Bob", "Carol"),
		gen.OneConstOf("", "0x00000000000000000000000000000000000000a1", "treasury.eth"),
		gen.OneConstOf(models.RoleFounder, models.RoleMember, models.SignerRole("")),
	).Map(func(v []interface{}) models.Signer {
		return models.Signer{Name: v[0].(string), Address: v[1].(string), Role: v[2].(models.SignerRole)}
	})
}

func genDate() gopter.Gen {
	return gen.OneGenOf(
		gen.IntRange(2020, 2030).Map(func(y int) string { return fmt.Sprintf("%d-01-01", y) }),
		gen.IntRange(1, 28).Map(func(d int) string { return fmt.Sprintf("2025-06-%02d", d) }),
		gen.OneConstOf("", "2025-02-30", "not a date"),
	)
}

func genClock() gopter.Gen {
	return gen.OneGenOf(
		gopter.CombineGens(gen.IntRange(0, 23), gen.IntRange(0, 59)).Map(func(v []interface{}) string {
			return fmt.Sprintf("%02d:%02d", v[0].(int), v[1].(int))
		}),
		gen.OneConstOf("", "24:00", "noon"),
	)
}

func genBoundary() gopter.Gen {
	return gopter.CombineGens(gen.Bool(), genDate(), genClock()).Map(func(v []interface{}) models.TimelockBoundary {
		return models.TimelockBoundary{Enabled: v[0].(bool), Date: v[1].(string), Time: v[2].(string)}
	})
}

func genPolicyInput() gopter.Gen {
	return gopter.CombineGens(
		genMode(),
		gen.OneConstOf("", "Treasury", "Ops"),
		gen.IntRange(1, 6),
		gen.SliceOfN(7, genSigner()),
		gen.IntRange(1, 7),
		gen.Bool(),
		genBoundary(),
		genBoundary(),
		gen.OneConstOf(models.PresetCustom, models.Preset2Of3, models.Preset3Of5, models.PresetTag("bogus")),
	).Map(func(v []interface{}) policyInput {
		all := v[3].([]models.Signer)
		return policyInput{
			Mode:           v[0].(models.PolicyMode),
			Name:           v[1].(string),
			Required:       v[2].(int),
			Signers:        all[:v[4].(int)],
			TimelockOn:     v[5].(bool),
			After:          v[6].(models.TimelockBoundary),
			Before:         v[7].(models.TimelockBoundary),
			PresetBeforeOp: v[8].(models.PresetTag),
		}
	})
}

func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

func TestValidateProperties(t *testing.T) {
	properties := newProperties()

	properties.Property("validation is idempotent", prop.ForAll(
		func(in policyInput) bool {
			p := in.build()
			return reflect.DeepEqual(Validate(p), Validate(p))
		},
		genPolicyInput(),
	))

	properties.Property("valid iff no violations", prop.ForAll(
		func(in policyInput) bool {
			r := Validate(in.build())
			return r.Valid == (len(r.Violations) == 0)
		},
		genPolicyInput(),
	))

	properties.Property("resolved range is ordered when valid, inverted otherwise", prop.ForAll(
		func(in policyInput) bool {
			p := in.build()
			after, before := p.Timelock.After.Slot, p.Timelock.Before.Slot
			if after == nil || before == nil {
				return true
			}
			r := Validate(p)
			if r.Valid && *after >= *before {
				return false
			}
			return (*after >= *before) == r.Has(TimelockRangeInverted)
		},
		genPolicyInput(),
	))

	properties.TestingRun(t)
}

func TestModeProperties(t *testing.T) {
	properties := newProperties()

	properties.Property("switching to simple clears the timelock", prop.ForAll(
		func(in policyInput) bool {
			p := in.build()
			p.OnModeChange(models.ModeSimple)
			tl := p.Timelock
			return !p.TimelockEnabled &&
				!tl.After.Enabled && !tl.Before.Enabled &&
				tl.After.Slot == nil && tl.Before.Slot == nil &&
				!Validate(p).Has(TimelockRangeInverted)
		},
		genPolicyInput(),
	))

	properties.Property("disabled boundaries never carry a slot", prop.ForAll(
		func(in policyInput) bool {
			p := in.build()
			for _, b := range []models.TimelockBoundary{p.Timelock.After, p.Timelock.Before} {
				if (!b.Enabled || !p.TimelockActive()) && b.Slot != nil {
					return false
				}
			}
			return true
		},
		genPolicyInput(),
	))

	properties.TestingRun(t)
}

func TestSlotProperties(t *testing.T) {
	properties := newProperties()

	properties.Property("slot computation is deterministic", prop.ForAll(
		func(date, clock string) bool {
			a, b := models.ComputeSlot(date, clock), models.ComputeSlot(date, clock)
			if a == nil || b == nil {
				return a == nil && b == nil
			}
			return *a == *b
		},
		genDate(),
		genClock(),
	))

	properties.Property("incomplete pairs have no slot", prop.ForAll(
		func(date, clock string) bool {
			return models.ComputeSlot(date, "") == nil && models.ComputeSlot("", clock) == nil
		},
		genDate(),
		genClock(),
	))

	properties.Property("later minute gives a later slot", prop.ForAll(
		func(day, hour, minute int) bool {
			date := fmt.Sprintf("2025-03-%02d", day)
			a := models.ComputeSlot(date, fmt.Sprintf("%02d:%02d", hour, minute))
			b := models.ComputeSlot(date, fmt.Sprintf("%02d:%02d", hour, minute+1))
			return a != nil && b != nil && *b-*a == 60
		},
		gen.IntRange(1, 31),
		gen.IntRange(0, 23),
		gen.IntRange(0, 58),
	))

	properties.TestingRun(t)
}

func TestRegistryProperties(t *testing.T) {
	properties := newProperties()

	properties.Property("the only signer cannot be removed", prop.ForAll(
		func(s models.Signer, index int) bool {
			r := models.NewSignerRegistryFrom([]models.Signer{s})
			before := r.Signers()
			r.Remove(index)
			return r.Len() == 1 && reflect.DeepEqual(before, r.Signers())
		},
		genSigner(),
		gen.IntRange(-2, 2),
	))

	properties.Property("3-of-5 always yields five empty signers", prop.ForAll(
		func(in policyInput) bool {
			p := in.build()
			models.ApplyPreset(p, models.Preset3Of5)
			return p.RequiredSignatures == 3 && p.Signers.Len() == 5 && p.Signers.ValidCount() == 0
		},
		genPolicyInput(),
	))

	properties.TestingRun(t)
}

func TestWizardProperties(t *testing.T) {
	properties := newProperties()

	properties.Property("configuration advances iff the policy is valid", prop.ForAll(
		func(in policyInput) bool {
			p := in.build()
			valid := Validate(p).Valid
			w := NewWizard(p, StepConfiguration)
			advanced := w.Next()
			if advanced != valid {
				return false
			}
			if advanced {
				return w.Step() == StepReview
			}
			return w.Step() == StepConfiguration
		},
		genPolicyInput(),
	))

	properties.TestingRun(t)
}
