package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

// SimulatedSubmitter stands in for the chain submission layer. It waits for
// the configured processing delay and always completes; nothing leaves the
// process.
type SimulatedSubmitter struct {
	delay time.Duration
	now   func() time.Time
	sleep func(time.Duration)
	log   *slog.Logger
}

// NewSimulatedSubmitter creates a new simulated submitter
func NewSimulatedSubmitter(cfg *config.RuntimeConfig, log *slog.Logger) *SimulatedSubmitter {
	return &SimulatedSubmitter{
		delay: cfg.Wizard.SubmitDelay,
		now:   time.Now,
		sleep: time.Sleep,
		log:   log,
	}
}

// Submit builds the policy descriptor after the simulated delay. The context
// is not consulted: once started, a simulated submission runs to completion.
func (s *SimulatedSubmitter) Submit(_ context.Context, policy *models.MultisigPolicy) (*models.PolicyDescriptor, error) {
	s.log.Debug("simulating policy submission", "name", policy.Name, "delay", s.delay)
	if s.delay > 0 {
		s.sleep(s.delay)
	}

	descriptor := models.NewPolicyDescriptor(policy)
	id, err := DescriptorID(descriptor)
	if err != nil {
		return nil, err
	}
	descriptor.ID = id
	descriptor.CreatedAt = s.now().UTC()

	return descriptor, nil
}

// DescriptorID derives a stable identifier from the descriptor body: the
// keccak256 hash of its JSON encoding without ID and CreatedAt.
func DescriptorID(d *models.PolicyDescriptor) (string, error) {
	body := *d
	body.ID = ""
	body.CreatedAt = time.Time{}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode policy descriptor: %w", err)
	}
	return crypto.Keccak256Hash(data).Hex(), nil
}

// Ensure SimulatedSubmitter implements PolicySubmitter
var _ usecase.PolicySubmitter = (*SimulatedSubmitter)(nil)
