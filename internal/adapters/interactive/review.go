package interactive

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/trebuchet-org/treasury-cli/internal/domain"
	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// submittedMsg carries the result of a submission back into the model
type submittedMsg struct {
	descriptor *models.PolicyDescriptor
	err        error
}

type tickMsg struct{}

// reviewModel is the bubbletea model for the review step
type reviewModel struct {
	ctx     context.Context
	wizard  *domain.Wizard
	submit  domain.SubmitFunc
	policy  *models.MultisigPolicy
	outcome usecase.ReviewOutcome
	err     error
	frame   int
	done    bool
}

func newReviewModel(ctx context.Context, wizard *domain.Wizard, submit domain.SubmitFunc) reviewModel {
	return reviewModel{
		ctx:     ctx,
		wizard:  wizard,
		submit:  submit,
		policy:  wizard.Policy(),
		outcome: usecase.ReviewCancelled,
	}
}

// Init is the initial command for bubbletea
func (m reviewModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case submittedMsg:
		if msg.err != nil {
			m.wizard.AbortSubmit()
			m.err = msg.err
			return m, nil
		}
		if m.wizard.CompleteSubmit(msg.descriptor) {
			m.outcome = usecase.ReviewSubmitted
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		if m.wizard.Submitting() {
			m.frame = (m.frame + 1) % len(spinnerFrames)
			return m, tick()
		}
	}
	return m, nil
}

func (m reviewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// nothing but the pending submission can end the screen while it runs
	if m.wizard.Submitting() {
		return m, nil
	}

	switch msg.String() {
	case "enter", "s":
		if !m.wizard.BeginSubmit() {
			return m, nil
		}
		m.err = nil
		return m, tea.Batch(m.submitCmd(), tick())
	case "b", "esc":
		m.outcome = usecase.ReviewBack
		m.done = true
		return m, tea.Quit
	case "q", "ctrl+c":
		m.outcome = usecase.ReviewCancelled
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// submitCmd runs the submission off the event loop
func (m reviewModel) submitCmd() tea.Cmd {
	ctx, submit, policy := m.ctx, m.submit, m.wizard.Policy()
	return func() tea.Msg {
		descriptor, err := submit(ctx, policy)
		return submittedMsg{descriptor: descriptor, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

// View renders the UI
func (m reviewModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Sprint("Review policy\n\n"))

	p := m.policy
	fmt.Fprintf(&b, "  %-22s %s\n", "Name:", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&b, "  %-22s %s\n", "Description:", p.Description)
	}
	fmt.Fprintf(&b, "  %-22s %s\n", "Mode:", p.Mode)
	fmt.Fprintf(&b, "  %-22s %d of %d\n", "Required signatures:", p.RequiredSignatures, p.Signers.ValidCount())
	if p.Mode.ExposesTimelock() {
		fmt.Fprintf(&b, "  %-22s %s\n", "Preset:", p.PresetConfig)
		fmt.Fprintf(&b, "  %-22s %s\n", "Timelock:", p.DescribeTimelock())
	}

	b.WriteString("\n  Signers:\n")
	for i, s := range p.Signers.Valid() {
		fmt.Fprintf(&b, "    %d. %s %s %s\n", i+1, s.Name,
			faintStyle.Sprint(s.Address), color.New(color.FgYellow).Sprintf("(%s)", s.Role))
	}
	b.WriteString("\n")

	switch {
	case m.wizard.Submitting():
		b.WriteString(color.New(color.FgCyan).Sprintf("%s Creating policy...\n", spinnerFrames[m.frame]))
	case m.err != nil:
		b.WriteString(violationStyle.Sprintf("✗ %v\n", m.err))
		b.WriteString(color.New(color.FgYellow).Sprint("Enter: retry  b: back  q: cancel\n"))
	default:
		b.WriteString(color.New(color.FgYellow).Sprint("Enter: create policy  b: back  q: cancel\n"))
	}

	return b.String()
}

// ReviewAdapter shows the review screen with bubbletea
type ReviewAdapter struct {
	config *config.RuntimeConfig
	opts   []tea.ProgramOption
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(cfg *config.RuntimeConfig) *ReviewAdapter {
	return &ReviewAdapter{config: cfg}
}

// Review runs the review screen until the user submits, goes back or cancels
func (r *ReviewAdapter) Review(ctx context.Context, wizard *domain.Wizard, submit domain.SubmitFunc) (usecase.ReviewOutcome, error) {
	if r.config.NonInteractive {
		return usecase.ReviewCancelled, domain.ErrNonInteractive
	}

	// a submission still pending when the program stops is dropped; Review
	// must not stay locked in the submitting state
	defer wizard.AbortSubmit()

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, r.opts...)
	p := tea.NewProgram(newReviewModel(ctx, wizard, submit), opts...)

	finalModel, err := p.Run()
	if err != nil {
		return usecase.ReviewCancelled, fmt.Errorf("review failed: %w", err)
	}

	m := finalModel.(reviewModel)
	return m.outcome, nil
}

// Ensure the adapter implements the interface
var _ usecase.ReviewConfirmer = (*ReviewAdapter)(nil)
