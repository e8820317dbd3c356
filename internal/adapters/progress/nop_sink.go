package progress

import (
	"context"

	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

// NopSink is a no-op implementation of ProgressSink
type NopSink struct{}

// NewNopSink creates a new no-op progress sink
func NewNopSink() usecase.ProgressSink {
	return &NopSink{}
}

// OnProgress does nothing with progress events
func (n *NopSink) OnProgress(context.Context, usecase.ProgressEvent) {}

// Info does nothing with info messages
func (n *NopSink) Info(string) {}

// Error does nothing with error messages
func (n *NopSink) Error(string) {}

// Ensure NopSink implements ProgressSink
var _ usecase.ProgressSink = (*NopSink)(nil)
