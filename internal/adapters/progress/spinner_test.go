package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

func TestSpinnerSink_Events(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	sink := newSpinnerSink(&buf)
	ctx := context.Background()

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "submitting", Message: "Creating policy...", Spinner: true})
	assert.Equal(t, " Creating policy...", sink.spinner.Suffix)
	assert.Equal(t, "submitting", sink.Stage())

	sink.Info("still working")

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: "complete"})
	assert.False(t, sink.spinner.Active())
	assert.Equal(t, "complete", sink.Stage())

	sink.Error("something broke")
	assert.Contains(t, buf.String(), "still working")
	assert.Contains(t, buf.String(), "something broke")
}
