package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSlot(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		clock    string
		expected *int64
	}{
		{"start of 2025", "2025-01-01", "00:00", ptr(1735689600)},
		{"start of 2024", "2024-01-01", "00:00", ptr(1704067200)},
		{"minute resolution", "2025-01-01", "12:30", ptr(1735734600)},
		{"seconds accepted", "2025-01-01", "00:00:59", ptr(1735689659)},
		{"surrounding whitespace", " 2025-01-01 ", " 00:00 ", ptr(1735689600)},
		{"epoch", "1970-01-01", "00:00", ptr(0)},
		{"missing date", "", "00:00", nil},
		{"missing time", "2025-01-01", "", nil},
		{"blank date", "   ", "00:00", nil},
		{"impossible day", "2025-02-30", "00:00", nil},
		{"impossible hour", "2025-01-01", "25:00", nil},
		{"wrong date order", "01/01/2025", "00:00", nil},
		{"garbage", "soon", "later", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeSlot(tt.date, tt.clock))
		})
	}
}

func TestTimelockWindow_SetBoundary(t *testing.T) {
	var w TimelockWindow

	w.SetBoundary(BoundaryAfter, BoundaryFieldDate, "2025-01-01", true)
	w.SetBoundary(BoundaryAfter, BoundaryFieldTime, "00:00", true)
	assert.Nil(t, w.After.Slot, "disabled boundary has no slot")

	w.SetBoundary(BoundaryAfter, BoundaryFieldEnabled, "true", true)
	require.NotNil(t, w.After.Slot)
	assert.Equal(t, int64(1735689600), *w.After.Slot)

	w.SetBoundary(BoundaryAfter, BoundaryFieldEnabled, "maybe", true)
	assert.True(t, w.After.Enabled, "unrecognised flag value leaves state alone")

	w.SetBoundary(BoundaryAfter, BoundaryFieldTime, "bogus", true)
	assert.Nil(t, w.After.Slot)

	w.SetBoundary(BoundaryKind("during"), BoundaryFieldEnabled, "true", true)
	assert.False(t, w.Before.Enabled)
}

func TestTimelockWindow_Recompute(t *testing.T) {
	w := TimelockWindow{
		After:  TimelockBoundary{Enabled: true, Date: "2025-01-01", Time: "00:00"},
		Before: TimelockBoundary{Enabled: false, Date: "2026-01-01", Time: "00:00", Slot: ptr(42)},
	}

	w.Recompute(true)
	require.NotNil(t, w.After.Slot)
	assert.Nil(t, w.Before.Slot, "stale slot of a disabled boundary is dropped")

	w.Recompute(false)
	assert.Nil(t, w.After.Slot)
	assert.Equal(t, "2025-01-01", w.After.Date, "raw inputs survive a disabled parent")
	assert.Equal(t, "00:00", w.After.Time)
}

func TestTimelockWindow_Reset(t *testing.T) {
	w := TimelockWindow{
		After:  TimelockBoundary{Enabled: true, Date: "2025-01-01", Time: "00:00", Slot: ptr(1735689600)},
		Before: TimelockBoundary{Enabled: true, Date: "2026-01-01", Time: "00:00"},
	}

	w.Reset()

	assert.Equal(t, TimelockWindow{}, w)
	assert.False(t, w.Active())
}

func TestTimelockWindow_Describe(t *testing.T) {
	after := TimelockBoundary{Enabled: true, Date: "2025-01-01", Time: "00:00"}
	before := TimelockBoundary{Enabled: true, Date: "2025-06-30", Time: "18:00"}

	tests := []struct {
		name     string
		window   TimelockWindow
		parent   bool
		expected string
	}{
		{
			name:     "no boundaries",
			window:   TimelockWindow{},
			parent:   true,
			expected: "No time constraints",
		},
		{
			name:     "after only",
			window:   TimelockWindow{After: after},
			parent:   true,
			expected: "Executable after 2025-01-01 00:00 UTC (slot 1735689600)",
		},
		{
			name:     "before only",
			window:   TimelockWindow{Before: before},
			parent:   true,
			expected: "Executable before 2025-06-30 18:00 UTC (slot 1751306400)",
		},
		{
			name:     "both",
			window:   TimelockWindow{After: after, Before: before},
			parent:   true,
			expected: "Executable between 2025-01-01 00:00 UTC and 2025-06-30 18:00 UTC (slots 1735689600–1751306400)",
		},
		{
			name:     "parent disabled",
			window:   TimelockWindow{After: after, Before: before},
			parent:   false,
			expected: "No time constraints",
		},
		{
			name:     "incomplete boundary",
			window:   TimelockWindow{After: TimelockBoundary{Enabled: true, Date: "2025-01-01"}},
			parent:   true,
			expected: "No time constraints",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.window
			w.Recompute(tt.parent)
			assert.Equal(t, tt.expected, w.Describe(tt.parent))
		})
	}
}

func TestTimelockWindow_Clone(t *testing.T) {
	w := TimelockWindow{After: TimelockBoundary{Enabled: true, Date: "2025-01-01", Time: "00:00"}}
	w.Recompute(true)

	cp := w.Clone()
	*cp.After.Slot = 0

	assert.Equal(t, int64(1735689600), *w.After.Slot)
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-01-01"))
	assert.True(t, ValidDate(" 2024-02-29 "))
	assert.False(t, ValidDate("2025-02-29"))
	assert.False(t, ValidDate("2025-1-1"))
	assert.False(t, ValidDate(""))
}

func ptr(v int64) *int64 {
	return &v
}
