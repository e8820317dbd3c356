package models

import (
	"fmt"
	"strings"
	"time"
)

// BoundaryKind selects one side of a timelock window
type BoundaryKind string

const (
	BoundaryAfter  BoundaryKind = "after"
	BoundaryBefore BoundaryKind = "before"
)

// BoundaryField names a mutable field of a TimelockBoundary
type BoundaryField string

const (
	BoundaryFieldEnabled BoundaryField = "enabled"
	BoundaryFieldDate    BoundaryField = "date"
	BoundaryFieldTime    BoundaryField = "time"
)

const (
	dateLayout    = "2006-01-02"
	displayLayout = "2006-01-02 15:04 UTC"
)

// slotLayouts are the accepted date+time combinations, minute resolution first
var slotLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// TimelockBoundary is one optional edge of a timelock window.
// Slot is derived from Date and Time and is nil whenever the boundary
// is disabled or incomplete.
type TimelockBoundary struct {
	Enabled bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty" toml:"date,omitempty"`
	Time    string `json:"time,omitempty" yaml:"time,omitempty" toml:"time,omitempty"`
	Slot    *int64 `json:"slot" yaml:"-" toml:"-"`
}

// TimelockWindow restricts when actions under a policy may execute
type TimelockWindow struct {
	After  TimelockBoundary `json:"after" yaml:"after" toml:"after"`
	Before TimelockBoundary `json:"before" yaml:"before" toml:"before"`
}

// ComputeSlot interprets date (YYYY-MM-DD) and clock (HH:MM) as a UTC instant and
// returns whole seconds since the epoch. It returns nil if either input is missing
// or the combination does not parse.
func ComputeSlot(date, clock string) *int64 {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return nil
	}

	for _, layout := range slotLayouts {
		ts, err := time.ParseInLocation(layout, date+"T"+clock, time.UTC)
		if err != nil {
			continue
		}
		// inputs carry no sub-second part, so Unix() is floor(ms / 1000)
		slot := ts.Unix()
		return &slot
	}
	return nil
}

// boundary returns a pointer to the named side, or nil for an unknown kind
func (w *TimelockWindow) boundary(which BoundaryKind) *TimelockBoundary {
	switch which {
	case BoundaryAfter:
		return &w.After
	case BoundaryBefore:
		return &w.Before
	default:
		return nil
	}
}

// SetBoundary mutates one field of a boundary and re-derives its slot.
// Enabled accepts "true"/"false"; anything else leaves the flag untouched.
func (w *TimelockWindow) SetBoundary(which BoundaryKind, field BoundaryField, value string, parentEnabled bool) {
	b := w.boundary(which)
	if b == nil {
		return
	}

	switch field {
	case BoundaryFieldEnabled:
		switch value {
		case "true":
			b.Enabled = true
		case "false":
			b.Enabled = false
		}
	case BoundaryFieldDate:
		b.Date = value
	case BoundaryFieldTime:
		b.Time = value
	}

	w.Recompute(parentEnabled)
}

// Recompute re-derives both slots. A disabled parent or boundary yields a nil
// slot; the raw date and time strings are retained.
func (w *TimelockWindow) Recompute(parentEnabled bool) {
	for _, b := range []*TimelockBoundary{&w.After, &w.Before} {
		if !parentEnabled || !b.Enabled {
			b.Slot = nil
			continue
		}
		b.Slot = ComputeSlot(b.Date, b.Time)
	}
}

// Reset disables both boundaries and clears their inputs
func (w *TimelockWindow) Reset() {
	w.After = TimelockBoundary{}
	w.Before = TimelockBoundary{}
}

// Active reports whether at least one boundary is enabled
func (w TimelockWindow) Active() bool {
	return w.After.Enabled || w.Before.Enabled
}

// Clone returns a copy with independent slot pointers
func (w TimelockWindow) Clone() TimelockWindow {
	return TimelockWindow{After: w.After.clone(), Before: w.Before.clone()}
}

func (b TimelockBoundary) clone() TimelockBoundary {
	if b.Slot != nil {
		slot := *b.Slot
		b.Slot = &slot
	}
	return b
}

// Describe summarises the current constraints on one line for review screens.
// It is presentation only and plays no part in validation.
func (w TimelockWindow) Describe(parentEnabled bool) string {
	var after, before *int64
	if parentEnabled {
		if w.After.Enabled {
			after = w.After.Slot
		}
		if w.Before.Enabled {
			before = w.Before.Slot
		}
	}

	switch {
	case after != nil && before != nil:
		return fmt.Sprintf("Executable between %s and %s (slots %d–%d)",
			formatSlot(*after), formatSlot(*before), *after, *before)
	case after != nil:
		return fmt.Sprintf("Executable after %s (slot %d)", formatSlot(*after), *after)
	case before != nil:
		return fmt.Sprintf("Executable before %s (slot %d)", formatSlot(*before), *before)
	default:
		return "No time constraints"
	}
}

func formatSlot(slot int64) string {
	return time.Unix(slot, 0).UTC().Format(displayLayout)
}

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, strings.TrimSpace(s))
	return err == nil
}
