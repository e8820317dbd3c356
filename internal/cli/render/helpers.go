package render

import (
	"strings"

	"github.com/fatih/color"
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon.
// Multi-line errors (draft field lists) are kept whole; otherwise only the
// innermost message of an error chain is shown.
func FormatError(message string) string {
	msg := message
	if !strings.Contains(message, "\n") {
		parts := strings.Split(message, ": ")
		msg = parts[len(parts)-1]
	}

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}
