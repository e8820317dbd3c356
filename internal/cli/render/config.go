package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
	"github.com/trebuchet-org/treasury-cli/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{
		out: out,
	}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return relPath
}

// RenderConfig renders the configuration display
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	if !result.Exists {
		fmt.Fprintf(r.out, "⚠️  No .treasury/config.local.json file found, using defaults\n")
	} else {
		fmt.Fprintln(r.out, "📋 Current config:")
	}

	fmt.Fprintf(r.out, "Mode:    %s\n", result.Config.Mode)
	if result.Config.Preset != "" {
		fmt.Fprintf(r.out, "Preset:  %s\n", result.Config.Preset)
	} else {
		fmt.Fprintf(r.out, "Preset:  %s\n", "(not set)")
	}

	w := result.Wizard
	fmt.Fprintf(r.out, "\n🧭 Wizard:\n")
	fmt.Fprintf(r.out, "Threshold range: %d-%d\n", w.MinSignatures, w.MaxSignatures)
	fmt.Fprintf(r.out, "Submit delay:    %s\n", w.SubmitDelay)
	if w.SkipModeStep {
		fmt.Fprintf(r.out, "Mode step:       skipped\n")
	}

	fmt.Fprintf(r.out, "\n📦 Config source: %s\n", result.ConfigSource)
	if result.Exists {
		fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	}

	return nil
}

// RenderSet renders the result of setting a configuration value
func (r *ConfigRenderer) RenderSet(result *usecase.SetConfigResult) error {
	fmt.Fprintf(r.out, "✅ Set %s to: %s\n", result.Key, result.Value)
	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}

// RenderRemove renders the result of removing a configuration value
func (r *ConfigRenderer) RenderRemove(result *usecase.RemoveConfigResult) error {
	switch result.Key {
	case config.ConfigKeyMode:
		fmt.Fprintf(r.out, "✅ Reset mode to: %s\n", result.UpdatedConfig.Mode)
	case config.ConfigKeyPreset:
		fmt.Fprintf(r.out, "✅ Removed preset from config (new policies start as custom)\n")
	}

	fmt.Fprintf(r.out, "📁 config saved to: %s\n", getRelativePath(result.ConfigPath))
	return nil
}
