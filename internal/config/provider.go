package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		projectRoot = FindProjectRoot()
	}

	loadEnvFiles(projectRoot)

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".treasury"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		Wizard:         config.DefaultWizardConfig(),
		ConfigSource:   "defaults",
	}

	projectFile, err := loadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}

	mode := v.GetString("mode")
	preset := v.GetString("preset")
	if projectFile != nil {
		cfg.ConfigSource = ProjectFileName
		cfg.Wizard = projectFile.Wizard
		if mode == "" {
			mode = projectFile.Defaults.Mode
		}
		if preset == "" {
			preset = projectFile.Defaults.Preset
		}
	}
	if v.IsSet("submit_delay") {
		cfg.Wizard.SubmitDelay = v.GetDuration("submit_delay")
	}
	if v.GetBool("skip_mode") {
		cfg.Wizard.SkipModeStep = true
	}

	cfg.DefaultMode = models.ModeSimple
	if mode != "" {
		parsed, err := models.ParsePolicyMode(mode)
		if err != nil {
			return nil, err
		}
		cfg.DefaultMode = parsed
	}

	cfg.DefaultPreset = models.PresetCustom
	if preset != "" {
		tag := models.PresetTag(preset)
		if _, ok := models.LookupPreset(tag); !ok && tag != models.PresetCustom {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		cfg.DefaultPreset = tag
	}

	return cfg, nil
}

// FindProjectRoot walks up from the current directory looking for treasury.toml
// or a .treasury directory. Falls back to the current directory.
func FindProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	dir := cwd
	for {
		for _, marker := range []string{ProjectFileName, ".treasury"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".treasury"))

	// Set up environment variables
	v.SetEnvPrefix("TREASURY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("timeout", "0s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})

	return v
}
