package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
	"github.com/trebuchet-org/treasury-cli/internal/domain/models"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "create"}
	cmd.Flags().String("mode", "", "")
	cmd.Flags().String("preset", "", "")
	cmd.Flags().Bool("skip-mode", false, "")
	cmd.Flags().Bool("json", false, "")
	return cmd
}

func TestProvider_Defaults(t *testing.T) {
	dir := t.TempDir()
	v := viper.New()
	v.Set("project_root", dir)

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, ".treasury"), cfg.DataDir)
	assert.Equal(t, models.ModeSimple, cfg.DefaultMode)
	assert.Equal(t, models.PresetCustom, cfg.DefaultPreset)
	assert.Equal(t, config.DefaultWizardConfig(), cfg.Wizard)
	assert.Equal(t, "defaults", cfg.ConfigSource)
}

func TestProvider_ProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileName), `
[defaults]
mode = "advanced"
preset = "3-of-5"

[wizard]
submit_delay = "250ms"
min_signatures = 1
max_signatures = 9
skip_mode_step = true
`)
	v := viper.New()
	v.Set("project_root", dir)

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, ProjectFileName, cfg.ConfigSource)
	assert.Equal(t, models.ModeAdvanced, cfg.DefaultMode)
	assert.Equal(t, models.Preset3Of5, cfg.DefaultPreset)
	assert.Equal(t, config.WizardConfig{
		SubmitDelay:   250 * time.Millisecond,
		MinSignatures: 1,
		MaxSignatures: 9,
		SkipModeStep:  true,
	}, cfg.Wizard)
}

func TestProvider_PartialProjectFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectFileName), "[wizard]\nmax_signatures = 11\n")
	v := viper.New()
	v.Set("project_root", dir)

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, 11, cfg.Wizard.MaxSignatures)
	assert.Equal(t, 2, cfg.Wizard.MinSignatures)
	assert.Equal(t, 1500*time.Millisecond, cfg.Wizard.SubmitDelay)
}

func TestProvider_InvalidProjectFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "malformed toml",
			content: "[wizard\n",
			errMsg:  "failed to parse treasury.toml",
		},
		{
			name:    "zero minimum",
			content: "[wizard]\nmin_signatures = 0\n",
			errMsg:  "wizard.min_signatures must be at least 1",
		},
		{
			name:    "max below min",
			content: "[wizard]\nmin_signatures = 3\nmax_signatures = 2\n",
			errMsg:  "wizard.max_signatures must not be below min_signatures",
		},
		{
			name:    "negative delay",
			content: "[wizard]\nsubmit_delay = \"-1s\"\n",
			errMsg:  "wizard.submit_delay must not be negative",
		},
		{
			name:    "unknown mode",
			content: "[defaults]\nmode = \"expert\"\n",
			errMsg:  "unknown policy mode",
		},
		{
			name:    "unknown preset",
			content: "[defaults]\npreset = \"4-of-7\"\n",
			errMsg:  "unknown preset \"4-of-7\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ProjectFileName), tt.content)
			v := viper.New()
			v.Set("project_root", dir)

			_, err := Provider(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProvider_Precedence(t *testing.T) {
	tests := []struct {
		name         string
		projectFile  bool
		localConfig  string
		env          string
		flag         string
		expectedMode models.PolicyMode
	}{
		{name: "defaults", expectedMode: models.ModeSimple},
		{name: "project file", projectFile: true, expectedMode: models.ModeAdvanced},
		{name: "local config over project file", projectFile: true, localConfig: "full", expectedMode: models.ModeFull},
		{name: "env over local config", projectFile: true, localConfig: "full", env: "simple", expectedMode: models.ModeSimple},
		{name: "flag over env", projectFile: true, localConfig: "full", env: "simple", flag: "advanced", expectedMode: models.ModeAdvanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.projectFile {
				writeFile(t, filepath.Join(dir, ProjectFileName), "[defaults]\nmode = \"advanced\"\n")
			}
			if tt.localConfig != "" {
				writeFile(t, filepath.Join(dir, ".treasury", "config.local.json"), `{"mode": "`+tt.localConfig+`"}`)
			}
			t.Setenv("TREASURY_MODE", tt.env)

			cmd := newTestCmd()
			if tt.flag != "" {
				require.NoError(t, cmd.Flags().Set("mode", tt.flag))
			}

			cfg, err := Provider(SetupViper(dir, cmd))
			require.NoError(t, err)
			assert.Equal(t, tt.expectedMode, cfg.DefaultMode)
		})
	}
}

func TestProvider_FlagsOverrideWizardSettings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TREASURY_SUBMIT_DELAY", "10ms")

	cmd := newTestCmd()
	require.NoError(t, cmd.Flags().Set("skip-mode", "true"))
	require.NoError(t, cmd.Flags().Set("json", "true"))

	cfg, err := Provider(SetupViper(dir, cmd))
	require.NoError(t, err)

	assert.True(t, cfg.Wizard.SkipModeStep)
	assert.True(t, cfg.JSON)
	assert.Equal(t, 10*time.Millisecond, cfg.Wizard.SubmitDelay)
}

func TestProvider_LoadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "TREASURY_ENV_FILE_PROBE=loaded\n")
	t.Setenv("TREASURY_ENV_FILE_PROBE", "")
	require.NoError(t, os.Unsetenv("TREASURY_ENV_FILE_PROBE"))

	v := viper.New()
	v.Set("project_root", dir)
	_, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, "loaded", os.Getenv("TREASURY_ENV_FILE_PROBE"))
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ProjectFileName), "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	prevWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(prevWd) })

	found, err := filepath.EvalSymlinks(FindProjectRoot())
	require.NoError(t, err)
	expected, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	assert.Equal(t, expected, found)
}
