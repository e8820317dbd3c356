package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/treasury-cli/internal/domain/config"
)

// ProjectFileName is the optional project-level settings file
const ProjectFileName = "treasury.toml"

// loadEnvFiles loads .env files from the project root so TREASURY_* variables
// can live next to the project
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// loadProjectFile loads treasury.toml. Returns (nil, nil) if the file doesn't exist.
func loadProjectFile(projectRoot string) (*config.ProjectFile, error) {
	path := filepath.Join(projectRoot, ProjectFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var pf config.ProjectFile
	pf.Wizard = config.DefaultWizardConfig()
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	if pf.Wizard.MinSignatures < 1 {
		return nil, fmt.Errorf("%s: wizard.min_signatures must be at least 1", ProjectFileName)
	}
	if pf.Wizard.MaxSignatures < pf.Wizard.MinSignatures {
		return nil, fmt.Errorf("%s: wizard.max_signatures must not be below min_signatures", ProjectFileName)
	}
	if pf.Wizard.SubmitDelay < 0 {
		return nil, fmt.Errorf("%s: wizard.submit_delay must not be negative", ProjectFileName)
	}

	return &pf, nil
}
