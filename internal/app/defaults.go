package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"jobboard/internal/config"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - JOBBOARD_CONFIG_PATH: config file location (default: ~/.config/jobboard.toml)
//   - JOBBOARD_HOME: base directory for board data (default: ~/.local/share/jobboard)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// LoadEnv loads variables from the given .env files (default ".env") without
// overriding ones already set. Missing files are ignored.
func LoadEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

// LoadConfig reads the config file at path and applies the JSEARCH_*
// environment overrides.
func LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.ReadFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, nil
}

// getConfigPath returns the config file path, checking JOBBOARD_CONFIG_PATH env var first,
// then falling back to the default ~/.config/jobboard.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("JOBBOARD_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "jobboard.toml"), nil
}

// getBaseDir returns the base directory for board data, checking JOBBOARD_HOME env var first,
// then falling back to the XDG default ~/.local/share/jobboard.
func getBaseDir() (string, error) {
	if path := os.Getenv("JOBBOARD_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "jobboard"), nil
}
