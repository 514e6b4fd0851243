package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv("JOBBOARD_CONFIG_PATH", "/custom/config.toml")
		t.Setenv("JOBBOARD_HOME", "/custom/jobboard")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		if defaults["config_path"] != "/custom/config.toml" {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], "/custom/config.toml")
		}
		if defaults["base_dir"] != "/custom/jobboard" {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], "/custom/jobboard")
		}
		if defaults["log_dir"] != "/custom/jobboard/log" {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], "/custom/jobboard/log")
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		t.Setenv("JOBBOARD_CONFIG_PATH", "")
		t.Setenv("JOBBOARD_HOME", "")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()

		wantConfig := filepath.Join(homeDir, ".config", "jobboard.toml")
		if defaults["config_path"] != wantConfig {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], wantConfig)
		}

		wantBase := filepath.Join(homeDir, ".local", "share", "jobboard")
		if defaults["base_dir"] != wantBase {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], wantBase)
		}
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("loads variables from a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("JSEARCH_API_KEY=from-dotenv\n"), 0600); err != nil {
			t.Fatal(err)
		}
		t.Setenv("JSEARCH_API_KEY", "")
		os.Unsetenv("JSEARCH_API_KEY")

		if err := LoadEnv(path); err != nil {
			t.Fatalf("LoadEnv() error = %v", err)
		}
		if got := os.Getenv("JSEARCH_API_KEY"); got != "from-dotenv" {
			t.Errorf("JSEARCH_API_KEY = %q, want %q", got, "from-dotenv")
		}
	})

	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
			t.Errorf("LoadEnv() error = %v", err)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobboard.toml")
	if err := os.WriteFile(path, []byte("base_dir = \"/data\"\n[storage]\ntype = \"memory\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("JSEARCH_API_KEY", "env-key")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Source.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env override", cfg.Source.APIKey)
	}
	if cfg.Storage.Type != "memory" {
		t.Errorf("Storage.Type = %q", cfg.Storage.Type)
	}
}
