package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := NewConfig("/home/user/.local/share/jobboard")
	original.Storage = StorageConfig{Type: "s3", S3Bucket: "boards", S3Prefix: "campus/", S3Region: "us-east-2"}
	original.Encryption.Enabled = true
	original.Source.Enabled = true
	original.Source.APIKey = "secret"
	original.Source.Timeout = Duration{3 * time.Second}
	original.Board.SubmitDelay = Duration{250 * time.Millisecond}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Storage != original.Storage {
		t.Errorf("Storage = %+v, want %+v", got.Storage, original.Storage)
	}
	if got.Encryption != original.Encryption {
		t.Errorf("Encryption = %+v, want %+v", got.Encryption, original.Encryption)
	}
	if got.Source != original.Source {
		t.Errorf("Source = %+v, want %+v", got.Source, original.Source)
	}
	if got.Board.SubmitDelay.Duration != 250*time.Millisecond {
		t.Errorf("Board.SubmitDelay = %v, want 250ms", got.Board.SubmitDelay)
	}
}

func TestManager_Read_Defaults(t *testing.T) {
	input := `
base_dir = "/data/jobboard"

[storage]
type = "memory"

[source]
enabled = true
api_key = "k"
`
	m := &Manager{}
	got, err := m.Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.Storage.Type != "memory" {
		t.Errorf("Storage.Type = %q, want memory", got.Storage.Type)
	}
	if got.Source.Endpoint != DefaultEndpoint {
		t.Errorf("Source.Endpoint = %q, want %q", got.Source.Endpoint, DefaultEndpoint)
	}
	if got.Source.DefaultQuery != "student" {
		t.Errorf("Source.DefaultQuery = %q, want student", got.Source.DefaultQuery)
	}
	if got.Source.Timeout.Duration != DefaultTimeout {
		t.Errorf("Source.Timeout = %v, want %v", got.Source.Timeout, DefaultTimeout)
	}
	if got.Board.SubmitDelay.Duration != 1500*time.Millisecond {
		t.Errorf("Board.SubmitDelay = %v, want 1.5s", got.Board.SubmitDelay)
	}
}

func TestManager_Read_InvalidDuration(t *testing.T) {
	m := &Manager{}
	_, err := m.Read(strings.NewReader("[board]\nsubmit_delay = \"soon\"\n"))
	if err == nil {
		t.Fatal("Read() expected error for invalid duration")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/jobboard")

	if cfg.BaseDir != "/data/jobboard" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/jobboard")
	}
	if cfg.LogDir != "/data/jobboard/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/jobboard/log")
	}
	if cfg.Storage.Type != "sqlite" || cfg.Storage.Dir != "/data/jobboard/db" {
		t.Errorf("Storage = %+v, want sqlite in /data/jobboard/db", cfg.Storage)
	}
	if cfg.Encryption.Enabled {
		t.Error("Encryption.Enabled = true, want false")
	}
	if cfg.Encryption.PublicKeyPath != "/data/jobboard/keys/jobboard.pub" {
		t.Errorf("Encryption.PublicKeyPath = %q", cfg.Encryption.PublicKeyPath)
	}
	if cfg.Encryption.PrivateKeyPath != "/data/jobboard/keys/jobboard.key" {
		t.Errorf("Encryption.PrivateKeyPath = %q", cfg.Encryption.PrivateKeyPath)
	}
	if cfg.Source.Enabled {
		t.Error("Source.Enabled = true, want false")
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{"JSEARCH_API_KEY": "from-env"}
	cfg := NewConfig("/data")
	cfg.Source.APIKey = "from-file"

	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.Source.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", cfg.Source.APIKey)
	}
	if cfg.Source.APIHost != DefaultAPIHost {
		t.Errorf("APIHost = %q, want unchanged default", cfg.Source.APIHost)
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "jobboard.toml")

		if err := Init(path, NewConfig(dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("config file not created: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "jobboard.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		if err := Init(path, cfg); err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "jobboard.toml")
		cfg := NewConfig(dir)
		cfg.Storage = StorageConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.Storage.Type != "memory" {
			t.Errorf("Storage.Type = %q, want memory", got.Storage.Type)
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		if _, err := ReadFromFile("/nonexistent/path/jobboard.toml"); err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}
