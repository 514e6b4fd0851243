package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for jobboard.
type Config struct {
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	Storage    StorageConfig    `toml:"storage"`
	Encryption EncryptionConfig `toml:"encryption"`
	Source     SourceConfig     `toml:"source"`
	Board      BoardConfig      `toml:"board"`
}

// StorageConfig represents configuration for the persistent store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type StorageConfig struct {
	Type string `toml:"type"`          // "memory", "filesystem", "sqlite", "badger" or "s3"
	Dir  string `toml:"dir,omitempty"` // used for filesystem, sqlite and badger

	// S3-specific fields (only used when Type == "s3")
	S3Bucket string `toml:"s3_bucket,omitempty"`
	S3Prefix string `toml:"s3_prefix,omitempty"`
	S3Region string `toml:"s3_region,omitempty"`
	// S3Endpoint points at an S3-compatible service such as MinIO.
	S3Endpoint        string `toml:"s3_endpoint,omitempty"`
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`
}

// EncryptionConfig holds paths to the age key pair used to encrypt stored entries.
type EncryptionConfig struct {
	Enabled        bool   `toml:"enabled"`
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// SourceConfig configures the external job search API.
type SourceConfig struct {
	Enabled           bool     `toml:"enabled"`
	Endpoint          string   `toml:"endpoint"`
	APIKey            string   `toml:"api_key,omitempty"`
	APIHost           string   `toml:"api_host"`
	DefaultQuery      string   `toml:"default_query"`
	Country           string   `toml:"country"`
	DatePosted        string   `toml:"date_posted"`
	NumPages          int      `toml:"num_pages"`
	Timeout           Duration `toml:"timeout"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
}

// BoardConfig holds board behaviour settings.
type BoardConfig struct {
	SubmitDelay Duration `toml:"submit_delay"` // simulated processing delay for applications
}

// Duration is a time.Duration that reads and writes as a string like "1.5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults for the JSearch API on RapidAPI.
const (
	DefaultEndpoint          = "https://jsearch.p.rapidapi.com/search"
	DefaultAPIHost           = "jsearch.p.rapidapi.com"
	DefaultQuery             = "student"
	DefaultCountry           = "us"
	DefaultDatePosted        = "all"
	DefaultNumPages          = 1
	DefaultTimeout           = 10 * time.Second
	DefaultRequestsPerMinute = 30
	DefaultSubmitDelay       = 1500 * time.Millisecond
)

// NewConfig creates a new Config with the provided base directory and defaults
// for everything else. Storage defaults to SQLite under the base directory.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Storage: StorageConfig{
			Type: "sqlite",
			Dir:  filepath.Join(baseDir, "db"),
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "jobboard.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "jobboard.key"),
		},
		Source: SourceConfig{
			Endpoint:          DefaultEndpoint,
			APIHost:           DefaultAPIHost,
			DefaultQuery:      DefaultQuery,
			Country:           DefaultCountry,
			DatePosted:        DefaultDatePosted,
			NumPages:          DefaultNumPages,
			Timeout:           Duration{DefaultTimeout},
			RequestsPerMinute: DefaultRequestsPerMinute,
		},
		Board: BoardConfig{
			SubmitDelay: Duration{DefaultSubmitDelay},
		},
	}
}

// ApplyEnv overrides the source credentials from JSEARCH_API_KEY and
// JSEARCH_API_HOST when they are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if key := getenv("JSEARCH_API_KEY"); key != "" {
		c.Source.APIKey = key
	}
	if host := getenv("JSEARCH_API_HOST"); host != "" {
		c.Source.APIHost = host
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
// Source and board settings left out of the file take their defaults.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	defaults := NewConfig("")
	cfg := Config{
		Source: defaults.Source,
		Board:  defaults.Board,
	}
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The file may hold an API key.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
