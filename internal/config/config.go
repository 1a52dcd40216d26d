// Package config provides configuration management for the product search client.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvBaseURL       = "PRODUCT_SEARCH_BASE_URL"
	EnvTimeoutSec    = "PRODUCT_SEARCH_TIMEOUT_SEC"
	EnvMaxResponseKb = "PRODUCT_SEARCH_MAX_RESPONSE_KB"
	EnvLogLevel      = "PRODUCT_SEARCH_LOG_LEVEL"
	EnvLogFormat     = "PRODUCT_SEARCH_LOG_FORMAT"
	EnvOutputFormat  = "PRODUCT_SEARCH_OUTPUT_FORMAT"
	EnvStoragePath   = "PRODUCT_SEARCH_DB_PATH"
)

// DefaultEnvFiles are loaded, when present, before environment overrides apply.
var DefaultEnvFiles = []string{".env.local", ".env"}

// Configuration validation errors.
var (
	ErrMissingBaseURL      = errors.New("backend.base_url is required (or set " + EnvBaseURL + ")")
	ErrInvalidBaseURL      = errors.New("backend.base_url must be an absolute http(s) URL")
	ErrInvalidTimeout      = errors.New("backend.timeout_sec must be at least 1")
	ErrInvalidMaxResponse  = errors.New("backend.max_response_kb must be at least 1")
	ErrInvalidLimit        = errors.New("search.limit must be non-negative")
	ErrInvalidOutputFormat = errors.New("output.format must be one of: table, markdown, json")
	ErrInvalidWidth        = errors.New("output.width must be non-negative")
	ErrMissingStoragePath  = errors.New("storage.path is required")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat    = errors.New("logging.format must be 'text' or 'json'")
	ErrInvalidEnvValue     = errors.New("invalid environment value")
)

// Config represents the complete client configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Search  SearchConfig  `yaml:"search"`
	Output  OutputConfig  `yaml:"output"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig describes the search backend.
type BackendConfig struct {
	BaseURL       string `yaml:"base_url"`
	UserAgent     string `yaml:"user_agent"`
	TimeoutSec    int    `yaml:"timeout_sec"`
	MaxResponseKb int    `yaml:"max_response_kb"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	// Limit caps the number of products shown; 0 shows all.
	Limit int `yaml:"limit"`
}

// OutputConfig defines how results are printed.
type OutputConfig struct {
	Format string `yaml:"format"`
	Width  int    `yaml:"width"`
}

// StorageConfig locates the snapshot database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns a configuration with every optional value filled in.
// The backend URL has no default.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{
			UserAgent:     "productsearch/1.0",
			TimeoutSec:    30,
			MaxResponseKb: 4096,
		},
		Output: OutputConfig{
			Format: "table",
			Width:  100,
		},
		Storage: StorageConfig{
			Path: "data/productsearch.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file at
// path, env files and the process environment, in that order of precedence
// (later wins). envFiles defaults to DefaultEnvFiles; missing env files are
// skipped.
func LoadConfig(path string, envFiles ...string) (*Config, error) {
	return load(path, envFiles, (*Config).Validate)
}

// LoadLocalConfig is LoadConfig for commands that never contact the backend:
// the backend section is not validated, so base_url may be unset.
func LoadLocalConfig(path string, envFiles ...string) (*Config, error) {
	return load(path, envFiles, (*Config).ValidateLocal)
}

func load(path string, envFiles []string, validate func(*Config) error) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if envFiles == nil {
		envFiles = DefaultEnvFiles
	}

	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadEnvFiles(files []string) error {
	for _, name := range files {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		// godotenv never overrides variables already set in the environment.
		if err := godotenv.Load(name); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", name, err)
		}
	}

	return nil
}

func (c *Config) applyEnv() error {
	if v := lookupEnv(EnvBaseURL); v != "" {
		c.Backend.BaseURL = v
	}

	if err := envInt(EnvTimeoutSec, &c.Backend.TimeoutSec); err != nil {
		return err
	}

	if err := envInt(EnvMaxResponseKb, &c.Backend.MaxResponseKb); err != nil {
		return err
	}

	if v := lookupEnv(EnvLogLevel); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}

	if v := lookupEnv(EnvLogFormat); v != "" {
		c.Logging.Format = strings.ToLower(v)
	}

	if v := lookupEnv(EnvOutputFormat); v != "" {
		c.Output.Format = strings.ToLower(v)
	}

	if v := lookupEnv(EnvStoragePath); v != "" {
		c.Storage.Path = v
	}

	return nil
}

func lookupEnv(key string) string {
	v, _ := os.LookupEnv(key)

	return strings.TrimSpace(v)
}

func envInt(key string, dst *int) error {
	v := lookupEnv(key)
	if v == "" {
		return nil
	}

	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidEnvValue, key, v)
	}

	*dst = parsed

	return nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the whole configuration.
func (c *Config) Validate() error {
	if err := c.Backend.Validate(); err != nil {
		return err
	}

	return c.ValidateLocal()
}

// Validate checks the backend URL and request limits.
func (b *BackendConfig) Validate() error {
	base := strings.TrimSpace(b.BaseURL)
	if base == "" {
		return ErrMissingBaseURL
	}

	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, base)
	}

	if b.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if b.MaxResponseKb < 1 {
		return ErrInvalidMaxResponse
	}

	return nil
}

// ValidateLocal validates everything except the backend section.
func (c *Config) ValidateLocal() error {
	if c.Search.Limit < 0 {
		return ErrInvalidLimit
	}

	validFormats := map[string]bool{"table": true, "markdown": true, "json": true}
	if !validFormats[c.Output.Format] {
		return ErrInvalidOutputFormat
	}

	if c.Output.Width < 0 {
		return ErrInvalidWidth
	}

	if strings.TrimSpace(c.Storage.Path) == "" {
		return ErrMissingStoragePath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// Timeout returns the request timeout duration.
func (b *BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSec) * time.Second
}

// MaxResponseBytes returns the response body limit in bytes.
func (b *BackendConfig) MaxResponseBytes() int64 {
	return int64(b.MaxResponseKb) * 1024
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Backend: %s, Timeout: %ds, Output: %s, Storage: %s}",
		c.Backend.BaseURL,
		c.Backend.TimeoutSec,
		c.Output.Format,
		c.Storage.Path,
	)
}
