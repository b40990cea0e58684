package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key,omitempty"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url,omitempty"`

	Local   *LocalConfig  `yaml:"local,omitempty"`
	Rewrite RewriteConfig `yaml:"rewrite"`
	History HistoryConfig `yaml:"history"`
	Retry   RetryConfig   `yaml:"retry"`
	Log     LogConfig     `yaml:"log"`

	path string
}

type LocalConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Provider string `yaml:"provider"`
	Host     string `yaml:"host"`
	Model    string `yaml:"model"`
}

// RewriteConfig holds the default rewrite options by name.
type RewriteConfig struct {
	Tone        string `yaml:"tone,omitempty"`
	Strength    string `yaml:"strength,omitempty"`
	Purpose     string `yaml:"purpose,omitempty"`
	Readability string `yaml:"readability,omitempty"`
	PlainOutput *bool  `yaml:"plain_output,omitempty"`
}

// Plain reports whether model output should be sanitised. Defaults to true.
func (r RewriteConfig) Plain() bool {
	return r.PlainOutput == nil || *r.PlainOutput
}

type HistoryConfig struct {
	Path     string `yaml:"path,omitempty"`
	Capacity int    `yaml:"capacity,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

type RetryConfig struct {
	MaxRetries     int           `yaml:"max_retries"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider: "ollama",
		Model:    "llama3.1:8b",
		Local: &LocalConfig{
			Enabled:  false,
			Provider: "ollama",
			Host:     "http://localhost:11434",
			Model:    "qwen2.5:3b",
		},
		Rewrite: RewriteConfig{
			Tone:        "casual",
			Strength:    "high",
			Purpose:     "general",
			Readability: "standard",
		},
		History: HistoryConfig{
			Capacity: 10,
		},
		Retry: RetryConfig{
			MaxRetries:     2,
			InitialBackoff: 500 * time.Millisecond,
			MaxBackoff:     10 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "quill"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the default config file. It returns nil, nil when there is
// no config yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path on top of DefaultConfig. A missing file
// yields nil, nil.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.path = path

	return cfg, nil
}

// ApplyEnv overrides provider settings from QUILL_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("QUILL_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("QUILL_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("QUILL_MODEL"); v != "" {
		c.Model = v
	}
}

func (c *Config) Validate() error {
	var errs []error

	info := GetProvider(c.Provider)
	switch {
	case c.Provider == "":
		errs = append(errs, errors.New("provider is required"))
	case info == nil:
		errs = append(errs, fmt.Errorf("unknown provider: %s", c.Provider))
	case info.NeedsAPIKey && c.APIKey == "":
		errs = append(errs, fmt.Errorf("%s requires an API key", c.Provider))
	case c.Provider == "custom" && c.BaseURL == "":
		errs = append(errs, errors.New("custom provider requires base_url"))
	}

	if c.History.Capacity < 0 {
		errs = append(errs, errors.New("history.capacity must be >= 0"))
	}
	if c.Retry.MaxRetries < 0 {
		errs = append(errs, errors.New("retry.max_retries must be >= 0"))
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level: %s", c.Log.Level))
	}

	return errors.Join(errs...)
}

// HistoryPath returns the sqlite file backing the history store.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// Path returns the file the config was loaded from or last saved to.
func (c *Config) Path() string { return c.path }

// SetPath sets where Save writes.
func (c *Config) SetPath(path string) { c.path = path }

// Save writes the config back to where it was loaded from, or to the
// default path.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return err
		}
	}
	return c.SaveTo(path)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return err
	}
	c.path = path
	return nil
}
