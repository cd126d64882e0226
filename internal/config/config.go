package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// AppName is used for config, state and log directory names
const AppName = "tagsearch"

// Flavors lists the catppuccin flavors accepted by Theme
var Flavors = []string{"latte", "frappe", "macchiato", "mocha"}

// Config holds the application configuration
type Config struct {
	// Endpoint is the autocomplete URL queried for suggestions
	Endpoint string `yaml:"endpoint"`

	// Limit is the maximum number of suggestions requested per query
	Limit int `yaml:"limit"`

	// Timeout bounds a single autocomplete request (e.g., "10s")
	Timeout time.Duration `yaml:"timeout"`

	// RateLimit caps outgoing requests per second; 0 disables limiting
	RateLimit float64 `yaml:"rate_limit"`

	// Debounce delays the request after the query changes; 0 sends immediately
	Debounce time.Duration `yaml:"debounce"`

	// UserAgent is sent with every request
	UserAgent string `yaml:"user_agent"`

	// Theme is the catppuccin flavor to use (latte, frappe, macchiato, mocha)
	Theme string `yaml:"theme"`

	// MaxVisible is the number of suggestion rows shown before scrolling
	MaxVisible int `yaml:"max_visible"`

	// Placeholder is shown in the empty input
	Placeholder string `yaml:"placeholder"`

	// LogFile is where logs are written; empty uses the state directory
	LogFile string `yaml:"log_file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Endpoint:    "https://danbooru.donmai.us/autocomplete",
		Limit:       20,
		Timeout:     10 * time.Second,
		RateLimit:   5,
		Debounce:    0,
		UserAgent:   AppName + "/0.1",
		Theme:       "mocha",
		MaxVisible:  8,
		Placeholder: "Search tags...",
	}
}

// Load reads the config from a YAML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) //nolint:gosec // config path from known locations or flag
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", cleanPath, err)
	}

	return cfg, nil
}

// SearchPaths returns the config file locations in lookup order
func SearchPaths() []string {
	// Check in order: current dir, ~/.config/tagsearch/, XDG_CONFIG_HOME
	paths := []string{
		AppName + ".yaml",
		filepath.Join(os.Getenv("HOME"), ".config", AppName, "config.yaml"),
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, AppName, "config.yaml"))
	}
	return paths
}

// FindPath returns the first existing config file, or "" if none exists
func FindPath() string {
	for _, path := range SearchPaths() {
		cleanPath := filepath.Clean(path)
		if _, err := os.Stat(cleanPath); err == nil {
			return cleanPath
		}
	}
	return ""
}

// LoadFromDefaultPath attempts to load config from standard locations
func LoadFromDefaultPath() (*Config, error) {
	if path := FindPath(); path != "" {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var result *multierror.Error

	if u, err := url.Parse(c.Endpoint); err != nil {
		result = multierror.Append(result, fmt.Errorf("endpoint: %w", err))
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("endpoint: %q is not an http(s) URL", c.Endpoint))
	}
	if c.Limit <= 0 {
		result = multierror.Append(result, fmt.Errorf("limit: must be positive, got %d", c.Limit))
	}
	if c.Timeout < 0 {
		result = multierror.Append(result, fmt.Errorf("timeout: must not be negative, got %s", c.Timeout))
	}
	if c.RateLimit < 0 {
		result = multierror.Append(result, fmt.Errorf("rate_limit: must not be negative, got %g", c.RateLimit))
	}
	if c.Debounce < 0 {
		result = multierror.Append(result, fmt.Errorf("debounce: must not be negative, got %s", c.Debounce))
	}
	if c.MaxVisible <= 0 {
		result = multierror.Append(result, fmt.Errorf("max_visible: must be positive, got %d", c.MaxVisible))
	}
	if !IsFlavor(c.Theme) {
		result = multierror.Append(result, fmt.Errorf("theme: unknown flavor %q", c.Theme))
	}

	return result.ErrorOrNil()
}

// IsFlavor returns true if name is a known catppuccin flavor
func IsFlavor(name string) bool {
	for _, f := range Flavors {
		if f == name {
			return true
		}
	}
	return false
}

// LogPath returns the configured log file or the default in the state directory
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, AppName, AppName+".log")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), AppName+".log")
	}
	return filepath.Join(home, ".local", "state", AppName, AppName+".log")
}

// global config instance
var globalConfig *Config

// Global returns the global config instance, loading it if necessary
func Global() *Config {
	if globalConfig == nil {
		cfg, err := LoadFromDefaultPath()
		if err != nil {
			cfg = DefaultConfig()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal sets the global config instance (useful for testing)
func SetGlobal(cfg *Config) {
	globalConfig = cfg
}
