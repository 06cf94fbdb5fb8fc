// Package config provides configuration loading and validation for the
// server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/templates"
	"github.com/sirupsen/logrus"
)

// Config can be loaded from a JSON file and overlaid by the environment.
// Missing values use Defaults.
type Config struct {
	Port                 int    `json:"port,omitempty"`
	DatabaseURL          string `json:"database_url,omitempty"`  // PostgreSQL connection URL
	APIKey               string `json:"api_key,omitempty"`       // Gemini API key
	DefaultTemplate      string `json:"default_template,omitempty"`
	LogLevel             string `json:"log_level,omitempty"`  // logrus level name
	LogFormat            string `json:"log_format,omitempty"` // text or json
	RenderTimeoutSeconds int    `json:"render_timeout_seconds,omitempty"`
	Thumbnails           bool   `json:"thumbnails,omitempty"`  // serve PNG thumbnails via headless Chrome
	ChromePath           string `json:"chrome_path,omitempty"` // empty uses chromedp's lookup
	ShareSecret          string `json:"share_secret,omitempty"`
	ShareExpirationHours int    `json:"share_expiration_hours,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:                 8080,
		DefaultTemplate:      templates.DefaultID,
		LogLevel:             "info",
		LogFormat:            "text",
		RenderTimeoutSeconds: 30,
		ShareExpirationHours: DefaultShareExpirationHours,
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that set values are usable. Empty values are allowed;
// MergeWithDefaults fills them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.RenderTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'render_timeout_seconds' must be non-negative")
	}
	if c.ShareExpirationHours < 0 {
		return fmt.Errorf("config error: 'share_expiration_hours' must be non-negative")
	}
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: invalid 'log_level': %w", err)
		}
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be text or json, got %q", c.LogFormat)
	}
	if c.DefaultTemplate != "" {
		if _, ok := templates.Lookup(c.DefaultTemplate); !ok {
			return fmt.Errorf("config error: unknown default_template %q", c.DefaultTemplate)
		}
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields taken from
// defaults. Bools cannot be told apart from unset and are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DefaultTemplate == "" {
		result.DefaultTemplate = defaults.DefaultTemplate
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.RenderTimeoutSeconds == 0 {
		result.RenderTimeoutSeconds = defaults.RenderTimeoutSeconds
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.ShareSecret == "" {
		result.ShareSecret = defaults.ShareSecret
	}
	if result.ShareExpirationHours == 0 {
		result.ShareExpirationHours = defaults.ShareExpirationHours
	}

	return result
}

// FromEnv overlays environment variables onto c. Malformed numbers and
// bools are reported rather than ignored.
func (c *Config) FromEnv() error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	setString("DATABASE_URL", &c.DatabaseURL)
	setString("GEMINI_API_KEY", &c.APIKey)
	setString("DEFAULT_TEMPLATE", &c.DefaultTemplate)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("LOG_FORMAT", &c.LogFormat)
	setString("CHROME_PATH", &c.ChromePath)
	setString("SHARE_SECRET", &c.ShareSecret)

	if err := setInt("PORT", &c.Port); err != nil {
		return err
	}
	if err := setInt("RENDER_TIMEOUT_SECONDS", &c.RenderTimeoutSeconds); err != nil {
		return err
	}
	if err := setInt("SHARE_EXPIRATION_HOURS", &c.ShareExpirationHours); err != nil {
		return err
	}
	if v := strings.TrimSpace(os.Getenv("THUMBNAILS")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid THUMBNAILS: %w", err)
		}
		c.Thumbnails = b
	}
	return nil
}

// Load resolves the effective configuration: file (optional), then
// environment, then defaults, then validation.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.FromEnv(); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// RenderTimeout is the per-request budget for rendering.
func (c *Config) RenderTimeout() time.Duration {
	if c.RenderTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.RenderTimeoutSeconds) * time.Second
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
