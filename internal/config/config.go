package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Provider  ProviderConfig  `json:"provider"`
	Storage   StorageConfig   `json:"storage"`
	Personas  PersonasConfig  `json:"personas"`
	Journal   JournalConfig   `json:"journal"`
	Logging   LoggingConfig   `json:"logging"`
	Telemetry TelemetryConfig `json:"telemetry"`
	Server    ServerConfig    `json:"server"`
}

// ProviderConfig configures the hosted chat-completion endpoint
type ProviderConfig struct {
	BaseURL string `json:"base_url"` // OpenAI-compatible API root, without /chat/completions
	APIKey  string `json:"api_key"`  // Empty selects the offline mock client
	Model   string `json:"model"`
}

// StorageConfig points at the local key-value database
type StorageConfig struct {
	Path string `json:"path"`
}

// PersonasConfig points at an optional YAML file overriding built-in personas
type PersonasConfig struct {
	File  string `json:"file"`
	Watch bool   `json:"watch"` // Reload the file when it changes
}

// JournalConfig controls Mind Mirror analysis requests
type JournalConfig struct {
	StructuredOutput bool `json:"structured_output"` // Send a json_schema response_format
}

// LoggingConfig controls logging behavior
type LoggingConfig struct {
	Level        string `json:"level"`         // "debug", "info", "warn", "error"
	DebugEnabled bool   `json:"debug_enabled"` // Enable debug file logging
	File         string `json:"file"`
	MaxSizeMB    int    `json:"max_size_mb"`
	MaxBackups   int    `json:"max_backups"`
}

// TelemetryConfig controls OpenTelemetry trace and metric export
type TelemetryConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir"`
}

// ServerConfig controls HTTP server
type ServerConfig struct {
	Port        int    `json:"port"`
	BindAddress string `json:"bind_address"`
}

const (
	DefaultBaseURL = "https://api.intelligence.io.solutions/api/v1"
	DefaultModel   = "meta-llama/Llama-3.3-70B-Instruct"
)

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Provider: ProviderConfig{
			BaseURL: DefaultBaseURL,
			Model:   DefaultModel,
		},
		Storage: StorageConfig{
			Path: "moodwell.db",
		},
		Personas: PersonasConfig{
			Watch: true,
		},
		Logging: LoggingConfig{
			Level:        "info",
			DebugEnabled: true,
			File:         "debug.log",
			MaxSizeMB:    10,
			MaxBackups:   3,
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
			Dir:     "logs",
		},
		Server: ServerConfig{
			Port:        8080,
			BindAddress: "127.0.0.1",
		},
	}
}

// Load reads configuration from file and environment. A missing file is
// created with defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Fields absent from the file keep their defaults.
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.fillDefaults()
	} else {
		if err := cfg.Save(path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// fillDefaults restores defaults for fields a file explicitly zeroed
func (c *Config) fillDefaults() {
	d := Default()
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = d.Provider.BaseURL
	}
	if c.Provider.Model == "" {
		c.Provider.Model = d.Provider.Model
	}
	if c.Storage.Path == "" {
		c.Storage.Path = d.Storage.Path
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.File == "" {
		c.Logging.File = d.Logging.File
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = d.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = d.Logging.MaxBackups
	}
	if c.Telemetry.Dir == "" {
		c.Telemetry.Dir = d.Telemetry.Dir
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.BindAddress == "" {
		c.Server.BindAddress = d.Server.BindAddress
	}
}

// applyEnvOverrides applies environment variable overrides
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MOODWELL_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if v := os.Getenv("MOODWELL_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv("MOODWELL_MODEL"); v != "" {
		c.Provider.Model = v
	}
	if v := os.Getenv("MOODWELL_DB"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("MOODWELL_PERSONAS_FILE"); v != "" {
		c.Personas.File = v
	}
	if v := os.Getenv("MOODWELL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MOODWELL_DEBUG_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugEnabled = b
		}
	}
	if v := os.Getenv("MOODWELL_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("MOODWELL_SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("MOODWELL_SERVER_BIND_ADDRESS"); v != "" {
		c.Server.BindAddress = v
	}
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	u, err := url.Parse(c.Provider.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid provider base_url: %q", c.Provider.BaseURL)
	}
	if c.Provider.Model == "" {
		return fmt.Errorf("provider model is required")
	}

	if c.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Port < 1024 && os.Geteuid() != 0 {
		return fmt.Errorf("privileged port %d requires root", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logging.Level)
	}

	return nil
}

// UsesMock reports whether no API key is configured
func (c *Config) UsesMock() bool {
	return c.Provider.APIKey == ""
}
