package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// AppConfig holds the service-level settings
type AppConfig struct {
	Port int `yaml:"port"`

	// ParseTimeoutSeconds bounds the code index call per submission.
	// A timeout is surfaced as a parse error, not retried.
	ParseTimeoutSeconds int `yaml:"parse_timeout_seconds"`

	// MaxParallelCheckers bounds checker evaluation concurrency per
	// submission
	MaxParallelCheckers int `yaml:"max_parallel_checkers"`

	// CheckerFile is the path to the authored checker collection
	CheckerFile string `yaml:"checker_file"`
}

// McpConfig holds the MCP server settings
type McpConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// GetAddress returns the host:port address of the MCP listener
func (m McpConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", m.Host, m.Port)
}

// Config is the application configuration
type Config struct {
	App AppConfig `yaml:"app"`
	Mcp McpConfig `yaml:"mcp"`
}

// DefaultConfig returns the configuration defaults
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Port:                8080,
			ParseTimeoutSeconds: 2,
			MaxParallelCheckers: 4,
			CheckerFile:         "checkers.txt",
		},
		Mcp: McpConfig{
			Enabled: false,
			Host:    "0.0.0.0",
			Port:    8090,
		},
	}
}

// LoadConfig loads configuration from a YAML file over the defaults.
// A missing file is not an error; the defaults apply.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ParseTimeout returns the code index timeout as a duration
func (c *Config) ParseTimeout() time.Duration {
	if c.App.ParseTimeoutSeconds <= 0 {
		return 2 * time.Second
	}
	return time.Duration(c.App.ParseTimeoutSeconds) * time.Second
}
