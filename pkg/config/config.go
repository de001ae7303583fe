// Package config loads and persists the YAML configuration used by the
// recordio CLI and server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the recordio server configuration
type Config struct {
	DataDir    string     `yaml:"data_dir"`
	Bind       string     `yaml:"bind"`
	Port       int        `yaml:"port"`
	Durability Durability `yaml:"durability"`
	Logging    Logging    `yaml:"logging"`
}

// Durability controls how appends reach disk
type Durability struct {
	// FsyncInterval is how often appended data is fsynced. Zero means
	// every append is synced before it is acknowledged.
	FsyncInterval time.Duration `yaml:"fsync_interval"`
	// BufferSize is the per-log write buffer size in bytes.
	BufferSize int `yaml:"buffer_size"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Bind:    "127.0.0.1",
		Port:    8080,
		Durability: Durability{
			FsyncInterval: 0,
			BufferSize:    64 * 1024,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	cleanPath, err := validatePath(configPath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", cleanPath)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	cleanPath, err := validatePath(configPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(cleanPath, data, 0600)
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.Durability.FsyncInterval < 0 {
		return fmt.Errorf("fsync_interval must not be negative")
	}
	return nil
}

// validatePath rejects paths with traversal components
func validatePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("config path is required")
	}
	clean := filepath.Clean(path)
	for _, part := range strings.Split(clean, string(filepath.Separator)) {
		if part == ".." {
			return "", fmt.Errorf("config path must not contain '..': %s", path)
		}
	}
	return clean, nil
}
