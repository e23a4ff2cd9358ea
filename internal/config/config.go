// Package config loads the CLI configuration file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// GeneratorConfig points at the generation backend. An empty endpoint
// disables the primary strategy; every discovery then runs the statistical
// fallback.
type GeneratorConfig struct {
	Endpoint   string `yaml:"endpoint"`
	Model      string `yaml:"model"`
	APIKeyPath string `yaml:"apiKeyPath"`
	TimeoutSec int    `yaml:"timeoutSec"`
}

// CollectorConfig points at a topology collector for --fetch mode.
type CollectorConfig struct {
	Endpoint   string `yaml:"endpoint"`
	APIKeyPath string `yaml:"apiKeyPath"`
}

// StoreConfig locates the results database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Config is the full CLI configuration.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Collector CollectorConfig `yaml:"collector"`
	Store     StoreConfig     `yaml:"store"`
}

// Load reads a YAML config file. A missing file is not an error: defaults
// apply and the generator stays disabled.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ReadAPIKey reads the first line of a key file and returns it trimmed.
// An empty path yields an empty key.
func ReadAPIKey(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read api key %s: %w", path, err)
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line), nil
}
