// Package config loads collector configuration from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CollectorConfig is the top-level configuration for the collector.
type CollectorConfig struct {
	API    APIConfig    `yaml:"api"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig configures the FTX REST API client.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	SubAccount string        `yaml:"sub_account"`
}

// OutputConfig configures where and how fills are written.
type OutputConfig struct {
	// Dir is the directory CSV files are created in.
	Dir string `yaml:"dir"`
	// Timezone is the IANA location used both to parse the start/end
	// dates and to partition fills into daily files.
	Timezone string `yaml:"timezone"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*CollectorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg CollectorConfig
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*CollectorConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns a configuration with all defaults applied.
func Default() *CollectorConfig {
	cfg := &CollectorConfig{}
	cfg.applyDefaults()
	return cfg
}

// Location resolves the configured output timezone.
func (c *CollectorConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Output.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Output.Timezone, err)
	}
	return loc, nil
}
