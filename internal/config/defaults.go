package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultBaseURL    = "https://ftx.com/api"
	DefaultAPITimeout = 30 * time.Second
	DefaultOutputDir  = "data"
	DefaultTimezone   = "UTC"
	DefaultLogLevel   = "info"
)

func (c *CollectorConfig) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}

	// Output defaults
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Output.Timezone == "" {
		c.Output.Timezone = DefaultTimezone
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
