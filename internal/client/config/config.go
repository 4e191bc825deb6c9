// Package config handles configuration for the phonebook CLI, layering
// defaults, an optional JSON file and command-line flags.
package config

// Config holds runtime settings for the phonebook CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API.
type Config struct {
	ServerBaseURL string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
