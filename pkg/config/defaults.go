package config

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

// loadDefaultConfig loads the embedded default configuration.
//
// If unmarshaling fails, returns a config carrying only the pipx executable
// so the tool can still run.
//
// Returns:
//   - *Config: the default configuration
func loadDefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err == nil {
		return &cfg
	}
	return &Config{Pipx: PipxCfg{Executable: "pipx"}}
}

// GetDefaultConfig returns the embedded default configuration YAML.
//
// Useful for displaying or saving the default configuration.
//
// Returns:
//   - string: the default configuration as YAML
func GetDefaultConfig() string {
	return defaultConfigYAML
}

// Marshal renders cfg as YAML.
//
// Parameters:
//   - cfg: configuration to render
//
// Returns:
//   - string: YAML document
//   - error: when encoding fails
func Marshal(cfg *Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
