// Package config handles configuration loading, validation and merging for
// pipx-outdated. A YAML file is overlaid on embedded defaults; CLI flags are
// applied on top by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ajxudir/pipx-outdated/pkg/verbose"
)

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, that file must exist. Otherwise
// .pipx-outdated.yml in workDir is used when present. Whatever file is found
// is merged over the built-in defaults; without a file the defaults are
// returned as they are.
//
// Parameters:
//   - configPath: path to the config file, or empty to search workDir
//   - workDir: directory searched for the local config file
//   - logger: debug output, may be nil
//
// Returns:
//   - *Config: the merged configuration
//   - error: when the file cannot be read, is too large or fails strict parsing
func LoadConfig(configPath, workDir string, logger *verbose.Logger) (*Config, error) {
	logger = verbose.Or(logger)
	defaults := loadDefaultConfig()

	path := configPath
	if path == "" {
		localConfig := filepath.Join(workDir, DefaultConfigFileName)
		if _, err := os.Stat(localConfig); err == nil {
			logger.Infof("Found local config: %s", localConfig)
			path = localConfig
		}
	}

	cfg := defaults
	if path != "" {
		loaded, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		loaded.Source = path
		cfg = mergeConfigs(defaults, loaded)
		logger.ConfigLoaded(path)
	} else {
		logger.Info("Using built-in default configuration")
	}

	if workDir != "" {
		cfg.WorkingDir = workDir
	} else if cfg.WorkingDir == "" {
		cfg.WorkingDir = "."
	}
	return cfg, nil
}

// loadConfigFileWithLimit loads a config file with a size limit.
//
// Parameters:
//   - path: path to the config file
//   - maxSize: maximum allowed file size in bytes
//
// Returns:
//   - *Config: the parsed file, not yet merged with defaults
//   - error: when the file is too large, missing, or not valid config YAML
func loadConfigFileWithLimit(path string, maxSize int64) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)", info.Size(), maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return loadConfigData(data)
}

// loadConfigFile loads a config file with the default size limit.
func loadConfigFile(path string) (*Config, error) {
	return loadConfigFileWithLimit(path, DefaultMaxConfigFileSize)
}

// loadConfigData parses YAML configuration data, rejecting unknown fields.
//
// An empty document yields an empty Config.
//
// Parameters:
//   - data: YAML configuration data as bytes
//
// Returns:
//   - *Config: the parsed configuration
//   - error: a *ValidationResult-backed error listing every problem found
func loadConfigData(data []byte) (*Config, error) {
	if result := ValidateConfigFile(data); result.HasErrors() {
		return nil, result
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	return &cfg, nil
}
