package config

import "runtime"

// Config is the root configuration structure.
type Config struct {
	Pipx   PipxCfg  `yaml:"pipx"`
	Check  CheckCfg `yaml:"check"`
	Output string   `yaml:"output,omitempty"`

	// Source is the file the config was read from, empty for built-in defaults.
	// It is not persisted to YAML.
	Source string `yaml:"-"`

	// WorkingDir is the directory searched for the local config file.
	WorkingDir string `yaml:"-"`
}

// PipxCfg configures how pipx is invoked.
//
// Fields:
//   - Executable: Command name or path of pipx
//   - TimeoutSeconds: Per-command timeout; 0 disables it
//   - Env: Extra environment variables, values expanded with os.ExpandEnv
type PipxCfg struct {
	Executable     string            `yaml:"executable,omitempty"`
	TimeoutSeconds int               `yaml:"timeout_seconds,omitempty"`
	Env            map[string]string `yaml:"env,omitempty"`
}

// CheckCfg configures scheduling and matching.
//
// Fields:
//   - Mode: sequential, concurrent or pool
//   - Concurrency: Worker count for pool mode; 0 means runtime.NumCPU()
//   - Match: substring or exact
//   - ContinueOnFail: Pointer so an explicit false in a user file overrides a true default
type CheckCfg struct {
	Mode           string `yaml:"mode,omitempty"`
	Concurrency    int    `yaml:"concurrency,omitempty"`
	Match          string `yaml:"match,omitempty"`
	ContinueOnFail *bool  `yaml:"continue_on_fail,omitempty"`
}

// DefaultMaxConfigFileSize is the default maximum config file size (1MB).
const DefaultMaxConfigFileSize = 1024 * 1024

// DefaultConfigFileName is the file looked up in the working directory.
const DefaultConfigFileName = ".pipx-outdated.yml"

// GetExecutable returns the pipx executable, "pipx" when unset.
func (p *PipxCfg) GetExecutable() string {
	if p.Executable == "" {
		return "pipx"
	}
	return p.Executable
}

// GetTimeoutSeconds returns the per-command timeout, never negative.
func (p *PipxCfg) GetTimeoutSeconds() int {
	if p.TimeoutSeconds < 0 {
		return 0
	}
	return p.TimeoutSeconds
}

// IsContinueOnFail returns whether failed checks should not stop the run.
//
// Returns:
//   - bool: false when unset
func (c *CheckCfg) IsContinueOnFail() bool {
	return c.ContinueOnFail != nil && *c.ContinueOnFail
}

// GetConcurrency returns the pool size.
//
// Returns:
//   - int: Concurrency when positive, otherwise runtime.NumCPU()
func (c *CheckCfg) GetConcurrency() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.NumCPU()
}
