package config

// mergeConfigs overlays custom on top of base.
//
// Scalar fields from custom win when set. Env maps are merged key by key,
// with custom values replacing base values. Neither input is modified.
//
// Parameters:
//   - base: usually the built-in defaults
//   - custom: the user's file
//
// Returns:
//   - *Config: the merged configuration
func mergeConfigs(base, custom *Config) *Config {
	if base == nil {
		base = &Config{}
	}
	if custom == nil {
		custom = &Config{}
	}

	result := &Config{
		Pipx:       mergePipx(base.Pipx, custom.Pipx),
		Check:      mergeCheck(base.Check, custom.Check),
		Output:     base.Output,
		Source:     custom.Source,
		WorkingDir: base.WorkingDir,
	}
	if custom.Output != "" {
		result.Output = custom.Output
	}
	if custom.WorkingDir != "" {
		result.WorkingDir = custom.WorkingDir
	}
	return result
}

func mergePipx(base, custom PipxCfg) PipxCfg {
	result := base
	if custom.Executable != "" {
		result.Executable = custom.Executable
	}
	if custom.TimeoutSeconds != 0 {
		result.TimeoutSeconds = custom.TimeoutSeconds
	}
	result.Env = mergeEnv(base.Env, custom.Env)
	return result
}

func mergeCheck(base, custom CheckCfg) CheckCfg {
	result := base
	if custom.Mode != "" {
		result.Mode = custom.Mode
	}
	if custom.Concurrency != 0 {
		result.Concurrency = custom.Concurrency
	}
	if custom.Match != "" {
		result.Match = custom.Match
	}
	if custom.ContinueOnFail != nil {
		v := *custom.ContinueOnFail
		result.ContinueOnFail = &v
	}
	return result
}

// mergeEnv merges environment maps. An empty value in override removes the key.
func mergeEnv(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	result := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		result[k] = v
	}
	for k, v := range override {
		if v == "" {
			delete(result, k)
			continue
		}
		result[k] = v
	}
	return result
}
