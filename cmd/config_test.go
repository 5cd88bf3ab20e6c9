package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/pipx-outdated/pkg/config"
	"github.com/ajxudir/pipx-outdated/pkg/errors"
)

func runConfigCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"config"}, args...), &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// TestConfigCommand tests the behavior of the config subcommand.
//
// It verifies:
//   - Without flags the effective configuration is printed with its source
//   - --show-defaults prints the embedded defaults verbatim
//   - A config file is merged over the defaults
func TestConfigCommand(t *testing.T) {
	t.Run("effective defaults", func(t *testing.T) {
		res := runConfigCLI(t, "-d", t.TempDir())
		require.Equal(t, errors.ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "# Source: built-in defaults")
		assert.Contains(t, res.stdout, "mode: concurrent")
	})

	t.Run("show defaults", func(t *testing.T) {
		res := runConfigCLI(t, "--show-defaults")
		require.Equal(t, errors.ExitSuccess, res.code)
		assert.Equal(t, config.GetDefaultConfig(), res.stdout)
	})

	t.Run("local file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, config.DefaultConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("check:\n  mode: pool\n"), 0o644))

		res := runConfigCLI(t, "-d", dir)
		require.Equal(t, errors.ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "# Source: "+path)
		assert.Contains(t, res.stdout, "mode: pool")
		assert.Contains(t, res.stdout, "match: substring")
	})

	t.Run("explicit file via persistent flag", func(t *testing.T) {
		path := writeTempConfig(t, "output: yaml\n")
		res := runConfigCLI(t, "-c", path)
		require.Equal(t, errors.ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "output: yaml")
	})

	t.Run("broken file", func(t *testing.T) {
		path := writeTempConfig(t, "check:\n  jobs: 3\n")
		res := runConfigCLI(t, "-c", path)
		assert.Equal(t, errors.ExitConfigError, res.code)
		assert.Contains(t, res.stderr, "did you mean 'concurrency'?")
	})
}

// TestConfigValidate tests the behavior of config --validate.
//
// It verifies:
//   - A valid file reports success
//   - Warnings are listed without failing
//   - Invalid files list each error and exit with code 3
//   - --verbose adds the valid keys
//   - A missing file is a config error
func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := writeTempConfig(t, "check:\n  match: exact\n")
		res := runConfigCLI(t, "--validate", "-c", path)
		require.Equal(t, errors.ExitSuccess, res.code, res.stderr)
		assert.Equal(t, "Configuration valid: "+path+"\n", res.stdout)
	})

	t.Run("warnings", func(t *testing.T) {
		path := writeTempConfig(t, "check:\n  mode: sequential\n  concurrency: 4\n")
		res := runConfigCLI(t, "--validate", "-c", path)
		require.Equal(t, errors.ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "Configuration valid with warnings")
		assert.Contains(t, res.stdout, "WARNING: check.concurrency is only used with mode \"pool\"")
	})

	t.Run("invalid", func(t *testing.T) {
		path := writeTempConfig(t, "check:\n  matching: exact\noutput: html\n")
		res := runConfigCLI(t, "--validate", "-c", path)
		assert.Equal(t, errors.ExitConfigError, res.code)
		assert.Contains(t, res.stdout, "Configuration validation failed for: "+path)
		assert.Contains(t, res.stdout, "ERROR: unknown field 'matching' (line 2) (did you mean 'match'?)")
		assert.Contains(t, res.stdout, "Run with --verbose")
		assert.Contains(t, res.stderr, "configuration validation failed")
	})

	t.Run("verbose", func(t *testing.T) {
		path := writeTempConfig(t, "output: html\n")
		res := runConfigCLI(t, "--validate", "--verbose", "-c", path)
		assert.Equal(t, errors.ExitConfigError, res.code)
		assert.Contains(t, res.stdout, "Expected: table, json, yaml, csv or xml")
		assert.NotContains(t, res.stdout, "Run with --verbose")
	})

	t.Run("local file in directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultConfigFileName), []byte("output: csv\n"), 0o644))
		res := runConfigCLI(t, "--validate", "-d", dir)
		require.Equal(t, errors.ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stdout, "Configuration valid:")
	})

	t.Run("missing", func(t *testing.T) {
		res := runConfigCLI(t, "--validate", "-c", "/nonexistent/cfg.yml")
		assert.Equal(t, errors.ExitConfigError, res.code)
		assert.Contains(t, res.stderr, "failed to read config file '/nonexistent/cfg.yml'")
	})
}

// TestConfigInit tests the behavior of config --init.
func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	res := runConfigCLI(t, "--init", "-d", dir)
	require.Equal(t, errors.ExitSuccess, res.code, res.stderr)

	path := filepath.Join(dir, config.DefaultConfigFileName)
	assert.Equal(t, "Created configuration file: "+path+"\n", res.stdout)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfig(), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm()&0o077 != 0 {
		t.Skip("filesystem does not honor file permissions")
	}
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	t.Run("refuses to overwrite", func(t *testing.T) {
		res := runConfigCLI(t, "--init", "-d", dir)
		assert.Equal(t, errors.ExitFailure, res.code)
		assert.Contains(t, res.stderr, "config file already exists")
	})
}

// TestCreateConfigFile_WriteError tests the write failure path.
func TestCreateConfigFile_WriteError(t *testing.T) {
	oldWrite := writeFileFunc
	defer func() { writeFileFunc = oldWrite }()
	writeFileFunc = func(string, []byte, os.FileMode) error { return os.ErrPermission }

	err := createConfigFile(&bytes.Buffer{}, t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
}
