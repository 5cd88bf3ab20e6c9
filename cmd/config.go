package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pipx-outdated/pkg/config"
	"github.com/ajxudir/pipx-outdated/pkg/constants"
	"github.com/ajxudir/pipx-outdated/pkg/errors"
	"github.com/ajxudir/pipx-outdated/pkg/verbose"
)

var (
	readFileFunc  = os.ReadFile
	writeFileFunc = os.WriteFile
)

type configOptions struct {
	showDefaults bool
	validate     bool
	init         bool
	dir          string
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	opts := &configOptions{}
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show, validate or create configuration",
		Long: `Show the effective configuration (built-in defaults merged with
` + config.DefaultConfigFileName + ` or --config), the built-in defaults, validate a
config file, or write a starter file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, root, opts)
		},
	}

	f := configCmd.Flags()
	f.BoolVar(&opts.showDefaults, "show-defaults", false, "Show the built-in default configuration")
	f.BoolVar(&opts.validate, "validate", false, "Validate the configuration file (rejects unknown fields)")
	f.BoolVar(&opts.init, "init", false, "Create "+config.DefaultConfigFileName+" from the defaults")
	f.StringVarP(&opts.dir, "directory", "d", ".", "Directory searched for or receiving the config file")
	return configCmd
}

// runConfig executes the config command.
//
// Behavior depends on flags:
//   - --init: Writes the defaults to .pipx-outdated.yml
//   - --validate: Strictly validates the config file
//   - --show-defaults: Prints the embedded defaults
//   - no flag: Prints the effective configuration as YAML
func runConfig(cmd *cobra.Command, root *rootOptions, opts *configOptions) error {
	out := cmd.OutOrStdout()
	logger := verbose.New(cmd.ErrOrStderr(), root.verbose)

	switch {
	case opts.init:
		return createConfigFile(out, opts.dir)
	case opts.validate:
		return validateConfigFile(out, configFilePath(root.configPath, opts.dir), root.verbose)
	case opts.showDefaults:
		_, err := io.WriteString(out, config.GetDefaultConfig())
		return err
	}

	cfg, err := loadConfigFunc(root.configPath, opts.dir, logger)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	source := cfg.Source
	if source == "" {
		source = "built-in defaults"
	}
	_, err = fmt.Fprintf(out, "# Source: %s\n%s", source, data)
	return err
}

// configFilePath returns the explicit path, or the local file in dir.
func configFilePath(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(dir, config.DefaultConfigFileName)
}

// validateConfigFile validates the file at path and prints the outcome.
//
// Returns:
//   - error: ExitError with ExitConfigError when the file is unreadable or invalid
func validateConfigFile(out io.Writer, path string, verboseMode bool) error {
	data, err := readFileFunc(path)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to read config file '%s': %w", path, err))
	}

	result := config.ValidateConfigFile(data)
	var b strings.Builder

	if result.HasErrors() {
		fmt.Fprintf(&b, "%s Configuration validation failed for: %s\n\n", constants.IconError, path)
		for _, e := range result.Errors {
			if verboseMode {
				fmt.Fprintf(&b, "  ERROR: %s\n", e.VerboseError())
			} else {
				fmt.Fprintf(&b, "  ERROR: %s\n", e.Error())
			}
		}
		writeWarnings(&b, result.Warnings)
		if !verboseMode {
			fmt.Fprintf(&b, "\n%s Run with --verbose for the valid keys and values\n", constants.IconLightbulb)
		}
		_, _ = io.WriteString(out, b.String())
		return errors.NewExitErrorf(errors.ExitConfigError, "configuration validation failed")
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(&b, "%s Configuration valid with warnings: %s\n", constants.IconWarn, path)
		writeWarnings(&b, result.Warnings)
	} else {
		fmt.Fprintf(&b, "Configuration valid: %s\n", path)
	}
	_, err = io.WriteString(out, b.String())
	return err
}

func writeWarnings(b *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	b.WriteString("\n")
	for _, w := range warnings {
		fmt.Fprintf(b, "  WARNING: %s\n", w)
	}
}

// createConfigFile writes the built-in defaults to .pipx-outdated.yml in dir.
//
// Returns:
//   - error: When the file already exists or cannot be written
func createConfigFile(out io.Writer, dir string) error {
	path := filepath.Join(dir, config.DefaultConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	// Owner read/write only.
	if err := writeFileFunc(path, []byte(config.GetDefaultConfig()), 0o600); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	_, err := fmt.Fprintf(out, "Created configuration file: %s\n", path)
	return err
}
