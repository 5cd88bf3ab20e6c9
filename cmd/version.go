package cmd

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajxudir/pipx-outdated/pkg/constants"
)

// Version information set at build time via ldflags.
// Example: go build -ldflags="-X github.com/ajxudir/pipx-outdated/cmd.Version=1.0.0"
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// BuildTime is the timestamp of the build.
	BuildTime = ""
	// GitCommit is the git commit hash of the build.
	GitCommit = ""
	// BuildOS is the target OS the binary was built for.
	BuildOS = ""
	// BuildArch is the target architecture the binary was built for.
	BuildArch = ""
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and build information",
		Long:  `Show version, build date, and system information.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersionOutput(cmd.OutOrStdout())
			if warnings := GetBuildWarnings(); warnings != "" {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "\n"+warnings)
			}
		},
	}
}

// printVersionOutput writes version, build and runtime information to w.
//
// The runtime platform is only shown when it differs from the build target.
func printVersionOutput(w io.Writer) {
	buildOS, buildArch := getBuildTarget()
	var b strings.Builder
	fmt.Fprintf(&b, "  Build:   %s/%s\n", buildOS, buildArch)
	if buildOS != runtime.GOOS || buildArch != runtime.GOARCH {
		fmt.Fprintf(&b, "  Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
	fmt.Fprintf(&b, "  Go:      %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Fprintf(&b, "  Date:    %s\n", BuildTime)
	}
	b.WriteString("\n")
	if GitCommit != "" {
		fmt.Fprintf(&b, "  Git:     %s\n", GitCommit)
	}
	fmt.Fprintf(&b, "  Version: %s\n", Version)
	_, _ = io.WriteString(w, b.String())
}

// GetVersion returns the version set at build time, or "dev".
func GetVersion() string {
	return Version
}

// getBuildTarget returns the OS and architecture the binary was built for.
//
// Falls back to runtime values for dev builds where ldflags weren't set.
//
// Returns:
//   - string: Target operating system (e.g., "linux", "darwin", "windows")
//   - string: Target architecture (e.g., "amd64", "arm64")
func getBuildTarget() (string, string) {
	buildOS, buildArch := BuildOS, BuildArch
	if buildOS == "" {
		buildOS = runtime.GOOS
	}
	if buildArch == "" {
		buildArch = runtime.GOARCH
	}
	return buildOS, buildArch
}

// HasArchMismatch returns true if the binary was built for a different
// OS or architecture than what it's running on.
func HasArchMismatch() bool {
	if BuildOS == "" && BuildArch == "" {
		return false
	}
	buildOS, buildArch := getBuildTarget()
	return buildOS != runtime.GOOS || buildArch != runtime.GOARCH
}

// IsDevBuild returns true if this is a development build (no release tag).
func IsDevBuild() bool {
	return Version == "dev"
}

// IsPrerelease returns true for release candidates such as "1.2.0-rc1".
func IsPrerelease() bool {
	return strings.Contains(Version, "-rc") || strings.Contains(Version, "-beta")
}

// GetBuildWarnings returns the architecture, dev build and prerelease
// warnings that apply to this binary, or an empty string.
func GetBuildWarnings() string {
	var b strings.Builder
	if HasArchMismatch() {
		buildOS, buildArch := getBuildTarget()
		fmt.Fprintf(&b, "%s  Architecture mismatch: binary built for %s/%s but running on %s/%s\n",
			constants.IconWarn, buildOS, buildArch, runtime.GOOS, runtime.GOARCH)
	}
	if IsDevBuild() {
		b.WriteString(constants.IconWarn + "  Development build: this is an unreleased version without a version tag.\n")
	}
	if IsPrerelease() {
		b.WriteString(constants.IconWarn + "  Prerelease build: " + Version + "\n")
	}
	return b.String()
}
