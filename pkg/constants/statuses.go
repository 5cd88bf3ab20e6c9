// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for status values.
package constants

// Check status constants represent the outcome of checking one top-level package.
const (
	// StatusUpToDate indicates no newer version of the package was reported.
	StatusUpToDate = "UpToDate"

	// StatusOutdated indicates pip reported a newer version of the package.
	StatusOutdated = "Outdated"

	// StatusCheckFailed indicates the check could not produce an answer:
	// the runpip command failed or its matching line could not be parsed.
	StatusCheckFailed = "CheckFailed"
)

// Update type constants classify the distance between current and latest.
const (
	// UpdateMajor indicates the major component changed.
	UpdateMajor = "major"

	// UpdateMinor indicates the minor component changed.
	UpdateMinor = "minor"

	// UpdatePatch indicates only the patch component changed.
	UpdatePatch = "patch"

	// UpdatePrerelease indicates the release numbers match and only the
	// pre-release or build suffix differs.
	UpdatePrerelease = "prerelease"

	// UpdateUnknown indicates at least one version is not comparable.
	UpdateUnknown = "unknown"
)

// Placeholder values for display when data is not available.
const (
	// PlaceholderNA is used when a value is not available.
	PlaceholderNA = "#N/A"
)

// Icon constants for status display on terminals.
const (
	// IconError marks a failed check.
	IconError = "❌"

	// IconWarn is the warning prefix for messages.
	IconWarn = "⚠️"

	// IconLightbulb indicates a hint or suggestion.
	IconLightbulb = "💡"
)

// Report text printed around the outdated blocks.
const (
	// ReportHeader is the first line of every table report.
	ReportHeader = "Outdated Top Level packages:"

	// ReportTrailerFormat renders the elapsed time in seconds.
	ReportTrailerFormat = "Total time used: %f s"
)
