package outdated

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/ajxudir/pipx-outdated/pkg/constants"
)

// pep440Pattern splits a Python version into its release numbers and an
// optional pre/post/dev suffix. Epochs ("1!") and local parts ("+cpu") are
// stripped before matching.
var pep440Pattern = regexp.MustCompile(`(?i)^v?(\d+(?:\.\d+)*)(?:[._-]?(a|alpha|b|beta|c|rc|pre|preview|post|rev|r|dev)[._-]?(\d*))?$`)

// ClassifyUpdate reports how far latest is from current.
//
// It performs the following operations:
//   - Converts both versions to canonical semver (see canonicalSemver)
//   - Compares major, then major.minor, then the release triple
//   - Treats a new post-release of the same version as a patch
//
// Parameters:
//   - current: Installed version as printed by pip
//   - latest: Latest version as printed by pip
//
// Returns:
//   - string: One of the constants.Update* values; UpdateUnknown when either
//     version cannot be interpreted
func ClassifyUpdate(current, latest string) string {
	cur, curPost := canonicalSemver(current)
	lat, latPost := canonicalSemver(latest)
	if cur == "" || lat == "" {
		return constants.UpdateUnknown
	}

	switch {
	case semver.Major(cur) != semver.Major(lat):
		return constants.UpdateMajor
	case semver.MajorMinor(cur) != semver.MajorMinor(lat):
		return constants.UpdateMinor
	case releaseOf(cur) != releaseOf(lat):
		return constants.UpdatePatch
	case semver.Compare(cur, lat) != 0:
		return constants.UpdatePrerelease
	case curPost != latPost:
		return constants.UpdatePatch
	default:
		return constants.UpdateUnknown
	}
}

// canonicalSemver converts a Python version string to canonical semver.
//
// It performs the following operations:
//   - Drops the epoch and local version label
//   - Keeps the first three release numbers, padding missing ones with zeros
//   - Maps a pre/dev suffix to a semver pre-release ("2.0rc1" -> "v2.0.0-rc.1")
//   - Returns a post/rev/r suffix separately, since a post-release sorts after
//     its base version ("1.0.post1" -> "v1.0.0", 1)
//
// Parameters:
//   - version: The version string to canonicalize
//
// Returns:
//   - string: Canonical semver string; empty when the version is not understood
//   - int: Post-release number, -1 when there is none
func canonicalSemver(version string) (string, int) {
	cleaned := strings.TrimSpace(version)
	if cleaned == "" || cleaned == constants.PlaceholderNA {
		return "", -1
	}
	if i := strings.Index(cleaned, "!"); i >= 0 {
		cleaned = cleaned[i+1:]
	}
	if i := strings.Index(cleaned, "+"); i >= 0 {
		cleaned = cleaned[:i]
	}

	m := pep440Pattern.FindStringSubmatch(cleaned)
	if m == nil {
		return "", -1
	}

	parts := strings.Split(m[1], ".")
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	candidate := "v" + strings.Join(parts[:3], ".")

	post := -1
	switch suffix := strings.ToLower(m[2]); suffix {
	case "":
	case "post", "rev", "r":
		post, _ = strconv.Atoi(m[3])
	default:
		candidate += "-" + suffix
		if m[3] != "" {
			candidate += "." + m[3]
		}
	}

	if !semver.IsValid(candidate) {
		return "", -1
	}
	return semver.Canonical(candidate), post
}

// releaseOf strips the pre-release part of a canonical semver string.
func releaseOf(canonical string) string {
	if pre := semver.Prerelease(canonical); pre != "" {
		return strings.TrimSuffix(canonical, pre)
	}
	return canonical
}
