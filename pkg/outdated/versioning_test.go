package outdated

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajxudir/pipx-outdated/pkg/constants"
)

// TestCanonicalSemver tests the behavior of canonicalSemver.
//
// It verifies:
//   - Short versions are padded
//   - Four-part versions keep the first three numbers
//   - PEP 440 pre and dev suffixes become semver pre-releases
//   - Post-release numbers are returned separately
//   - Epochs and local labels are dropped
//   - Unparseable input returns empty string
func TestCanonicalSemver(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		post     int
	}{
		{"1.0", "v1.0.0", -1},
		{"2", "v2.0.0", -1},
		{"24.4.2", "v24.4.2", -1},
		{"1.2.3.4", "v1.2.3", -1},
		{"2.0rc1", "v2.0.0-rc.1", -1},
		{"2.0.0.dev3", "v2.0.0-dev.3", -1},
		{"1.0.post1", "v1.0.0", 1},
		{"1.0.post", "v1.0.0", 0},
		{"2.3-rev4", "v2.3.0", 4},
		{"1!3.1", "v3.1.0", -1},
		{"2.1.0+cpu", "v2.1.0", -1},
		{"v1.5", "v1.5.0", -1},
		{"", "", -1},
		{constants.PlaceholderNA, "", -1},
		{"latest", "", -1},
		{"1.02", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, post := canonicalSemver(tt.input)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.post, post)
		})
	}
}

// TestClassifyUpdate tests the behavior of ClassifyUpdate.
func TestClassifyUpdate(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		latest   string
		expected string
	}{
		{"major", "1.0", "2.0", constants.UpdateMajor},
		{"minor", "24.1.0", "24.4.2", constants.UpdateMinor},
		{"patch", "3.2.1", "3.2.2", constants.UpdatePatch},
		{"prerelease to release", "2.0.0rc1", "2.0.0", constants.UpdatePrerelease},
		{"post release", "1.0", "1.0.post1", constants.UpdatePatch},
		{"next post release", "1.0.post1", "1.0.post2", constants.UpdatePatch},
		{"post release to next patch", "1.0.post3", "1.0.1", constants.UpdatePatch},
		{"calver major", "2023.12.1", "2024.1.0", constants.UpdateMajor},
		{"unparseable current", "weird", "1.0", constants.UpdateUnknown},
		{"identical", "1.0", "1.0.0", constants.UpdateUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyUpdate(tt.current, tt.latest))
		})
	}
}
