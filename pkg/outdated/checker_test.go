package outdated

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/pipx-outdated/pkg/cmdexec"
	"github.com/ajxudir/pipx-outdated/pkg/pipx"
	"github.com/ajxudir/pipx-outdated/pkg/testutil"
	"github.com/ajxudir/pipx-outdated/pkg/verbose"
)

// newTestChecker wires a Checker to a FakeRunner through the real pipx client.
func newTestChecker(runner *testutil.FakeRunner, mode MatchMode, logOut *bytes.Buffer) *Checker {
	logger := verbose.New(logOut, false)
	return NewChecker(pipx.NewClient("pipx", runner, logger), mode, logger)
}

// TestChecker_Check tests the behavior of Checker.Check.
//
// It verifies:
//   - A matching row yields Outdated with the parsed record
//   - No matching row yields UpToDate
//   - A failing command yields CheckFailed
//   - A malformed row yields CheckFailed with a *MalformedLineError and a warning
func TestChecker_Check(t *testing.T) {
	t.Run("outdated", func(t *testing.T) {
		runner := testutil.NewFakeRunner().
			On(testutil.Response{Lines: []string{"foo 1.0 2.0 wheel"}}, "pipx", "runpip", "foo", "list", "-o")
		c := newTestChecker(runner, MatchSubstring, &bytes.Buffer{})

		res := c.Check(context.Background(), "foo")
		require.Equal(t, StatusOutdated, res.Status)
		require.NotNil(t, res.Record)
		assert.Equal(t, "1.0", res.Record.Current)
		assert.Equal(t, "2.0", res.Record.Latest)
		assert.Equal(t, "wheel", res.Record.Kind)
		assert.NoError(t, res.Err)
		assert.False(t, res.Failed())
	})

	t.Run("up to date with outdated dependencies", func(t *testing.T) {
		runner := testutil.NewFakeRunner().
			On(testutil.Response{Lines: testutil.PipOutdatedLines("click 8.1.0 8.1.7 wheel")}, "pipx", "runpip", "black", "list", "-o")
		c := newTestChecker(runner, MatchSubstring, &bytes.Buffer{})

		res := c.Check(context.Background(), "black")
		assert.Equal(t, StatusUpToDate, res.Status)
		assert.Nil(t, res.Record)
		assert.NoError(t, res.Err)
	})

	t.Run("empty listing", func(t *testing.T) {
		runner := testutil.NewFakeRunner().
			On(testutil.Response{}, "pipx", "runpip", "ruff", "list", "-o")
		c := newTestChecker(runner, MatchExact, &bytes.Buffer{})

		assert.Equal(t, StatusUpToDate, c.Check(context.Background(), "ruff").Status)
	})

	t.Run("command failure", func(t *testing.T) {
		runner := testutil.NewFakeRunner().
			On(testutil.Response{ExitCode: 1, Stderr: "Package foo is not installed"}, "pipx", "runpip", "foo", "list", "-o")
		c := newTestChecker(runner, MatchSubstring, &bytes.Buffer{})

		res := c.Check(context.Background(), "foo")
		assert.Equal(t, StatusCheckFailed, res.Status)
		assert.True(t, res.Failed())
		ce, ok := cmdexec.IsCommandError(res.Err)
		require.True(t, ok)
		assert.Equal(t, 1, ce.ExitCode)
	})

	t.Run("malformed row", func(t *testing.T) {
		logOut := &bytes.Buffer{}
		runner := testutil.NewFakeRunner().
			On(testutil.Response{Lines: []string{"foo 1.0"}}, "pipx", "runpip", "foo", "list", "-o")
		c := newTestChecker(runner, MatchSubstring, logOut)

		res := c.Check(context.Background(), "foo")
		assert.Equal(t, StatusCheckFailed, res.Status)
		assert.Nil(t, res.Record)
		assert.True(t, IsMalformedLine(res.Err))
		_, isCmd := cmdexec.IsCommandError(res.Err)
		assert.False(t, isCmd)
		assert.True(t, strings.HasPrefix(logOut.String(), "Warning: malformed outdated line for foo"))
	})
}

// TestChecker_SubstringRegression documents the substring matching gap.
//
// It verifies:
//   - Substring mode reports "foo" as outdated from a "foolib" row
//   - Exact mode reports "foo" as up to date for the same output
func TestChecker_SubstringRegression(t *testing.T) {
	lines := []string{"foolib 1.0 2.0 wheel"}
	runner := testutil.NewFakeRunner().
		On(testutil.Response{Lines: lines}, "pipx", "runpip", "foo", "list", "-o")

	substring := newTestChecker(runner, MatchSubstring, &bytes.Buffer{}).Check(context.Background(), "foo")
	require.Equal(t, StatusOutdated, substring.Status)
	assert.Equal(t, "foo", substring.Record.Package)
	assert.Equal(t, "foolib", substring.Record.Distribution)

	exact := newTestChecker(runner, MatchExact, &bytes.Buffer{}).Check(context.Background(), "foo")
	assert.Equal(t, StatusUpToDate, exact.Status)
}

// TestNewChecker_DefaultMode tests that an empty mode falls back to substring.
func TestNewChecker_DefaultMode(t *testing.T) {
	assert.Equal(t, MatchSubstring, NewChecker(nil, "", nil).Mode)
}

// TestCountRows tests the behavior of countRows.
func TestCountRows(t *testing.T) {
	assert.Equal(t, 0, countRows(nil))
	assert.Equal(t, 2, countRows(testutil.PipOutdatedLines("a 1 2 wheel", "b 1 2 wheel")))
}
