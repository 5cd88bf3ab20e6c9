// Package testutil provides shared test helpers: a scripted command runner,
// pipx/pip output fixtures and stdout/stderr capture.
package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// CaptureStdout returns everything fn writes to os.Stdout.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stdout, fn)
}

// CaptureStderr returns everything fn writes to os.Stderr.
//
// cmd.Execute reports errors and build warnings there, so its tests read them
// back through this helper.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stderr, fn)
}

// capture swaps *target for a pipe while fn runs. The pipe is drained
// concurrently so output larger than the pipe buffer does not block fn.
func capture(t *testing.T, target **os.File, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("create capture pipe: %v", err)
	}

	saved := *target
	*target = w
	defer func() { *target = saved }()

	done := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		_ = r.Close()
		done <- buf.String()
	}()

	fn()
	_ = w.Close()
	*target = saved

	return <-done
}
