// Package testutil provides shared test utilities for envup packages.
package testutil

import (
	"bytes"
	"io"
	"os"
	"testing"
)

// captureStream redirects one process stream into a pipe while fn runs and
// returns everything written to it. The original stream is restored before
// the pipe is drained.
func captureStream(stream **os.File, fn func()) string {
	orig := *stream
	r, w, _ := os.Pipe()
	*stream = w

	fn()

	_ = w.Close()
	*stream = orig

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()

	return buf.String()
}

// CaptureStdout captures stdout during the execution of fn.
//
// The cmd tests use this to assert on table and summary output, which the
// commands print directly rather than through the audit sink.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - fn: Function to execute while capturing stdout
//
// Returns:
//   - string: All content written to stdout during fn execution
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return captureStream(&os.Stdout, fn)
}

// CaptureStderr captures stderr during the execution of fn.
//
// Parameters:
//   - t: Testing instance for helper marking
//   - fn: Function to execute while capturing stderr
//
// Returns:
//   - string: All content written to stderr during fn execution
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return captureStream(&os.Stderr, fn)
}
