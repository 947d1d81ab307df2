package audit

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestNewWritesFileAndConsole tests the behavior of the tee'd audit log.
//
// It verifies:
//   - Info entries reach both the file and the console
//   - Debug entries reach the file but not the console at info level
//   - File entries carry ISO8601 timestamps
func TestNewWritesFileAndConsole(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "audit.log")

	var console bytes.Buffer
	log, err := New(Options{
		FilePath:     logPath,
		Console:      &console,
		ConsoleLevel: zapcore.InfoLevel,
	})
	require.NoError(t, err)

	log.Infof("phase started: %s", "snapshot")
	log.Debugf("executing: %s", "pip freeze")
	require.NoError(t, log.Close())

	fileContent, err := os.ReadFile(logPath)
	require.NoError(t, err)

	assert.Contains(t, string(fileContent), "phase started: snapshot")
	assert.Contains(t, string(fileContent), "executing: pip freeze")
	// ISO8601 timestamps start with the year
	assert.Regexp(t, `20\d\d-\d\d-\d\d`, string(fileContent))

	assert.Contains(t, console.String(), "phase started: snapshot")
	assert.NotContains(t, console.String(), "executing: pip freeze")
}

// TestConsoleLevelVerbose tests the behavior of the console level switch.
//
// It verifies:
//   - Debug entries reach the console once the level is lowered
func TestConsoleLevelVerbose(t *testing.T) {
	var console bytes.Buffer
	log, err := New(Options{Console: &console, ConsoleLevel: zapcore.InfoLevel})
	require.NoError(t, err)

	log.Debugf("hidden entry")
	log.SetConsoleLevel(zapcore.DebugLevel)
	log.Debugf("visible entry")
	require.NoError(t, log.Close())

	assert.NotContains(t, console.String(), "hidden entry")
	assert.Contains(t, console.String(), "visible entry")
}

// TestFileAppend tests the behavior of append-only file logging.
//
// It verifies:
//   - Reopening the audit log appends instead of truncating
func TestFileAppend(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "audit.log")

	first, err := New(Options{FilePath: logPath, Console: &bytes.Buffer{}, ConsoleLevel: zapcore.InfoLevel})
	require.NoError(t, err)
	first.Infof("first run")
	require.NoError(t, first.Close())

	second, err := New(Options{FilePath: logPath, Console: &bytes.Buffer{}, ConsoleLevel: zapcore.InfoLevel})
	require.NoError(t, err)
	second.Infof("second run")
	require.NoError(t, second.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "first run")
	assert.Contains(t, string(content), "second run")
}

// TestNewBadFilePath tests the behavior when the audit file cannot be opened.
//
// It verifies:
//   - An error naming the path is returned
func TestNewBadFilePath(t *testing.T) {
	_, err := New(Options{FilePath: filepath.Join(t.TempDir(), "missing", "audit.log")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open audit log")
}

// TestNewNop tests the behavior of the no-op audit log.
//
// It verifies:
//   - Writing to a nop log does not panic and Close succeeds
func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Debugf("nothing")
	log.Infof("nothing")
	log.Warnf("nothing")
	log.Errorf("nothing")
	assert.NoError(t, log.Close())
}

// TestParseLevel tests the behavior of level parsing.
//
// It verifies:
//   - Known level names parse case-insensitively
//   - Unknown names fall back to info with ok=false
func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
		ok       bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"INFO", zapcore.InfoLevel, true},
		{"Warn", zapcore.WarnLevel, true},
		{"warning", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"  info  ", zapcore.InfoLevel, true},
		{"nonsense", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, ok := ParseLevel(tt.input)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

// TestCommandExec tests the behavior of command execution logging.
//
// It verifies:
//   - The command and working directory are logged at debug level
func TestCommandExec(t *testing.T) {
	rec := NewRecorder()
	CommandExec(rec, "pip list --outdated --format=json", "/work")

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "debug", entries[0].Level)
	assert.Contains(t, entries[0].Message, "pip list --outdated")
	assert.Contains(t, entries[1].Message, "/work")
}

// TestCommandResult tests the behavior of command result logging.
//
// It verifies:
//   - Success logs at debug level
//   - Failure logs at warn level with the exit code
//   - Long commands are truncated to 60 characters
//   - Output longer than 5 lines is summarized
func TestCommandResult(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := NewRecorder()
		CommandResult(rec, "pip freeze", 0, "")
		entries := rec.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "debug", entries[0].Level)
		assert.Contains(t, entries[0].Message, "command succeeded")
	})

	t.Run("failure", func(t *testing.T) {
		rec := NewRecorder()
		CommandResult(rec, "pip install flask==3.0.0", 1, "ERROR: boom")
		entries := rec.Entries()
		require.NotEmpty(t, entries)
		assert.Equal(t, "warn", entries[0].Level)
		assert.Contains(t, entries[0].Message, "exit 1")
		assert.True(t, rec.Contains("ERROR: boom"))
	})

	t.Run("long command truncated", func(t *testing.T) {
		rec := NewRecorder()
		longCmd := strings.Repeat("x", 100)
		CommandResult(rec, longCmd, 0, "")
		entries := rec.Entries()
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].Message, "...")
		assert.Less(t, len(entries[0].Message), 100)
	})

	t.Run("long output summarized", func(t *testing.T) {
		rec := NewRecorder()
		output := strings.Join([]string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"}, "\n")
		CommandResult(rec, "pip freeze", 0, output)
		assert.True(t, rec.Contains("l1"))
		assert.True(t, rec.Contains("more lines"))
		assert.False(t, rec.Contains("l7"))
	})
}

// TestPhaseLogging tests the behavior of phase transition helpers.
//
// It verifies:
//   - Phase start and completion are logged at info level with the cycle ID
//   - Completion detail is appended when present
func TestPhaseLogging(t *testing.T) {
	rec := NewRecorder()
	PhaseStarted(rec, "01H", "snapshot")
	PhaseCompleted(rec, "01H", "snapshot", "42 packages")
	PhaseCompleted(rec, "01H", "scan", "")

	entries := rec.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "info", entries[0].Level)
	assert.Contains(t, entries[0].Message, "[01H] phase started: snapshot")
	assert.Contains(t, entries[1].Message, "42 packages")
	assert.Equal(t, "[01H] phase completed: scan", entries[2].Message)
}

// TestRecorder tests the behavior of the recording sink itself.
//
// It verifies:
//   - Entries preserves order and levels
//   - Contains matches substrings
//   - Reset clears recorded entries
func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	rec.Infof("one %d", 1)
	rec.Errorf("two %d", 2)

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Level: "info", Message: "one 1"}, entries[0])
	assert.Equal(t, Entry{Level: "error", Message: "two 2"}, entries[1])

	assert.True(t, rec.Contains("two"))
	assert.False(t, rec.Contains("three"))

	rec.Reset()
	assert.Empty(t, rec.Entries())
}
