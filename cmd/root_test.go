package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/envup/pkg/config"
	"github.com/ajxudir/envup/pkg/errors"
	"github.com/ajxudir/envup/pkg/testutil"
)

// TestExecuteWithExitCodes tests the behavior of Execute with different exit codes.
//
// It verifies:
//   - Successful commands do not call exitFunc
//   - Errors call exitFunc with the mapped exit code
//   - Partial success errors return ExitPartialFailure code
func TestExecuteWithExitCodes(t *testing.T) {
	oldExit := exitFunc
	defer func() { exitFunc = oldExit }()

	t.Run("success returns 0", func(t *testing.T) {
		setupCmdTest(t)
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{"--help"})
		Execute()

		// --help doesn't error, so exitFunc shouldn't be called
		assert.Equal(t, -1, exitCode)
		rootCmd.SetArgs(nil)
	})

	t.Run("unknown command calls exitFunc with failure code", func(t *testing.T) {
		setupCmdTest(t)
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		rootCmd.SetArgs([]string{"nonexistent-subcommand-xyz"})
		Execute()

		assert.Equal(t, errors.ExitFailure, exitCode)
		rootCmd.SetArgs(nil)
	})

	t.Run("config error uses ExitConfigError", func(t *testing.T) {
		setupCmdTest(t)
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		// Structured output without --yes or --dry-run is rejected before
		// any phase runs.
		rootCmd.SetArgs([]string{"update", "--output", "json"})
		Execute()

		assert.Equal(t, errors.ExitConfigError, exitCode)
		rootCmd.SetArgs(nil)
	})

	t.Run("partial success uses ExitPartialFailure", func(t *testing.T) {
		setupCmdTest(t)
		exitCode := -1
		exitFunc = func(code int) { exitCode = code }

		fake := &fakeTool{
			installed: testutil.FreezeOutput("requests==2.31.0", "flask==2.0.0"),
			outdated: `[
				{"name": "requests", "version": "2.31.0", "latest_version": "2.32.3"},
				{"name": "flask", "version": "2.0.0", "latest_version": "3.0.0"}
			]`,
			failing: map[string]string{"flask": "resolution impossible"},
		}
		fake.install(t)

		// Without rollback the surviving upgrade keeps the cycle partial.
		rootCmd.SetArgs([]string{"update", "-y", "--no-rollback", "--skip-preflight"})
		testutil.CaptureStdout(t, func() {
			Execute()
		})

		assert.Equal(t, errors.ExitPartialFailure, exitCode)
		rootCmd.SetArgs(nil)
	})
}

// TestNewAuditSink tests the behavior of newAuditSink.
//
// It verifies:
//   - The audit file is created at the path resolved against the working directory
//   - A missing audit section still yields a working console-only sink
//   - The --verbose flag lowers the console mirror to debug level
func TestNewAuditSink(t *testing.T) {
	t.Run("creates audit file under working directory", func(t *testing.T) {
		dir := setupCmdTest(t)
		cfg := testutil.NewConfig().WithWorkingDir(dir).Build()
		cfg.Audit = &config.AuditCfg{File: ".envup/audit.log", ConsoleLevel: "warn"}

		sink, err := newAuditSink(cfg)
		require.NoError(t, err)
		defer func() { _ = sink.Close() }()

		_, statErr := os.Stat(filepath.Join(dir, ".envup", "audit.log"))
		assert.NoError(t, statErr)
	})

	t.Run("no audit section yields console-only sink", func(t *testing.T) {
		dir := setupCmdTest(t)
		cfg := testutil.NewConfig().WithWorkingDir(dir).Build()
		cfg.Audit = nil

		sink, err := newAuditSink(cfg)
		require.NoError(t, err)
		defer func() { _ = sink.Close() }()

		entries, readErr := os.ReadDir(dir)
		require.NoError(t, readErr)
		assert.Empty(t, entries)
	})

	t.Run("verbose lowers console mirror to debug", func(t *testing.T) {
		dir := setupCmdTest(t)
		cfg := testutil.NewConfig().WithWorkingDir(dir).Build()
		verboseFlag = true

		out := testutil.CaptureStderr(t, func() {
			sink, err := newAuditSink(cfg)
			require.NoError(t, err)
			defer func() { _ = sink.Close() }()
			sink.Debugf("debug probe")
		})

		assert.Contains(t, out, "debug probe")
	})

	t.Run("default level hides debug entries", func(t *testing.T) {
		dir := setupCmdTest(t)
		cfg := testutil.NewConfig().WithWorkingDir(dir).Build()

		out := testutil.CaptureStderr(t, func() {
			sink, err := newAuditSink(cfg)
			require.NoError(t, err)
			defer func() { _ = sink.Close() }()
			sink.Debugf("debug probe")
			sink.Infof("info probe")
		})

		assert.NotContains(t, out, "debug probe")
		assert.Contains(t, out, "info probe")
	})

	t.Run("unwritable audit path returns error", func(t *testing.T) {
		dir := setupCmdTest(t)
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		cfg := testutil.NewConfig().WithWorkingDir(dir).Build()
		cfg.Audit = &config.AuditCfg{File: "blocker/audit.log"}

		_, err := newAuditSink(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open audit log")
	})
}

// TestSetupManagerPreflight tests the behavior of setupManager preflight validation.
//
// It verifies:
//   - Missing commands fail with ExitConfigError and a skip hint
//   - skipPreflight bypasses command validation entirely
func TestSetupManagerPreflight(t *testing.T) {
	t.Run("missing command fails with config error", func(t *testing.T) {
		dir := setupCmdTest(t)
		writeTestConfig(t, dir, `
tool: pip
commands:
  list_installed: definitely-not-a-real-binary-xyz freeze
  list_outdated: definitely-not-a-real-binary-xyz outdated
  upgrade: definitely-not-a-real-binary-xyz up {{package}} {{version}}
  restore: definitely-not-a-real-binary-xyz restore {{manifest}}
`)

		_, _, err := setupManager(false, false)
		require.Error(t, err)
		assert.Equal(t, errors.ExitConfigError, errors.GetExitCode(err))
		assert.Contains(t, err.Error(), "--skip-preflight")
	})

	t.Run("skipPreflight bypasses validation", func(t *testing.T) {
		dir := setupCmdTest(t)
		writeTestConfig(t, dir, `
tool: pip
commands:
  list_installed: definitely-not-a-real-binary-xyz freeze
  list_outdated: definitely-not-a-real-binary-xyz outdated
  upgrade: definitely-not-a-real-binary-xyz up {{package}} {{version}}
  restore: definitely-not-a-real-binary-xyz restore {{manifest}}
`)

		manager, sink, err := setupManager(false, true)
		require.NoError(t, err)
		defer func() { _ = sink.Close() }()
		assert.NotNil(t, manager)
	})
}

// writeTestConfig writes a .envup.yml into dir for config discovery.
func writeTestConfig(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, config.LocalConfigName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
