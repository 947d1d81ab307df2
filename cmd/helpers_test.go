package cmd

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ajxudir/envup/pkg/audit"
	"github.com/ajxudir/envup/pkg/cmdexec"
	"github.com/ajxudir/envup/pkg/config"
	"github.com/ajxudir/envup/pkg/errors"
)

// resetCmdFlags restores every command flag variable to its default value.
//
// Cobra keeps flag variables between SetArgs runs, so tests that set any
// of them must reset the full set for isolation.
func resetCmdFlags() {
	configFlag = ""
	dirFlag = ""
	verboseFlag = false
	versionFlag = false

	configShowDefaultsFlag = false
	configInitFlag = false
	configValidateFlag = false

	snapshotNoTimeoutFlag = false
	snapshotSkipPreflight = false
	snapshotOutputFlag = ""

	outdatedNoTimeoutFlag = false
	outdatedSkipPreflight = false
	outdatedOutputFlag = ""

	updateDryRunFlag = false
	updateNoRollbackFlag = false
	updateYesFlag = false
	updateNoTimeoutFlag = false
	updateSkipPreflight = false
	updateOutputFlag = ""

	restoreYesFlag = false
	restoreNoTimeoutFlag = false
	restoreSkipPreflight = false

	historyPruneFlag = 0
	historyOutputFlag = ""

	// Cobra auto-registers a "help" flag whose parsed value also persists
	// between SetArgs runs; clear it so a prior --help run doesn't make the
	// next execution print help instead of running the command.
	if f := rootCmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}
}

// setupCmdTest prepares an isolated command test environment.
//
// It points the working directory flag at a fresh temp dir, silences the
// audit sink, and restores all package state when the test ends. Commands
// run against the built-in pip defaults unless the test writes a
// .envup.yml into the returned directory.
func setupCmdTest(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	resetCmdFlags()
	dirFlag = dir

	origSink := newAuditSinkFunc
	newAuditSinkFunc = func(cfg *config.Config) (*audit.Log, error) {
		return audit.NewNop(), nil
	}

	t.Cleanup(func() {
		newAuditSinkFunc = origSink
		resetCmdFlags()
	})

	return dir
}

// toolCall records one invocation the fake tool received.
type toolCall struct {
	commands     string
	replacements map[string]string
}

// fakeTool stands in for the wrapped package manager in command tests.
// It dispatches on the command template and replays canned outputs.
type fakeTool struct {
	installed  string
	outdated   string
	failing    map[string]string
	restoreErr error
	calls      []toolCall
}

func (f *fakeTool) execute(commands string, env map[string]string, dir string, timeoutSeconds int, replacements map[string]string) ([]byte, error) {
	f.calls = append(f.calls, toolCall{commands: commands, replacements: replacements})

	switch {
	case strings.Contains(commands, "freeze"):
		return []byte(f.installed), nil
	case strings.Contains(commands, "--outdated"):
		return []byte(f.outdated), nil
	case strings.Contains(commands, "{{manifest}}"):
		if f.restoreErr != nil {
			return nil, f.restoreErr
		}
		return []byte("restored"), nil
	default:
		name := replacements["package"]
		if msg, ok := f.failing[name]; ok {
			return nil, errors.NewToolInvocationError(commands, 1, msg, fmt.Errorf("exit status 1"))
		}
		return []byte("upgraded " + name), nil
	}
}

// install swaps the shell executor for the fake tool until the test ends.
func (f *fakeTool) install(t *testing.T) {
	t.Helper()
	orig := cmdexec.Execute
	cmdexec.Execute = f.execute
	t.Cleanup(func() { cmdexec.Execute = orig })
}

// restoreCalls returns the restore invocations the fake tool received.
func (f *fakeTool) restoreCalls() []toolCall {
	var calls []toolCall
	for _, c := range f.calls {
		if strings.Contains(c.commands, "{{manifest}}") {
			calls = append(calls, c)
		}
	}
	return calls
}

// upgradeCalls returns the upgrade invocations the fake tool received.
func (f *fakeTool) upgradeCalls() []toolCall {
	var calls []toolCall
	for _, c := range f.calls {
		if strings.Contains(c.commands, "{{package}}") {
			calls = append(calls, c)
		}
	}
	return calls
}
