package cmdexec

import (
	"context"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/envup/pkg/errors"
)

// TestApplyReplacements tests the behavior of applyReplacements.
//
// It verifies:
//   - Template placeholders are correctly replaced with values
//   - Values with shell metacharacters are quoted
//   - Empty values remove the placeholder entirely (not quoted as '')
func TestApplyReplacements(t *testing.T) {
	t.Run("basic replacement", func(t *testing.T) {
		cmd := `pip install {{package}}=={{version}}`
		replacements := map[string]string{
			"package": "requests",
			"version": "2.31.0",
		}

		result := applyReplacements(cmd, replacements)
		assert.Equal(t, `pip install requests==2.31.0`, result)
	})

	t.Run("manifest replacement", func(t *testing.T) {
		cmd := `pip install -r {{manifest}}`
		replacements := map[string]string{
			"manifest": ".envup/snapshots/env_snapshot_20250101_120000.txt",
		}

		result := applyReplacements(cmd, replacements)
		assert.Equal(t, `pip install -r .envup/snapshots/env_snapshot_20250101_120000.txt`, result)
	})

	t.Run("injection attempt is quoted", func(t *testing.T) {
		cmd := `pip install {{package}}`
		replacements := map[string]string{
			"package": "requests; rm -rf /",
		}

		result := applyReplacements(cmd, replacements)
		assert.Equal(t, `pip install 'requests; rm -rf /'`, result)
	})

	t.Run("empty value removes placeholder", func(t *testing.T) {
		cmd := `pip install {{package}} {{extra_flag}} --no-input`
		replacements := map[string]string{
			"package":    "flask",
			"extra_flag": "",
		}

		result := applyReplacements(cmd, replacements)
		assert.Equal(t, `pip install flask  --no-input`, result)
		assert.NotContains(t, result, "''")
	})
}

// TestShellEscape tests the behavior of shellEscape.
//
// It verifies:
//   - Safe strings pass through unquoted
//   - Strings with spaces or metacharacters are single-quoted
//   - Embedded single quotes are escaped correctly
//   - Empty strings become empty quotes
func TestShellEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "safe string unquoted",
			input:    "requests-2.31.0",
			expected: "requests-2.31.0",
		},
		{
			name:     "version spec unquoted",
			input:    "flask==3.0.0",
			expected: "flask==3.0.0",
		},
		{
			name:     "path unquoted",
			input:    "/tmp/snapshots/env.txt",
			expected: "/tmp/snapshots/env.txt",
		},
		{
			name:     "spaces quoted",
			input:    "hello world",
			expected: "'hello world'",
		},
		{
			name:     "metacharacters quoted",
			input:    "a;b&c",
			expected: "'a;b&c'",
		},
		{
			name:     "single quote escaped",
			input:    "it's",
			expected: `'it'\''s'`,
		},
		{
			name:     "empty string",
			input:    "",
			expected: "''",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shellEscape(tt.input))
		})
	}
}

// TestGetShell tests the behavior of getShell.
//
// It verifies:
//   - SHELL environment variable is used when set
//   - Falls back to sh when SHELL is not set
func TestGetShell(t *testing.T) {
	t.Run("uses SHELL env var when set", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("skipping Unix-specific test on Windows")
		}
		originalShell := os.Getenv("SHELL")
		defer func() { _ = os.Setenv("SHELL", originalShell) }()

		require.NoError(t, os.Setenv("SHELL", "/bin/bash"))
		shell, args := getShell()
		assert.Equal(t, "/bin/bash", shell)
		assert.Equal(t, []string{"-l", "-c"}, args)
	})

	t.Run("falls back to sh when SHELL not set", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("skipping Unix-specific test on Windows")
		}
		originalShell := os.Getenv("SHELL")
		defer func() { _ = os.Setenv("SHELL", originalShell) }()

		require.NoError(t, os.Unsetenv("SHELL"))
		shell, args := getShell()
		assert.Equal(t, "sh", shell)
		assert.Equal(t, []string{"-c"}, args)
	})
}

// TestParseCommandGroups_SingleCommand tests the behavior of parseCommandGroups with a single command.
//
// It verifies:
//   - Single commands are parsed into one group with one command
func TestParseCommandGroups_SingleCommand(t *testing.T) {
	groups := parseCommandGroups("pip freeze")
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"pip freeze"}, groups[0])
}

// TestParseCommandGroups_PipedCommands tests the behavior of parseCommandGroups with piped commands.
//
// It verifies:
//   - Piped commands are parsed into one group with multiple commands
func TestParseCommandGroups_PipedCommands(t *testing.T) {
	cmd := `pip list --outdated --format=json | jq '.'`
	groups := parseCommandGroups(cmd)
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"pip list --outdated --format=json", "jq '.'"}, groups[0])
}

// TestParseCommandGroups_MultilinePiped tests the behavior of parseCommandGroups with multiline piped commands.
//
// It verifies:
//   - Multiline piped commands are parsed into one group
func TestParseCommandGroups_MultilinePiped(t *testing.T) {
	cmd := `pip freeze |
grep -v '^#'`
	groups := parseCommandGroups(cmd)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0], 2)
}

// TestParseCommandGroups_Sequential tests the behavior of parseCommandGroups with sequential commands.
//
// It verifies:
//   - Sequential commands are parsed into separate groups
func TestParseCommandGroups_Sequential(t *testing.T) {
	cmd := `echo first
echo second
echo third`
	groups := parseCommandGroups(cmd)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"echo first"}, groups[0])
	assert.Equal(t, []string{"echo second"}, groups[1])
	assert.Equal(t, []string{"echo third"}, groups[2])
}

// TestParseCommandGroups_LineContinuation tests the behavior of parseCommandGroups with line continuation.
//
// It verifies:
//   - Commands with backslash continuation are joined together
func TestParseCommandGroups_LineContinuation(t *testing.T) {
	cmd := `pip install \
--upgrade requests`
	groups := parseCommandGroups(cmd)
	require.Len(t, groups, 1)
	assert.Contains(t, groups[0][0], "pip install")
	assert.Contains(t, groups[0][0], "--upgrade requests")
}

// TestSplitByPipe tests the behavior of splitByPipe.
//
// It verifies:
//   - Commands are split at unquoted pipes
//   - Pipes inside quotes are preserved
func TestSplitByPipe(t *testing.T) {
	t.Run("simple pipe", func(t *testing.T) {
		parts := splitByPipe("pip freeze | sort")
		assert.Equal(t, []string{"pip freeze", "sort"}, parts)
	})

	t.Run("pipe inside quotes preserved", func(t *testing.T) {
		parts := splitByPipe(`grep 'a|b' file | wc -l`)
		assert.Equal(t, []string{`grep 'a|b' file`, "wc -l"}, parts)
	})

	t.Run("no pipe", func(t *testing.T) {
		parts := splitByPipe("pip freeze")
		assert.Equal(t, []string{"pip freeze"}, parts)
	})
}

// TestExecute tests the behavior of Execute.
//
// It verifies:
//   - Simple commands return their output
//   - Replacements are applied before execution
//   - Environment variables are passed to commands
//   - Sequential commands return the last command's output
func TestExecute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping shell tests on Windows")
	}

	t.Run("simple command", func(t *testing.T) {
		output, err := Execute("echo hello", nil, "", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(output))
	})

	t.Run("with replacements", func(t *testing.T) {
		output, err := Execute("echo {{package}}=={{version}}", nil, "", 0, UpgradeReplacements("requests", "2.31.0"))
		require.NoError(t, err)
		assert.Equal(t, "requests==2.31.0\n", string(output))
	})

	t.Run("with environment", func(t *testing.T) {
		output, err := Execute("echo $ENVUP_TEST_VAR", map[string]string{"ENVUP_TEST_VAR": "from-env"}, "", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "from-env\n", string(output))
	})

	t.Run("sequential returns last output", func(t *testing.T) {
		output, err := Execute("echo first\necho second", nil, "", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "second\n", string(output))
	})

	t.Run("working directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		output, err := Execute("pwd", nil, tmpDir, 0, nil)
		require.NoError(t, err)
		assert.Contains(t, string(output), tmpDir)
	})

	t.Run("empty commands", func(t *testing.T) {
		_, err := Execute("   ", nil, "", 0, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no commands provided")
	})
}

// TestExecuteFailure tests the behavior of Execute with failing commands.
//
// It verifies:
//   - Failures return a ToolInvocationError with the exit code
//   - Captured stderr is included in the error
func TestExecuteFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping shell tests on Windows")
	}

	t.Run("nonzero exit", func(t *testing.T) {
		_, err := Execute("exit 3", nil, "", 0, nil)
		require.Error(t, err)

		te, ok := errors.IsToolInvocationError(err)
		require.True(t, ok)
		assert.Equal(t, 3, te.ExitCode)
		assert.False(t, te.TimedOut)
	})

	t.Run("stderr captured", func(t *testing.T) {
		_, err := Execute("echo broken >&2; exit 1", nil, "", 0, nil)
		require.Error(t, err)

		te, ok := errors.IsToolInvocationError(err)
		require.True(t, ok)
		assert.Equal(t, 1, te.ExitCode)
		assert.Contains(t, te.Stderr, "broken")
		assert.Contains(t, err.Error(), "broken")
	})
}

// TestExecuteTimeout tests the behavior of Execute with a command timeout.
//
// It verifies:
//   - Commands exceeding the timeout are killed
//   - The returned error reports the timeout
func TestExecuteTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping shell tests on Windows")
	}

	start := time.Now()
	_, err := Execute("sleep 5", nil, "", 1, nil)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Less(t, elapsed, 4*time.Second)

	te, ok := errors.IsToolInvocationError(err)
	require.True(t, ok)
	assert.True(t, te.TimedOut)
	assert.Contains(t, te.Err.Error(), "timed out after 1 seconds")
}

// TestExecuteWithContext tests the behavior of ExecuteWithContext.
//
// It verifies:
//   - A cancelled context aborts execution before any command runs
//   - A live context allows normal execution
func TestExecuteWithContext(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping shell tests on Windows")
	}

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ExecuteWithContext(ctx, "echo hello", nil, "", 0, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("live context", func(t *testing.T) {
		output, err := ExecuteWithContext(context.Background(), "echo hello", nil, "", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(output))
	})
}

// TestUpgradeReplacements tests the behavior of UpgradeReplacements.
//
// It verifies:
//   - The map carries the package and version template keys
func TestUpgradeReplacements(t *testing.T) {
	r := UpgradeReplacements("requests", "2.31.0")
	assert.Equal(t, map[string]string{
		"package": "requests",
		"version": "2.31.0",
	}, r)
}

// TestRestoreReplacements tests the behavior of RestoreReplacements.
//
// It verifies:
//   - The map carries the manifest template key
func TestRestoreReplacements(t *testing.T) {
	r := RestoreReplacements("/tmp/manifest.txt")
	assert.Equal(t, map[string]string{
		"manifest": "/tmp/manifest.txt",
	}, r)
}
