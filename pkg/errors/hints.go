package errors

import (
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	// Pattern is a substring to match in error messages (case-insensitive).
	Pattern string

	// Hint is a brief description of the problem.
	Hint string

	// Resolution is a command or action to fix the problem.
	Resolution string
}

// CommandResolutionHints maps command names to installation instructions.
// Used for preflight validation errors when a required command is not found.
var CommandResolutionHints = map[string]string{
	// Python toolchain
	"pip":     "Install Python: https://python.org/downloads/",
	"pip3":    "Install Python: https://python.org/downloads/",
	"python":  "Install Python: https://python.org/downloads/",
	"python3": "Install Python: https://python.org/downloads/",
	"pipenv":  "Install pipenv: brew install pipenv (macOS), pipx install pipenv, or pip install --user pipenv",
	"poetry":  "Install Poetry: https://python-poetry.org/docs/#installation",
	"uv":      "Install uv: https://docs.astral.sh/uv/getting-started/installation/",
	"conda":   "Install Miniconda: https://docs.conda.io/en/latest/miniconda.html",

	// Other package managers supported through custom command templates
	"npm":   "Install Node.js: https://nodejs.org/",
	"yarn":  "Install Yarn: https://yarnpkg.com/getting-started/install",
	"gem":   "Install Ruby: https://ruby-lang.org/en/downloads/",
	"cargo": "Install Rust: https://rustup.rs/",
	"brew":  "Install Homebrew: https://brew.sh/",

	// Common Unix tools usable in command templates
	"grep": "Unix tool - typically pre-installed on Linux/macOS",
	"awk":  "Unix tool - typically pre-installed on Linux/macOS",
	"sed":  "Unix tool - typically pre-installed on Linux/macOS",
	"jq":   "Install jq: https://jqlang.github.io/jq/download/ (JSON processor)",
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by EnhanceErrorWithHint to add context to errors.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "failed to parse",
		Hint:       "Check the tool's output format",
		Resolution: "Verify the outdated command produces JSON (e.g. pip list --outdated --format=json)",
	},
	{
		Pattern:    "timed out",
		Hint:       "Package manager command took too long",
		Resolution: "Increase timeout_seconds in config or pass --timeout",
	},
	{
		Pattern:    "failed to load config",
		Hint:       "Configuration file is invalid or not found",
		Resolution: "Run 'envup config' to inspect the effective config, or 'envup config --init' to create one",
	},
	{
		Pattern:    "no such file or directory",
		Hint:       "File or directory not found",
		Resolution: "Verify the path exists and you have read permissions",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check file permissions or run with appropriate privileges",
	},
	{
		Pattern:    "externally-managed-environment",
		Hint:       "System Python refuses direct installs (PEP 668)",
		Resolution: "Run envup inside a virtualenv, or point commands at a venv's pip",
	},
	{
		Pattern:    "could not find a version",
		Hint:       "Requested version not available",
		Resolution: "Verify the package name and version exist on the index",
	},
	{
		Pattern:    "no matching distribution",
		Hint:       "Requested version not available for this platform",
		Resolution: "Check Python version compatibility and the package index",
	},
	{
		Pattern:    "network",
		Hint:       "Network connectivity issue",
		Resolution: "Check internet connection and proxy settings",
	},
	{
		Pattern:    "connection refused",
		Hint:       "Connection refused by the package index",
		Resolution: "Check if the index/registry is accessible and not blocked",
	},
	{
		Pattern:    "no snapshot found",
		Hint:       "No manifest exists to restore from",
		Resolution: "Run 'envup snapshot' first, or pass an explicit manifest path",
	},
}

// GetHint returns an actionable hint for the given error.
//
// It searches the error message for known patterns in CommonErrorHints
// and returns a formatted hint if one matches.
//
// Parameters:
//   - err: The error to get a hint for
//
// Returns:
//   - string: The hint with resolution, or empty string if no hint found
//
// Example:
//
//	hint := errors.GetHint(err)
//	if hint != "" {
//	    fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
//	}
func GetHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(hint.Pattern)) {
			return hint.Hint + ": " + hint.Resolution
		}
	}

	return ""
}

// GetHintForCommand returns the installation hint for a command.
//
// Parameters:
//   - cmd: The command name (e.g., "pip", "python3")
//
// Returns:
//   - string: Installation hint, or empty string if unknown command
func GetHintForCommand(cmd string) string {
	return CommandResolutionHints[cmd]
}

// RegisterHint adds a custom hint to the registry.
//
// This allows extending the hint system with project-specific patterns.
//
// Parameters:
//   - pattern: Lowercase substring to match in error messages
//   - hint: Brief description of the issue
//   - resolution: Actionable suggestion for fixing the error
func RegisterHint(pattern, hint, resolution string) {
	CommonErrorHints = append(CommonErrorHints, ErrorHint{
		Pattern:    pattern,
		Hint:       hint,
		Resolution: resolution,
	})
}

// RegisterCommandHint adds a command installation hint.
//
// Parameters:
//   - command: Command name (e.g., "mytool")
//   - hint: Installation instructions
func RegisterCommandHint(command, hint string) {
	CommandResolutionHints[command] = hint
}

// EnhanceErrorWithHint adds actionable hints to an error message if a matching pattern is found.
//
// Parameters:
//   - err: The error to enhance
//
// Returns:
//   - string: Error message with hint appended if found, otherwise just the error message
//
// Example:
//
//	enhanced := errors.EnhanceErrorWithHint(err)
//	fmt.Fprintf(os.Stderr, "Error: %s\n", enhanced)
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := err.Error()
	for _, hint := range CommonErrorHints {
		if strings.Contains(strings.ToLower(errStr), strings.ToLower(hint.Pattern)) {
			return errStr + "\n  \U0001F4A1 " + hint.Hint + ": " + hint.Resolution
		}
	}

	return errStr
}
