// Package preflight validates the environment before a cycle runs commands.
package preflight

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/ajxudir/envup/pkg/config"
	"github.com/ajxudir/envup/pkg/errors"
)

// Check validates that every command the configuration references is
// available, and warns when the wrapped tool already appears to be running.
//
// It performs the following operations:
//   - Extracts the command names from all four command templates
//   - Validates each unique command against PATH and the user's shell
//   - Scans the process list for a running instance of the wrapped tool
//
// Parameters:
//   - cfg: The configuration whose command templates are checked
//
// Returns:
//   - *errors.ValidationResult: Missing-command errors and warnings; never nil
func Check(cfg *config.Config) *errors.ValidationResult {
	result := &errors.ValidationResult{}

	templates := []string{
		cfg.Commands.ListInstalled,
		cfg.Commands.ListOutdated,
		cfg.Commands.Upgrade,
		cfg.Commands.Restore,
	}

	checked := make(map[string]bool)
	for _, template := range templates {
		for _, cmd := range extractCommands(template) {
			if checked[cmd] {
				continue
			}
			checked[cmd] = true
			if err := validateCommand(cmd); err != nil {
				result.Errors = append(result.Errors, err)
			}
		}
	}

	if cfg.Tool != "" {
		if pids := runningToolPIDs(cfg.Tool); len(pids) > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s appears to be running (pid %v); concurrent package operations can leave the environment inconsistent", cfg.Tool, pids))
		}
	}

	return result
}

// extractCommands extracts the command names from a multiline command template.
//
// It performs the following operations:
//   - Normalizes CRLF line endings and drops blank and comment lines
//   - Handles line continuation backslashes
//   - Splits piped segments and takes the first word of each as the command
//   - Deduplicates names in order of first appearance
//
// Parameters:
//   - commands: A command template, possibly with pipes and continuations
//
// Returns:
//   - []string: Unique command names; empty when the template is blank
func extractCommands(commands string) []string {
	var result []string
	seen := make(map[string]bool)

	trimmed := strings.TrimSpace(commands)
	if trimmed == "" {
		return result
	}

	normalized := strings.ReplaceAll(trimmed, "\r\n", "\n")
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimSpace(strings.TrimSuffix(line, "\\"))
		if line == "" {
			continue
		}

		for _, part := range strings.Split(line, "|") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			fields := strings.Fields(part)
			if len(fields) > 0 {
				cmd := fields[0]
				if !seen[cmd] {
					seen[cmd] = true
					result = append(result, cmd)
				}
			}
		}
	}

	return result
}

// validateCommand checks that a command exists in PATH or as a shell alias.
//
// It performs the following operations:
//   - Tries exec.LookPath first for plain binaries
//   - Falls back to a login-shell 'command -v' check for aliases and functions
//   - Attaches an installation hint when one is known for the command
//
// Parameters:
//   - cmd: The command name to validate
//
// Returns:
//   - *errors.ValidationError: nil when the command resolves
func validateCommand(cmd string) *errors.ValidationError {
	if cmd == "" {
		return nil
	}

	if _, err := exec.LookPath(cmd); err == nil {
		return nil
	}

	if commandExistsInShell(cmd) {
		return nil
	}

	return errors.NewPreflightValidationError(cmd, errors.GetHintForCommand(cmd))
}

// commandExistsInShell checks for a command through the user's shell.
//
// The shell's 'command -v' built-in sees aliases, functions, and built-ins
// that exec.LookPath cannot. The check runs in a login shell so the user's
// profile has initialized them.
//
// Parameters:
//   - cmd: The command name to check
//
// Returns:
//   - bool: true if the shell resolves the command
func commandExistsInShell(cmd string) bool {
	shell, args := getShellCommandCheck(cmd)
	checkCmd := exec.Command(shell, args...)
	return checkCmd.Run() == nil
}
