package audit

import (
	"strings"
)

// CommandExec logs command execution details at debug level.
//
// It performs the following operations:
//   - Logs the command being executed
//   - Logs the working directory where the command will run
//
// Parameters:
//   - s: The audit sink to write to
//   - cmd: The command string being executed
//   - workDir: The working directory path for command execution
//
// Returns:
//   - None
func CommandExec(s Sink, cmd, workDir string) {
	s.Debugf("executing: %s", cmd)
	s.Debugf("  working dir: %s", workDir)
}

// CommandResult logs command execution results.
//
// It performs the following operations:
//   - Logs the command status (succeeded or failed) with exit code
//   - Truncates long command strings to 60 characters for readability
//   - If output is provided, logs up to 5 lines with truncation
//
// Successful commands log at debug level, failures at warning level so they
// reach the console mirror.
//
// Parameters:
//   - s: The audit sink to write to
//   - cmd: The command string that was executed
//   - exitCode: The exit code returned by the command (0 for success)
//   - output: The command output (stdout/stderr)
//
// Returns:
//   - None
func CommandResult(s Sink, cmd string, exitCode int, output string) {
	if exitCode == 0 {
		s.Debugf("command succeeded: %s", truncate(cmd, 60))
	} else {
		s.Warnf("command failed (exit %d): %s", exitCode, truncate(cmd, 60))
	}

	if output == "" {
		return
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > 5 {
		for _, line := range lines[:3] {
			s.Debugf("  | %s", truncate(line, 100))
		}
		s.Debugf("  | ... (%d more lines)", len(lines)-3)
	} else {
		for _, line := range lines {
			s.Debugf("  | %s", truncate(line, 100))
		}
	}
}

// PhaseStarted logs the start of a cycle phase at info level.
//
// Parameters:
//   - s: The audit sink to write to
//   - cycleID: The cycle identifier
//   - phase: The phase name (snapshot, scan, upgrade, rollback)
func PhaseStarted(s Sink, cycleID, phase string) {
	s.Infof("[%s] phase started: %s", cycleID, phase)
}

// PhaseCompleted logs the completion of a cycle phase at info level.
//
// Parameters:
//   - s: The audit sink to write to
//   - cycleID: The cycle identifier
//   - phase: The phase name (snapshot, scan, upgrade, rollback)
//   - detail: Short outcome description appended to the entry
func PhaseCompleted(s Sink, cycleID, phase, detail string) {
	if detail == "" {
		s.Infof("[%s] phase completed: %s", cycleID, phase)
		return
	}
	s.Infof("[%s] phase completed: %s (%s)", cycleID, phase, detail)
}

// truncate shortens a string to the specified maximum length.
//
// It performs the following operations:
//   - Returns the original string if it's within the maxLen limit
//   - Truncates the string to maxLen-3 and appends "..." if it exceeds maxLen
//
// Parameters:
//   - s: The string to truncate
//   - maxLen: The maximum length for the returned string (must be at least 3)
//
// Returns:
//   - string: The original or truncated string with "..." suffix if truncated
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
