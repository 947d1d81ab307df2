package preflight

import (
	"fmt"
	"os"
)

// getShellCommandCheck returns the shell invocation for checking that a
// command exists.
//
// The user's $SHELL is preferred, falling back to sh. 'command -v' is used
// because it detects executables, aliases, shell functions, and built-ins.
//
// Parameters:
//   - cmd: The command name to check for existence
//
// Returns:
//   - shell: The shell executable to run
//   - args: Arguments invoking 'command -v' in a login shell
func getShellCommandCheck(cmd string) (shell string, args []string) {
	shell = os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}
	return shell, []string{"-l", "-c", fmt.Sprintf("command -v %s", cmd)}
}
