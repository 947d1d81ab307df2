package preflight

import (
	"os"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// listProcesses returns the system process list. It is a variable so tests
// can supply a canned list.
var listProcesses = ps.Processes

// runningToolPIDs returns the PIDs of processes whose executable matches the
// wrapped tool's name.
//
// The current process is never reported. Matching tolerates a Windows .exe
// suffix. Process listing failures are treated as no matches; the check is
// advisory only.
//
// Parameters:
//   - tool: The wrapped tool's binary name (e.g. "pip")
//
// Returns:
//   - []int: PIDs of matching processes, nil when none are found
func runningToolPIDs(tool string) []int {
	procs, err := listProcesses()
	if err != nil {
		return nil
	}

	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == tool {
			pids = append(pids, p.Pid())
		}
	}
	return pids
}
