// Package updater runs environment update cycles for envup.
//
// A cycle moves through four phases: snapshot the installed state to a
// restorable manifest, scan for outdated packages, upgrade each candidate,
// and roll the environment back from the snapshot when upgrades failed and
// auto-rollback is enabled. The Manager owns one configuration and one audit
// sink; every phase goes through it so nothing in this package touches
// global state.
package updater

import (
	stderrors "errors"
	"time"

	"github.com/ajxudir/envup/pkg/audit"
	"github.com/ajxudir/envup/pkg/cmdexec"
	"github.com/ajxudir/envup/pkg/config"
	"github.com/ajxudir/envup/pkg/errors"
	"github.com/ajxudir/envup/pkg/scan"
)

// nowFunc returns the current time. It is a variable so tests can pin
// snapshot file names to a fixed clock.
var nowFunc = time.Now

// Manager runs update cycles against one configured environment.
//
// Construct it with New; the zero value is not usable.
type Manager struct {
	cfg      *config.Config
	sink     audit.Sink
	phase    Phase
	progress func(done, total int, name string)
}

// New creates a Manager for the given configuration.
//
// Parameters:
//   - cfg: The environment configuration (must be non-nil and validated)
//   - sink: The audit sink phase and command events are written to.
//     A nil sink disables auditing.
//
// Returns:
//   - *Manager: the configured manager
func New(cfg *config.Config, sink audit.Sink) *Manager {
	if sink == nil {
		sink = audit.NewNop()
	}
	return &Manager{
		cfg:   cfg,
		sink:  sink,
		phase: PhaseIdle,
	}
}

// Phase returns the phase the manager is currently in.
//
// Returns:
//   - Phase: the current cycle phase
func (m *Manager) Phase() Phase {
	return m.phase
}

// SetProgress registers a callback invoked after each upgrade attempt.
//
// The callback receives the number of attempts completed so far, the total
// candidate count, and the package just attempted. A nil callback disables
// progress reporting.
//
// Parameters:
//   - fn: The progress callback, may be nil
func (m *Manager) SetProgress(fn func(done, total int, name string)) {
	m.progress = fn
}

// Config returns the configuration the manager runs with.
//
// Returns:
//   - *config.Config: the manager's configuration
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// reportKeys returns the scan key mapping from the configuration.
func (m *Manager) reportKeys() scan.Keys {
	name, current, latest := m.cfg.ReportKeys()
	return scan.Keys{Name: name, Current: current, Latest: latest}
}

// timeoutSeconds returns the per-invocation timeout in whole seconds,
// zero when timeouts are disabled.
func (m *Manager) timeoutSeconds() int {
	return int(m.cfg.CommandTimeout() / time.Second)
}

// run executes one command template through the shell executor and mirrors
// the invocation and its outcome to the audit sink.
//
// Parameters:
//   - commands: The command template to run
//   - replacements: Placeholder values substituted into the template
//
// Returns:
//   - []byte: combined stdout of the executed commands
//   - error: *errors.ToolInvocationError if the invocation failed
func (m *Manager) run(commands string, replacements map[string]string) ([]byte, error) {
	audit.CommandExec(m.sink, commands, m.cfg.WorkingDir)

	output, err := cmdexec.Execute(commands, nil, m.cfg.WorkingDir, m.timeoutSeconds(), replacements)
	if err != nil {
		var toolErr *errors.ToolInvocationError
		if stderrors.As(err, &toolErr) {
			audit.CommandResult(m.sink, commands, toolErr.ExitCode, toolErr.Stderr)
		} else {
			audit.CommandResult(m.sink, commands, -1, err.Error())
		}
		return nil, err
	}

	audit.CommandResult(m.sink, commands, 0, string(output))
	return output, nil
}
