// Package errors provides unified error types and display for envup.
//
// This package consolidates all error handling into a single location:
//   - ExitError: Command exit with specific exit code
//   - PartialSuccessError: Some upgrades succeeded, some failed
//   - ToolInvocationError: Package manager command failed, timed out, or is missing
//   - ParseError: Malformed structured output from the package manager
//   - PersistenceError: Manifest or journal read/write failure
//   - ValidationError: Configuration or preflight validation failures
//
// Error Display:
//
// The package provides consistent error formatting with actionable hints:
//
//	errors.PrintErrorWithHints(os.Stderr, errs, verbose)
//
// Error Checking:
//
// Use the Is* functions to check error types:
//
//	if exitErr, ok := errors.IsExitError(err); ok {
//	    os.Exit(exitErr.Code)
//	}
//
// Exit Codes:
//
// Standard exit codes are defined for scripting integration:
//   - ExitSuccess (0): All operations completed successfully
//   - ExitPartialFailure (1): Some upgrades failed
//   - ExitFailure (2): All operations failed or critical error
//   - ExitConfigError (3): Configuration or validation error
package errors
