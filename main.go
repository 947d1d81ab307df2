// Package main is the entry point for the envup CLI application.
//
// This file bootstraps the application by invoking the command execution
// logic defined in the cmd package. The envup tool wraps a package manager
// CLI to snapshot, scan, upgrade, and restore a managed environment.
package main

import "github.com/ajxudir/envup/cmd"

// main initializes and runs the envup CLI application.
//
// It delegates all command parsing and execution to the cmd package,
// which handles subcommands like snapshot, outdated, update, and restore.
func main() {
	cmd.Execute()
}
