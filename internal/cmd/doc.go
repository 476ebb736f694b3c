// Package cmd provides the command-line interface implementation for val1s.
//
// This package contains all the subcommand implementations for the val1s
// CLI tool. It uses the Cobra library for command structure and Fang for
// styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - scan: Inventory and duplicate detection pipeline
//   - check: Media format policy conformance checking
//   - count: Dry-run file counting with the scan skip rules
//   - seed: Test tree generation
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command. The commands are hosts: they own
// flag parsing, report file naming, and CSV output, while the scan and
// conform packages own the engine semantics.
package cmd
