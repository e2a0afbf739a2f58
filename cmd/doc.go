// Package cmd implements the command-line interface of the dSav save file editor.
// It provides a hierarchical command structure for inspecting, editing and
// exporting save files.
//
// The package is organized into several subpackages:
//
//   - inspect: Read only commands (dump, get, verify, perf)
//   - edit: Commands that modify a save file (set, dup, rm, rename)
//   - export: Conversion of a save file into a structured snapshot
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See dsav -help for a list of all commands.
package cmd
