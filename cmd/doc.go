// Package cmd implements the command-line interface of encbench. Running the
// binary without a subcommand measures all formats with the default
// configuration (1,000,000 products, decoding enabled).
//
// The package is organized into several subpackages:
//
//   - perf: Commands for measuring formats (run, profile, formats)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See encbench -help for a list of all commands.
package cmd
