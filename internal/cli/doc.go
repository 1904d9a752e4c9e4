// Package cli is responsible for parsing command-line arguments, loading
// configuration, and handling process-level concerns like exit codes. It
// translates flags, environment and config files into app.Config and maps
// catalog queries onto subcommands.
package cli
