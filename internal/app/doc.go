// Package app wires the component catalog together: configuration, logging,
// the built-in modules and the query and creation helpers used by the CLI.
// It is decoupled from any specific entrypoint.
package app
