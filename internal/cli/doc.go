// Package cli wires together the Cobra command tree for the commitgate binary.
//
// It defines the root command and the hook entry points (pre-commit,
// commit-msg, prepare-commit-msg) plus the hooks, config and version
// subcommands. Handlers load configuration, run a pipeline, render the
// result and set a deterministic exit code that git uses to accept or abort
// the commit.
package cli
