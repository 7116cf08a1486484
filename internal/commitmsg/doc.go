// Package commitmsg parses and validates commit messages.
//
// [Validate] applies the header grammar
//
//	<PROJECT>-<digits>: <type>: <subject>
//
// failing fast on the first structural problem (ticket, type, length) and
// then adding advisory style findings. [Prepare] backs the
// prepare-commit-msg hook by copying the ticket from the branch name into
// the message.
package commitmsg
