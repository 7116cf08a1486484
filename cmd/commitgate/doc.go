// Commitgate is a local commit-quality gate driven by git hooks.
//
// It checks staged changes for conflict markers, debug statements, new
// TODOs, large or empty files, likely secrets and trailing whitespace, and
// validates commit messages against a ticket/type grammar. Blocking
// findings exit non-zero so git aborts the commit.
//
// Usage:
//
//	commitgate hooks install             # wire up pre-commit, prepare-commit-msg and commit-msg
//	commitgate pre-commit                # check the staged changes
//	commitgate commit-msg .git/COMMIT_EDITMSG
//	commitgate config init               # write .commitgate.json with the defaults
//	commitgate config show               # print the effective configuration
package main
