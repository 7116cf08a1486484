// Package pipeline runs the pre-commit and commit-msg pipelines and builds
// the [RunResult] that the CLI renders.
//
// The two pipelines differ. [RunPreCommit] aggregates: every
// enabled check runs and blocking is decided afterwards, with the
// protected-branch gate as the only short circuit. [RunCommitMsg] fails
// fast on the first structural problem in the message.
package pipeline
