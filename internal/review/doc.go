// Package review defines the finding model shared by the pre-commit checks
// and the commit-message rules.
//
// A [Finding] is produced by exactly one check and carries a [Severity] of
// either blocking or advisory. [GroupByCheck] builds the per-check summary
// used by the renderers, and [HasBlocking] decides the pass/fail outcome of a
// run.
package review
