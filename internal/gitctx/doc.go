// Package gitctx reads the pending commit from a git repository.
//
// [Repo] implements [Provider]: [Repo.StagedChanges] shells out to
// `git diff --cached` for the staged file list and zero-context patch, and
// `git cat-file --batch-check` for staged blob sizes. [Repo.CurrentBranch]
// reads HEAD through go-git so it works on unborn branches.
package gitctx
