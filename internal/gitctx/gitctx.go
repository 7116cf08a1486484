package gitctx

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// FileStatus is the index status of a staged file.
type FileStatus string

const (
	StatusAdded    FileStatus = "added"
	StatusModified FileStatus = "modified"
	StatusDeleted  FileStatus = "deleted"
	StatusRenamed  FileStatus = "renamed"
)

// AddedLine is one line added by the staged diff, with its line number in
// the new version of the file.
type AddedLine struct {
	Number int
	Text   string
}

// FileChange describes one staged file. SizeBytes is the staged blob size,
// or -1 when git could not report it (submodules, missing objects).
type FileChange struct {
	Path       string
	OldPath    string
	Status     FileStatus
	SizeBytes  int64
	AddedLines []AddedLine
	Binary     bool
}

// Scannable reports whether text-pattern checks apply to the file.
func (f FileChange) Scannable() bool {
	return f.Status != StatusDeleted && !f.Binary
}

// ChangeSet is the ordered list of staged files for the pending commit.
type ChangeSet struct {
	Files []FileChange
}

// Provider supplies repository state to the pre-commit pipeline.
type Provider interface {
	StagedChanges() (ChangeSet, error)
	CurrentBranch() (string, error)
}

// Repo is a Provider backed by a local git repository.
type Repo struct {
	Root string
	repo *git.Repository
}

// Open locates the repository containing dir.
func Open(dir string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}
	root := dir
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &Repo{Root: root, repo: repo}, nil
}

// CurrentBranch returns the short name of the branch HEAD points at. It
// works on unborn branches and returns "" when HEAD is detached.
func (r *Repo) CurrentBranch() (string, error) {
	ref, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}
	if ref.Type() != plumbing.SymbolicReference {
		return "", nil
	}
	return ref.Target().Short(), nil
}

// StagedChanges returns the files in the index that differ from HEAD.
func (r *Repo) StagedChanges() (ChangeSet, error) {
	nameStatus, err := r.git(nil, "diff", "--cached", "--name-status", "-z", "-M", "--no-ext-diff")
	if err != nil {
		return ChangeSet{}, fmt.Errorf("git diff --cached --name-status: %w", err)
	}
	files, err := parseNameStatus(nameStatus)
	if err != nil {
		return ChangeSet{}, err
	}
	if len(files) == 0 {
		return ChangeSet{}, nil
	}

	patch, err := r.git(nil, "diff", "--cached", "-U0", "-M", "--no-color", "--no-ext-diff",
		"--src-prefix=a/", "--dst-prefix=b/")
	if err != nil {
		return ChangeSet{}, fmt.Errorf("git diff --cached: %w", err)
	}
	sections := parsePatch(patch)

	var paths []string
	for _, f := range files {
		if f.Status != StatusDeleted {
			paths = append(paths, f.Path)
		}
	}
	sizes, err := r.stagedSizes(paths)
	if err != nil {
		return ChangeSet{}, err
	}

	for i := range files {
		f := &files[i]
		if s, ok := sections[f.Path]; ok {
			f.AddedLines = s.added
			f.Binary = s.binary
		}
		if n, ok := sizes[f.Path]; ok {
			f.SizeBytes = n
		} else if f.Status != StatusDeleted {
			f.SizeBytes = -1
		}
	}
	return ChangeSet{Files: files}, nil
}

// stagedSizes returns the size of each path's blob in the index.
func (r *Repo) stagedSizes(paths []string) (map[string]int64, error) {
	sizes := make(map[string]int64, len(paths))
	if len(paths) == 0 {
		return sizes, nil
	}
	var in bytes.Buffer
	for _, p := range paths {
		in.WriteString(":" + p + "\n")
	}
	out, err := r.git(&in, "cat-file", "--batch-check=%(objectsize)")
	if err != nil {
		return nil, fmt.Errorf("git cat-file --batch-check: %w", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for i, p := range paths {
		if i >= len(lines) {
			break
		}
		if n, err := strconv.ParseInt(strings.TrimSpace(lines[i]), 10, 64); err == nil {
			sizes[p] = n
		}
	}
	return sizes, nil
}

func (r *Repo) git(stdin *bytes.Buffer, args ...string) (string, error) {
	args = append([]string{
		"-c", "core.quotePath=false",
		"-c", "diff.noprefix=false",
		"-c", "diff.mnemonicPrefix=false",
	}, args...)
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Root
	if stdin != nil {
		cmd.Stdin = stdin
	}
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), fmt.Errorf("%s: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// parseNameStatus parses `git diff --name-status -z` output.
func parseNameStatus(out string) ([]FileChange, error) {
	fields := strings.Split(strings.TrimSuffix(out, "\x00"), "\x00")
	var files []FileChange
	for i := 0; i < len(fields); i++ {
		code := fields[i]
		if code == "" {
			continue
		}
		next := func() (string, error) {
			i++
			if i >= len(fields) {
				return "", fmt.Errorf("malformed name-status output near %q", code)
			}
			return fields[i], nil
		}
		switch code[0] {
		case 'R', 'C':
			oldPath, err := next()
			if err != nil {
				return nil, err
			}
			newPath, err := next()
			if err != nil {
				return nil, err
			}
			status := StatusRenamed
			if code[0] == 'C' {
				status = StatusAdded
			}
			files = append(files, FileChange{Path: newPath, OldPath: oldPath, Status: status})
		default:
			path, err := next()
			if err != nil {
				return nil, err
			}
			files = append(files, FileChange{Path: path, Status: statusFromCode(code[0])})
		}
	}
	return files, nil
}

func statusFromCode(c byte) FileStatus {
	switch c {
	case 'A':
		return StatusAdded
	case 'D':
		return StatusDeleted
	default:
		return StatusModified
	}
}

type patchSection struct {
	added  []AddedLine
	binary bool
}

// parsePatch extracts added lines and binary markers per file from a
// zero-context unified diff.
func parsePatch(diff string) map[string]patchSection {
	result := make(map[string]patchSection)
	for _, section := range splitDiffSections(diff) {
		path := extractPathFromSection(section)
		if path == "" {
			continue
		}
		var ps patchSection
		lineNo := 0
		inHunk := false
		for _, line := range strings.Split(section, "\n") {
			switch {
			case strings.HasPrefix(line, "@@"):
				lineNo = hunkStart(line)
				inHunk = true
			case !inHunk:
				if strings.HasPrefix(line, "Binary files ") || line == "GIT binary patch" {
					ps.binary = true
				}
			case strings.HasPrefix(line, "+"):
				ps.added = append(ps.added, AddedLine{Number: lineNo, Text: line[1:]})
				lineNo++
			case strings.HasPrefix(line, " "):
				lineNo++
			}
		}
		result[path] = ps
	}
	return result
}

// hunkStart returns the new-file start line of a hunk header
// "@@ -a,b +c,d @@".
func hunkStart(header string) int {
	plus := strings.Index(header, " +")
	if plus == -1 {
		return 0
	}
	rest := header[plus+2:]
	if end := strings.IndexAny(rest, ", "); end != -1 {
		rest = rest[:end]
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0
	}
	return n
}

func splitDiffSections(diff string) []string {
	var sections []string
	lines := strings.Split(diff, "\n")
	var current strings.Builder
	for _, line := range lines {
		if strings.HasPrefix(line, "diff --git") && current.Len() > 0 {
			sections = append(sections, current.String())
			current.Reset()
		}
		current.WriteString(line)
		current.WriteString("\n")
	}
	if current.Len() > 0 {
		sections = append(sections, current.String())
	}
	return sections
}

// extractPathFromSection returns the post-image path of a diff section.
func extractPathFromSection(section string) string {
	var header string
	for _, line := range strings.Split(section, "\n") {
		switch {
		case strings.HasPrefix(line, "+++ "):
			if p := unquotePath(strings.TrimPrefix(line, "+++ ")); strings.HasPrefix(p, "b/") {
				return strings.TrimPrefix(p, "b/")
			}
		case strings.HasPrefix(line, "rename to "):
			return unquotePath(strings.TrimPrefix(line, "rename to "))
		case strings.HasPrefix(line, "diff --git "):
			header = strings.TrimPrefix(line, "diff --git ")
		case strings.HasPrefix(line, "@@"):
			return pathFromHeader(header)
		}
	}
	return pathFromHeader(header)
}

// unquotePath undoes git's path decoration in patch headers: a trailing
// tab after names containing spaces, and C-style quoting of names with
// control characters, quotes or backslashes.
func unquotePath(p string) string {
	p = strings.TrimSuffix(p, "\t")
	if strings.HasPrefix(p, `"`) {
		if u, err := strconv.Unquote(p); err == nil {
			return u
		}
	}
	return p
}

// pathFromHeader recovers P from "a/P b/P", which is unambiguous when both
// sides name the same file. Either side may be C-quoted.
func pathFromHeader(header string) string {
	if strings.HasPrefix(header, `"`) {
		q, err := strconv.QuotedPrefix(header)
		if err != nil {
			return ""
		}
		a := unquotePath(q)
		b := unquotePath(strings.TrimPrefix(header[len(q):], " "))
		if !strings.HasPrefix(a, "a/") || b != "b/"+a[2:] {
			return ""
		}
		return a[2:]
	}
	if len(header) < 7 || !strings.HasPrefix(header, "a/") {
		return ""
	}
	n := (len(header) - 5) / 2
	if 2+n > len(header) {
		return ""
	}
	p := header[2 : 2+n]
	if header[2+n:] != " b/"+p {
		return ""
	}
	return p
}
