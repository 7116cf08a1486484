package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/dshills/commitgate/internal/checks"
	"github.com/dshills/commitgate/internal/commitmsg"
	"github.com/dshills/commitgate/internal/config"
	"github.com/dshills/commitgate/internal/gitctx"
	"github.com/dshills/commitgate/internal/review"
)

// Kind names a pipeline.
type Kind string

const (
	PreCommit Kind = "pre-commit"
	CommitMsg Kind = "commit-msg"
)

// Status is the outcome of one check or rule.
type Status string

const (
	StatusPass     Status = "pass"
	StatusAdvisory Status = "advisory"
	StatusBlocking Status = "blocking"
)

// CheckProtectedBranch is the name reported by the branch gate.
const CheckProtectedBranch = "protected_branch"

// CheckStatus summarizes one check for the report.
type CheckStatus struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Summary string `json:"summary"`
	Files   int    `json:"files,omitempty"`
	Total   int    `json:"total,omitempty"`
}

// RunResult is everything the renderer needs for one invocation.
type RunResult struct {
	Pipeline    Kind                     `json:"pipeline"`
	Branch      string                   `json:"branch,omitempty"`
	Checks      []CheckStatus            `json:"checks"`
	Findings    []review.Finding         `json:"findings"`
	HasBlocking bool                     `json:"has_blocking"`
	Merge       bool                     `json:"merge,omitempty"`
	Parsed      *commitmsg.ParsedMessage `json:"parsed,omitempty"`
	Expected    string                   `json:"expected_format,omitempty"`
}

// RunPreCommit runs the branch gate and then every enabled check against
// the staged changes. Provider failures are returned as errors; check
// failures become advisory findings.
func RunPreCommit(p gitctx.Provider, cfg config.Config, warn io.Writer) (RunResult, error) {
	return runPreCommit(p, cfg, warn, checks.All())
}

func runPreCommit(p gitctx.Provider, cfg config.Config, warn io.Writer, all []checks.Check) (RunResult, error) {
	if warn == nil {
		warn = io.Discard
	}
	res := RunResult{Pipeline: PreCommit, Checks: []CheckStatus{}, Findings: []review.Finding{}}

	branch, err := p.CurrentBranch()
	if err != nil {
		return RunResult{}, fmt.Errorf("reading current branch: %w", err)
	}
	res.Branch = branch

	if cfg.PreCommit.IsProtected(branch) {
		f := review.Finding{
			Check:    CheckProtectedBranch,
			Severity: review.SeverityBlocking,
			Message:  fmt.Sprintf("direct commits to %q are not allowed; create a feature branch", branch),
			Count:    1,
		}
		res.Findings = append(res.Findings, f)
		res.Checks = append(res.Checks, CheckStatus{
			Name:    CheckProtectedBranch,
			Status:  StatusBlocking,
			Summary: fmt.Sprintf("branch %q is protected", branch),
		})
		res.HasBlocking = true
		return res, nil
	}

	cs, err := p.StagedChanges()
	if err != nil {
		return RunResult{}, fmt.Errorf("reading staged changes: %w", err)
	}

	for _, c := range all {
		cc := cfg.PreCommit.Check(c.Name())
		if !cc.Enabled {
			continue
		}
		findings, err := runCheck(c, cs, cc)
		failed := false
		if err != nil {
			var perr *checks.PatternError
			if errors.As(err, &perr) {
				fmt.Fprintf(warn, "Warning: %v\n", err)
			} else {
				failed = true
				findings = append(findings, review.Finding{
					Check:    c.Name(),
					Severity: review.SeverityAdvisory,
					Message:  fmt.Sprintf("check failed to run: %v", err),
					Count:    1,
				})
			}
		}
		res.Findings = append(res.Findings, findings...)
		res.Checks = append(res.Checks, status(c.Name(), findings, failed))
	}
	res.HasBlocking = review.HasBlocking(res.Findings)
	return res, nil
}

// runCheck isolates a check so a panic is reported like any other error.
func runCheck(c checks.Check, cs gitctx.ChangeSet, cc config.CheckConfig) (findings []review.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Run(cs, cc)
}

func status(name string, findings []review.Finding, failed bool) CheckStatus {
	st := CheckStatus{Name: name, Status: StatusPass, Summary: checks.Summary(name, 0, 0)}
	if len(findings) == 0 {
		return st
	}
	g := review.GroupByCheck(findings)[0]
	st.Status = statusFor(g.Severity)
	st.Files = g.Files
	st.Total = g.Total
	if failed {
		st.Summary = "check failed to run"
	} else {
		st.Summary = checks.Summary(name, g.Total, g.Files)
	}
	return st
}

func statusFor(s review.Severity) Status {
	if s == review.SeverityBlocking {
		return StatusBlocking
	}
	return StatusAdvisory
}

// RunCommitMsg validates a raw commit message.
func RunCommitMsg(raw string, cfg config.Config) RunResult {
	v := commitmsg.Validate(raw, cfg.CommitMsg)
	res := RunResult{
		Pipeline: CommitMsg,
		Checks:   []CheckStatus{},
		Findings: []review.Finding{},
		Merge:    v.Merge,
	}
	parsed := v.Parsed
	res.Parsed = &parsed
	res.Findings = append(res.Findings, v.Findings...)
	res.HasBlocking = review.HasBlocking(res.Findings)

	switch {
	case v.Merge:
		res.Checks = append(res.Checks, CheckStatus{
			Name: "merge_commit", Status: StatusPass, Summary: "merge commit, validation skipped",
		})
	case len(v.Findings) == 0:
		res.Checks = append(res.Checks, CheckStatus{
			Name: "commit_message", Status: StatusPass, Summary: "message format is valid",
		})
	default:
		for _, f := range v.Findings {
			res.Checks = append(res.Checks, CheckStatus{
				Name: f.Check, Status: statusFor(f.Severity), Summary: f.Message,
			})
		}
	}
	if res.HasBlocking {
		res.Expected = commitmsg.ExpectedFormat(cfg.CommitMsg)
	}
	return res
}
