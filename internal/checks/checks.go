package checks

import (
	"fmt"
	"strings"

	"github.com/dshills/commitgate/internal/config"
	"github.com/dshills/commitgate/internal/gitctx"
	"github.com/dshills/commitgate/internal/review"
)

// Check is one self-contained pre-commit rule. Run reads only its inputs
// and returns at most one finding per file.
type Check interface {
	Name() string
	Run(cs gitctx.ChangeSet, cfg config.CheckConfig) ([]review.Finding, error)
}

// All returns every check in pipeline order.
func All() []Check {
	return []Check{
		conflictMarkers{},
		&patternCheck{name: config.CheckDebugStatements, noun: "debug statement"},
		&patternCheck{name: config.CheckTodoComments, noun: "new TODO/FIXME comment"},
		largeFiles{},
		&patternCheck{name: config.CheckSensitiveData, noun: "potential secret", foldCase: true, samples: true},
		emptyFiles{},
		trailingWhitespace{},
	}
}

// Lookup returns the registered check with the given name.
func Lookup(name string) (Check, bool) {
	for _, c := range All() {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Summary renders the stable one-line result for a check whose findings
// total n occurrences across files files.
func Summary(name string, n, files int) string {
	if n == 0 {
		return "no issues"
	}
	switch name {
	case config.CheckConflictMarkers:
		return fmt.Sprintf("Found %d conflict marker(s) in %d file(s)", n, files)
	case config.CheckDebugStatements:
		return fmt.Sprintf("Found %d debug statement(s) in %d file(s)", n, files)
	case config.CheckTodoComments:
		return fmt.Sprintf("Found %d new TODO/FIXME comment(s) in %d file(s)", n, files)
	case config.CheckLargeFiles:
		return fmt.Sprintf("Found %d file(s) over the size limit", files)
	case config.CheckSensitiveData:
		return fmt.Sprintf("Found %d potential secret(s) in %d file(s)", n, files)
	case config.CheckEmptyFiles:
		return fmt.Sprintf("Found %d empty file(s)", files)
	case config.CheckTrailingWhitespace:
		return fmt.Sprintf("Found %d line(s) with trailing whitespace in %d file(s)", n, files)
	default:
		return fmt.Sprintf("Found %d issue(s) in %d file(s)", n, files)
	}
}

// PatternError reports configured patterns that failed to compile. The
// check still runs with the remaining patterns.
type PatternError struct {
	Check   string
	Invalid []string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s: ignoring invalid pattern%s: %s",
		e.Check, review.Plural(len(e.Invalid)), strings.Join(e.Invalid, "; "))
}

// lineMatches tracks the matching lines of a single file.
type lineMatches struct {
	first   int
	count   int
	samples []string
}

func (m *lineMatches) add(line gitctx.AddedLine, keep bool) {
	if m.count == 0 {
		m.first = line.Number
	}
	m.count++
	if keep && len(m.samples) < maxSamples {
		m.samples = append(m.samples, sample(line.Text))
	}
}

func (m *lineMatches) finding(check string, f gitctx.FileChange, cfg config.CheckConfig, noun string) review.Finding {
	return review.Finding{
		Check:    check,
		Severity: review.SeverityFor(cfg.Blocking),
		Path:     f.Path,
		Line:     m.first,
		Message:  fmt.Sprintf("%d %s%s (first on line %d)", m.count, noun, review.Plural(m.count), m.first),
		Count:    m.count,
		Samples:  m.samples,
	}
}

const (
	maxSamples   = 5
	maxSampleLen = 120
)

func sample(text string) string {
	s := strings.TrimSpace(text)
	if len(s) > maxSampleLen {
		s = s[:maxSampleLen] + "..."
	}
	return s
}

// scanLines applies match to each added line of every scannable file.
func scanLines(check string, cs gitctx.ChangeSet, cfg config.CheckConfig, noun string, keep bool, match func(string) bool) []review.Finding {
	var findings []review.Finding
	for _, f := range cs.Files {
		if !f.Scannable() {
			continue
		}
		var m lineMatches
		for _, line := range f.AddedLines {
			if match(strings.TrimRight(line.Text, "\r")) {
				m.add(line, keep)
			}
		}
		if m.count > 0 {
			findings = append(findings, m.finding(check, f, cfg, noun))
		}
	}
	return findings
}
