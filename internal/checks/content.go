package checks

import (
	"regexp"
	"strings"

	"github.com/dshills/commitgate/internal/config"
	"github.com/dshills/commitgate/internal/gitctx"
	"github.com/dshills/commitgate/internal/review"
)

type conflictMarkers struct{}

func (conflictMarkers) Name() string { return config.CheckConflictMarkers }

func (c conflictMarkers) Run(cs gitctx.ChangeSet, cfg config.CheckConfig) ([]review.Finding, error) {
	return scanLines(c.Name(), cs, cfg, "conflict marker", false, isConflictMarker), nil
}

// isConflictMarker matches the separator lines git writes into a file with
// unresolved conflicts.
func isConflictMarker(line string) bool {
	switch {
	case line == "=======":
		return true
	case line == "<<<<<<<", strings.HasPrefix(line, "<<<<<<< "):
		return true
	case line == ">>>>>>>", strings.HasPrefix(line, ">>>>>>> "):
		return true
	case line == "|||||||", strings.HasPrefix(line, "||||||| "):
		return true
	}
	return false
}

// Pattern is a labelled compiled regular expression.
type Pattern struct {
	Label string
	Re    *regexp.Regexp
}

// CompilePatterns compiles the configured expressions, folding case when
// asked. Invalid expressions are returned separately.
func CompilePatterns(exprs []string, foldCase bool) ([]Pattern, []string) {
	var patterns []Pattern
	var invalid []string
	for _, expr := range exprs {
		src := expr
		if foldCase {
			src = "(?i)" + expr
		}
		re, err := regexp.Compile(src)
		if err != nil {
			invalid = append(invalid, expr)
			continue
		}
		patterns = append(patterns, Pattern{Label: expr, Re: re})
	}
	return patterns, invalid
}

// patternCheck flags added lines that match any configured pattern.
type patternCheck struct {
	name     string
	noun     string
	foldCase bool
	samples  bool
}

func (p *patternCheck) Name() string { return p.name }

func (p *patternCheck) Run(cs gitctx.ChangeSet, cfg config.CheckConfig) ([]review.Finding, error) {
	patterns, invalid := CompilePatterns(cfg.Patterns, p.foldCase)
	findings := scanLines(p.name, cs, cfg, p.noun, p.samples, func(line string) bool {
		for _, pat := range patterns {
			if pat.Re.MatchString(line) {
				return true
			}
		}
		return false
	})
	if len(invalid) > 0 {
		return findings, &PatternError{Check: p.name, Invalid: invalid}
	}
	return findings, nil
}

type trailingWhitespace struct{}

func (trailingWhitespace) Name() string { return config.CheckTrailingWhitespace }

func (t trailingWhitespace) Run(cs gitctx.ChangeSet, cfg config.CheckConfig) ([]review.Finding, error) {
	return scanLines(t.Name(), cs, cfg, "trailing whitespace line", false, func(line string) bool {
		return strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t")
	}), nil
}
