package commitmsg

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/commitgate/internal/config"
	"github.com/dshills/commitgate/internal/review"
)

// Rule names carried by message findings.
const (
	RuleTicket         = "jira_ticket"
	RuleType           = "commit_type"
	RuleLength         = "message_length"
	RuleSubjectLength  = "subject_length"
	RuleCapitalization = "capitalization"
	RuleTrailingPeriod = "trailing_period"
	RuleImperative     = "imperative_mood"
)

// Result is the outcome of validating one commit message.
type Result struct {
	Merge    bool
	Parsed   ParsedMessage
	Findings []review.Finding
}

// Passed reports whether the message may be committed.
func (r Result) Passed() bool {
	return !review.HasBlocking(r.Findings)
}

// ExpectedFormat describes the header shape cfg requires.
func ExpectedFormat(cfg config.CommitMsgConfig) string {
	if cfg.RequireType {
		return fmt.Sprintf("%s-<number>: <type>: <subject>  (types: %s)",
			cfg.JiraProject, strings.Join(cfg.AllowedTypes, ", "))
	}
	return cfg.JiraProject + "-<number>: <subject>"
}

// Validate checks raw against cfg. Structural rules stop at the first
// failure; style rules only add advisory findings.
func Validate(raw string, cfg config.CommitMsgConfig) Result {
	header := Header(Clean(raw))
	if IsMerge(header) {
		return Result{Merge: true, Parsed: ParsedMessage{Raw: header, Subject: header}}
	}

	p := Parse(header, cfg.JiraProject, cfg.RequireType)
	res := Result{Parsed: p}

	if p.Ticket == nil {
		res.Findings = append(res.Findings, blocking(RuleTicket,
			fmt.Sprintf("missing Jira ticket: message must start with %q", cfg.JiraProject+"-<number>:")))
		return res
	}

	if cfg.RequireType {
		if p.Type == nil {
			res.Findings = append(res.Findings, blocking(RuleType,
				`missing type: expected "<type>:" after the ticket`))
			return res
		}
		if !slices.Contains(cfg.AllowedTypes, *p.Type) {
			res.Findings = append(res.Findings, blocking(RuleType,
				fmt.Sprintf("invalid type '%s': allowed types are %s", *p.Type, strings.Join(cfg.AllowedTypes, ", "))))
			return res
		}
	}

	n := utf8.RuneCountInString(p.Subject)
	if n < cfg.MinMessageLength {
		res.Findings = append(res.Findings, blocking(RuleLength,
			fmt.Sprintf("message too short: subject needs at least %d characters, got %d", cfg.MinMessageLength, n)))
		return res
	}

	res.Findings = append(res.Findings, styleFindings(p.Subject, cfg)...)
	return res
}

func styleFindings(subject string, cfg config.CommitMsgConfig) []review.Finding {
	var out []review.Finding
	if n := utf8.RuneCountInString(subject); n > cfg.MaxSubjectLength {
		out = append(out, advisory(RuleSubjectLength,
			fmt.Sprintf("subject is %d characters; keep it within %d", n, cfg.MaxSubjectLength)))
	}
	if r, _ := utf8.DecodeRuneInString(subject); unicode.IsLetter(r) && !unicode.IsUpper(r) {
		out = append(out, advisory(RuleCapitalization, "subject should start with a capital letter"))
	}
	if strings.HasSuffix(subject, ".") {
		out = append(out, advisory(RuleTrailingPeriod, "subject should not end with a period"))
	}
	if word, ok := nonImperative(subject); ok {
		out = append(out, advisory(RuleImperative,
			fmt.Sprintf("use the imperative mood: %q reads like a description, not a command", word)))
	}
	return out
}

func blocking(rule, msg string) review.Finding {
	return review.Finding{Check: rule, Severity: review.SeverityBlocking, Message: msg, Count: 1}
}

func advisory(rule, msg string) review.Finding {
	return review.Finding{Check: rule, Severity: review.SeverityAdvisory, Message: msg, Count: 1}
}
