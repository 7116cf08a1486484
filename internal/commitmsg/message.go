package commitmsg

import (
	"regexp"
	"strings"
)

// ParsedMessage holds the structured fields of a commit header. Ticket and
// Type are nil when absent from the message.
type ParsedMessage struct {
	Ticket  *string `json:"ticket"`
	Type    *string `json:"type"`
	Subject string  `json:"subject"`
	Raw     string  `json:"raw"`
}

var mergeRe = regexp.MustCompile(`^Merge (branch|branches|pull request|remote-tracking branch|tag|commit) `)

// IsMerge reports whether header is one of git's automated merge subjects.
func IsMerge(header string) bool {
	return mergeRe.MatchString(header)
}

// Clean drops comment lines and everything below a scissors line, the same
// way git does with the default cleanup mode.
func Clean(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		if isScissors(line) {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t\r"))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// Header returns the first non-empty line of a cleaned message.
func Header(msg string) string {
	for _, line := range strings.Split(msg, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}

func isScissors(line string) bool {
	return strings.HasPrefix(line, "# ") && strings.Contains(line, " >8 ")
}

func ticketPattern(project string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(project) + `-\d+:`)
}

var typeRe = regexp.MustCompile(`^\s*([^\s:]+):`)

// Parse splits header into ticket, type and subject without validating
// them. A missing ticket leaves the whole header as the subject.
func Parse(header, project string, withType bool) ParsedMessage {
	p := ParsedMessage{Raw: header, Subject: strings.TrimSpace(header)}
	loc := ticketPattern(project).FindStringIndex(header)
	if loc == nil {
		return p
	}
	ticket := header[:loc[1]-1]
	p.Ticket = &ticket
	rest := header[loc[1]:]
	if withType {
		if m := typeRe.FindStringSubmatchIndex(rest); m != nil {
			typ := rest[m[2]:m[3]]
			p.Type = &typ
			rest = rest[m[1]:]
		}
	}
	p.Subject = strings.TrimSpace(rest)
	return p
}
