package commitmsg

import (
	"regexp"
	"strings"

	"github.com/dshills/commitgate/internal/config"
)

// TicketFromBranch extracts "<PROJECT>-<digits>" from a branch name such as
// feature/cde-42-login. The project key is matched case-insensitively.
func TicketFromBranch(branch, project string) string {
	if branch == "" || project == "" {
		return ""
	}
	re := regexp.MustCompile(`(?i)(?:^|[^A-Za-z0-9])` + regexp.QuoteMeta(project) + `-(\d+)`)
	m := re.FindStringSubmatch(branch)
	if m == nil {
		return ""
	}
	return project + "-" + m[1]
}

// Prepare prefixes the first message line with the ticket found in branch.
// It leaves the message alone for merge, squash and amend sources, when the
// branch carries no ticket, or when the message already has one.
func Prepare(message, branch, source string, cfg config.CommitMsgConfig) (string, bool) {
	switch source {
	case "merge", "squash", "commit":
		return message, false
	}
	ticket := TicketFromBranch(branch, cfg.JiraProject)
	if ticket == "" {
		return message, false
	}
	header := Header(Clean(message))
	if ticketPattern(cfg.JiraProject).MatchString(header) || IsMerge(header) {
		return message, false
	}

	prefix := ticket + ": "
	lines := strings.Split(message, "\n")
	for i, line := range lines {
		if isScissors(line) {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines[i] = prefix + strings.TrimLeft(line, " \t")
		return strings.Join(lines, "\n"), true
	}
	return prefix + "\n" + message, true
}
