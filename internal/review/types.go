package review

import "sort"

// Severity decides whether a finding stops the commit.
type Severity string

const (
	SeverityAdvisory Severity = "advisory"
	SeverityBlocking Severity = "blocking"
)

// SeverityFor maps a check's blocking flag to a severity.
func SeverityFor(blocking bool) Severity {
	if blocking {
		return SeverityBlocking
	}
	return SeverityAdvisory
}

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityBlocking:
		return 2
	case SeverityAdvisory:
		return 1
	default:
		return 0
	}
}

// Finding is a single result produced by one check or message rule.
// Path and Line are optional; the zero value means "not applicable".
type Finding struct {
	Check    string   `json:"check"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path,omitempty"`
	Line     int      `json:"line,omitempty"`
	Message  string   `json:"message"`
	Count    int      `json:"count"`
	Samples  []string `json:"samples,omitempty"`
}

// Blocking reports whether the finding rejects the commit.
func (f Finding) Blocking() bool {
	return f.Severity == SeverityBlocking
}

// HasBlocking reports whether any finding in the list is blocking.
func HasBlocking(findings []Finding) bool {
	for _, f := range findings {
		if f.Blocking() {
			return true
		}
	}
	return false
}

// Group collects the findings of one check.
type Group struct {
	Check    string
	Severity Severity
	Findings []Finding
	Files    int
	Total    int
}

// GroupByCheck groups findings by check name, preserving the order in which
// each check first appears. Files within a group are sorted by path.
func GroupByCheck(findings []Finding) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, f := range findings {
		i, ok := index[f.Check]
		if !ok {
			i = len(groups)
			index[f.Check] = i
			groups = append(groups, Group{Check: f.Check})
		}
		g := &groups[i]
		g.Findings = append(g.Findings, f)
		if SeverityRank(f.Severity) > SeverityRank(g.Severity) {
			g.Severity = f.Severity
		}
		g.Total += f.Count
	}
	for i := range groups {
		g := &groups[i]
		sort.SliceStable(g.Findings, func(a, b int) bool {
			return g.Findings[a].Path < g.Findings[b].Path
		})
		seen := make(map[string]bool)
		for _, f := range g.Findings {
			if f.Path != "" && !seen[f.Path] {
				seen[f.Path] = true
				g.Files++
			}
		}
	}
	return groups
}

// Plural returns "s" when n != 1.
func Plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
