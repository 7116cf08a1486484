package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dshills/commitgate/internal/pipeline"
	"github.com/dshills/commitgate/internal/review"
)

var (
	colorGreen  = lipgloss.Color("#00FF00")
	colorYellow = lipgloss.Color("#FFFF00")
	colorRed    = lipgloss.Color("#FF0000")
	colorGray   = lipgloss.Color("8")
)

// TextWriter outputs a human-readable report with one summary line per
// check, file detail under each failing check and a final banner.
type TextWriter struct {
	NoColor bool
}

type textStyles struct {
	pass, advisory, blocking, dim, bold lipgloss.Style
}

func (t *TextWriter) styles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	if t.NoColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return textStyles{
		pass:     r.NewStyle().Foreground(colorGreen),
		advisory: r.NewStyle().Foreground(colorYellow),
		blocking: r.NewStyle().Foreground(colorRed).Bold(true),
		dim:      r.NewStyle().Foreground(colorGray),
		bold:     r.NewStyle().Bold(true),
	}
}

func (t *TextWriter) Write(w io.Writer, res pipeline.RunResult) error {
	ew := &errWriter{w: w}
	st := t.styles(w)
	rule := st.dim.Render(strings.Repeat("─", 60))

	header := "commitgate " + string(res.Pipeline)
	if res.Branch != "" {
		header += fmt.Sprintf(" (branch: %s)", res.Branch)
	}
	ew.println(st.bold.Render(header))
	ew.println(rule)

	details := groupsByCheck(res.Findings)
	for _, c := range res.Checks {
		ew.printf("%s %-20s %s\n", st.icon(c.Status), c.Name, c.Summary)
		for _, f := range details[c.Name] {
			if f.Path == "" {
				continue
			}
			loc := f.Path
			if f.Line > 0 {
				loc = fmt.Sprintf("%s:%d", f.Path, f.Line)
			}
			ew.printf("    %s  %s\n", loc, f.Message)
			for _, s := range f.Samples {
				ew.printf("      %s\n", st.dim.Render("> "+s))
			}
		}
	}

	if res.Parsed != nil && !res.HasBlocking && !res.Merge {
		ew.println("")
		if res.Parsed.Ticket != nil {
			ew.printf("  Ticket:  %s\n", *res.Parsed.Ticket)
		}
		if res.Parsed.Type != nil {
			ew.printf("  Type:    %s\n", *res.Parsed.Type)
		}
		ew.printf("  Subject: %s\n", res.Parsed.Subject)
	}
	if res.Expected != "" {
		ew.printf("\nExpected format: %s\n", res.Expected)
	}

	ew.println(rule)
	ew.println(st.banner(res))
	return ew.err
}

func (st textStyles) icon(s pipeline.Status) string {
	switch s {
	case pipeline.StatusBlocking:
		return st.blocking.Render("✖")
	case pipeline.StatusAdvisory:
		return st.advisory.Render("⚠")
	default:
		return st.pass.Render("✔")
	}
}

func (st textStyles) banner(res pipeline.RunResult) string {
	var blocking, advisory int
	for _, f := range res.Findings {
		if f.Blocking() {
			blocking++
		} else {
			advisory++
		}
	}
	if res.HasBlocking {
		return st.blocking.Render(fmt.Sprintf("✖ BLOCKED: commit rejected (%d blocking, %d advisory)", blocking, advisory))
	}
	if advisory > 0 {
		return st.advisory.Render(fmt.Sprintf("✔ PASSED with %d warning%s", advisory, review.Plural(advisory)))
	}
	return st.pass.Render("✔ PASSED")
}

func groupsByCheck(findings []review.Finding) map[string][]review.Finding {
	m := make(map[string][]review.Finding)
	for _, g := range review.GroupByCheck(findings) {
		m[g.Check] = g.Findings
	}
	return m
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
