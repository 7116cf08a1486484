// Package output renders pipeline results.
//
// Two formats are supported:
//   - text — grouped terminal report with pass/advisory/blocking icons and a
//     final PASSED/BLOCKED banner (default)
//   - json — the full [pipeline.RunResult]
//
// Use [GetWriter] to obtain a [Writer] for a given format string. Colour is
// chosen by lipgloss from the destination; [Options.NoColor] forces plain
// text.
package output
