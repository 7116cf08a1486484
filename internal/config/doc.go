// Package config loads and merges the commitgate policy document.
//
// Precedence (highest to lowest):
//  1. Environment variables (COMMITGATE_JIRA_PROJECT,
//     COMMITGATE_PROTECTED_BRANCHES, COMMITGATE_DISABLE)
//  2. Config file (.commitgate.json, .commitgate.yaml or .commitgate.toml at
//     the repository root, or an explicit --config path)
//  3. Built-in defaults
//
// [Load] never fails. A missing, unreadable or malformed file produces a
// warning and the built-in defaults; individual invalid values fall back to
// their default while the rest of the document still applies.
package config
