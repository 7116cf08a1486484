package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Check names, in pipeline order.
const (
	CheckConflictMarkers    = "conflict_markers"
	CheckDebugStatements    = "debug_statements"
	CheckTodoComments       = "todo_comments"
	CheckLargeFiles         = "large_files"
	CheckSensitiveData      = "sensitive_data"
	CheckEmptyFiles         = "empty_files"
	CheckTrailingWhitespace = "trailing_whitespace"
)

// CheckNames lists every known check in execution order.
var CheckNames = []string{
	CheckConflictMarkers,
	CheckDebugStatements,
	CheckTodoComments,
	CheckLargeFiles,
	CheckSensitiveData,
	CheckEmptyFiles,
	CheckTrailingWhitespace,
}

// DefaultAllowedTypes is the canonical commit type set.
var DefaultAllowedTypes = []string{
	"feat", "fix", "hotfix", "docs", "style", "refactor", "perf",
	"test", "chore", "build", "ci", "revert", "security",
}

// DefaultMaxSizeBytes is the large_files threshold when none is configured.
const DefaultMaxSizeBytes int64 = 1 << 20 // 1MB

// Config is the commitgate policy document.
type Config struct {
	CommitMsg CommitMsgConfig `json:"commit-msg" yaml:"commit-msg" toml:"commit-msg"`
	PreCommit PreCommitConfig `json:"pre-commit" yaml:"pre-commit" toml:"pre-commit"`
}

// CommitMsgConfig controls commit message validation.
type CommitMsgConfig struct {
	JiraProject      string   `json:"jira_project" yaml:"jira_project" toml:"jira_project"`
	MinMessageLength int      `json:"min_message_length" yaml:"min_message_length" toml:"min_message_length"`
	MaxSubjectLength int      `json:"max_subject_length" yaml:"max_subject_length" toml:"max_subject_length"`
	RequireType      bool     `json:"require_type" yaml:"require_type" toml:"require_type"`
	AllowedTypes     []string `json:"allowed_types" yaml:"allowed_types" toml:"allowed_types"`
}

// PreCommitConfig controls the pre-commit pipeline.
type PreCommitConfig struct {
	ProtectedBranches []string               `json:"protected_branches" yaml:"protected_branches" toml:"protected_branches"`
	Checks            map[string]CheckConfig `json:"checks" yaml:"checks" toml:"checks"`
}

// CheckConfig is the per-check policy.
type CheckConfig struct {
	Enabled      bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Blocking     bool     `json:"blocking" yaml:"blocking" toml:"blocking"`
	Patterns     []string `json:"patterns,omitempty" yaml:"patterns,omitempty" toml:"patterns,omitempty"`
	MaxSizeBytes int64    `json:"max_size_bytes,omitempty" yaml:"max_size_bytes,omitempty" toml:"max_size_bytes,omitempty"`
}

// Check returns the configuration for the named check. Unknown names yield
// a disabled config.
func (p PreCommitConfig) Check(name string) CheckConfig {
	if c, ok := p.Checks[name]; ok {
		return c
	}
	return CheckConfig{}
}

// IsProtected reports whether branch is listed in protected_branches.
func (p PreCommitConfig) IsProtected(branch string) bool {
	if branch == "" {
		return false
	}
	for _, b := range p.ProtectedBranches {
		if b == branch {
			return true
		}
	}
	return false
}

// Default returns a Config with all defaults applied.
func Default() Config {
	checks := map[string]CheckConfig{
		CheckConflictMarkers:    {Enabled: true, Blocking: true},
		CheckDebugStatements:    {Enabled: true, Patterns: DefaultDebugPatterns()},
		CheckTodoComments:       {Enabled: true, Patterns: DefaultTodoPatterns()},
		CheckLargeFiles:         {Enabled: true, MaxSizeBytes: DefaultMaxSizeBytes},
		CheckSensitiveData:      {Enabled: true, Patterns: DefaultSensitivePatterns()},
		CheckEmptyFiles:         {Enabled: true},
		CheckTrailingWhitespace: {Enabled: true},
	}
	return Config{
		CommitMsg: CommitMsgConfig{
			JiraProject:      "CDE",
			MinMessageLength: 10,
			MaxSubjectLength: 72,
			RequireType:      true,
			AllowedTypes:     append([]string(nil), DefaultAllowedTypes...),
		},
		PreCommit: PreCommitConfig{
			ProtectedBranches: []string{"develop", "master", "micro-qa", "micro-qa-adhoc"},
			Checks:            checks,
		},
	}
}

// FileNames are the config file names looked up at the repository root,
// in order of preference.
var FileNames = []string{
	".commitgate.json",
	".commitgate.yaml",
	".commitgate.yml",
	".commitgate.toml",
}

// Discover returns the first config file present in root, or "" if none.
func Discover(root string) string {
	for _, name := range FileNames {
		p := filepath.Join(root, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load builds the effective config by merging: defaults <- file <- env.
// It never fails: problems are reported to warn as "Warning: ..." lines and
// the affected values fall back to defaults. An empty path skips the file.
func Load(path string, warn io.Writer) Config {
	cfg := Default()
	if warn == nil {
		warn = io.Discard
	}

	if path != "" {
		fc, err := loadFile(path)
		if err != nil {
			fmt.Fprintf(warn, "Warning: %v; using default configuration\n", err)
		} else {
			mergeFile(&cfg, fc, warn)
		}
	}
	mergeEnv(&cfg, warn)
	return cfg
}

// loadFile reads and decodes a config file. The decoder is chosen by file
// extension; anything other than .yaml, .yml or .toml is read as JSON.
func loadFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, fmt.Errorf("config file %s not found", path)
		}
		return fileConfig{}, fmt.Errorf("reading config file: %w", err)
	}
	fc, err := decode(path, data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return fc, nil
}

// Save writes the config as indented JSON.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func mergeFile(dst *Config, src fileConfig, warn io.Writer) {
	if cm := src.CommitMsg; cm != nil {
		if cm.JiraProject != nil {
			if p := strings.TrimSpace(*cm.JiraProject); p != "" {
				dst.CommitMsg.JiraProject = p
			} else {
				fmt.Fprintln(warn, "Warning: commit-msg.jira_project must not be empty; using default")
			}
		}
		if cm.MinMessageLength != nil {
			if *cm.MinMessageLength > 0 {
				dst.CommitMsg.MinMessageLength = *cm.MinMessageLength
			} else {
				fmt.Fprintln(warn, "Warning: commit-msg.min_message_length must be positive; using default")
			}
		}
		if cm.MaxSubjectLength != nil {
			if *cm.MaxSubjectLength > 0 {
				dst.CommitMsg.MaxSubjectLength = *cm.MaxSubjectLength
			} else {
				fmt.Fprintln(warn, "Warning: commit-msg.max_subject_length must be positive; using default")
			}
		}
		if cm.RequireType != nil {
			dst.CommitMsg.RequireType = *cm.RequireType
		}
		if cm.AllowedTypes != nil {
			types := normalizeTypes(cm.AllowedTypes)
			if len(types) > 0 {
				dst.CommitMsg.AllowedTypes = types
			} else if dst.CommitMsg.RequireType {
				fmt.Fprintln(warn, "Warning: commit-msg.allowed_types is empty while require_type is true; using default types")
			}
		}
	}

	if pc := src.PreCommit; pc != nil {
		if pc.ProtectedBranches != nil {
			dst.PreCommit.ProtectedBranches = trimAll(pc.ProtectedBranches)
		}
		names := make([]string, 0, len(pc.Checks))
		for name := range pc.Checks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			base, ok := dst.PreCommit.Checks[name]
			if !ok {
				fmt.Fprintf(warn, "Warning: unknown check %q in pre-commit.checks ignored\n", name)
				continue
			}
			dst.PreCommit.Checks[name] = mergeCheck(name, base, pc.Checks[name], warn)
		}
	}
}

func mergeCheck(name string, dst CheckConfig, src fileCheck, warn io.Writer) CheckConfig {
	if src.Enabled != nil {
		dst.Enabled = *src.Enabled
	}
	if src.Blocking != nil {
		dst.Blocking = *src.Blocking
	}
	if src.Patterns != nil {
		dst.Patterns = append([]string(nil), src.Patterns...)
	}
	if src.MaxSizeBytes != nil {
		if *src.MaxSizeBytes > 0 {
			dst.MaxSizeBytes = *src.MaxSizeBytes
		} else {
			fmt.Fprintf(warn, "Warning: pre-commit.checks.%s.max_size_bytes must be positive; using default\n", name)
		}
	}
	return dst
}

func mergeEnv(cfg *Config, warn io.Writer) {
	if warn == nil {
		warn = io.Discard
	}
	if v := strings.TrimSpace(os.Getenv("COMMITGATE_JIRA_PROJECT")); v != "" {
		cfg.CommitMsg.JiraProject = v
	}
	if v, ok := os.LookupEnv("COMMITGATE_PROTECTED_BRANCHES"); ok {
		cfg.PreCommit.ProtectedBranches = SplitComma(v)
	}
	for _, name := range SplitComma(os.Getenv("COMMITGATE_DISABLE")) {
		c, ok := cfg.PreCommit.Checks[name]
		if !ok {
			fmt.Fprintf(warn, "Warning: COMMITGATE_DISABLE names unknown check %q\n", name)
			continue
		}
		c.Enabled = false
		cfg.PreCommit.Checks[name] = c
	}
}

func normalizeTypes(types []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range types {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SplitComma splits a comma-separated list, trimming blanks.
func SplitComma(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
