package config

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config with pointer fields so that keys absent from
// the document can be told apart from explicit zero values.
type fileConfig struct {
	CommitMsg *fileCommitMsg `json:"commit-msg" yaml:"commit-msg" toml:"commit-msg"`
	PreCommit *filePreCommit `json:"pre-commit" yaml:"pre-commit" toml:"pre-commit"`
}

type fileCommitMsg struct {
	JiraProject      *string  `json:"jira_project" yaml:"jira_project" toml:"jira_project"`
	MinMessageLength *int     `json:"min_message_length" yaml:"min_message_length" toml:"min_message_length"`
	MaxSubjectLength *int     `json:"max_subject_length" yaml:"max_subject_length" toml:"max_subject_length"`
	RequireType      *bool    `json:"require_type" yaml:"require_type" toml:"require_type"`
	AllowedTypes     []string `json:"allowed_types" yaml:"allowed_types" toml:"allowed_types"`
}

type filePreCommit struct {
	ProtectedBranches []string             `json:"protected_branches" yaml:"protected_branches" toml:"protected_branches"`
	Checks            map[string]fileCheck `json:"checks" yaml:"checks" toml:"checks"`
}

type fileCheck struct {
	Enabled      *bool    `json:"enabled" yaml:"enabled" toml:"enabled"`
	Blocking     *bool    `json:"blocking" yaml:"blocking" toml:"blocking"`
	Patterns     []string `json:"patterns" yaml:"patterns" toml:"patterns"`
	MaxSizeBytes *int64   `json:"max_size_bytes" yaml:"max_size_bytes" toml:"max_size_bytes"`
}

// decode parses data according to the extension of path.
func decode(path string, data []byte) (fileConfig, error) {
	var fc fileConfig
	if len(bytes.TrimSpace(data)) == 0 {
		return fc, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fileConfig{}, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &fc); err != nil {
			return fileConfig{}, err
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return fileConfig{}, err
		}
	}
	return fc, nil
}
