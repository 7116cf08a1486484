package config

// DefaultDebugPatterns match leftover debugging statements.
func DefaultDebugPatterns() []string {
	return []string{
		`console\.(log|debug|trace|dir)\(`,
		`\bdebugger\b`,
		`\bpdb\.set_trace\(\)`,
		`\bbreakpoint\(\)`,
		`\bvar_dump\(`,
		`\bSystem\.out\.println\(`,
	}
}

// DefaultTodoPatterns match TODO/FIXME markers.
func DefaultTodoPatterns() []string {
	return []string{
		`\bTODO\b`,
		`\bFIXME\b`,
	}
}

// DefaultSensitivePatterns are heuristics for common secret shapes. The
// sensitive_data check matches them case-insensitively.
func DefaultSensitivePatterns() []string {
	return []string{
		// Generic API keys
		`(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?[A-Za-z0-9/+=_-]{20,}`,
		// AWS access key IDs
		`AKIA[0-9A-Z]{16}`,
		// AWS secret access keys
		`aws[_-]?secret[_-]?access[_-]?key\s*[:=]\s*["']?[A-Za-z0-9/+=]{40}`,
		// Secrets, tokens and passwords in assignments
		`(secret|token|password|passwd|credential)\s*[:=]\s*["'][^"']{8,}["']`,
		// Private key blocks
		`-----BEGIN\s+(RSA\s+|EC\s+|DSA\s+|OPENSSH\s+)?PRIVATE KEY-----`,
		// GitHub tokens
		`gh[pousr]_[A-Za-z0-9_]{36,}`,
		// Slack tokens
		`xox[bporas]-[A-Za-z0-9-]{10,}`,
		// JWTs
		`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`,
	}
}
