// Package checks implements the pre-commit rules.
//
// Every rule satisfies [Check] and is registered by [All] in the order the
// pipeline runs them. Checks are pure: they read the staged [gitctx.ChangeSet]
// and their [config.CheckConfig] and return one finding per offending file.
// Pattern-driven rules compile their expressions from configuration, so the
// detection lists are data rather than code.
package checks
