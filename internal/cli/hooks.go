package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// HookNames are the git hooks commitgate manages.
var HookNames = []string{"pre-commit", "prepare-commit-msg", "commit-msg"}

func hookMarkerStart(hook string) string { return "# >>> commitgate " + hook + " hook >>>" }
func hookMarkerEnd(hook string) string   { return "# <<< commitgate " + hook + " hook <<<" }

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage commitgate git hooks",
}

var hooksInstallCmd = &cobra.Command{
	Use:   "install [hook...]",
	Short: "Install commitgate into .git/hooks (default: all hooks)",
	RunE: func(cmd *cobra.Command, args []string) error {
		hooks, err := selectHooks(args)
		if err != nil {
			return err
		}
		stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
		for _, hook := range hooks {
			hookPath, err := getHookPath(hook)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}

			existing, err := os.ReadFile(hookPath)
			if err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(stderr, "Error reading hook file: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}

			section := generateHookScript(hook)
			var content string
			if os.IsNotExist(err) || len(existing) == 0 {
				content = "#!/bin/sh\n" + section
			} else {
				content = replaceSection(string(existing), hook, section)
			}

			if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
				fmt.Fprintf(stderr, "Error creating hooks directory: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
				fmt.Fprintf(stderr, "Error writing hook file: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			fmt.Fprintf(stdout, "Installed commitgate %s hook at %s\n", hook, hookPath)
		}
		return nil
	},
}

var hooksUninstallCmd = &cobra.Command{
	Use:   "uninstall [hook...]",
	Short: "Remove commitgate from .git/hooks (default: all hooks)",
	RunE: func(cmd *cobra.Command, args []string) error {
		hooks, err := selectHooks(args)
		if err != nil {
			return err
		}
		stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
		for _, hook := range hooks {
			hookPath, err := getHookPath(hook)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}

			existing, err := os.ReadFile(hookPath)
			if err != nil {
				if os.IsNotExist(err) {
					fmt.Fprintf(stdout, "No %s hook found.\n", hook)
					continue
				}
				fmt.Fprintf(stderr, "Error reading hook file: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}

			content := removeSection(string(existing), hook)

			// If only shebang (and whitespace) remains, delete the file entirely
			trimmed := strings.TrimSpace(content)
			if trimmed == "" || trimmed == "#!/bin/sh" || trimmed == "#!/bin/bash" {
				if err := os.Remove(hookPath); err != nil {
					fmt.Fprintf(stderr, "Error removing hook file: %v\n", err)
					exitCode = ExitRuntimeError
					return nil
				}
				fmt.Fprintf(stdout, "Removed commitgate %s hook at %s\n", hook, hookPath)
				continue
			}

			if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
				fmt.Fprintf(stderr, "Error writing hook file: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			fmt.Fprintf(stdout, "Removed commitgate section from %s\n", hookPath)
		}
		return nil
	},
}

func selectHooks(args []string) ([]string, error) {
	if len(args) == 0 {
		return HookNames, nil
	}
	for _, a := range args {
		if !slices.Contains(HookNames, a) {
			return nil, fmt.Errorf("unknown hook %q (valid: %s)", a, strings.Join(HookNames, ", "))
		}
	}
	return args, nil
}

// getHookPath asks git for the hook location so core.hooksPath and linked
// worktrees are respected.
func getHookPath(hook string) (string, error) {
	out, err := exec.Command("git", "rev-parse", "--git-path", "hooks/"+hook).Output()
	if err != nil {
		return "", fmt.Errorf("not a git repository (git rev-parse --git-path failed)")
	}
	return strings.TrimSpace(string(out)), nil
}

func generateHookScript(hook string) string {
	var args string
	switch hook {
	case "commit-msg":
		args = ` "$1"`
	case "prepare-commit-msg":
		args = ` "$1" "$2" "$3"`
	}
	var b strings.Builder
	b.WriteString(hookMarkerStart(hook) + "\n")
	b.WriteString(fmt.Sprintf("commitgate %s%s\n", hook, args))
	b.WriteString("COMMITGATE_EXIT=$?\n")
	b.WriteString("if [ $COMMITGATE_EXIT -ne 0 ]; then\n")
	if hook == "pre-commit" || hook == "commit-msg" {
		b.WriteString("  echo \"commitgate: commit blocked (exit $COMMITGATE_EXIT)\" >&2\n")
	}
	b.WriteString("  exit $COMMITGATE_EXIT\n")
	b.WriteString("fi\n")
	b.WriteString(hookMarkerEnd(hook) + "\n")
	return b.String()
}

func replaceSection(existing, hook, section string) string {
	start, end := hookMarkerStart(hook), hookMarkerEnd(hook)
	startIdx := strings.Index(existing, start)
	endIdx := strings.Index(existing, end)

	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + section
	}

	before := existing[:startIdx]
	after := strings.TrimPrefix(existing[endIdx+len(end):], "\n")
	return before + section + after
}

func removeSection(existing, hook string) string {
	start, end := hookMarkerStart(hook), hookMarkerEnd(hook)
	startIdx := strings.Index(existing, start)
	endIdx := strings.Index(existing, end)

	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return existing
	}

	before := existing[:startIdx]
	after := strings.TrimPrefix(existing[endIdx+len(end):], "\n")
	return before + after
}

func init() {
	hooksCmd.AddCommand(hooksInstallCmd)
	hooksCmd.AddCommand(hooksUninstallCmd)
}
