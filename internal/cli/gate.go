package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/commitgate/internal/commitmsg"
	"github.com/dshills/commitgate/internal/pipeline"
)

var preCommitCmd = &cobra.Command{
	Use:   "pre-commit",
	Short: "Check staged changes (git pre-commit hook)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := writer()
		if err != nil {
			return err
		}
		stderr := cmd.ErrOrStderr()

		repo, _ := repoRoot()
		if repo == nil {
			fmt.Fprintln(stderr, "Error: not a git repository")
			exitCode = ExitRuntimeError
			return nil
		}
		cfg := loadConfig(repo.Root, stderr)

		res, err := pipeline.RunPreCommit(repo, cfg, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		return finish(cmd, w.Write(cmd.OutOrStdout(), res), res.HasBlocking)
	},
}

var commitMsgCmd = &cobra.Command{
	Use:   "commit-msg <message-file>",
	Short: "Validate a commit message (git commit-msg hook)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := writer()
		if err != nil {
			return err
		}
		stderr := cmd.ErrOrStderr()

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(stderr, "Error reading commit message: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		_, root := repoRoot()
		cfg := loadConfig(root, stderr)

		res := pipeline.RunCommitMsg(string(data), cfg)
		return finish(cmd, w.Write(cmd.OutOrStdout(), res), res.HasBlocking)
	},
}

var prepareCommitMsgCmd = &cobra.Command{
	Use:   "prepare-commit-msg <message-file> [source [sha]]",
	Short: "Prefix the message with the ticket from the branch name (git prepare-commit-msg hook)",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		stderr := cmd.ErrOrStderr()
		repo, root := repoRoot()
		if repo == nil {
			return nil
		}
		branch, err := repo.CurrentBranch()
		if err != nil || branch == "" {
			return nil
		}
		var source string
		if len(args) > 1 {
			source = args[1]
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(stderr, "Error reading commit message: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		cfg := loadConfig(root, stderr)

		msg, changed := commitmsg.Prepare(string(data), branch, source, cfg.CommitMsg)
		if !changed {
			return nil
		}
		if err := os.WriteFile(args[0], []byte(msg), 0o644); err != nil {
			fmt.Fprintf(stderr, "Error writing commit message: %v\n", err)
			exitCode = ExitRuntimeError
		}
		return nil
	},
}

func finish(cmd *cobra.Command, writeErr error, blocked bool) error {
	if writeErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error writing output: %v\n", writeErr)
		exitCode = ExitRuntimeError
		return nil
	}
	if blocked {
		exitCode = ExitBlocked
	}
	return nil
}
