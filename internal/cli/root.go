package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/commitgate/internal/config"
	"github.com/dshills/commitgate/internal/gitctx"
	"github.com/dshills/commitgate/internal/output"
)

const version = "0.1.0"

// Exit codes. Git aborts the commit on any non-zero status.
const (
	ExitSuccess      = 0
	ExitBlocked      = 1
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

var (
	flagConfig  string
	flagFormat  string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "commitgate",
	Short: "Local commit-quality gate for git hooks",
	Long: "Commitgate checks staged changes and commit messages against a repository policy " +
		"and exits non-zero when a blocking rule fails.",
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print commitgate version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "commitgate version %s\n", version)
	},
}

// repoRoot returns the enclosing repository, or nil with "." as the root
// when the working directory is not inside one.
func repoRoot() (*gitctx.Repo, string) {
	repo, err := gitctx.Open(".")
	if err != nil {
		return nil, "."
	}
	return repo, repo.Root
}

// loadConfig resolves the config path from --config, COMMITGATE_CONFIG or
// discovery at root, then loads it. Warnings go to warn.
func loadConfig(root string, warn io.Writer) config.Config {
	path := flagConfig
	if path == "" {
		path = os.Getenv("COMMITGATE_CONFIG")
	}
	if path == "" {
		path = config.Discover(root)
	}
	return config.Load(path, warn)
}

func writer() (output.Writer, error) {
	return output.GetWriter(flagFormat, output.Options{NoColor: flagNoColor})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: .commitgate.{json,yaml,toml} at the repository root)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format (text, json)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(preCommitCmd)
	rootCmd.AddCommand(commitMsgCmd)
	rootCmd.AddCommand(prepareCommitMsgCmd)
	rootCmd.AddCommand(hooksCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
