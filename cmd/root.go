// Package cmd contains the CLI commands for the acp application.
package cmd

import (
	"context"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eykd/acp-go/internal/proc"
)

// testModeEnv, when "true", makes --skip-changes-check default to on so
// the CLI can be driven against clean fixture repositories.
const testModeEnv = "ACP_TEST"

var rootCmd *cobra.Command

// Global flag state, bound by NewRootCmd.
var (
	verbose          bool
	jsonOutput       bool
	dryRun           bool
	fetch            bool
	skipChangesCheck bool
	timeout          time.Duration
)

var logger = zap.NewNop()

func init() {
	p := newPipeline()
	rootCmd = BuildCommandTree(p, p, p)
}

// GetVerbose returns the current verbose flag state.
func GetVerbose() bool {
	return verbose
}

// GetJSON returns the current --json flag state.
func GetJSON() bool {
	return jsonOutput
}

// GetDryRun returns the current --dry-run flag state.
func GetDryRun() bool {
	return dryRun
}

// GetFetch returns the current --fetch flag state.
func GetFetch() bool {
	return fetch
}

// GetSkipChangesCheck returns the current --skip-changes-check flag state.
func GetSkipChangesCheck() bool {
	return skipChangesCheck
}

// GetTimeout returns the per-command timeout for git invocations.
func GetTimeout() time.Duration {
	return timeout
}

// GetLogger returns the logger configured for the running command.
func GetLogger() *zap.Logger {
	return logger
}

// NewRootCmd creates a new root command instance with the global flags.
// This is useful for testing to get a fresh command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acp",
		Short: "Validate, commit and push in one step",
		Long: "acp checks the arguments against the repository's commit message preset and\n" +
			"the repository state, then stages, commits and pushes.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = newLogger(cmd.ErrOrStderr(), verbose)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	testMode, _ := strconv.ParseBool(os.Getenv(testModeEnv))

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
	flags.BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	flags.BoolVarP(&dryRun, "dry-run", "n", false, "Validate and print the git commands without running them")
	flags.BoolVar(&fetch, "fetch", false, "Run git remote update before checking whether a pull is needed")
	flags.DurationVar(&timeout, "timeout", proc.DefaultTimeout, "Timeout for each git command")
	flags.BoolVar(&skipChangesCheck, "skip-changes-check", testMode, "Assume the working tree has changes")
	_ = flags.MarkHidden("skip-changes-check")

	return cmd
}

// newLogger returns a development-style logger writing to w at debug
// level when enabled, and a no-op logger otherwise.
func newLogger(w io.Writer, enabled bool) *zap.Logger {
	if !enabled {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}

// Execute runs the root command and returns any error.
// Deprecated: Use ExecuteContext instead for proper signal handling.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// Main runs the CLI with os.Args and returns the process exit code.
func Main(ctx context.Context) int {
	rootCmd.SetContext(ctx)
	return RunCLI(rootCmd, os.Args[1:], os.Stdout, os.Stderr)
}
