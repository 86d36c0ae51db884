// Package gitcheck verifies that the repository is ready for a commit and
// push. Its steps depend on each other, so the chain stops at the first
// unmet precondition.
package gitcheck

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/eykd/acp-go/internal/outcome"
)

// Runner runs an external command and returns its standard output. A
// non-zero exit status is reported as an error.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Step names a precondition in the order the chain evaluates them.
type Step string

const (
	StepGitInstalled     Step = "git_installed"
	StepInsideRepository Step = "inside_repository"
	StepHasLocalChanges  Step = "has_local_changes"
	StepNoPullNeeded     Step = "no_pull_needed"
	StepResolveRoot      Step = "resolve_root"
)

// Config controls optional behavior of the chain.
type Config struct {
	// SkipChangesCheck treats the working tree as dirty without running
	// git status. Used by automated tests of the CLI.
	SkipChangesCheck bool
	// UpdateRemote runs git remote update before comparing with upstream.
	UpdateRemote bool
	// Getwd supplies the fallback root when git cannot report the top
	// level. Defaults to os.Getwd.
	Getwd func() (string, error)
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the logger used for per-step debug output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Chain) { c.log = l }
}

// Chain is the repository precondition state machine.
type Chain struct {
	runner Runner
	cfg    Config
	log    *zap.Logger
}

// New creates a Chain. No command runs until Run is called.
func New(runner Runner, cfg Config, opts ...Option) *Chain {
	if cfg.Getwd == nil {
		cfg.Getwd = os.Getwd
	}
	c := &Chain{runner: runner, cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run evaluates the preconditions in order and returns the repository root.
func (c *Chain) Run(ctx context.Context) outcome.Outcome[string] {
	steps := []func(context.Context) outcome.Outcome[outcome.Unit]{
		c.gitInstalled,
		c.insideRepository,
		c.hasLocalChanges,
		c.noPullNeeded,
	}

	checked := outcome.OK
	for _, step := range steps {
		checked = outcome.Then(checked, func(outcome.Unit) outcome.Outcome[outcome.Unit] {
			return step(ctx)
		})
	}
	return outcome.Then(checked, func(outcome.Unit) outcome.Outcome[string] {
		return c.resolveRoot(ctx)
	})
}

func (c *Chain) git(ctx context.Context, step Step, args ...string) (string, error) {
	out, err := c.runner.Run(ctx, "git", args...)
	c.log.Debug("git precondition",
		zap.String("step", string(step)),
		zap.Strings("args", args),
		zap.Error(err),
	)
	return out, err
}

func (c *Chain) gitInstalled(ctx context.Context) outcome.Outcome[outcome.Unit] {
	if _, err := c.git(ctx, StepGitInstalled, "--version"); err != nil {
		return outcome.Failure[outcome.Unit](outcome.GitNotInstalled())
	}
	return outcome.OK
}

func (c *Chain) insideRepository(ctx context.Context) outcome.Outcome[outcome.Unit] {
	if _, err := c.git(ctx, StepInsideRepository, "rev-parse", "--is-inside-work-tree"); err != nil {
		return outcome.Failure[outcome.Unit](outcome.NotInRepository())
	}
	return outcome.OK
}

func (c *Chain) hasLocalChanges(ctx context.Context) outcome.Outcome[outcome.Unit] {
	if c.cfg.SkipChangesCheck {
		c.log.Debug("git precondition skipped", zap.String("step", string(StepHasLocalChanges)))
		return outcome.OK
	}
	out, err := c.git(ctx, StepHasLocalChanges, "status", "--porcelain")
	if err != nil || strings.TrimSpace(out) == "" {
		return outcome.Failure[outcome.Unit](outcome.NothingToCommit())
	}
	return outcome.OK
}

// noPullNeeded compares HEAD with its upstream. When either commit cannot
// be resolved (no upstream, detached HEAD, unborn branch) there is nothing
// to pull from, so the step succeeds.
func (c *Chain) noPullNeeded(ctx context.Context) outcome.Outcome[outcome.Unit] {
	if c.cfg.UpdateRemote {
		if _, err := c.git(ctx, StepNoPullNeeded, "remote", "update"); err != nil {
			c.log.Warn("git remote update failed, comparing with the last fetched upstream", zap.Error(err))
		}
	}

	local, err := c.git(ctx, StepNoPullNeeded, "rev-parse", "@")
	if err != nil {
		return outcome.OK
	}
	upstream, err := c.git(ctx, StepNoPullNeeded, "rev-parse", "@{u}")
	if err != nil {
		return outcome.OK
	}
	if strings.TrimSpace(local) != strings.TrimSpace(upstream) {
		return outcome.Failure[outcome.Unit](outcome.PullRequired())
	}
	return outcome.OK
}

// resolveRoot never fails: when git cannot report the top level the
// working directory is used instead.
func (c *Chain) resolveRoot(ctx context.Context) outcome.Outcome[string] {
	out, err := c.git(ctx, StepResolveRoot, "rev-parse", "--show-toplevel")
	if root := strings.TrimSpace(out); err == nil && root != "" {
		return outcome.Success(root)
	}
	wd, err := c.cfg.Getwd()
	if err != nil {
		c.log.Warn("cannot determine working directory", zap.Error(err))
		return outcome.Success(".")
	}
	return outcome.Success(wd)
}
