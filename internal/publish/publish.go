// Package publish stages, commits and pushes a validated change.
package publish

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/eykd/acp-go/internal/domain"
)

// LockFileName is created inside the git directory while publishing.
const LockFileName = "acp.lock"

// Runner runs an external command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Locker acquires a lock file and returns the function that releases it.
type Locker interface {
	Acquire(ctx context.Context, path string) (func() error, error)
}

// Result describes a publish, planned or applied.
type Result struct {
	Root     string     `json:"root"`
	Message  string     `json:"message"`
	Commands [][]string `json:"commands"`
	Applied  bool       `json:"applied"`
}

// StepError reports the git step that failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("git %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger used for command output.
func WithLogger(l *zap.Logger) Option {
	return func(p *Publisher) { p.log = l }
}

// Publisher runs the add, commit and push sequence.
type Publisher struct {
	runner Runner
	locker Locker
	log    *zap.Logger
}

// New creates a Publisher.
func New(runner Runner, locker Locker, opts ...Option) *Publisher {
	p := &Publisher{runner: runner, locker: locker, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan returns the git argument lists Publish would run for d.
func Plan(d domain.ActionDescriptor, message string) [][]string {
	add := []string{"add", "--all"}
	if sources := d.Sources(); len(sources) > 0 {
		add = append([]string{"add", "--"}, sources...)
	}
	return [][]string{
		add,
		{"commit", "-m", message},
		{"push"},
	}
}

// Publish runs the planned commands when apply is true. Otherwise it only
// reports the plan. The repository lock is held for the whole sequence.
func (p *Publisher) Publish(ctx context.Context, d domain.ActionDescriptor, message string, apply bool) (res *Result, err error) {
	res = &Result{Root: d.Root(), Message: message, Commands: Plan(d, message)}
	if !apply {
		return res, nil
	}

	gitDir, err := p.runner.Run(ctx, "git", "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, &StepError{Step: "rev-parse", Err: err}
	}
	release, err := p.locker.Acquire(ctx, filepath.Join(strings.TrimSpace(gitDir), LockFileName))
	if err != nil {
		return nil, err
	}
	defer func() {
		if unlockErr := release(); unlockErr != nil && err == nil {
			err = unlockErr
			res = nil
		}
	}()

	p.log.Info("publishing", zap.String("root", d.Root()), zap.String("message", message))
	for _, args := range res.Commands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := p.runner.Run(ctx, "git", args...)
		p.log.Debug("git publish", zap.Strings("args", args), zap.String("output", strings.TrimSpace(out)), zap.Error(err))
		if err != nil {
			return nil, &StepError{Step: args[0], Err: err}
		}
	}
	res.Applied = true
	return res, nil
}
