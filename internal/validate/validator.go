package validate

import (
	"context"

	"go.uber.org/zap"

	"github.com/eykd/acp-go/internal/domain"
	"github.com/eykd/acp-go/internal/outcome"
)

// GitChecker runs the repository precondition chain and yields the
// repository root.
type GitChecker interface {
	Run(ctx context.Context) outcome.Outcome[string]
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(v *Validator) { v.log = l }
}

// Validator combines the argument, source file and git checks into a
// single report.
type Validator struct {
	files FileChecker
	git   GitChecker
	log   *zap.Logger
}

// New creates a Validator. Neither collaborator is invoked until Validate.
func New(files FileChecker, git GitChecker, opts ...Option) *Validator {
	v := &Validator{files: files, git: git, log: zap.NewNop()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the argument group and the git chain, always both, and
// merges them. Argument and file errors precede git errors.
func (v *Validator) Validate(ctx context.Context, args domain.Arguments, preset domain.Preset) outcome.Outcome[domain.ActionDescriptor] {
	argOutcome := outcome.AllOf(
		ValidatePreset(args, preset),
		ValidateSources(v.files, args.Sources),
	)
	gitOutcome := v.git.Run(ctx)

	v.log.Debug("validation finished",
		zap.Int("argument_errors", argOutcome.Errors().Len()),
		zap.Int("git_errors", gitOutcome.Errors().Len()),
	)

	return outcome.Combine(argOutcome, gitOutcome, func(_ outcome.Unit, root string) domain.ActionDescriptor {
		return domain.NewActionDescriptor(root, args)
	})
}
