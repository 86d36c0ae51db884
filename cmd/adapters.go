package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/acp-go/internal/domain"
	"github.com/eykd/acp-go/internal/fs"
	"github.com/eykd/acp-go/internal/gitcheck"
	"github.com/eykd/acp-go/internal/lock"
	"github.com/eykd/acp-go/internal/outcome"
	"github.com/eykd/acp-go/internal/preset"
	"github.com/eykd/acp-go/internal/proc"
	"github.com/eykd/acp-go/internal/publish"
	"github.com/eykd/acp-go/internal/validate"
)

// BuildCommandTree assembles the root command and its subcommands.
// Subcommand names shadow preset actions, so preset.ReservedActions must
// list every one of them.
func BuildCommandTree(commit CommitRunner, check CheckRunner, presets PresetRunner) *cobra.Command {
	root := NewCommitCmd(commit)
	root.AddCommand(
		NewCheckCmd(check),
		NewPresetCmd(presets),
		NewVersionCmd(),
	)
	return root
}

// commandRunner is satisfied by proc.ExecRunner and by test doubles. It
// serves both gitcheck.Runner and publish.Runner.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// pipeline wires the validation and publish services to the CLI.
type pipeline struct {
	newRunner  func() commandRunner
	files      validate.FileChecker
	getwd      func() (string, error)
	locker     publish.Locker
	loadPreset func(root string) (domain.Preset, string, error)
}

func newPipeline() *pipeline {
	return &pipeline{
		newRunner:  func() commandRunner { return &proc.ExecRunner{Timeout: GetTimeout()} },
		files:      &fs.OSFiles{},
		getwd:      fs.WorkingDirImpl,
		locker:     lock.FileLocker{},
		loadPreset: preset.Load,
	}
}

// presetRoot finds where to look for the preset file. Failures fall back
// to the working directory; the git checks report them properly.
func (p *pipeline) presetRoot(ctx context.Context, runner commandRunner) string {
	out, err := runner.Run(ctx, "git", "rev-parse", "--show-toplevel")
	if root := strings.TrimSpace(out); err == nil && root != "" {
		return root
	}
	if wd, err := p.getwd(); err == nil {
		return wd
	}
	return "."
}

// validated is the result of one pass through the validator.
type validated struct {
	preset     domain.Preset
	presetPath string
	result     outcome.Outcome[domain.ActionDescriptor]
}

func (p *pipeline) validate(ctx context.Context, runner commandRunner, req Request) (*validated, error) {
	root := p.presetRoot(ctx, runner)
	pr, path, err := p.loadPreset(root)
	if err != nil {
		return nil, &ContextError{Op: "load preset", Err: err}
	}
	GetLogger().Debug("preset loaded", zap.String("path", path), zap.String("name", pr.Name))

	chain := gitcheck.New(runner, gitcheck.Config{
		SkipChangesCheck: GetSkipChangesCheck(),
		UpdateRemote:     GetFetch(),
		Getwd:            p.getwd,
	}, gitcheck.WithLogger(GetLogger()))
	v := validate.New(p.files, chain, validate.WithLogger(GetLogger()))

	args := domain.Arguments{Positional: req.Positional, Sources: req.Sources}
	return &validated{
		preset:     pr,
		presetPath: path,
		result:     v.Validate(ctx, args, pr),
	}, nil
}

func toIssues(errs outcome.ErrorList) []Issue {
	items := errs.Items()
	issues := make([]Issue, len(items))
	for i, e := range items {
		issues[i] = Issue{Kind: string(e.Kind), Message: e.Message}
	}
	return issues
}

// Check runs validation only.
func (p *pipeline) Check(ctx context.Context, req Request) (*CheckResult, error) {
	v, err := p.validate(ctx, p.newRunner(), req)
	if err != nil {
		return nil, err
	}
	d, ok := v.result.Value()
	if !ok {
		return &CheckResult{Errors: toIssues(v.result.Errors())}, nil
	}
	return &CheckResult{Root: d.Root(), Message: domain.RenderCommitMessage(v.preset, d)}, nil
}

// Commit validates and, when apply is true, publishes.
func (p *pipeline) Commit(ctx context.Context, req Request, apply bool) (*CommitResult, error) {
	runner := p.newRunner()
	v, err := p.validate(ctx, runner, req)
	if err != nil {
		return nil, err
	}
	d, ok := v.result.Value()
	if !ok {
		return &CommitResult{Errors: toIssues(v.result.Errors())}, nil
	}

	message := domain.RenderCommitMessage(v.preset, d)
	pub := publish.New(runner, p.locker, publish.WithLogger(GetLogger()))
	res, err := pub.Publish(ctx, d, message, apply)
	if err != nil {
		return nil, &ContextError{Op: "publish", Path: d.Root(), Err: err}
	}
	return &CommitResult{
		Root:     res.Root,
		Message:  res.Message,
		Commands: res.Commands,
		Applied:  res.Applied,
	}, nil
}

// Preset reports the preset that applies to the current repository.
func (p *pipeline) Preset(ctx context.Context) (*PresetResult, error) {
	root := p.presetRoot(ctx, p.newRunner())
	pr, path, err := p.loadPreset(root)
	if err != nil {
		return nil, &ContextError{Op: "load preset", Err: err}
	}
	res := &PresetResult{
		Name:         pr.Name,
		Source:       path,
		Contributors: pr.Contributors,
		Template:     pr.Template,
	}
	for _, k := range pr.ActionKeys() {
		res.Actions = append(res.Actions, PresetEntry{Key: k, Value: pr.Actions[k]})
	}
	for _, k := range pr.TargetKeys() {
		res.Targets = append(res.Targets, PresetEntry{Key: k, Value: pr.Targets[k]})
	}
	return res, nil
}
