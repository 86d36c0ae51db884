package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockPipeline is a test double for CommitRunner, CheckRunner and
// PresetRunner.
type mockPipeline struct {
	check     *CheckResult
	commit    *CommitResult
	preset    *PresetResult
	err       error
	req       Request
	apply     bool
	called    bool
	callCount int
}

func (m *mockPipeline) Check(ctx context.Context, req Request) (*CheckResult, error) {
	m.called = true
	m.callCount++
	m.req = req
	return m.check, m.err
}

func (m *mockPipeline) Commit(ctx context.Context, req Request, apply bool) (*CommitResult, error) {
	m.called = true
	m.callCount++
	m.req = req
	m.apply = apply
	return m.commit, m.err
}

func (m *mockPipeline) Preset(ctx context.Context) (*PresetResult, error) {
	m.called = true
	m.callCount++
	return m.preset, m.err
}

// loggingCheckRunner logs through the command logger before delegating.
type loggingCheckRunner struct {
	*mockPipeline
}

func (l *loggingCheckRunner) Check(ctx context.Context, req Request) (*CheckResult, error) {
	GetLogger().Debug("checking", zap.Strings("args", req.Positional))
	return l.mockPipeline.Check(ctx, req)
}

func runTree(t *testing.T, m *mockPipeline, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	if args == nil {
		// cobra falls back to os.Args when given nil.
		args = []string{}
	}
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	code = RunCLI(BuildCommandTree(m, m, m), args, out, errOut)
	return code, out.String(), errOut.String()
}

func TestCheckCmd_PassesArgumentsAndSources(t *testing.T) {
	m := &mockPipeline{check: &CheckResult{Root: "/repo", Message: "fix: typo"}}

	code, _, _ := runTree(t, m, "check", "fix", "typo", "-S", "a.go", "--source", "b.go")

	require.Equal(t, 0, code)
	assert.Equal(t, []string{"fix", "typo"}, m.req.Positional)
	assert.Equal(t, []string{"a.go", "b.go"}, m.req.Sources)
}

func TestCheckCmd_AnyArgumentCountReachesRunner(t *testing.T) {
	for _, args := range [][]string{{"check"}, {"check", "a", "b", "c", "d"}} {
		m := &mockPipeline{check: &CheckResult{Errors: []Issue{{Kind: "argument_count_mismatch", Message: "bad count"}}}}

		code, _, _ := runTree(t, m, args...)

		assert.True(t, m.called, "runner not called for %v", args)
		assert.Equal(t, 2, code)
	}
}

func TestCheckCmd_HumanOutput(t *testing.T) {
	m := &mockPipeline{check: &CheckResult{Errors: []Issue{
		{Kind: "missing_file", Message: "source file a.go does not exist"},
		{Kind: "pull_required", Message: "the upstream branch has new commits"},
	}}}

	code, stdout, stderr := runTree(t, m, "check", "msg", "-S", "a.go")

	assert.Equal(t, 2, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "✗ source file a.go does not exist\n")
	assert.Contains(t, stderr, "✗ the upstream branch has new commits\n")
	assert.True(t, strings.HasSuffix(stderr, "\n2 error(s)\nacp: validation failed with 2 error(s)\n"), "stderr = %q", stderr)
}

func TestCheckCmd_HumanOutputSuccess(t *testing.T) {
	m := &mockPipeline{check: &CheckResult{Root: "/repo", Message: "fix(api): typo"}}

	code, stdout, stderr := runTree(t, m, "check", "fix", "api", "typo")

	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "✓ ready to commit\nroot: /repo\nmessage: fix(api): typo\n", stdout)
}

func TestCheckCmd_JSON(t *testing.T) {
	tests := []struct {
		name     string
		result   *CheckResult
		wantCode int
		wantN    int
	}{
		{"no errors", &CheckResult{Root: "/repo", Message: "m"}, 0, 0},
		{"two errors", &CheckResult{Errors: []Issue{{"missing_file", "a"}, {"pull_required", "b"}}}, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockPipeline{check: tt.result}

			code, stdout, _ := runTree(t, m, "check", "--json", "m")

			assert.Equal(t, tt.wantCode, code)
			var got struct {
				Errors  []Issue `json:"errors"`
				Summary struct {
					Errors int `json:"errors"`
				} `json:"summary"`
			}
			require.NoError(t, json.Unmarshal([]byte(stdout), &got), "stdout = %q", stdout)
			assert.NotNil(t, got.Errors, "errors must be an array, never null")
			assert.Len(t, got.Errors, tt.wantN)
			assert.Equal(t, tt.wantN, got.Summary.Errors)
		})
	}
}

func TestCheckCmd_JSONErrorFields(t *testing.T) {
	m := &mockPipeline{check: &CheckResult{Errors: []Issue{{Kind: "unknown_key", Message: `"x" is not one of the preset actions`}}}}

	_, stdout, _ := runTree(t, m, "check", "--json", "x", "m")

	assert.Contains(t, stdout, `"kind":"unknown_key"`)
	assert.Contains(t, stdout, `"summary":{"errors":1}`)
}

func TestCheckCmd_ServiceError(t *testing.T) {
	m := &mockPipeline{err: &ContextError{Op: "load preset", Err: errors.New("malformed preset")}}

	code, stdout, stderr := runTree(t, m, "check", "m")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "acp: load preset: malformed preset\n", stderr)
}

func TestCheckCmd_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &mockPipeline{err: context.Canceled}
	root := BuildCommandTree(m, m, m)
	root.SetArgs([]string{"check", "m"})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))

	err := root.ExecuteContext(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
