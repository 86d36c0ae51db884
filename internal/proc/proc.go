// Package proc runs external commands with a bounded wait.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single command when ExecRunner.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// waitDelay bounds how long Run waits for output pipes held open by
// grandchildren after the command itself has been killed.
const waitDelay = 2 * time.Second

// ErrTimeout is returned when a command does not finish within the timeout.
var ErrTimeout = errors.New("command timed out")

// ExitError reports a command that could not be started or exited non-zero.
type ExitError struct {
	Argv     []string
	ExitCode int
	Stderr   string
	Err      error
}

// Error returns the command line, exit code and the first stderr line.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s: %v", strings.Join(e.Argv, " "), e.Err)
	if line, _, _ := strings.Cut(strings.TrimSpace(e.Stderr), "\n"); line != "" {
		msg += ": " + line
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands on the host with os/exec.
type ExecRunner struct {
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Timeout bounds each command; zero means DefaultTimeout.
	Timeout time.Duration
	// Env, when non-nil, replaces the inherited environment.
	Env []string
}

// Run executes name with args and returns its standard output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.WaitDelay = waitDelay
	if r.Env != nil {
		cmd.Env = r.Env
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}

	argv := append([]string{name}, args...)
	exitErr := &ExitError{Argv: argv, ExitCode: -1, Stderr: stderr.String(), Err: err}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		exitErr.ExitCode = ee.ExitCode()
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		exitErr.Err = fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	return stdout.String(), exitErr
}
