package acceptance_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv isolates git from the user's configuration and supplies an
// identity for commits.
func testEnv(home string) []string {
	env := []string{
		"HOME=" + home,
		"PATH=" + os.Getenv("PATH"),
		"GIT_CONFIG_NOSYSTEM=1",
		"GIT_CEILING_DIRECTORIES=" + filepath.Dir(home),
		"GIT_AUTHOR_NAME=Acp Test",
		"GIT_AUTHOR_EMAIL=acp@example.com",
		"GIT_COMMITTER_NAME=Acp Test",
		"GIT_COMMITTER_EMAIL=acp@example.com",
		"GIT_TERMINAL_PROMPT=0",
	}
	return env
}

// sandbox is a temporary home with a bare remote and one clone of it.
type sandbox struct {
	home   string
	remote string
	work   string
}

func newSandbox(t *testing.T) *sandbox {
	t.Helper()
	home := t.TempDir()
	s := &sandbox{
		home:   home,
		remote: filepath.Join(home, "remote.git"),
		work:   filepath.Join(home, "work"),
	}
	s.git(t, home, "init", "-q", "--bare", s.remote)
	s.git(t, home, "clone", "-q", s.remote, s.work)
	s.write(t, "README.md", "# project\n")
	s.git(t, s.work, "add", "README.md")
	s.git(t, s.work, "commit", "-q", "-m", "initial")
	s.git(t, s.work, "push", "-q", "-u", "origin", "HEAD")
	return s
}

func (s *sandbox) git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command(gitPath, args...)
	cmd.Dir = dir
	cmd.Env = testEnv(s.home)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(string(out))
}

func (s *sandbox) write(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(s.work, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

// runAcp executes the acp binary in dir and returns stdout, stderr and the
// exit code.
func (s *sandbox) runAcp(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(acpBinary, args...)
	cmd.Dir = dir
	cmd.Env = testEnv(s.home)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("failed to run acp: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}
	return stdout.String(), stderr.String(), exitCode
}

// runAcpSuccess runs acp expecting exit code 0 and returns stdout.
func (s *sandbox) runAcpSuccess(t *testing.T, args ...string) string {
	t.Helper()
	stdout, stderr, exitCode := s.runAcp(t, s.work, args...)
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\nargs: %v\nstdout: %s\nstderr: %s", exitCode, args, stdout, stderr)
	}
	return stdout
}

type checkReport struct {
	Errors []struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"errors"`
	Root    string `json:"root"`
	Message string `json:"message"`
	Summary struct {
		Errors int `json:"errors"`
	} `json:"summary"`
}

// checkJSON runs acp check --json in dir and parses the report.
func (s *sandbox) checkJSON(t *testing.T, dir string, args ...string) (checkReport, int) {
	t.Helper()
	stdout, stderr, code := s.runAcp(t, dir, append([]string{"check", "--json"}, args...)...)
	var report checkReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("failed to parse check JSON: %v\nstdout: %s\nstderr: %s", err, stdout, stderr)
	}
	return report, code
}

func (r checkReport) kinds() []string {
	var kinds []string
	for _, e := range r.Errors {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
