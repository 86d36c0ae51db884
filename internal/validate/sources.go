package validate

import (
	"github.com/eykd/acp-go/internal/outcome"
)

// FileChecker reports whether a path exists.
type FileChecker interface {
	Exists(path string) bool
}

// FileCheckerFunc adapts a function to FileChecker.
type FileCheckerFunc func(path string) bool

// Exists calls f.
func (f FileCheckerFunc) Exists(path string) bool { return f(path) }

func source(files FileChecker, path string) outcome.Outcome[outcome.Unit] {
	if !files.Exists(path) {
		return outcome.Failure[outcome.Unit](outcome.MissingFile(path))
	}
	return outcome.OK
}

// ValidateSources checks every path, reporting one MissingFile per absent
// path in input order.
func ValidateSources(files FileChecker, paths []string) outcome.Outcome[outcome.Unit] {
	checks := make([]outcome.Outcome[outcome.Unit], len(paths))
	for i, p := range paths {
		checks[i] = source(files, p)
	}
	return outcome.AllOf(checks...)
}
