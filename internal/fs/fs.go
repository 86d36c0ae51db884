// Package fs provides filesystem adapters for the validation and publish
// services.
package fs

import (
	"fmt"
	"os"
	"path/filepath"
)

// OSFiles implements validate.FileChecker using os.Stat.
type OSFiles struct {
	// Root resolves relative paths; empty means the working directory.
	Root string
}

// ExistsImpl reports whether path names an existing file or directory.
// Paths that cannot be stat'ed for any reason are treated as missing.
func (f *OSFiles) ExistsImpl(path string) bool {
	if path == "" {
		return false
	}
	if f.Root != "" && !filepath.IsAbs(path) {
		path = filepath.Join(f.Root, path)
	}
	_, err := os.Stat(path)
	return err == nil
}

// Exists delegates to ExistsImpl.
func (f *OSFiles) Exists(path string) bool {
	return f.ExistsImpl(path)
}

// WorkingDirImpl returns the process working directory.
func WorkingDirImpl() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return dir, nil
}
