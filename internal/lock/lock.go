// Package lock serializes publishes within one repository with an advisory
// file lock.
package lock

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrAlreadyLocked is returned when another acp process holds the lock.
var ErrAlreadyLocked = errors.New("another acp command is already running in this repository")

// Flocker is the subset of flock.Flock used here.
type Flocker interface {
	TryLock() (bool, error)
	Unlock() error
}

// Lock acquires a Flocker without blocking.
type Lock struct {
	flocker Flocker
}

// New creates a Lock from the given Flocker.
func New(f Flocker) *Lock {
	return &Lock{flocker: f}
}

// NewFromPath creates a Lock backed by the file at path. The file is
// created on first acquisition.
func NewFromPath(path string) *Lock {
	return New(flock.New(path))
}

// TryLock acquires the lock or returns ErrAlreadyLocked when it is held
// elsewhere.
func (l *Lock) TryLock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ok, err := l.flocker.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	if !ok {
		return ErrAlreadyLocked
	}
	return nil
}

// Unlock releases the lock.
func (l *Lock) Unlock() error {
	if err := l.flocker.Unlock(); err != nil {
		return fmt.Errorf("releasing lock: %w", err)
	}
	return nil
}

// FileLocker hands out locks backed by files on disk. It implements
// publish.Locker.
type FileLocker struct {
	// NewLock overrides how locks are built; nil means NewFromPath.
	NewLock func(path string) *Lock
}

// Acquire takes the lock at path and returns the function releasing it.
func (f FileLocker) Acquire(ctx context.Context, path string) (func() error, error) {
	newLock := f.NewLock
	if newLock == nil {
		newLock = NewFromPath
	}
	l := newLock(path)
	if err := l.TryLock(ctx); err != nil {
		return nil, err
	}
	return l.Unlock, nil
}
