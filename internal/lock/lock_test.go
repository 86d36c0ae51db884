package lock_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/eykd/acp-go/internal/lock"
)

// mockFlocker is a test double for the Flocker interface.
type mockFlocker struct {
	tryLockResult bool
	tryLockErr    error
	unlockErr     error
	tryLockCalled bool
	unlockCalled  bool
}

func (m *mockFlocker) TryLock() (bool, error) {
	m.tryLockCalled = true
	return m.tryLockResult, m.tryLockErr
}

func (m *mockFlocker) Unlock() error {
	m.unlockCalled = true
	return m.unlockErr
}

func TestLock_TryLock(t *testing.T) {
	errPermDenied := errors.New("permission denied")

	tests := []struct {
		name          string
		tryLockResult bool
		tryLockErr    error
		wantErr       error
	}{
		{"acquires a free lock", true, nil, nil},
		{"held lock", false, nil, lock.ErrAlreadyLocked},
		{"wraps flock error", false, errPermDenied, errPermDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockFlocker{tryLockResult: tt.tryLockResult, tryLockErr: tt.tryLockErr}

			err := lock.New(m).TryLock(context.Background())

			if !m.tryLockCalled {
				t.Error("expected TryLock to be called on flocker")
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLock_TryLock_CancelledContextSkipsFlocker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &mockFlocker{tryLockResult: true}

	err := lock.New(m).TryLock(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if m.tryLockCalled {
		t.Error("flocker was asked for the lock after cancellation")
	}
}

func TestLock_Unlock_WrapsError(t *testing.T) {
	errUnlock := errors.New("unlock failed")
	m := &mockFlocker{unlockErr: errUnlock}

	err := lock.New(m).Unlock()

	if !m.unlockCalled {
		t.Error("expected Unlock to be called on flocker")
	}
	if !errors.Is(err, errUnlock) {
		t.Errorf("error = %v, want it to wrap %v", err, errUnlock)
	}
}

func TestFileLocker_AcquireUsesNewLock(t *testing.T) {
	m := &mockFlocker{tryLockResult: true}
	var gotPath string
	locker := lock.FileLocker{NewLock: func(path string) *lock.Lock {
		gotPath = path
		return lock.New(m)
	}}

	release, err := locker.Acquire(context.Background(), "/repo/.git/acp.lock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/repo/.git/acp.lock" {
		t.Errorf("lock path = %q", gotPath)
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if !m.unlockCalled {
		t.Error("release did not unlock")
	}
}

func TestFileLocker_SecondAcquireFailsUntilReleased(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acp.lock")
	var locker lock.FileLocker

	release, err := locker.Acquire(context.Background(), path)
	if err != nil {
		t.Fatalf("first Acquire: %v", err)
	}

	if _, err := locker.Acquire(context.Background(), path); !errors.Is(err, lock.ErrAlreadyLocked) {
		t.Fatalf("second Acquire error = %v, want ErrAlreadyLocked", err)
	}

	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	again, err := locker.Acquire(context.Background(), path)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	_ = again()
}
