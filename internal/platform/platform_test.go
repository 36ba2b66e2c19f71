package platform

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNativeLockAcquireRelease(t *testing.T) {
	lock := &NativeLock{}
	if err := lock.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := lock.Acquire(10 * time.Millisecond); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
}

func TestNativeLockTimeout(t *testing.T) {
	lock := &NativeLock{}
	if err := lock.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := lock.Acquire(10 * time.Millisecond); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	err := lock.Acquire(20 * time.Millisecond)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout on contended lock, got %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
}

func TestNativeLockBeforeCreate(t *testing.T) {
	lock := &NativeLock{}
	if err := lock.Acquire(time.Millisecond); !errors.Is(err, ErrNotCreated) {
		t.Fatalf("expected ErrNotCreated, got %v", err)
	}
}

func TestGuardBypassBeforeReady(t *testing.T) {
	guard := NewGuard(nil)
	if err := guard.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Not ready: both sides of the pair succeed without blocking, even
	// when called from multiple goroutines at once.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := guard.Acquire(time.Millisecond); err != nil {
				t.Errorf("bypass Acquire failed: %v", err)
			}
			if err := guard.Release(); err != nil {
				t.Errorf("bypass Release failed: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestGuardLocksWhenReady(t *testing.T) {
	guard := NewGuard(nil)
	if err := guard.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	guard.SetReady(true)

	if err := guard.Acquire(10 * time.Millisecond); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := guard.Acquire(20 * time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout while held, got %v", err)
	}
	if err := guard.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if err := guard.Acquire(10 * time.Millisecond); err != nil {
		t.Fatalf("Acquire after Release failed: %v", err)
	}
	if err := guard.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
}

func TestGuardCreateIdempotent(t *testing.T) {
	created := 0
	lock := &countingLock{onCreate: func() { created++ }}
	guard := NewGuard(lock)
	for i := 0; i < 3; i++ {
		if err := guard.Create(); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}
	if created != 1 {
		t.Fatalf("expected a single backend Create call, got %d", created)
	}
}

func TestGuardDestroyThenCreate(t *testing.T) {
	guard := NewGuard(nil)
	if err := guard.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := guard.Destroy(); err != nil {
		t.Fatalf("Destroy failed: %v", err)
	}
	// Destroy on an uncreated guard is a no-op.
	if err := guard.Destroy(); err != nil {
		t.Fatalf("second Destroy failed: %v", err)
	}
	if err := guard.Create(); err != nil {
		t.Fatalf("Create after Destroy failed: %v", err)
	}
}

type countingLock struct {
	NativeLock
	onCreate func()
}

func (l *countingLock) Create() error {
	l.onCreate()
	return l.NativeLock.Create()
}
