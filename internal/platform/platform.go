package platform

import (
	"errors"
	"time"
)

var (
	// ErrTimeout indicates the lock could not be acquired within the timeout.
	ErrTimeout = errors.New("platform: lock acquire timed out")
	// ErrNotCreated indicates a lock operation before Create succeeded.
	ErrNotCreated = errors.New("platform: lock not created")
)

// Locker is the minimal capability a lock backend must provide. Concrete
// backends wrap whatever primitive the execution platform offers; the
// dispatch engine only ever sees this interface.
type Locker interface {
	// Create allocates the underlying lock resource.
	Create() error
	// Acquire takes the lock, waiting at most timeout. Returns ErrTimeout
	// when the lock stayed contended for the full window.
	Acquire(timeout time.Duration) error
	// Release gives the lock back.
	Release() error
	// Destroy frees the lock resource.
	Destroy() error
}

// NativeLock is the process-native fallback backend, always available
// regardless of platform support. Acquire honors timeouts, which the
// standard mutex cannot, so the lock is a one-slot channel.
type NativeLock struct {
	slot chan struct{}
}

func (l *NativeLock) Create() error {
	if l.slot == nil {
		l.slot = make(chan struct{}, 1)
	}
	return nil
}

func (l *NativeLock) Acquire(timeout time.Duration) error {
	if l.slot == nil {
		return ErrNotCreated
	}
	select {
	case l.slot <- struct{}{}:
		return nil
	default:
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case l.slot <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrTimeout
	}
}

func (l *NativeLock) Release() error {
	if l.slot == nil {
		return ErrNotCreated
	}
	select {
	case <-l.slot:
	default:
		// Released without a matching Acquire. This happens when the
		// readiness flag flipped between the paired calls; treat it as
		// a no-op rather than corrupting the slot.
	}
	return nil
}

func (l *NativeLock) Destroy() error {
	l.slot = nil
	return nil
}
