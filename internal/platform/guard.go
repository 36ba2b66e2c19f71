package platform

import (
	"sync/atomic"
	"time"
)

// Guard serializes access to shared dispatch state. It wraps a Locker with a
// readiness gate: until the platform is marked ready, Acquire and Release
// succeed immediately without touching the lock. Before the scheduler starts
// only one execution context exists, and dispatch must not deadlock against a
// platform that cannot block yet.
type Guard struct {
	locker  Locker
	ready   atomic.Bool
	created atomic.Bool
}

// NewGuard wraps locker; a nil locker selects the process-native backend.
func NewGuard(locker Locker) *Guard {
	if locker == nil {
		locker = &NativeLock{}
	}
	return &Guard{locker: locker}
}

// Create allocates the underlying lock. Calling it again once the lock
// exists is a no-op success.
func (g *Guard) Create() error {
	if g.created.Load() {
		return nil
	}
	if err := g.locker.Create(); err != nil {
		return err
	}
	g.created.Store(true)
	return nil
}

// SetReady flips the readiness gate. Scheduler startup code calls this once
// the concurrency platform is live.
func (g *Guard) SetReady(ready bool) {
	g.ready.Store(ready)
}

// Ready reports whether the readiness gate is open.
func (g *Guard) Ready() bool {
	return g.ready.Load()
}

// Acquire takes the lock, bypassing it entirely while the platform is not
// ready or the lock was never created.
func (g *Guard) Acquire(timeout time.Duration) error {
	if !g.ready.Load() || !g.created.Load() {
		return nil
	}
	return g.locker.Acquire(timeout)
}

// Release gives the lock back, mirroring the Acquire bypass.
func (g *Guard) Release() error {
	if !g.ready.Load() || !g.created.Load() {
		return nil
	}
	return g.locker.Release()
}

// Destroy frees the lock resource. After Destroy, Create may build it again.
func (g *Guard) Destroy() error {
	if !g.created.Swap(false) {
		return nil
	}
	return g.locker.Destroy()
}
