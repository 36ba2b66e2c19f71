package dispatch

import (
	"fmt"
	"sync/atomic"
	"time"

	"lantern/internal/level"
	"lantern/internal/message"
	"lantern/internal/platform"
	"lantern/internal/registry"
)

// DefaultLockTimeout bounds how long an emission waits for the dispatch
// lock before the message is dropped.
const DefaultLockTimeout = 100 * time.Millisecond

// Options configures an Engine. Zero values select the documented defaults.
type Options struct {
	// Locker supplies the platform lock backend; nil selects the
	// process-native lock.
	Locker platform.Locker
	// BufferCapacity bounds the rendered message in bytes.
	BufferCapacity int
	// LocationReserve is held back for the located-message prefix.
	LocationReserve int
	// SubscriberCapacity bounds the subscriber table.
	SubscriberCapacity int
	// ModuleCapacity bounds the module threshold table.
	ModuleCapacity int
	// LockTimeout bounds lock acquisition per dispatch.
	LockTimeout time.Duration
	// Enabled selects which levels the leveled emitters compile in. The
	// zero value enables everything.
	Enabled level.Enabled
}

// Engine fans each emitted message out to the registered subscribers. One
// coarse lock covers the whole of a dispatch call, formatting included, so
// the shared buffer is never observed half-written.
type Engine struct {
	guard   *platform.Guard
	buf     *message.Buffer
	subs    *registry.Subscribers
	modules *registry.ModuleThresholds
	timeout time.Duration
	enabled level.Enabled
	auto    level.Level

	delivered    atomic.Uint64
	dropped      atomic.Uint64
	lockTimeouts atomic.Uint64
}

// New builds an Engine from opts. Call Initialize before first use.
func New(opts Options) *Engine {
	enabled := opts.Enabled
	if enabled == (level.Enabled{}) {
		enabled = level.AllEnabled()
	}
	timeout := opts.LockTimeout
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	auto := level.AutoThreshold(enabled)
	return &Engine{
		guard:   platform.NewGuard(opts.Locker),
		buf:     message.NewBuffer(opts.BufferCapacity, opts.LocationReserve),
		subs:    registry.NewSubscribers(opts.SubscriberCapacity),
		modules: registry.NewModuleThresholds(opts.ModuleCapacity, auto),
		timeout: timeout,
		enabled: enabled,
		auto:    auto,
	}
}

// Initialize clears both registries and the counters and creates the lock
// resource. It may be called again to reinitialize; the lock is only
// created once.
func (e *Engine) Initialize() error {
	if err := e.guard.Create(); err != nil {
		return fmt.Errorf("create dispatch lock: %w", err)
	}
	if err := e.guard.Acquire(e.timeout); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	e.subs.Reset()
	e.modules.Reset()
	e.delivered.Store(0)
	e.dropped.Store(0)
	e.lockTimeouts.Store(0)
	return e.guard.Release()
}

// Close releases the lock resource. No other teardown is required.
func (e *Engine) Close() error {
	return e.guard.Destroy()
}

// SetPlatformReady signals that the concurrency platform is live. Until
// then every lock operation is bypassed; see platform.Guard.
func (e *Engine) SetPlatformReady(ready bool) {
	e.guard.SetReady(ready)
}

// AutoThreshold returns the default threshold derived from the enabled
// level set.
func (e *Engine) AutoThreshold() level.Level { return e.auto }

// Subscribe registers a delivery target. Registration-time failures are
// returned to the caller; they are configuration errors and actionable.
func (e *Engine) Subscribe(name string, fn registry.Func, threshold level.Level) error {
	if err := e.guard.Acquire(e.timeout); err != nil {
		return fmt.Errorf("subscribe %s: %w", name, err)
	}
	defer e.guard.Release()
	return e.subs.Subscribe(name, fn, threshold)
}

// Unsubscribe deactivates a delivery target.
func (e *Engine) Unsubscribe(name string) error {
	if err := e.guard.Acquire(e.timeout); err != nil {
		return fmt.Errorf("unsubscribe %s: %w", name, err)
	}
	defer e.guard.Release()
	return e.subs.Unsubscribe(name)
}

// SetModuleThreshold binds a minimum level to an emitting module identity.
func (e *Engine) SetModuleThreshold(module string, threshold level.Level) error {
	if err := e.guard.Acquire(e.timeout); err != nil {
		return fmt.Errorf("set module threshold %s: %w", module, err)
	}
	defer e.guard.Release()
	return e.modules.Set(module, threshold)
}

// ModuleThreshold returns the threshold for module, or the auto default.
func (e *Engine) ModuleThreshold(module string) level.Level {
	if err := e.guard.Acquire(e.timeout); err != nil {
		return e.auto
	}
	defer e.guard.Release()
	return e.modules.Get(module)
}

// Subscriptions returns a point-in-time copy of the subscriber table.
func (e *Engine) Subscriptions() []registry.Subscription {
	if err := e.guard.Acquire(e.timeout); err != nil {
		return nil
	}
	defer e.guard.Release()
	return e.subs.Snapshot()
}

// ModuleThresholds returns a point-in-time copy of the module table.
func (e *Engine) ModuleThresholds() []registry.ModuleThreshold {
	if err := e.guard.Acquire(e.timeout); err != nil {
		return nil
	}
	defer e.guard.Release()
	return e.modules.Snapshot()
}

// Emit formats and delivers a message with no module identity attached.
// Emission never blocks past the lock timeout and never surfaces an error;
// an undeliverable message is dropped.
func (e *Engine) Emit(lvl level.Level, format string, args ...any) {
	if err := e.guard.Acquire(e.timeout); err != nil {
		e.lockTimeouts.Add(1)
		e.dropped.Add(1)
		return
	}
	defer e.guard.Release()

	msg := e.buf.Format(format, args...)
	e.deliver(lvl, msg)
}

// EmitLocated formats and delivers a message annotated with its call site.
// The module filter runs first: a message below its module threshold
// short-circuits before any formatting work, and reaches no subscriber at
// all, regardless of subscriber thresholds.
func (e *Engine) EmitLocated(lvl level.Level, loc message.Location, format string, args ...any) {
	if err := e.guard.Acquire(e.timeout); err != nil {
		e.lockTimeouts.Add(1)
		e.dropped.Add(1)
		return
	}
	defer e.guard.Release()

	if lvl < e.modules.Get(loc.File) {
		return
	}
	msg := e.buf.FormatLocated(loc, format, args...)
	e.deliver(lvl, msg)
}

func (e *Engine) deliver(lvl level.Level, msg string) {
	n := e.subs.Deliver(lvl, msg)
	if n > 0 {
		e.delivered.Add(uint64(n))
	}
}
