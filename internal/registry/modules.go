package registry

import "lantern/internal/level"

const (
	// DefaultModuleCapacity bounds the module threshold table.
	DefaultModuleCapacity = 16
	// MaxModuleIdentity caps a module identity in bytes; longer identities
	// are clipped on both store and lookup so they stay consistent.
	MaxModuleIdentity = 32
)

// ModuleThreshold is one stored module → minimum level binding.
type ModuleThreshold struct {
	Module    string
	Threshold level.Level
}

// ModuleThresholds maps emitting-module identities to minimum levels.
// Lookup is a linear scan, first match wins; the table stays small enough
// that this never matters.
type ModuleThresholds struct {
	capacity int
	fallback level.Level
	entries  []ModuleThreshold
}

// NewModuleThresholds builds an empty table. fallback is returned for
// identities with no explicit binding, normally the auto threshold.
func NewModuleThresholds(capacity int, fallback level.Level) *ModuleThresholds {
	if capacity < 1 {
		capacity = DefaultModuleCapacity
	}
	return &ModuleThresholds{
		capacity: capacity,
		fallback: fallback,
		entries:  make([]ModuleThreshold, 0, capacity),
	}
}

// Set binds module to threshold, updating in place when the identity is
// already stored.
func (m *ModuleThresholds) Set(module string, threshold level.Level) error {
	if module == "" {
		return ErrInvalidIdentity
	}
	module = clipIdentity(module)
	for i := range m.entries {
		if m.entries[i].Module == module {
			m.entries[i].Threshold = threshold
			return nil
		}
	}
	if len(m.entries) >= m.capacity {
		return ErrCapacityExceeded
	}
	m.entries = append(m.entries, ModuleThreshold{Module: module, Threshold: threshold})
	return nil
}

// Get returns the threshold bound to module, or the fallback when none is.
func (m *ModuleThresholds) Get(module string) level.Level {
	if module == "" {
		return m.fallback
	}
	module = clipIdentity(module)
	for i := range m.entries {
		if m.entries[i].Module == module {
			return m.entries[i].Threshold
		}
	}
	return m.fallback
}

// Fallback returns the default threshold used for unbound modules.
func (m *ModuleThresholds) Fallback() level.Level { return m.fallback }

// Snapshot lists the stored bindings in insertion order.
func (m *ModuleThresholds) Snapshot() []ModuleThreshold {
	out := make([]ModuleThreshold, len(m.entries))
	copy(out, m.entries)
	return out
}

// Reset clears every binding.
func (m *ModuleThresholds) Reset() {
	m.entries = m.entries[:0]
}

func clipIdentity(id string) string {
	if len(id) > MaxModuleIdentity {
		return id[:MaxModuleIdentity]
	}
	return id
}
