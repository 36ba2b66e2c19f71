package registry

import "lantern/internal/level"

// DefaultSubscriberCapacity bounds the subscriber table when the caller
// does not size it explicitly.
const DefaultSubscriberCapacity = 6

// Func is the delivery boundary every subscriber implements: it receives
// the severity and the fully rendered message. The engine has no contract
// for handler failures; a handler that blocks breaks the non-blocking
// guarantee for everyone behind it.
type Func func(lvl level.Level, msg string)

// Subscription describes one slot of the subscriber table.
type Subscription struct {
	Name      string
	Threshold level.Level
	Active    bool
}

type subscriberEntry struct {
	name      string
	fn        Func
	threshold level.Level
	active    bool
}

// Subscribers is the bounded, ordered table of delivery targets. Insertion
// order is delivery order. Slots freed by Unsubscribe are never reclaimed,
// so heavy churn can exhaust the table before the nominal capacity; that is
// the table's capacity policy, not an accident.
type Subscribers struct {
	capacity int
	entries  []subscriberEntry
}

// NewSubscribers builds an empty table with the given capacity; values
// below one select the default.
func NewSubscribers(capacity int) *Subscribers {
	if capacity < 1 {
		capacity = DefaultSubscriberCapacity
	}
	return &Subscribers{
		capacity: capacity,
		entries:  make([]subscriberEntry, 0, capacity),
	}
}

// Subscribe registers fn under name with the given minimum level. When name
// already holds an active slot its threshold is updated in place; otherwise
// a new slot is appended while room remains.
func (s *Subscribers) Subscribe(name string, fn Func, threshold level.Level) error {
	if name == "" {
		return ErrInvalidIdentity
	}
	for i := range s.entries {
		if s.entries[i].active && s.entries[i].name == name {
			s.entries[i].fn = fn
			s.entries[i].threshold = threshold
			return nil
		}
	}
	if len(s.entries) >= s.capacity {
		return ErrSubscribersExceeded
	}
	s.entries = append(s.entries, subscriberEntry{
		name:      name,
		fn:        fn,
		threshold: threshold,
		active:    true,
	})
	return nil
}

// Unsubscribe deactivates the first active slot registered under name. The
// slot itself is not freed.
func (s *Subscribers) Unsubscribe(name string) error {
	for i := range s.entries {
		if s.entries[i].active && s.entries[i].name == name {
			s.entries[i].active = false
			return nil
		}
	}
	return ErrNotSubscribed
}

// Deliver invokes every active subscriber whose threshold admits lvl, in
// registration order, and reports how many were invoked. The caller must
// hold the dispatch lock.
func (s *Subscribers) Deliver(lvl level.Level, msg string) int {
	delivered := 0
	for i := range s.entries {
		if s.entries[i].active && lvl >= s.entries[i].threshold {
			s.entries[i].fn(lvl, msg)
			delivered++
		}
	}
	return delivered
}

// ActiveCount returns the number of active slots.
func (s *Subscribers) ActiveCount() int {
	count := 0
	for i := range s.entries {
		if s.entries[i].active {
			count++
		}
	}
	return count
}

// Capacity returns the nominal slot limit.
func (s *Subscribers) Capacity() int { return s.capacity }

// Snapshot lists every slot in registration order, inactive ones included.
func (s *Subscribers) Snapshot() []Subscription {
	out := make([]Subscription, 0, len(s.entries))
	for i := range s.entries {
		out = append(out, Subscription{
			Name:      s.entries[i].name,
			Threshold: s.entries[i].threshold,
			Active:    s.entries[i].active,
		})
	}
	return out
}

// Reset clears every slot, returning the table to its initial state.
func (s *Subscribers) Reset() {
	s.entries = s.entries[:0]
}
