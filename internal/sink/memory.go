package sink

import (
	"sync"
	"time"

	"lantern/internal/level"
	"lantern/internal/registry"
)

// Event is one delivered message as observed by the memory sink.
type Event struct {
	Sequence  uint64
	Timestamp time.Time
	Level     level.Level
	Message   string
}

// Memory stores the most recent delivered messages in a bounded ring.
// The daemon's tail endpoint reads from it; it never blocks the engine.
type Memory struct {
	mu       sync.Mutex
	capacity int
	buffer   []Event
	nextSeq  uint64
}

// NewMemory builds a ring holding up to capacity events.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = 512
	}
	return &Memory{capacity: capacity}
}

// Func returns the subscriber function feeding this ring.
func (m *Memory) Func() registry.Func {
	return func(lvl level.Level, msg string) {
		m.mu.Lock()
		m.nextSeq++
		if len(m.buffer) == m.capacity {
			copy(m.buffer, m.buffer[1:])
			m.buffer = m.buffer[:m.capacity-1]
		}
		m.buffer = append(m.buffer, Event{
			Sequence:  m.nextSeq,
			Timestamp: time.Now().UTC(),
			Level:     lvl,
			Message:   msg,
		})
		m.mu.Unlock()
	}
}

// Events returns the buffered events with sequence numbers greater than
// since, oldest first.
func (m *Memory) Events(since uint64) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	start := 0
	for start < len(m.buffer) && m.buffer[start].Sequence <= since {
		start++
	}
	out := make([]Event, len(m.buffer)-start)
	copy(out, m.buffer[start:])
	return out
}

// Len returns the number of buffered events.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buffer)
}
