package message

import "fmt"

const (
	// DefaultCapacity bounds the rendered message, terminator included.
	DefaultCapacity = 128
	// DefaultLocationReserve is the slice of the buffer held back for the
	// [file][function][line] prefix in located rendering.
	DefaultLocationReserve = 64
)

// Buffer renders leveled messages into a fixed-capacity scratch space that
// is reused for every dispatch. The engine is the sole writer for the
// duration of one dispatch call; subscribers receive an immutable copy.
type Buffer struct {
	capacity int
	reserve  int
	out      []byte
	scratch  []byte
}

// NewBuffer builds a formatting buffer. Non-positive or inconsistent
// arguments fall back to the defaults.
func NewBuffer(capacity, reserve int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if reserve <= 0 || reserve >= capacity {
		reserve = DefaultLocationReserve
		if reserve >= capacity {
			reserve = capacity / 2
		}
	}
	return &Buffer{
		capacity: capacity,
		reserve:  reserve,
		out:      make([]byte, 0, capacity),
		scratch:  make([]byte, 0, capacity),
	}
}

// Capacity returns the full buffer capacity in bytes.
func (b *Buffer) Capacity() int { return b.capacity }

// Format renders a plain message. The result is truncated to capacity-1
// bytes; formatting never fails.
func (b *Buffer) Format(format string, args ...any) string {
	b.out = fmt.Appendf(b.out[:0], format, args...)
	return string(clip(b.out, b.capacity-1))
}

// FormatLocated renders the user text into the reserved sub-buffer first,
// then re-renders it behind the [file][function][line] prefix. A combined
// result past capacity is truncated, never an error.
func (b *Buffer) FormatLocated(loc Location, format string, args ...any) string {
	b.scratch = fmt.Appendf(b.scratch[:0], format, args...)
	text := clip(b.scratch, b.capacity-b.reserve-1)
	b.out = fmt.Appendf(b.out[:0], "[%s][%s][%d] %s", loc.File, loc.Function, loc.Line, text)
	return string(clip(b.out, b.capacity-1))
}

func clip(p []byte, max int) []byte {
	if max < 0 {
		max = 0
	}
	if len(p) > max {
		return p[:max]
	}
	return p
}
