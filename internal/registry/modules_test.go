package registry

import (
	"fmt"
	"strings"
	"testing"

	"lantern/internal/level"
)

func TestModuleThresholdDefault(t *testing.T) {
	table := NewModuleThresholds(0, level.Debug)
	if got := table.Get("sensor.go"); got != level.Debug {
		t.Fatalf("unset module returned %v, want fallback %v", got, level.Debug)
	}
}

func TestModuleThresholdSetGet(t *testing.T) {
	table := NewModuleThresholds(4, level.Trace)
	if err := table.Set("sensor.go", level.Error); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := table.Get("sensor.go"); got != level.Error {
		t.Fatalf("Get = %v, want %v", got, level.Error)
	}
	if got := table.Get("other.go"); got != level.Trace {
		t.Fatalf("unrelated module = %v, want fallback", got)
	}
}

func TestModuleThresholdUpdateInPlace(t *testing.T) {
	table := NewModuleThresholds(2, level.Trace)
	if err := table.Set("a.go", level.Warning); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := table.Set("a.go", level.Critical); err != nil {
		t.Fatalf("update Set failed: %v", err)
	}
	if len(table.Snapshot()) != 1 {
		t.Fatalf("update created a duplicate entry: %v", table.Snapshot())
	}
	if got := table.Get("a.go"); got != level.Critical {
		t.Fatalf("Get = %v, want %v", got, level.Critical)
	}
}

func TestModuleThresholdCapacity(t *testing.T) {
	table := NewModuleThresholds(2, level.Trace)
	for i := 0; i < 2; i++ {
		if err := table.Set(fmt.Sprintf("m%d.go", i), level.Info); err != nil {
			t.Fatalf("Set %d failed: %v", i, err)
		}
	}
	if err := table.Set("overflow.go", level.Info); err != ErrCapacityExceeded {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	// Updating an existing entry still works when the table is full.
	if err := table.Set("m0.go", level.Error); err != nil {
		t.Fatalf("update on full table failed: %v", err)
	}
}

func TestModuleThresholdInvalidIdentity(t *testing.T) {
	table := NewModuleThresholds(2, level.Trace)
	if err := table.Set("", level.Info); err != ErrInvalidIdentity {
		t.Fatalf("expected ErrInvalidIdentity, got %v", err)
	}
	if got := table.Get(""); got != level.Trace {
		t.Fatalf("empty identity should return fallback, got %v", got)
	}
}

func TestModuleThresholdLongIdentityClipped(t *testing.T) {
	table := NewModuleThresholds(2, level.Trace)
	long := strings.Repeat("n", MaxModuleIdentity+10) + ".go"
	if err := table.Set(long, level.Error); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	// Lookup clips the same way, so the binding is still reachable.
	if got := table.Get(long); got != level.Error {
		t.Fatalf("clipped identity lookup = %v, want %v", got, level.Error)
	}
	snap := table.Snapshot()
	if len(snap) != 1 || len(snap[0].Module) != MaxModuleIdentity {
		t.Fatalf("stored identity not clipped: %q", snap[0].Module)
	}
}

func TestModuleThresholdReset(t *testing.T) {
	table := NewModuleThresholds(2, level.Info)
	if err := table.Set("a.go", level.Error); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	table.Reset()
	if got := table.Get("a.go"); got != level.Info {
		t.Fatalf("Reset did not clear binding: %v", got)
	}
}
