package dispatch

// Stats is a point-in-time snapshot of the engine counters. Dropped counts
// messages lost to lock-acquisition timeouts; the drop itself stays silent
// on the emission path, the counters only record that it happened.
type Stats struct {
	Delivered    uint64
	Dropped      uint64
	LockTimeouts uint64
}

// Stats returns the current counter values.
func (e *Engine) Stats() Stats {
	return Stats{
		Delivered:    e.delivered.Load(),
		Dropped:      e.dropped.Load(),
		LockTimeouts: e.lockTimeouts.Load(),
	}
}
