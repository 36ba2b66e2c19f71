package daemon

import (
	"context"
	"sync"
	"time"

	"lantern/internal/dispatch"
	"lantern/internal/level"
	"lantern/internal/message"
)

// emitters drives sample log traffic from a few concurrent contexts, each
// emitting under its own module identity so per-module thresholds have
// something to bite on.
type emitters struct {
	engine *dispatch.Engine
	wg     sync.WaitGroup
}

func newEmitters(engine *dispatch.Engine) *emitters {
	return &emitters{engine: engine}
}

func (e *emitters) start(ctx context.Context) {
	e.worker(ctx, 400*time.Millisecond, func(tick int) {
		loc := message.Location{File: "sensor.go", Function: "poll", Line: 42}
		e.engine.EmitLocated(level.Debug, loc, "sample %d read", tick)
		if tick%5 == 0 {
			e.engine.EmitLocated(level.Info, loc, "averaged %d samples", 5)
		}
	})
	e.worker(ctx, 700*time.Millisecond, func(tick int) {
		loc := message.Location{File: "comms.go", Function: "txLoop", Line: 88}
		e.engine.EmitLocated(level.Trace, loc, "frame %d queued", tick)
		if tick%7 == 0 {
			e.engine.EmitLocated(level.Warning, loc, "retransmit on frame %d", tick)
		}
	})
	e.worker(ctx, 1500*time.Millisecond, func(tick int) {
		loc := message.Location{File: "power.go", Function: "monitor", Line: 17}
		e.engine.EmitLocated(level.Info, loc, "battery at %d%%", 100-tick%100)
		if tick%11 == 0 {
			e.engine.EmitLocated(level.Error, loc, "brownout glitch detected")
		}
	})
}

func (e *emitters) worker(ctx context.Context, interval time.Duration, emit func(tick int)) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tick++
				emit(tick)
			}
		}
	}()
}

func (e *emitters) wait() {
	e.wg.Wait()
}
