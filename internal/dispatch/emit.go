package dispatch

import (
	"lantern/internal/level"
	"lantern/internal/message"
)

// The leveled emitters capture the caller's location and run it through the
// module filter. A level that is disabled in the build configuration is
// rejected here, before any locking or formatting.

func (e *Engine) Trace(format string, args ...any)    { e.emit(level.Trace, format, args...) }
func (e *Engine) Debug(format string, args ...any)    { e.emit(level.Debug, format, args...) }
func (e *Engine) Info(format string, args ...any)     { e.emit(level.Info, format, args...) }
func (e *Engine) Warning(format string, args ...any)  { e.emit(level.Warning, format, args...) }
func (e *Engine) Error(format string, args ...any)    { e.emit(level.Error, format, args...) }
func (e *Engine) Critical(format string, args ...any) { e.emit(level.Critical, format, args...) }
func (e *Engine) Always(format string, args ...any)   { e.emit(level.Always, format, args...) }

func (e *Engine) emit(lvl level.Level, format string, args ...any) {
	if !e.enabled.Has(lvl) {
		return
	}
	e.EmitLocated(lvl, message.Caller(2), format, args...)
}
