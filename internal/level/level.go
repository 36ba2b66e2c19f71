package level

import (
	"fmt"
	"strings"
)

// Level is the severity of a log message. Levels are totally ordered and
// compared numerically: a message passes a threshold when its level is
// greater than or equal to it.
type Level int

// Severity levels from least to most severe. The numeric base mirrors the
// wire values used by existing subscribers.
const (
	Trace Level = iota + 100
	Debug
	Info
	Warning
	Error
	Critical
	Always
)

// Valid reports whether l is one of the defined severity levels.
func (l Level) Valid() bool {
	return l >= Trace && l <= Always
}

func (l Level) String() string {
	switch l {
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Critical:
		return "CRITICAL"
	case Always:
		return "ALWAYS"
	default:
		return "UNKNOWN"
	}
}

// Parse converts a case-insensitive level name into a Level.
func Parse(name string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "TRACE":
		return Trace, nil
	case "DEBUG":
		return Debug, nil
	case "INFO":
		return Info, nil
	case "WARNING", "WARN":
		return Warning, nil
	case "ERROR":
		return Error, nil
	case "CRITICAL":
		return Critical, nil
	case "ALWAYS":
		return Always, nil
	default:
		return 0, fmt.Errorf("level: unknown name %q", name)
	}
}

// Enabled records which levels the deployment compiles in. Disabled levels
// are skipped by the leveled emitters before any other work happens.
type Enabled struct {
	Trace    bool
	Debug    bool
	Info     bool
	Warning  bool
	Error    bool
	Critical bool
	Always   bool
}

// AllEnabled returns an Enabled set with every level switched on.
func AllEnabled() Enabled {
	return Enabled{
		Trace:    true,
		Debug:    true,
		Info:     true,
		Warning:  true,
		Error:    true,
		Critical: true,
		Always:   true,
	}
}

// Has reports whether lvl is enabled.
func (e Enabled) Has(lvl Level) bool {
	switch lvl {
	case Trace:
		return e.Trace
	case Debug:
		return e.Debug
	case Info:
		return e.Info
	case Warning:
		return e.Warning
	case Error:
		return e.Error
	case Critical:
		return e.Critical
	case Always:
		return e.Always
	default:
		return false
	}
}

// AutoThreshold computes the default threshold for the configured level set:
// the lowest enabled level, or Always when everything is switched off.
func AutoThreshold(e Enabled) Level {
	for lvl := Trace; lvl <= Always; lvl++ {
		if e.Has(lvl) {
			return lvl
		}
	}
	return Always
}

// All lists every defined level in ascending severity order.
func All() []Level {
	return []Level{Trace, Debug, Info, Warning, Error, Critical, Always}
}
