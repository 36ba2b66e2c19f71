package message

import (
	"runtime"
	"strings"
)

// Location identifies the call site a located message was emitted from.
// File is the short file name; it doubles as the module identity used by
// the per-module threshold filter.
type Location struct {
	File     string
	Function string
	Line     int
}

// IsZero reports whether no location was captured.
func (loc Location) IsZero() bool {
	return loc.File == "" && loc.Function == "" && loc.Line == 0
}

// Caller captures the location of a stack frame skip levels above the
// caller of Caller itself. Missing frames yield a zero Location.
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	loc := Location{File: shortFile(file), Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = shortFunc(fn.Name())
	}
	return loc
}

func shortFile(path string) string {
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

func shortFunc(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.Index(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
