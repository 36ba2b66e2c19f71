package sink

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"lantern/internal/level"
	"lantern/internal/registry"
)

const (
	ansiReset     = "\x1b[0m"
	ansiRed       = "\x1b[0;31m"
	ansiGreen     = "\x1b[0;32m"
	ansiYellow    = "\x1b[0;33m"
	ansiBlue      = "\x1b[0;34m"
	ansiCyan      = "\x1b[0;36m"
	ansiBoldRed   = "\x1b[1;31m"
	ansiBoldWhite = "\x1b[1;37m"
)

func levelColor(lvl level.Level) string {
	switch lvl {
	case level.Trace:
		return ansiBlue
	case level.Debug:
		return ansiCyan
	case level.Info:
		return ansiGreen
	case level.Warning:
		return ansiYellow
	case level.Error:
		return ansiRed
	case level.Critical:
		return ansiBoldRed
	case level.Always:
		return ansiBoldWhite
	default:
		return ""
	}
}

// Console returns a subscriber that renders "LEVEL: message" lines to w,
// colorized per level when w is a terminal.
func Console(w io.Writer) registry.Func {
	return ConsoleColored(w, shouldColorize(w))
}

// ConsoleColored is Console with the color decision made by the caller.
func ConsoleColored(w io.Writer, colorize bool) registry.Func {
	var mu sync.Mutex
	return func(lvl level.Level, msg string) {
		line := fmt.Sprintf("%s: %s\n", lvl, msg)
		if colorize {
			if color := levelColor(lvl); color != "" {
				line = color + line[:len(line)-1] + ansiReset + "\n"
			}
		}
		mu.Lock()
		_, _ = io.WriteString(w, line)
		mu.Unlock()
	}
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
