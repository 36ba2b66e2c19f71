package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"lantern/internal/level"
	"lantern/internal/registry"
)

// File appends timestamped log lines to a single file. Writes are
// serialized locally so the sink stays safe even when the engine runs in
// its early-boot bypass window.
type File struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// NewFile opens (or creates) the log file at path, creating parent
// directories as needed.
func NewFile(path string) (*File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return &File{f: f, path: path}, nil
}

// Func returns the subscriber function backed by this file.
func (s *File) Func() registry.Func {
	return func(lvl level.Level, msg string) {
		line := fmt.Sprintf("%s %s: %s\n", time.Now().UTC().Format(time.RFC3339), lvl, msg)
		s.mu.Lock()
		_, _ = s.f.WriteString(line)
		s.mu.Unlock()
	}
}

// Path returns the file location.
func (s *File) Path() string { return s.path }

// Close flushes and closes the file.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
