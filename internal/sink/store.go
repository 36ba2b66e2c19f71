package sink

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"lantern/internal/level"
	"lantern/internal/registry"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS log_entries (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    session    TEXT    NOT NULL,
    level      TEXT    NOT NULL,
    message    TEXT    NOT NULL,
    created_at TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_log_entries_session ON log_entries(session);
`

// Store persists delivered messages in SQLite. Each Store instance writes
// under its own session ID so runs can be told apart afterwards.
type Store struct {
	db      *sql.DB
	path    string
	session string
	logger  *slog.Logger
}

// Entry is one persisted log row.
type Entry struct {
	ID        int64
	Session   string
	Level     string
	Message   string
	CreatedAt time.Time
}

// OpenStore initializes or connects to the log database at path.
func OpenStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure store directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(storeSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{
		db:      db,
		path:    path,
		session: uuid.NewString(),
		logger:  logger,
	}, nil
}

// Session returns the session ID rows from this Store are tagged with.
func (s *Store) Session() string { return s.session }

// Func returns the subscriber function that persists each delivery. Insert
// failures are logged and swallowed; the engine has no contract for
// handler errors.
func (s *Store) Func() registry.Func {
	return func(lvl level.Level, msg string) {
		_, err := s.db.Exec(
			`INSERT INTO log_entries (session, level, message, created_at) VALUES (?, ?, ?, ?)`,
			s.session, lvl.String(), msg, time.Now().UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			s.logger.Warn("persist log entry", "error", err)
		}
	}
}

// Recent returns up to limit rows from this session, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session, level, message, created_at
		 FROM log_entries WHERE session = ? ORDER BY id DESC LIMIT ?`,
		s.session, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query log entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var created string
		if err := rows.Scan(&entry.ID, &entry.Session, &entry.Level, &entry.Message, &created); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, created); parseErr == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
