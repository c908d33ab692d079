// Package sqlite provides SQLite database operations for dreamlog.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Clock returns the current time. Tests inject fixed clocks.
type Clock func() time.Time

// Store owns the database handle, its prepared statements and the clock used
// for row timestamps. It is the only holder of the handle; repositories
// borrow it.
type Store struct {
	db        *sql.DB
	stmtCache map[string]*sql.Stmt
	now       Clock
	lastStamp time.Time
	stmtMu    sync.RWMutex
	clockMu   sync.Mutex
}

// StoreConfig holds configuration for the database store.
type StoreConfig struct {
	Clock Clock
	// Path is a filesystem path or ":memory:".
	Path string
}

const (
	pragmaForeignKeysOn = `PRAGMA foreign_keys=ON`
	pragmaBusyTimeout   = `PRAGMA busy_timeout=5000`
	pragmaJournalWAL    = `PRAGMA journal_mode=WAL`
	pragmaSynchronous   = `PRAGMA synchronous=NORMAL`
)

// NewStore opens the database at cfg.Path. Schema is not touched here;
// the Registry runs migrations.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("open database: empty path")
	}
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, fmt.Errorf("open database: create parent dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// The handle is not shared across execution contexts, and an in-memory
	// database only exists on its own connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := configureSQLite(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Store{
		db:        db,
		stmtCache: make(map[string]*sql.Stmt),
		now:       clock,
	}, nil
}

func configureSQLite(db *sql.DB) error {
	pragmas := []string{pragmaForeignKeysOn, pragmaBusyTimeout, pragmaJournalWAL, pragmaSynchronous}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("configure sqlite %q: %w", stmt, err)
		}
	}
	return nil
}

// Close closes the database connection and all cached statements.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	s.stmtMu.Lock()
	defer s.stmtMu.Unlock()

	for _, stmt := range s.stmtCache {
		_ = stmt.Close()
	}
	s.stmtCache = nil

	return s.db.Close()
}

// GetStmt returns a cached prepared statement, creating it if necessary.
func (s *Store) GetStmt(query string) (*sql.Stmt, error) {
	s.stmtMu.RLock()
	stmt, ok := s.stmtCache[query]
	s.stmtMu.RUnlock()
	if ok {
		return stmt, nil
	}

	s.stmtMu.Lock()
	defer s.stmtMu.Unlock()

	// Double-check after acquiring write lock
	if stmt, ok := s.stmtCache[query]; ok {
		return stmt, nil
	}

	stmt, err := s.db.Prepare(query)
	if err != nil {
		return nil, err
	}

	s.stmtCache[query] = stmt
	return stmt, nil
}

// ExecContext executes a query that doesn't return rows.
func (s *Store) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	stmt, err := s.GetStmt(query)
	if err != nil {
		return nil, err
	}
	return stmt.ExecContext(ctx, args...)
}

// QueryContext executes a query that returns rows.
func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	stmt, err := s.GetStmt(query)
	if err != nil {
		return nil, err
	}
	return stmt.QueryContext(ctx, args...)
}

// QueryRowContext executes a query that returns a single row.
// Prepare errors surface from the returned row's Scan.
func (s *Store) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	stmt, err := s.GetStmt(query)
	if err != nil {
		// Fall back to direct execution so the prepare error reaches Scan.
		return s.db.QueryRowContext(ctx, query, args...)
	}
	return stmt.QueryRowContext(ctx, args...)
}

// Ping checks if the database connection is alive.
func (s *Store) Ping() error {
	return s.db.Ping()
}

// DB returns the underlying database connection for direct access.
// Migrations use it to run multi-statement scripts outside the statement cache.
func (s *Store) DB() *sql.DB {
	return s.db
}

// timestamp returns the next row timestamp. Values are strictly increasing
// within a Store, even when two writes land in the same millisecond.
func (s *Store) timestamp() string {
	return s.timestampAfter(time.Time{})
}

// timestampAfter returns the next row timestamp, later than both floor and
// every stamp the Store has handed out. Updates pass the row's stored
// updated_at so a clock that stepped back since the row was written cannot
// move it backward.
func (s *Store) timestampAfter(floor time.Time) string {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()

	if floor.After(s.lastStamp) {
		s.lastStamp = floor.UTC().Truncate(time.Millisecond)
	}
	t := s.now().UTC().Truncate(time.Millisecond)
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Millisecond)
	}
	s.lastStamp = t
	return formatTime(t)
}
