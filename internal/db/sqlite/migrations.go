package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// DefaultSchemaFile is applied when MigrationOptions lists no files.
const DefaultSchemaFile = "schema.sql"

//go:embed schema.sql
var embeddedSchema embed.FS

// ErrSchemaFileMissing is returned when a schema script cannot be found.
// The migration state stays unset so a later run can succeed once the file exists.
var ErrSchemaFileMissing = errors.New("schema file not found")

var meter = otel.Meter("github.com/thebtf/dreamlog/internal/db/sqlite")

// Executor runs SQL that returns no rows. *sql.DB, *sql.Tx and *Store satisfy it.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// MigrationState records whether schema scripts have been applied. One state
// is shared by every run that should apply the schema at most once.
type MigrationState struct {
	mu      sync.Mutex
	applied bool
}

// NewMigrationState returns a state with nothing applied.
func NewMigrationState() *MigrationState {
	return &MigrationState{}
}

// Applied reports whether a run has completed successfully.
func (s *MigrationState) Applied() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applied
}

// Reset forgets a previous successful run. Intended for test harnesses only.
func (s *MigrationState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applied = false
}

// MigrationOptions selects the scripts to run and optional observers.
type MigrationOptions struct {
	// FS resolves relative script names. Takes precedence over Dir.
	FS fs.FS
	// OnBeforeExecute receives the resolved path and script text.
	OnBeforeExecute func(path, sql string)
	// OnAfterExecute receives the resolved path after the script ran.
	OnAfterExecute func(path string)
	// Dir resolves relative script names on disk when FS is nil.
	// With both unset the embedded schema is used.
	Dir string
	// Files are applied in order. Absolute paths are read from disk directly.
	Files []string
}

// MigrationManager applies schema scripts through an Executor.
type MigrationManager struct {
	exec  Executor
	state *MigrationState
}

// NewMigrationManager creates a new migration manager. A nil state gets a
// fresh one, which makes the manager apply scripts on its first run only.
func NewMigrationManager(exec Executor, state *MigrationState) *MigrationManager {
	if state == nil {
		state = NewMigrationState()
	}
	return &MigrationManager{exec: exec, state: state}
}

// State returns the run-once state the manager consults.
func (m *MigrationManager) State() *MigrationState {
	return m.state
}

// RunMigrations applies every script in opts.Files in order. Once a run has
// succeeded against the manager's state, later calls return nil immediately
// whatever their options. A missing script or an execution error stops the
// sequence and leaves the state unset.
func (m *MigrationManager) RunMigrations(ctx context.Context, opts MigrationOptions) error {
	m.state.mu.Lock()
	defer m.state.mu.Unlock()

	if m.state.applied {
		return nil
	}

	files := opts.Files
	if len(files) == 0 {
		files = []string{DefaultSchemaFile}
	}

	runID := uuid.NewString()
	log.Debug().Str("run_id", runID).Strs("files", files).Msg("Applying schema scripts")

	for _, file := range files {
		path, script, err := readScript(file, opts)
		if err != nil {
			log.Error().Err(err).Str("run_id", runID).Str("path", path).Msg("Schema script unavailable")
			return err
		}

		if opts.OnBeforeExecute != nil {
			opts.OnBeforeExecute(path, script)
		}
		if err := m.ApplyScript(ctx, path, script); err != nil {
			log.Error().Err(err).Str("run_id", runID).Str("path", path).Msg("Schema script failed")
			return err
		}
		if opts.OnAfterExecute != nil {
			opts.OnAfterExecute(path)
		}
	}

	m.state.applied = true
	log.Info().Str("run_id", runID).Int("scripts", len(files)).Msg("Schema migrations applied")
	return nil
}

// ApplyScript executes a single schema script. It ignores the run-once state.
func (m *MigrationManager) ApplyScript(ctx context.Context, path, script string) error {
	if _, err := m.exec.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("execute schema script %s: %w", path, err)
	}
	if counter, err := meter.Int64Counter("dreamlog.migrations.scripts_applied",
		metric.WithDescription("Schema scripts executed successfully")); err == nil {
		counter.Add(ctx, 1)
	}
	return nil
}

// readScript resolves file against opts and reads it fully.
func readScript(file string, opts MigrationOptions) (string, string, error) {
	var (
		path string
		data []byte
		err  error
	)

	switch {
	case filepath.IsAbs(file):
		path = file
		data, err = os.ReadFile(path)
	case opts.FS != nil:
		path = file
		data, err = fs.ReadFile(opts.FS, file)
	case opts.Dir != "":
		path = filepath.Join(opts.Dir, file)
		data, err = os.ReadFile(path)
	default:
		path = file
		data, err = fs.ReadFile(embeddedSchema, file)
	}

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, "", fmt.Errorf("%w: %s", ErrSchemaFileMissing, path)
		}
		return path, "", fmt.Errorf("read schema script %s: %w", path, err)
	}
	return path, string(data), nil
}
