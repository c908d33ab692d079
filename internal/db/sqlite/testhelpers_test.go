package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testEpoch is the wall time seen by test stores. The store clock still
// advances one millisecond per stamp.
var testEpoch = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testEpoch }

// testStore opens an empty database in a temp dir. It is closed with the test.
func testStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(StoreConfig{
		Path:  filepath.Join(t.TempDir(), "test.db"),
		Clock: fixedClock,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// testRegistry opens a migrated registry over a fresh store.
func testRegistry(t *testing.T) *Registry {
	t.Helper()

	reg, err := Open(context.Background(), testStore(t), RegistryOptions{})
	require.NoError(t, err)
	require.True(t, reg.Ready())
	return reg
}

// countRows returns the number of rows in table.
func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()

	var n int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
