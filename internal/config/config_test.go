package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useDataDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv(EnvPrefix+"DATA_DIR", dir)
	for _, key := range []string{"DB_PATH", "SCHEMA_DIR", "SCHEMA_FILES", "SKIP_MIGRATIONS", "LOG_LEVEL", "DEFAULT_USER_ID"} {
		t.Setenv(EnvPrefix+key, "")
	}
	return dir
}

func TestPaths(t *testing.T) {
	dir := useDataDir(t)

	assert.Equal(t, dir, DataDir())
	assert.Equal(t, filepath.Join(dir, "dreamlog.db"), DBPath())
	assert.Equal(t, filepath.Join(dir, "settings.json"), SettingsPath())
	assert.Equal(t, filepath.Join(dir, "settings.yaml"), YAMLSettingsPath())
}

func TestLoad_Defaults(t *testing.T) {
	dir := useDataDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dreamlog.db"), cfg.DBPath)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, int64(DefaultUserID), cfg.DefaultUserID)
	assert.False(t, cfg.SkipMigrations)
	assert.Empty(t, cfg.SchemaFiles)
}

func TestLoad_JSONSettings(t *testing.T) {
	dir := useDataDir(t)
	settings := `{
  "DREAMLOG_DB_PATH": "/var/lib/dreamlog/journal.db",
  "DREAMLOG_SCHEMA_DIR": "/etc/dreamlog/schema",
  "DREAMLOG_SCHEMA_FILES": "001_base.sql, 002_extra.sql",
  "DREAMLOG_SKIP_MIGRATIONS": true,
  "DREAMLOG_LOG_LEVEL": "debug",
  "DREAMLOG_DEFAULT_USER_ID": 7
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(settings), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/dreamlog/journal.db", cfg.DBPath)
	assert.Equal(t, "/etc/dreamlog/schema", cfg.SchemaDir)
	assert.Equal(t, []string{"001_base.sql", "002_extra.sql"}, cfg.SchemaFiles)
	assert.True(t, cfg.SkipMigrations)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(7), cfg.DefaultUserID)
}

func TestLoad_YAMLSettings(t *testing.T) {
	dir := useDataDir(t)
	settings := `DREAMLOG_LOG_LEVEL: warn
DREAMLOG_DEFAULT_USER_ID: 3
DREAMLOG_SCHEMA_FILES:
  - base.sql
  - seed.sql
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(settings), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, int64(3), cfg.DefaultUserID)
	assert.Equal(t, []string{"base.sql", "seed.sql"}, cfg.SchemaFiles)
}

func TestLoad_JSONTakesPrecedenceOverYAML(t *testing.T) {
	dir := useDataDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"DREAMLOG_LOG_LEVEL": "error"}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte("DREAMLOG_LOG_LEVEL: debug\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestLoad_MalformedSettingsFallsBackToDefaults(t *testing.T) {
	dir := useDataDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{not json`), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := useDataDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{"DREAMLOG_LOG_LEVEL": "error"}`), 0o600))

	t.Setenv(EnvPrefix+"LOG_LEVEL", "trace")
	t.Setenv(EnvPrefix+"DB_PATH", "/tmp/override.db")
	t.Setenv(EnvPrefix+"SKIP_MIGRATIONS", "true")
	t.Setenv(EnvPrefix+"DEFAULT_USER_ID", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.Equal(t, "/tmp/override.db", cfg.DBPath)
	assert.True(t, cfg.SkipMigrations)
	assert.Equal(t, int64(DefaultUserID), cfg.DefaultUserID, "invalid values are ignored")
}

func TestEnsureAll(t *testing.T) {
	dir := filepath.Join(useDataDir(t), "nested")
	t.Setenv(EnvPrefix+"DATA_DIR", dir)

	require.NoError(t, EnsureAll())
	assert.FileExists(t, filepath.Join(dir, "settings.json"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)

	// An existing file is left alone.
	require.NoError(t, os.WriteFile(SettingsPath(), []byte(`{"DREAMLOG_LOG_LEVEL": "debug"}`), 0o600))
	require.NoError(t, EnsureSettings())
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestInDataDir(t *testing.T) {
	dir := useDataDir(t)

	assert.True(t, InDataDir(DBPath()))
	assert.True(t, InDataDir(filepath.Join(dir, "journals", "old.db")))
	assert.False(t, InDataDir(filepath.Join(filepath.Dir(dir), "elsewhere.db")))
	assert.False(t, InDataDir(dir+"-other/dreamlog.db"))
	assert.False(t, InDataDir("relative.db"))
}

func TestSplitTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitTrim(" a , ,b,"))
	assert.Empty(t, splitTrim(""))
}
