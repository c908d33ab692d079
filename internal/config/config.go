// Package config provides configuration management for dreamlog.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"

	// DefaultUserID owns seeded horoscope placeholders when none is given.
	DefaultUserID = 1

	// EnvPrefix prefixes every settings key and environment override.
	EnvPrefix = "DREAMLOG_"
)

// Config holds the application configuration.
type Config struct {
	// Database settings
	DBPath string `json:"db_path" yaml:"db_path"`

	// Migration settings
	SchemaDir      string   `json:"schema_dir" yaml:"schema_dir"`     // empty uses the embedded schema
	SchemaFiles    []string `json:"schema_files" yaml:"schema_files"` // applied in order
	SkipMigrations bool     `json:"skip_migrations" yaml:"skip_migrations"`

	LogLevel      string `json:"log_level" yaml:"log_level"`
	DefaultUserID int64  `json:"default_user_id" yaml:"default_user_id"`
}

var (
	globalConfig *Config
	configOnce   sync.Once
)

// DataDir returns the data directory path (~/.dreamlog).
// DREAMLOG_DATA_DIR overrides it.
func DataDir() string {
	if dir := os.Getenv(EnvPrefix + "DATA_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".dreamlog")
}

// DBPath returns the database file path.
func DBPath() string {
	return filepath.Join(DataDir(), "dreamlog.db")
}

// SettingsPath returns the JSON settings file path.
func SettingsPath() string {
	return filepath.Join(DataDir(), "settings.json")
}

// YAMLSettingsPath returns the YAML settings file path, read when the JSON
// file does not exist.
func YAMLSettingsPath() string {
	return filepath.Join(DataDir(), "settings.yaml")
}

// InDataDir reports whether path lies inside DataDir.
func InDataDir(path string) bool {
	rel, err := filepath.Rel(DataDir(), path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0750)
}

// EnsureSettings creates a default settings file if neither settings file exists.
func EnsureSettings() error {
	for _, path := range []string{SettingsPath(), YAMLSettingsPath()} {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
	}

	defaultSettings := `{
  "DREAMLOG_LOG_LEVEL": "info",
  "DREAMLOG_DEFAULT_USER_ID": 1,
  "DREAMLOG_SKIP_MIGRATIONS": false
}
`
	return os.WriteFile(SettingsPath(), []byte(defaultSettings), 0600)
}

// EnsureAll ensures all required directories and files exist.
func EnsureAll() error {
	if err := EnsureDataDir(); err != nil {
		return err
	}
	if err := EnsureSettings(); err != nil {
		return err
	}
	return nil
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DBPath:        DBPath(),
		LogLevel:      DefaultLogLevel,
		DefaultUserID: DefaultUserID,
	}
}

// Load loads configuration from the settings file, merging with defaults,
// then applies environment overrides.
func Load() (*Config, error) {
	cfg := Default()

	settings, err := readSettings()
	if err != nil {
		return nil, err
	}
	if settings != nil {
		apply(cfg, settings)
	}
	applyEnv(cfg)
	return cfg, nil
}

// readSettings returns the parsed settings map, or nil when no settings file
// exists. A malformed file yields nil so defaults apply.
func readSettings() (map[string]any, error) {
	data, err := os.ReadFile(SettingsPath())
	if err == nil {
		var settings map[string]any
		if err := json.Unmarshal(data, &settings); err != nil {
			return nil, nil
		}
		return settings, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	data, err = os.ReadFile(YAMLSettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var settings map[string]any
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, nil
	}
	return settings, nil
}

func apply(cfg *Config, settings map[string]any) {
	if v, ok := settings[EnvPrefix+"DB_PATH"].(string); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := settings[EnvPrefix+"SCHEMA_DIR"].(string); ok {
		cfg.SchemaDir = v
	}
	switch v := settings[EnvPrefix+"SCHEMA_FILES"].(type) {
	case string:
		cfg.SchemaFiles = splitTrim(v)
	case []any:
		files := make([]string, 0, len(v))
		for _, f := range v {
			if s, ok := f.(string); ok && strings.TrimSpace(s) != "" {
				files = append(files, strings.TrimSpace(s))
			}
		}
		cfg.SchemaFiles = files
	}
	if v, ok := settings[EnvPrefix+"SKIP_MIGRATIONS"].(bool); ok {
		cfg.SkipMigrations = v
	}
	if v, ok := settings[EnvPrefix+"LOG_LEVEL"].(string); ok && v != "" {
		cfg.LogLevel = v
	}
	// JSON numbers decode as float64, YAML integers as int.
	switch v := settings[EnvPrefix+"DEFAULT_USER_ID"].(type) {
	case float64:
		if v > 0 {
			cfg.DefaultUserID = int64(v)
		}
	case int:
		if v > 0 {
			cfg.DefaultUserID = int64(v)
		}
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvPrefix + "SCHEMA_DIR"); v != "" {
		cfg.SchemaDir = v
	}
	if v := os.Getenv(EnvPrefix + "SCHEMA_FILES"); v != "" {
		cfg.SchemaFiles = splitTrim(v)
	}
	if v := os.Getenv(EnvPrefix + "SKIP_MIGRATIONS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SkipMigrations = b
		}
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvPrefix + "DEFAULT_USER_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			cfg.DefaultUserID = id
		}
	}
}

// splitTrim splits a comma-separated string and trims whitespace.
func splitTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	configOnce.Do(func() {
		var err error
		globalConfig, err = Load()
		if err != nil {
			globalConfig = Default()
		}
	})
	return globalConfig
}
