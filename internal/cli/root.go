// Package cli implements the dreamlog command line.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thebtf/dreamlog/internal/config"
	"github.com/thebtf/dreamlog/internal/db/sqlite"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	cfg       *config.Config
	DBPath    string
	LogLevel  string
	NoMigrate bool
}

// NewRootCommand creates the root command using the global configuration.
func NewRootCommand() *cobra.Command {
	return newRootCommand(config.Get())
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	opts := &RootOptions{cfg: cfg}

	cmd := &cobra.Command{
		Use:           "dreamlog",
		Short:         "dreamlog - local dream journal storage",
		Long:          "Manage the dreamlog SQLite database: apply the schema, seed reference content and inspect stored records.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(opts.LogLevel)
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid log level %q", opts.LogLevel))
			}
			zerolog.SetGlobalLevel(level)
			opts.prepareDataDir()
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", cfg.DBPath, "database file path")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", cfg.LogLevel, "log level (trace|debug|info|warn|error|disabled)")
	cmd.PersistentFlags().BoolVar(&opts.NoMigrate, "no-migrate", cfg.SkipMigrations, "skip schema migrations on open")

	// Add subcommands
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))

	return cmd
}

// prepareDataDir creates the data directory and a default settings file
// when the database lives there. A database elsewhere leaves it untouched.
func (o *RootOptions) prepareDataDir() {
	if !config.InDataDir(o.DBPath) {
		return
	}
	if err := config.EnsureAll(); err != nil {
		log.Warn().Err(err).Str("dir", config.DataDir()).Msg("Failed to prepare data directory")
	}
}

// migrationOptions returns the schema options configured in settings.
func (o *RootOptions) migrationOptions() sqlite.MigrationOptions {
	return sqlite.MigrationOptions{
		Dir:   o.cfg.SchemaDir,
		Files: o.cfg.SchemaFiles,
	}
}

// openRegistry opens the database and starts a registry over it. The caller
// closes the registry.
func (o *RootOptions) openRegistry(ctx context.Context) (*sqlite.Registry, error) {
	store, err := sqlite.NewStore(sqlite.StoreConfig{Path: o.DBPath})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open database", err)
	}

	reg, err := sqlite.Open(ctx, store, sqlite.RegistryOptions{
		Migration:      o.migrationOptions(),
		SkipMigrations: o.NoMigrate,
	})
	if err != nil {
		_ = store.Close()
		return nil, failed("migrate schema", err)
	}
	log.Debug().Str("db", o.DBPath).Bool("migrated", !o.NoMigrate).Msg("Database ready")
	return reg, nil
}
