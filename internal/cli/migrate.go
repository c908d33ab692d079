package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thebtf/dreamlog/internal/db/sqlite"
)

// settleDelay lets a schema file finish being written before it is read.
const settleDelay = 100 * time.Millisecond

// MigrateOptions holds flags for the migrate command.
type MigrateOptions struct {
	*RootOptions
	SchemaDir string
	Files     []string
	Wait      time.Duration
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MigrateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema scripts",
		Long: `Apply schema scripts to the database. Without --file the embedded schema
is used. With --wait, a missing script is awaited until it appears or the
duration elapses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.SchemaDir, "schema-dir", rootOpts.cfg.SchemaDir, "directory holding schema scripts")
	cmd.Flags().StringSliceVar(&opts.Files, "file", rootOpts.cfg.SchemaFiles, "schema script to apply, in order (repeatable)")
	cmd.Flags().DurationVar(&opts.Wait, "wait", 0, "wait this long for missing schema scripts to appear")

	return cmd
}

func runMigrate(cmd *cobra.Command, opts *MigrateOptions) error {
	ctx := cmd.Context()

	store, err := sqlite.NewStore(sqlite.StoreConfig{Path: opts.DBPath})
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}

	migration := sqlite.MigrationOptions{
		Dir:   opts.SchemaDir,
		Files: opts.Files,
		OnAfterExecute: func(path string) {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", path)
		},
	}
	reg := sqlite.NewRegistry(store, sqlite.RegistryOptions{Migration: migration})
	defer reg.Close()

	err = reg.Migrate(ctx)
	if err != nil && opts.Wait > 0 && errors.Is(err, sqlite.ErrSchemaFileMissing) {
		dirs := watchDirs(migration)
		if len(dirs) == 0 {
			return failed("migrate schema", err)
		}
		log.Info().Strs("dirs", dirs).Dur("wait", opts.Wait).Msg("Waiting for schema scripts")
		err = waitForSchema(ctx, dirs, opts.Wait, func() error { return reg.Migrate(ctx) })
	}
	if err != nil {
		return failed("migrate schema", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
	return nil
}

// watchDirs lists the directories scripts are resolved from on disk. The
// embedded schema has none.
func watchDirs(opts sqlite.MigrationOptions) []string {
	files := opts.Files
	if len(files) == 0 {
		files = []string{sqlite.DefaultSchemaFile}
	}

	var dirs []string
	for _, f := range files {
		var dir string
		switch {
		case filepath.IsAbs(f):
			dir = filepath.Dir(f)
		case opts.Dir != "":
			dir = filepath.Dir(filepath.Join(opts.Dir, f))
		default:
			continue
		}
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// waitForSchema calls retry whenever a file changes in dirs, until retry
// succeeds, fails for a reason other than a missing script, or timeout
// elapses.
func waitForSchema(ctx context.Context, dirs []string, timeout time.Duration, retry func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch schema dir: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch schema dir %s: %w", dir, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// A script may have appeared before the watch started.
	err = retry()
	if err == nil || !errors.Is(err, sqlite.ErrSchemaFileMissing) {
		return err
	}

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for schema scripts: %w: %w", ctx.Err(), err)

		case event, ok := <-watcher.Events:
			if !ok {
				return err
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename) {
				log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("Schema dir changed")
				settle = time.After(settleDelay)
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return err
			}
			return fmt.Errorf("watch schema dir: %w", werr)

		case <-settle:
			settle = nil
			err = retry()
			if err == nil || !errors.Is(err, sqlite.ErrSchemaFileMissing) {
				return err
			}
		}
	}
}
