package sqlite

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/thebtf/dreamlog/internal/db"
)

var (
	_ db.DreamStore         = (*DreamRepository)(nil)
	_ db.DreamSymbolStore   = (*DreamSymbolRepository)(nil)
	_ db.SynchronicityStore = (*SynchronicityRepository)(nil)
	_ db.AlarmStore         = (*AlarmRepository)(nil)
	_ db.HoroscopeStore     = (*HoroscopeRepository)(nil)
	_ db.UserProfileStore   = (*UserProfileRepository)(nil)
)

// RegistryOptions configures how a Registry becomes ready.
type RegistryOptions struct {
	// State is the run-once migration state. Nil gets a fresh state owned by
	// the registry.
	State     *MigrationState
	Migration MigrationOptions
	// SkipMigrations marks the registry ready without touching the schema.
	SkipMigrations bool
}

// Registry composes one repository per entity over a single Store and gates
// them on migration completion. Repositories are built once and stay valid
// for the Store's lifetime.
type Registry struct {
	store     *Store
	state     *MigrationState
	migration MigrationOptions
	ready     atomic.Bool
	skip      bool

	Dreams          *DreamRepository
	DreamSymbols    *DreamSymbolRepository
	Alarms          *AlarmRepository
	Horoscopes      *HoroscopeRepository
	Synchronicities *SynchronicityRepository
	UserProfile     *UserProfileRepository
}

// NewRegistry builds the repositories. They return ErrNotReady until Start
// succeeds.
func NewRegistry(store *Store, opts RegistryOptions) *Registry {
	state := opts.State
	if state == nil {
		state = NewMigrationState()
	}

	r := &Registry{
		store:     store,
		state:     state,
		migration: opts.Migration,
		skip:      opts.SkipMigrations,
	}
	r.Dreams = newDreamRepository(store, r)
	r.DreamSymbols = newDreamSymbolRepository(store, r)
	r.Alarms = newAlarmRepository(store, r)
	r.Horoscopes = newHoroscopeRepository(store, r)
	r.Synchronicities = newSynchronicityRepository(store, r)
	r.UserProfile = newUserProfileRepository(store, r)
	return r
}

// Open builds a registry over store and starts it.
// On error the store is left open for the caller to close.
func Open(ctx context.Context, store *Store, opts RegistryOptions) (*Registry, error) {
	r := NewRegistry(store, opts)
	if err := r.Start(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

// Start makes the registry ready: immediately when migrations are skipped,
// otherwise once they succeed. A failed migration leaves it not ready and
// Start may be called again.
func (r *Registry) Start(ctx context.Context) error {
	if r.skip {
		r.ready.Store(true)
		log.Debug().Msg("Schema migrations skipped, repositories ready")
		return nil
	}
	return r.Migrate(ctx)
}

// Migrate runs the schema scripts against the store and flips readiness on
// success. It is a no-op once the registry's migration state is applied.
func (r *Registry) Migrate(ctx context.Context) error {
	mgr := NewMigrationManager(r.store.DB(), r.state)
	if err := mgr.RunMigrations(ctx, r.migration); err != nil {
		r.ready.Store(false)
		return fmt.Errorf("migrate: %w", err)
	}
	r.ready.Store(true)
	return nil
}

// Ready reports whether repositories are safe to use.
func (r *Registry) Ready() bool {
	return r.ready.Load()
}

func (r *Registry) isReady() bool {
	return r.Ready()
}

// MigrationState returns the state consulted by Migrate.
func (r *Registry) MigrationState() *MigrationState {
	return r.state
}

// Store returns the shared store.
func (r *Registry) Store() *Store {
	return r.store
}

// Close marks the registry not ready and closes the store.
func (r *Registry) Close() error {
	r.ready.Store(false)
	return r.store.Close()
}
