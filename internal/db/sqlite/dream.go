package sqlite

import (
	"context"
	"database/sql"

	"github.com/thebtf/dreamlog/pkg/models"
)

const dreamColumns = `id, user_id, title, narrative, mood, lucidity_level,
       sleep_quality, dream_date, created_at, updated_at`

// DreamRepository provides dream-related database operations.
type DreamRepository struct {
	t *table[models.Dream]
}

// NewDreamRepository creates a dream repository over store.
func NewDreamRepository(store *Store) *DreamRepository {
	return newDreamRepository(store, nil)
}

func newDreamRepository(store *Store, g gate) *DreamRepository {
	return &DreamRepository{t: &table[models.Dream]{
		store:   store,
		gate:    g,
		scan:    scanDream,
		name:    "dreams",
		columns: dreamColumns,
		orderBy: "dream_date DESC, id DESC",
		touch:   true,
	}}
}

// GetAll returns every dream, most recent dream date first.
func (r *DreamRepository) GetAll(ctx context.Context) ([]*models.Dream, error) {
	return r.t.list(ctx, "")
}

// GetByID returns the dream with id, or nil.
func (r *DreamRepository) GetByID(ctx context.Context, id int64) (*models.Dream, error) {
	return r.t.get(ctx, id)
}

// GetByUser returns the user's dreams, most recent dream date first.
func (r *DreamRepository) GetByUser(ctx context.Context, userID int64) ([]*models.Dream, error) {
	return r.t.list(ctx, "user_id = ?", userID)
}

// Create records a new dream.
func (r *DreamRepository) Create(ctx context.Context, input models.CreateDreamInput) (*models.Dream, error) {
	return r.t.insert(ctx,
		[]string{"user_id", "title", "narrative", "mood", "lucidity_level", "sleep_quality", "dream_date"},
		[]any{
			input.UserID, input.Title,
			nullable(input.Narrative), nullable(input.Mood),
			nullable(input.LucidityLevel), nullable(input.SleepQuality),
			input.DreamDate,
		},
	)
}

// Update applies the present fields of patch.
func (r *DreamRepository) Update(ctx context.Context, id int64, patch models.DreamPatch) (*models.Dream, error) {
	if patch.IsEmpty() {
		return r.t.get(ctx, id)
	}
	var sets []assignment
	sets = assign(sets, "title", patch.Title)
	sets = assignNullable(sets, "narrative", patch.Narrative)
	sets = assignNullable(sets, "mood", patch.Mood)
	sets = assignNullable(sets, "lucidity_level", patch.LucidityLevel)
	sets = assignNullable(sets, "sleep_quality", patch.SleepQuality)
	sets = assign(sets, "dream_date", patch.DreamDate)
	return r.t.update(ctx, id, sets)
}

// Delete removes the dream. Attached symbols and synchronicities are kept.
func (r *DreamRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.t.delete(ctx, id)
}

func scanDream(s scanner) (*models.Dream, error) {
	var (
		d                models.Dream
		narrative, mood  sql.Null[string]
		lucidity, sleep  sql.Null[int64]
		created, updated string
	)
	if err := s.Scan(&d.ID, &d.UserID, &d.Title, &narrative, &mood, &lucidity,
		&sleep, &d.DreamDate, &created, &updated); err != nil {
		return nil, err
	}

	d.Narrative = ptrOf(narrative)
	d.Mood = ptrOf(mood)
	d.LucidityLevel = ptrOf(lucidity)
	d.SleepQuality = ptrOf(sleep)

	var err error
	if d.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &d, nil
}
