package sqlite

import (
	"context"
	"database/sql"

	"github.com/thebtf/dreamlog/pkg/models"
)

const synchronicityColumns = `id, dream_id, description, occurred_on, correlation_score, created_at`

// SynchronicityRepository provides synchronicity database operations.
type SynchronicityRepository struct {
	t *table[models.Synchronicity]
}

// NewSynchronicityRepository creates a synchronicity repository over store.
func NewSynchronicityRepository(store *Store) *SynchronicityRepository {
	return newSynchronicityRepository(store, nil)
}

func newSynchronicityRepository(store *Store, g gate) *SynchronicityRepository {
	return &SynchronicityRepository{t: &table[models.Synchronicity]{
		store:   store,
		gate:    g,
		scan:    scanSynchronicity,
		name:    "synchronicities",
		columns: synchronicityColumns,
		orderBy: "created_at DESC, id DESC",
	}}
}

// GetAll returns every synchronicity, newest first.
func (r *SynchronicityRepository) GetAll(ctx context.Context) ([]*models.Synchronicity, error) {
	return r.t.list(ctx, "")
}

// GetByID returns the synchronicity with id, or nil.
func (r *SynchronicityRepository) GetByID(ctx context.Context, id int64) (*models.Synchronicity, error) {
	return r.t.get(ctx, id)
}

// GetByDream returns the synchronicities attached to a dream, newest first.
func (r *SynchronicityRepository) GetByDream(ctx context.Context, dreamID int64) ([]*models.Synchronicity, error) {
	return r.t.list(ctx, "dream_id = ?", dreamID)
}

// Create logs a synchronicity.
func (r *SynchronicityRepository) Create(ctx context.Context, input models.CreateSynchronicityInput) (*models.Synchronicity, error) {
	return r.t.insert(ctx,
		[]string{"dream_id", "description", "occurred_on", "correlation_score"},
		[]any{nullable(input.DreamID), input.Description, nullable(input.OccurredOn), nullable(input.CorrelationScore)},
	)
}

// Update applies the present fields of patch.
func (r *SynchronicityRepository) Update(ctx context.Context, id int64, patch models.SynchronicityPatch) (*models.Synchronicity, error) {
	if patch.IsEmpty() {
		return r.t.get(ctx, id)
	}
	var sets []assignment
	sets = assignNullable(sets, "dream_id", patch.DreamID)
	sets = assign(sets, "description", patch.Description)
	sets = assignNullable(sets, "occurred_on", patch.OccurredOn)
	sets = assignNullable(sets, "correlation_score", patch.CorrelationScore)
	return r.t.update(ctx, id, sets)
}

// Delete removes the synchronicity.
func (r *SynchronicityRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.t.delete(ctx, id)
}

// DeleteByDream removes every synchronicity attached to a dream and returns the count.
func (r *SynchronicityRepository) DeleteByDream(ctx context.Context, dreamID int64) (int64, error) {
	return r.t.remove(ctx, "dream_id = ?", dreamID)
}

func scanSynchronicity(s scanner) (*models.Synchronicity, error) {
	var (
		sy         models.Synchronicity
		dreamID    sql.Null[int64]
		occurredOn sql.Null[string]
		score      sql.Null[float64]
		created    string
	)
	if err := s.Scan(&sy.ID, &dreamID, &sy.Description, &occurredOn, &score, &created); err != nil {
		return nil, err
	}

	sy.DreamID = ptrOf(dreamID)
	sy.OccurredOn = ptrOf(occurredOn)
	sy.CorrelationScore = ptrOf(score)

	var err error
	if sy.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &sy, nil
}
