package sqlite

import (
	"context"
	"database/sql"

	"github.com/thebtf/dreamlog/pkg/models"
)

const dreamSymbolColumns = `id, dream_id, symbol, meaning, notes, created_at`

// DreamSymbolRepository provides dream-symbol database operations.
type DreamSymbolRepository struct {
	t *table[models.DreamSymbol]
}

// NewDreamSymbolRepository creates a dream-symbol repository over store.
func NewDreamSymbolRepository(store *Store) *DreamSymbolRepository {
	return newDreamSymbolRepository(store, nil)
}

func newDreamSymbolRepository(store *Store, g gate) *DreamSymbolRepository {
	return &DreamSymbolRepository{t: &table[models.DreamSymbol]{
		store:   store,
		gate:    g,
		scan:    scanDreamSymbol,
		name:    "dream_symbols",
		columns: dreamSymbolColumns,
		orderBy: "symbol ASC, id ASC",
	}}
}

// GetAll returns every symbol ordered by name.
func (r *DreamSymbolRepository) GetAll(ctx context.Context) ([]*models.DreamSymbol, error) {
	return r.t.list(ctx, "")
}

// GetByID returns the symbol with id, or nil.
func (r *DreamSymbolRepository) GetByID(ctx context.Context, id int64) (*models.DreamSymbol, error) {
	return r.t.get(ctx, id)
}

// GetByDream returns the symbols attached to a dream, ordered by name.
func (r *DreamSymbolRepository) GetByDream(ctx context.Context, dreamID int64) ([]*models.DreamSymbol, error) {
	return r.t.list(ctx, "dream_id = ?", dreamID)
}

// Create adds a symbol. DreamID is not checked against existing dreams.
func (r *DreamSymbolRepository) Create(ctx context.Context, input models.CreateDreamSymbolInput) (*models.DreamSymbol, error) {
	return r.t.insert(ctx,
		[]string{"dream_id", "symbol", "meaning", "notes"},
		[]any{nullable(input.DreamID), input.Symbol, nullable(input.Meaning), nullable(input.Notes)},
	)
}

// BulkInsert creates each input in order and returns the created symbols.
// It stops at the first failure; rows inserted before it remain.
func (r *DreamSymbolRepository) BulkInsert(ctx context.Context, inputs []models.CreateDreamSymbolInput) ([]*models.DreamSymbol, error) {
	created := make([]*models.DreamSymbol, 0, len(inputs))
	for _, input := range inputs {
		symbol, err := r.Create(ctx, input)
		if err != nil {
			return created, err
		}
		created = append(created, symbol)
	}
	return created, nil
}

// Update applies the present fields of patch. Symbols have no update timestamp.
func (r *DreamSymbolRepository) Update(ctx context.Context, id int64, patch models.DreamSymbolPatch) (*models.DreamSymbol, error) {
	if patch.IsEmpty() {
		return r.t.get(ctx, id)
	}
	var sets []assignment
	sets = assignNullable(sets, "dream_id", patch.DreamID)
	sets = assign(sets, "symbol", patch.Symbol)
	sets = assignNullable(sets, "meaning", patch.Meaning)
	sets = assignNullable(sets, "notes", patch.Notes)
	return r.t.update(ctx, id, sets)
}

// Delete removes the symbol.
func (r *DreamSymbolRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.t.delete(ctx, id)
}

// DeleteByDream removes every symbol attached to a dream and returns the count.
func (r *DreamSymbolRepository) DeleteByDream(ctx context.Context, dreamID int64) (int64, error) {
	return r.t.remove(ctx, "dream_id = ?", dreamID)
}

func scanDreamSymbol(s scanner) (*models.DreamSymbol, error) {
	var (
		ds             models.DreamSymbol
		dreamID        sql.Null[int64]
		meaning, notes sql.Null[string]
		created        string
	)
	if err := s.Scan(&ds.ID, &dreamID, &ds.Symbol, &meaning, &notes, &created); err != nil {
		return nil, err
	}

	ds.DreamID = ptrOf(dreamID)
	ds.Meaning = ptrOf(meaning)
	ds.Notes = ptrOf(notes)

	var err error
	if ds.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &ds, nil
}
