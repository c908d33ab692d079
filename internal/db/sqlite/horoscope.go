package sqlite

import (
	"context"
	"database/sql"

	"github.com/thebtf/dreamlog/pkg/models"
)

const horoscopeColumns = `id, user_id, zodiac_sign, reading_date, summary,
       compatibility, lucky_numbers, created_at, updated_at`

const horoscopeOrder = "reading_date DESC, id DESC"

// HoroscopeRepository provides horoscope database operations.
type HoroscopeRepository struct {
	t *table[models.Horoscope]
}

// NewHoroscopeRepository creates a horoscope repository over store.
func NewHoroscopeRepository(store *Store) *HoroscopeRepository {
	return newHoroscopeRepository(store, nil)
}

func newHoroscopeRepository(store *Store, g gate) *HoroscopeRepository {
	return &HoroscopeRepository{t: &table[models.Horoscope]{
		store:   store,
		gate:    g,
		scan:    scanHoroscope,
		name:    "horoscopes",
		columns: horoscopeColumns,
		orderBy: horoscopeOrder,
		touch:   true,
	}}
}

// GetAll returns every reading, most recent reading date first.
func (r *HoroscopeRepository) GetAll(ctx context.Context) ([]*models.Horoscope, error) {
	return r.t.list(ctx, "")
}

// GetLatestForUser returns the user's reading with the greatest reading date,
// ties going to the greatest id. Nil when the user has none.
func (r *HoroscopeRepository) GetLatestForUser(ctx context.Context, userID int64) (*models.Horoscope, error) {
	return r.t.first(ctx, "user_id = ?", horoscopeOrder, userID)
}

// GetByID returns the reading with id, or nil.
func (r *HoroscopeRepository) GetByID(ctx context.Context, id int64) (*models.Horoscope, error) {
	return r.t.get(ctx, id)
}

// GetByUser returns the user's readings, most recent reading date first.
func (r *HoroscopeRepository) GetByUser(ctx context.Context, userID int64) ([]*models.Horoscope, error) {
	return r.t.list(ctx, "user_id = ?", userID)
}

// GetByUserAndDate returns the user's readings for one date.
func (r *HoroscopeRepository) GetByUserAndDate(ctx context.Context, userID int64, readingDate string) ([]*models.Horoscope, error) {
	return r.t.list(ctx, "user_id = ? AND reading_date = ?", userID, readingDate)
}

// Create stores a reading.
func (r *HoroscopeRepository) Create(ctx context.Context, input models.CreateHoroscopeInput) (*models.Horoscope, error) {
	return r.t.insert(ctx,
		[]string{"user_id", "zodiac_sign", "reading_date", "summary", "compatibility", "lucky_numbers"},
		[]any{
			input.UserID, input.ZodiacSign, input.ReadingDate,
			nullable(input.Summary), nullable(input.Compatibility), nullable(input.LuckyNumbers),
		},
	)
}

// Update applies the present fields of patch.
func (r *HoroscopeRepository) Update(ctx context.Context, id int64, patch models.HoroscopePatch) (*models.Horoscope, error) {
	if patch.IsEmpty() {
		return r.t.get(ctx, id)
	}
	var sets []assignment
	sets = assignNullable(sets, "summary", patch.Summary)
	sets = assignNullable(sets, "compatibility", patch.Compatibility)
	sets = assignNullable(sets, "lucky_numbers", patch.LuckyNumbers)
	sets = assign(sets, "reading_date", patch.ReadingDate)
	return r.t.update(ctx, id, sets)
}

// Delete removes the reading.
func (r *HoroscopeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.t.delete(ctx, id)
}

func scanHoroscope(s scanner) (*models.Horoscope, error) {
	var (
		h                      models.Horoscope
		summary, compatibility sql.Null[string]
		luckyNumbers           sql.Null[string]
		created, updated       string
	)
	if err := s.Scan(&h.ID, &h.UserID, &h.ZodiacSign, &h.ReadingDate, &summary,
		&compatibility, &luckyNumbers, &created, &updated); err != nil {
		return nil, err
	}

	h.Summary = ptrOf(summary)
	h.Compatibility = ptrOf(compatibility)
	h.LuckyNumbers = ptrOf(luckyNumbers)

	var err error
	if h.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if h.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &h, nil
}
