package seed

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebtf/dreamlog/internal/db/sqlite"
	"github.com/thebtf/dreamlog/pkg/models"
)

func testRegistry(t *testing.T) *sqlite.Registry {
	t.Helper()

	store, err := sqlite.NewStore(sqlite.StoreConfig{Path: filepath.Join(t.TempDir(), "seed.db")})
	require.NoError(t, err)
	reg, err := sqlite.Open(context.Background(), store, sqlite.RegistryOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

func symbolNames(symbols []*models.DreamSymbol) []string {
	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = s.Symbol
	}
	return names
}

func TestDreamSymbols_Defaults(t *testing.T) {
	reg := testRegistry(t)

	got, err := DreamSymbols(context.Background(), reg.DreamSymbols, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Falling", "Flight", "Forest", "Mirror", "Water"}, symbolNames(got))
	require.NotNil(t, got[0].Meaning)
	assert.Equal(t, "Loss of control, anxiety, or uncertainty about the future.", *got[0].Meaning)
}

func TestDreamSymbols_Idempotent(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	once, err := DreamSymbols(ctx, reg.DreamSymbols, nil, Options{})
	require.NoError(t, err)
	twice, err := DreamSymbols(ctx, reg.DreamSymbols, nil, Options{})
	require.NoError(t, err)

	assert.Equal(t, once, twice)
	all, err := reg.DreamSymbols.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultDreamSymbols))
}

func TestDreamSymbols_FillsGapsCaseInsensitively(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	custom, err := reg.DreamSymbols.Create(ctx, models.CreateDreamSymbolInput{
		Symbol:  "WATER",
		Meaning: models.Ptr("my own meaning"),
	})
	require.NoError(t, err)

	got, err := DreamSymbols(ctx, reg.DreamSymbols, nil, Options{})
	require.NoError(t, err)
	assert.Len(t, got, len(DefaultDreamSymbols))

	water, err := reg.DreamSymbols.GetByID(ctx, custom.ID)
	require.NoError(t, err)
	assert.Equal(t, "my own meaning", *water.Meaning, "existing rows are not touched")

	for _, s := range got {
		assert.NotEqual(t, "Water", s.Symbol)
	}
}

func TestDreamSymbols_DuplicateReferenceEntries(t *testing.T) {
	reg := testRegistry(t)

	got, err := DreamSymbols(context.Background(), reg.DreamSymbols, []models.CreateDreamSymbolInput{
		{Symbol: "Owl"}, {Symbol: "owl"}, {Symbol: "Key"},
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Key", "Owl"}, symbolNames(got))
}

func TestDreamSymbols_Overwrite(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	_, err := reg.DreamSymbols.BulkInsert(ctx, []models.CreateDreamSymbolInput{
		{Symbol: "Water", Meaning: models.Ptr("stale")},
		{Symbol: "Labyrinth"},
	})
	require.NoError(t, err)

	got, err := DreamSymbols(ctx, reg.DreamSymbols, nil, Options{Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Falling", "Flight", "Forest", "Mirror", "Water"}, symbolNames(got))
	for _, s := range got {
		if s.Symbol == "Water" {
			assert.Equal(t, "Emotional flow, intuition, and the subconscious mind.", *s.Meaning)
		}
	}
}

func TestDreamSymbols_OverwriteWithEmptyList(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	_, err := DreamSymbols(ctx, reg.DreamSymbols, nil, Options{})
	require.NoError(t, err)

	got, err := DreamSymbols(ctx, reg.DreamSymbols, []models.CreateDreamSymbolInput{}, Options{Overwrite: true})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHoroscopePlaceholders_Defaults(t *testing.T) {
	reg := testRegistry(t)

	got, err := HoroscopePlaceholders(context.Background(), reg.Horoscopes, 1, nil, HoroscopeOptions{
		ReadingDate: "2024-05-01",
	})
	require.NoError(t, err)
	require.Len(t, got, 12)

	signs := make(map[string]bool)
	for _, h := range got {
		assert.Equal(t, int64(1), h.UserID)
		assert.Equal(t, "2024-05-01", h.ReadingDate)
		assert.True(t, models.IsZodiacSign(h.ZodiacSign))
		signs[h.ZodiacSign] = true
	}
	assert.Len(t, signs, 12)
}

func TestHoroscopePlaceholders_DefaultsToToday(t *testing.T) {
	reg := testRegistry(t)

	today := time.Date(2024, 2, 29, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))
	got, err := HoroscopePlaceholders(context.Background(), reg.Horoscopes, 1, DefaultHoroscopePlaceholders[:1], HoroscopeOptions{
		Now: func() time.Time { return today },
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-01", got[0].ReadingDate, "date is taken in UTC")
}

func TestHoroscopePlaceholders_FillsMissingSigns(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	mine, err := reg.Horoscopes.Create(ctx, models.CreateHoroscopeInput{
		UserID:      1,
		ZodiacSign:  "Leo",
		ReadingDate: "2024-05-01",
		Summary:     models.Ptr("hand written"),
	})
	require.NoError(t, err)
	// Other users and dates are out of scope.
	_, err = reg.Horoscopes.Create(ctx, models.CreateHoroscopeInput{UserID: 2, ZodiacSign: "Aries", ReadingDate: "2024-05-01"})
	require.NoError(t, err)
	_, err = reg.Horoscopes.Create(ctx, models.CreateHoroscopeInput{UserID: 1, ZodiacSign: "Aries", ReadingDate: "2024-04-30"})
	require.NoError(t, err)

	opts := HoroscopeOptions{ReadingDate: "2024-05-01"}
	got, err := HoroscopePlaceholders(ctx, reg.Horoscopes, 1, nil, opts)
	require.NoError(t, err)
	assert.Len(t, got, 12)

	leo, err := reg.Horoscopes.GetByID(ctx, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, "hand written", *leo.Summary)

	again, err := HoroscopePlaceholders(ctx, reg.Horoscopes, 1, nil, opts)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	all, err := reg.Horoscopes.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 14)
}

func TestHoroscopePlaceholders_SignMatchIsExact(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	_, err := reg.Horoscopes.Create(ctx, models.CreateHoroscopeInput{UserID: 1, ZodiacSign: "leo", ReadingDate: "2024-05-01"})
	require.NoError(t, err)

	got, err := HoroscopePlaceholders(ctx, reg.Horoscopes, 1, DefaultHoroscopePlaceholders[4:5], HoroscopeOptions{ReadingDate: "2024-05-01"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestHoroscopePlaceholders_Overwrite(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	_, err := reg.Horoscopes.Create(ctx, models.CreateHoroscopeInput{
		UserID:      1,
		ZodiacSign:  "Leo",
		ReadingDate: "2024-05-01",
		Summary:     models.Ptr("stale"),
	})
	require.NoError(t, err)
	other, err := reg.Horoscopes.Create(ctx, models.CreateHoroscopeInput{UserID: 1, ZodiacSign: "Leo", ReadingDate: "2024-05-02"})
	require.NoError(t, err)

	got, err := HoroscopePlaceholders(ctx, reg.Horoscopes, 1, nil, HoroscopeOptions{
		ReadingDate: "2024-05-01",
		Options:     Options{Overwrite: true},
	})
	require.NoError(t, err)
	require.Len(t, got, 12)
	for _, h := range got {
		require.NotNil(t, h.Summary)
		assert.NotEqual(t, "stale", *h.Summary)
	}

	kept, err := reg.Horoscopes.GetByID(ctx, other.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept, "other dates survive an overwrite")
}

// failingSymbols fails BulkInsert after the first row.
type failingSymbols struct {
	*sqlite.DreamSymbolRepository
}

func (f failingSymbols) BulkInsert(ctx context.Context, inputs []models.CreateDreamSymbolInput) ([]*models.DreamSymbol, error) {
	created, err := f.DreamSymbolRepository.BulkInsert(ctx, inputs[:1])
	if err != nil {
		return created, err
	}
	return created, errors.New("disk full")
}

func TestHoroscopePlaceholders_RejectsUnknownSign(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	_, err := HoroscopePlaceholders(ctx, reg.Horoscopes, 1, []HoroscopePlaceholder{
		{ZodiacSign: "Leo", Summary: "fine"},
		{ZodiacSign: "Ophiuchus", Summary: "not one of the twelve"},
	}, HoroscopeOptions{ReadingDate: "2024-05-01"})
	require.ErrorIs(t, err, ErrUnknownZodiacSign)

	stored, err := reg.Horoscopes.GetByUserAndDate(ctx, 1, "2024-05-01")
	require.NoError(t, err)
	assert.Empty(t, stored, "nothing is written when a sign is rejected")
}

func TestDreamSymbols_PropagatesStoreErrors(t *testing.T) {
	reg := testRegistry(t)

	_, err := DreamSymbols(context.Background(), failingSymbols{reg.DreamSymbols}, nil, Options{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "disk full"))
}

func TestSeeders_NotReady(t *testing.T) {
	store, err := sqlite.NewStore(sqlite.StoreConfig{Path: filepath.Join(t.TempDir(), "gated.db")})
	require.NoError(t, err)
	reg := sqlite.NewRegistry(store, sqlite.RegistryOptions{})
	t.Cleanup(func() { _ = reg.Close() })

	_, err = DreamSymbols(context.Background(), reg.DreamSymbols, nil, Options{})
	assert.ErrorIs(t, err, sqlite.ErrNotReady)

	_, err = HoroscopePlaceholders(context.Background(), reg.Horoscopes, 1, nil, HoroscopeOptions{ReadingDate: "2024-05-01"})
	assert.ErrorIs(t, err, sqlite.ErrNotReady)
}
