package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thebtf/dreamlog/pkg/models"
)

func TestDreamSymbolRepository_CRUD(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	s, err := reg.DreamSymbols.Create(ctx, models.CreateDreamSymbolInput{
		Symbol:  "Mirror",
		Meaning: models.Ptr("Self-reflection"),
	})
	require.NoError(t, err)
	assert.Nil(t, s.DreamID)
	assert.Nil(t, s.Notes)

	fetched, err := reg.DreamSymbols.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, fetched)

	updated, err := reg.DreamSymbols.Update(ctx, s.ID, models.DreamSymbolPatch{
		Notes:   models.Set(models.Ptr("cracked")),
		Meaning: models.Null[string](),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "cracked", *updated.Notes)
	assert.Nil(t, updated.Meaning)
	assert.Equal(t, s.CreatedAt, updated.CreatedAt)

	deleted, err := reg.DreamSymbols.Delete(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDreamSymbolRepository_Create_UnknownDream(t *testing.T) {
	reg := testRegistry(t)

	// dream_id is not checked against dreams.
	s, err := reg.DreamSymbols.Create(context.Background(), models.CreateDreamSymbolInput{
		DreamID: models.Ptr[int64](12345),
		Symbol:  "Forest",
	})
	require.NoError(t, err)
	require.NotNil(t, s.DreamID)
	assert.Equal(t, int64(12345), *s.DreamID)
}

func TestDreamSymbolRepository_GetAll_OrderedBySymbol(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	_, err := reg.DreamSymbols.BulkInsert(ctx, []models.CreateDreamSymbolInput{
		{Symbol: "Water"}, {Symbol: "Falling"}, {Symbol: "Mirror"},
	})
	require.NoError(t, err)

	all, err := reg.DreamSymbols.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Falling", "Mirror", "Water"}, []string{all[0].Symbol, all[1].Symbol, all[2].Symbol})
}

func TestDreamSymbolRepository_BulkInsert(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	created, err := reg.DreamSymbols.BulkInsert(ctx, []models.CreateDreamSymbolInput{
		{Symbol: "Water"}, {Symbol: "Flight"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "Water", created[0].Symbol)
	assert.Equal(t, "Flight", created[1].Symbol)
	assert.Less(t, created[0].ID, created[1].ID)

	empty, err := reg.DreamSymbols.BulkInsert(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestDreamSymbolRepository_GetByDreamAndDeleteByDream(t *testing.T) {
	reg := testRegistry(t)
	ctx := context.Background()

	dreamA, dreamB := int64(1), int64(2)
	_, err := reg.DreamSymbols.BulkInsert(ctx, []models.CreateDreamSymbolInput{
		{DreamID: &dreamA, Symbol: "Water"},
		{DreamID: &dreamA, Symbol: "Flight"},
		{DreamID: &dreamB, Symbol: "Forest"},
	})
	require.NoError(t, err)

	forA, err := reg.DreamSymbols.GetByDream(ctx, dreamA)
	require.NoError(t, err)
	assert.Len(t, forA, 2)

	n, err := reg.DreamSymbols.DeleteByDream(ctx, dreamA)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = reg.DreamSymbols.DeleteByDream(ctx, dreamA)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, 1, countRows(t, reg.Store(), "dream_symbols"))
}
