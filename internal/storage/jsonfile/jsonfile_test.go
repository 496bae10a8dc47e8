package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tracker/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store := New(t.TempDir(), zap.NewNop())
	require.NoError(t, store.Initialize(context.Background()))
	return store
}

func TestStore_MissingFilesReadEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	materials, err := store.LoadMaterials(ctx)
	require.NoError(t, err)
	assert.Empty(t, materials.Queue)
	assert.Empty(t, materials.Processed)

	log, err := store.LoadLog(ctx)
	require.NoError(t, err)
	assert.Empty(t, log)

	notes, err := store.LoadNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestStore_EmptyFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "log.json"), nil, 0o644))

	log, err := store.LoadLog(ctx)

	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestStore_MaterialsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	start := models.NewDate(2024, time.January, 1)
	end := models.NewDate(2024, time.January, 9)
	snap := models.MaterialsSnapshot{
		Queue: []models.Material{
			{ID: 2, Title: "Hyperion", Author: "Dan Simmons", Pages: 482, StartDate: &start},
			{ID: 3, Title: "Solaris", Author: "Stanislaw Lem", Pages: 204},
		},
		Processed: []models.Material{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", Pages: 412,
				StartDate: &start, EndDate: &end},
		},
	}

	require.NoError(t, store.SaveMaterials(ctx, snap))

	loaded, err := store.LoadMaterials(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestStore_LogRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := models.LogSnapshot{
		models.NewDate(2024, time.January, 1): 100,
		models.NewDate(2024, time.January, 2): 50,
	}

	require.NoError(t, store.SaveLog(ctx, snap))

	loaded, err := store.LoadLog(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestStore_LogUsesDottedDateKeys(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))

	snap := models.LogSnapshot{models.NewDate(2024, time.January, 2): 75}
	require.NoError(t, store.SaveLog(ctx, snap))

	data, err := os.ReadFile(filepath.Join(dir, "log.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"02.01.2024": 75`)
}

func TestStore_NotesRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	notes := []models.Note{
		{ID: 1, MaterialID: 1, Content: "Fear is the mind-killer", Chapter: 1, Page: 12,
			Date: models.NewDate(2024, time.January, 2)},
		{ID: 2, MaterialID: 1, Content: "The spice must flow", Chapter: 4, Page: 105,
			Date: models.NewDate(2024, time.January, 5)},
	}

	require.NoError(t, store.SaveNotes(ctx, notes))

	loaded, err := store.LoadNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, notes, loaded)
}

func TestStore_CorruptFileFailsToLoad(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "log.json"), []byte("{not json"), 0o644))

	_, err := store.LoadLog(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestStore_BadDateKeyFailsToLoad(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, zap.NewNop())
	ctx := context.Background()
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "log.json"),
		[]byte(`{"2024-01-02": 75}`), 0o644))

	_, err := store.LoadLog(ctx)

	assert.ErrorIs(t, err, models.ErrInvalidDate)
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLog(ctx, models.LogSnapshot{
		models.NewDate(2024, time.January, 1): 10,
		models.NewDate(2024, time.January, 2): 20,
	}))
	require.NoError(t, store.SaveLog(ctx, models.LogSnapshot{
		models.NewDate(2024, time.January, 3): 30,
	}))

	loaded, err := store.LoadLog(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 30, loaded[models.NewDate(2024, time.January, 3)])
}
