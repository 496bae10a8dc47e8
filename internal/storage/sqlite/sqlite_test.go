package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tracker/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "tracker.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Initialize(context.Background()))
	return db
}

func TestDB_EmptyLoads(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	materials, err := db.LoadMaterials(ctx)
	require.NoError(t, err)
	assert.Empty(t, materials.Queue)
	assert.Empty(t, materials.Processed)

	log, err := db.LoadLog(ctx)
	require.NoError(t, err)
	assert.Empty(t, log)

	notes, err := db.LoadNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestDB_MaterialsRoundTrip(t *testing.T) {
	db := newTestDB(t)
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

	require.NoError(t, db.SaveMaterials(ctx, snap))

	loaded, err := db.LoadMaterials(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestDB_MaterialsPreserveOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	snap := models.MaterialsSnapshot{
		Queue: []models.Material{
			{ID: 5, Title: "Fifth", Author: "A", Pages: 10},
			{ID: 2, Title: "Second", Author: "A", Pages: 10},
			{ID: 9, Title: "Ninth", Author: "A", Pages: 10},
		},
	}

	require.NoError(t, db.SaveMaterials(ctx, snap))

	loaded, err := db.LoadMaterials(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Queue, 3)
	assert.Equal(t, "Fifth", loaded.Queue[0].Title)
	assert.Equal(t, "Second", loaded.Queue[1].Title)
	assert.Equal(t, "Ninth", loaded.Queue[2].Title)
}

func TestDB_SaveMaterialsOverwrites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SaveMaterials(ctx, models.MaterialsSnapshot{
		Queue: []models.Material{{ID: 1, Title: "Dune", Author: "Frank Herbert", Pages: 412}},
	}))
	require.NoError(t, db.SaveMaterials(ctx, models.MaterialsSnapshot{
		Processed: []models.Material{{ID: 1, Title: "Dune", Author: "Frank Herbert", Pages: 412}},
	}))

	loaded, err := db.LoadMaterials(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Queue)
	require.Len(t, loaded.Processed, 1)
}

func TestDB_LogRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	snap := models.LogSnapshot{
		models.NewDate(2024, time.January, 1): 100,
		models.NewDate(2024, time.January, 2): 50,
	}

	require.NoError(t, db.SaveLog(ctx, snap))

	loaded, err := db.LoadLog(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, loaded)
}

func TestDB_NotesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	notes := []models.Note{
		{ID: 1, MaterialID: 1, Content: "Fear is the mind-killer", Chapter: 1, Page: 12,
			Date: models.NewDate(2024, time.January, 2)},
		{ID: 2, MaterialID: 2, Content: "The Shrike appears", Chapter: 2, Page: 60,
			Date: models.NewDate(2024, time.January, 5)},
	}

	require.NoError(t, db.SaveNotes(ctx, notes))

	loaded, err := db.LoadNotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, notes, loaded)
}

func TestDB_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracker.db")
	ctx := context.Background()

	first, err := New(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, first.Initialize(ctx))
	require.NoError(t, first.SaveLog(ctx, models.LogSnapshot{
		models.NewDate(2024, time.January, 1): 75,
	}))
	require.NoError(t, first.Close())

	second, err := New(path, zap.NewNop())
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.Initialize(ctx))

	loaded, err := second.LoadLog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 75, loaded[models.NewDate(2024, time.January, 1)])
}
