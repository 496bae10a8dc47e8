package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/models"
)

func datePtr(d models.Date) *models.Date {
	return &d
}

func TestMaterialQueue_Add(t *testing.T) {
	t.Run("assigns ids starting from 1", func(t *testing.T) {
		q := NewMaterialQueue()

		first, err := q.Add("Dune", "Frank Herbert", 412)
		require.NoError(t, err)
		second, err := q.Add("Hyperion", "Dan Simmons", 482)
		require.NoError(t, err)

		assert.Equal(t, 1, first.ID)
		assert.Equal(t, 2, second.ID)
	})

	t.Run("counts processed materials when assigning ids", func(t *testing.T) {
		q := MaterialQueueFromSnapshot(models.MaterialsSnapshot{
			Processed: []models.Material{
				{
					ID: 7, Title: "Solaris", Author: "Stanislaw Lem", Pages: 204,
					StartDate: datePtr(models.NewDate(2024, time.January, 1)),
					EndDate:   datePtr(models.NewDate(2024, time.January, 5)),
				},
			},
		})

		added, err := q.Add("Roadside Picnic", "Arkady Strugatsky", 224)

		require.NoError(t, err)
		assert.Equal(t, 8, added.ID)
	})

	t.Run("trims title and author", func(t *testing.T) {
		q := NewMaterialQueue()

		added, err := q.Add("  Dune  ", "  Frank Herbert ", 412)

		require.NoError(t, err)
		assert.Equal(t, "Dune", added.Title)
		assert.Equal(t, "Frank Herbert", added.Author)
	})

	t.Run("rejects blank title or author", func(t *testing.T) {
		q := NewMaterialQueue()

		_, err := q.Add("   ", "Frank Herbert", 412)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = q.Add("Dune", "", 412)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		assert.Equal(t, 0, q.Len())
	})

	t.Run("rejects non-positive pages", func(t *testing.T) {
		q := NewMaterialQueue()

		_, err := q.Add("Dune", "Frank Herbert", 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = q.Add("Dune", "Frank Herbert", -10)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestMaterialQueue_Start(t *testing.T) {
	t.Run("sets the head start date", func(t *testing.T) {
		q := NewMaterialQueue()
		_, err := q.Add("Dune", "Frank Herbert", 412)
		require.NoError(t, err)

		started, err := q.Start(models.Today())

		require.NoError(t, err)
		require.NotNil(t, started.StartDate)
		assert.Equal(t, models.Today(), *started.StartDate)
	})

	t.Run("fails on empty queue", func(t *testing.T) {
		q := NewMaterialQueue()

		_, err := q.Start(models.Today())

		assert.ErrorIs(t, err, ErrEmptyQueue)
	})

	t.Run("fails on future date", func(t *testing.T) {
		q := NewMaterialQueue()
		_, err := q.Add("Dune", "Frank Herbert", 412)
		require.NoError(t, err)

		_, err = q.Start(models.Today().AddDays(1))

		assert.ErrorIs(t, err, ErrFutureDate)
	})

	t.Run("fails when already started", func(t *testing.T) {
		q := NewMaterialQueue()
		_, err := q.Add("Dune", "Frank Herbert", 412)
		require.NoError(t, err)
		_, err = q.Start(models.Yesterday())
		require.NoError(t, err)

		_, err = q.Start(models.Today())

		assert.ErrorIs(t, err, ErrAlreadyStarted)
	})
}

func TestMaterialQueue_Complete(t *testing.T) {
	newStartedQueue := func(t *testing.T, start models.Date, titles ...string) *MaterialQueue {
		t.Helper()
		q := NewMaterialQueue()
		for _, title := range titles {
			_, err := q.Add(title, "Author", 100)
			require.NoError(t, err)
		}
		_, err := q.Start(start)
		require.NoError(t, err)
		return q
	}

	t.Run("moves the head to processed with the end date", func(t *testing.T) {
		start := models.Today().AddDays(-10)
		q := newStartedQueue(t, start, "Dune", "Hyperion")

		completed, err := q.Complete(models.Today())

		require.NoError(t, err)
		assert.Equal(t, "Dune", completed.Title)
		require.NotNil(t, completed.EndDate)
		assert.Equal(t, models.Today(), *completed.EndDate)

		processed := q.Processed()
		require.Len(t, processed, 1)
		assert.Equal(t, "Dune", processed[0].Title)
	})

	t.Run("starts the next material the day after", func(t *testing.T) {
		start := models.Today().AddDays(-10)
		q := newStartedQueue(t, start, "Dune", "Hyperion")
		end := models.Today().AddDays(-3)

		_, err := q.Complete(end)

		require.NoError(t, err)
		head, ok := q.Head()
		require.True(t, ok)
		assert.Equal(t, "Hyperion", head.Title)
		require.NotNil(t, head.StartDate)
		assert.Equal(t, end.AddDays(1), *head.StartDate)
	})

	t.Run("leaves no successor when the queue drains", func(t *testing.T) {
		q := newStartedQueue(t, models.Yesterday(), "Dune")

		_, err := q.Complete(models.Today())

		require.NoError(t, err)
		assert.Equal(t, 0, q.Len())
		_, ok := q.Head()
		assert.False(t, ok)
	})

	t.Run("fails on empty queue and changes nothing", func(t *testing.T) {
		q := NewMaterialQueue()

		_, err := q.Complete(models.Today())

		assert.ErrorIs(t, err, ErrEmptyQueue)
		assert.Empty(t, q.Processed())
	})

	t.Run("fails when the head was never started", func(t *testing.T) {
		q := NewMaterialQueue()
		_, err := q.Add("Dune", "Frank Herbert", 412)
		require.NoError(t, err)

		_, err = q.Complete(models.Today())

		assert.ErrorIs(t, err, ErrNotStarted)
		assert.Equal(t, 1, q.Len())
	})

	t.Run("fails when completion predates the start", func(t *testing.T) {
		q := newStartedQueue(t, models.Yesterday(), "Dune", "Hyperion")

		_, err := q.Complete(models.Yesterday().AddDays(-1))

		assert.ErrorIs(t, err, ErrInvalidDateRange)
		assert.Equal(t, 2, q.Len())
		assert.Empty(t, q.Processed())
	})

	t.Run("allows completing on the start date", func(t *testing.T) {
		q := newStartedQueue(t, models.Yesterday(), "Dune")

		completed, err := q.Complete(models.Yesterday())

		require.NoError(t, err)
		assert.Equal(t, *completed.StartDate, *completed.EndDate)
	})
}

func TestMaterialQueue_ByID(t *testing.T) {
	q := NewMaterialQueue()
	_, err := q.Add("Dune", "Frank Herbert", 412)
	require.NoError(t, err)
	_, err = q.Add("Hyperion", "Dan Simmons", 482)
	require.NoError(t, err)
	_, err = q.Start(models.Yesterday())
	require.NoError(t, err)
	_, err = q.Complete(models.Today())
	require.NoError(t, err)

	t.Run("finds queued material", func(t *testing.T) {
		m, err := q.ByID(2)
		require.NoError(t, err)
		assert.Equal(t, "Hyperion", m.Title)
	})

	t.Run("finds processed material", func(t *testing.T) {
		m, err := q.ByID(1)
		require.NoError(t, err)
		assert.Equal(t, "Dune", m.Title)
		assert.True(t, m.IsCompleted())
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := q.ByID(99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMaterialQueue_Where(t *testing.T) {
	q := NewMaterialQueue()
	_, err := q.Add("Dune", "Frank Herbert", 412)
	require.NoError(t, err)
	_, err = q.Add("Hyperion", "Dan Simmons", 482)
	require.NoError(t, err)
	_, err = q.Add("Children of Dune", "Frank Herbert", 444)
	require.NoError(t, err)

	byHerbert := q.QueueWhere(func(m models.Material) bool {
		return m.Author == "Frank Herbert"
	})

	require.Len(t, byHerbert, 2)
	assert.Equal(t, "Dune", byHerbert[0].Title)
	assert.Equal(t, "Children of Dune", byHerbert[1].Title)

	assert.Empty(t, q.ProcessedWhere(func(models.Material) bool { return true }))
}

func TestMaterialQueue_CopiesDoNotAlias(t *testing.T) {
	q := NewMaterialQueue()
	_, err := q.Add("Dune", "Frank Herbert", 412)
	require.NoError(t, err)
	_, err = q.Start(models.Yesterday())
	require.NoError(t, err)

	copied := q.Queue()
	*copied[0].StartDate = models.NewDate(2000, time.January, 1)
	copied[0].Title = "changed"

	head, ok := q.Head()
	require.True(t, ok)
	assert.Equal(t, "Dune", head.Title)
	assert.Equal(t, models.Yesterday(), *head.StartDate)
}
