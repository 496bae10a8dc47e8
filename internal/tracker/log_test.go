package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/models"
)

func TestReadingLog_SetEntry(t *testing.T) {
	t.Run("records pages for distinct days", func(t *testing.T) {
		log := NewReadingLog()

		require.NoError(t, log.SetEntry(models.NewDate(2024, time.January, 1), 100))
		require.NoError(t, log.SetEntry(models.NewDate(2024, time.January, 2), 50))

		assert.Equal(t, 150, log.Total())
		assert.Equal(t, 75, log.Average())
		assert.Equal(t, 2, log.Len())
	})

	t.Run("zero pages is a valid entry", func(t *testing.T) {
		log := NewReadingLog()

		require.NoError(t, log.SetEntry(models.NewDate(2024, time.January, 1), 0))

		pages, ok := log.Pages(models.NewDate(2024, time.January, 1))
		assert.True(t, ok)
		assert.Equal(t, 0, pages)
	})

	t.Run("rejects negative pages", func(t *testing.T) {
		log := NewReadingLog()

		err := log.SetEntry(models.NewDate(2024, time.January, 1), -1)

		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, 0, log.Len())
	})

	t.Run("rejects duplicate date and keeps the first entry", func(t *testing.T) {
		log := NewReadingLog()
		date := models.NewDate(2024, time.January, 1)
		require.NoError(t, log.SetEntry(date, 100))

		err := log.SetEntry(date, 50)

		assert.ErrorIs(t, err, ErrDuplicateDate)
		pages, ok := log.Pages(date)
		assert.True(t, ok)
		assert.Equal(t, 100, pages)
		assert.Equal(t, 1, log.Len())
	})

	t.Run("rejects future date", func(t *testing.T) {
		log := NewReadingLog()

		err := log.SetEntry(models.Today().AddDays(1), 10)

		assert.ErrorIs(t, err, ErrFutureDate)
		assert.Equal(t, 0, log.Len())
	})
}

func TestReadingLog_SetTodayAndYesterday(t *testing.T) {
	log := NewReadingLog()

	require.NoError(t, log.SetToday(40))
	require.NoError(t, log.SetYesterday(60))

	today, ok := log.Pages(models.Today())
	require.True(t, ok)
	assert.Equal(t, 40, today)

	yesterday, ok := log.Pages(models.Yesterday())
	require.True(t, ok)
	assert.Equal(t, 60, yesterday)

	assert.ErrorIs(t, log.SetToday(10), ErrDuplicateDate)
}

func TestReadingLog_SetLastPage(t *testing.T) {
	t.Run("records the difference from the logged total", func(t *testing.T) {
		log := NewReadingLog()
		require.NoError(t, log.SetEntry(models.Yesterday(), 120))

		pages, err := log.SetLastPage(models.Today(), 150)

		require.NoError(t, err)
		assert.Equal(t, 30, pages)
		assert.Equal(t, 150, log.Total())
	})

	t.Run("rejects a last page behind the total", func(t *testing.T) {
		log := NewReadingLog()
		require.NoError(t, log.SetEntry(models.Yesterday(), 120))

		_, err := log.SetLastPage(models.Today(), 100)

		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.Equal(t, 1, log.Len())
	})
}

func TestReadingLog_Average(t *testing.T) {
	tests := []struct {
		name  string
		pages []int
		want  int
	}{
		{
			name:  "empty log",
			pages: nil,
			want:  0,
		},
		{
			name:  "single day",
			pages: []int{42},
			want:  42,
		},
		{
			name:  "rounds down",
			pages: []int{10, 11},
			want:  10,
		},
		{
			name:  "all zero days",
			pages: []int{0, 0, 0},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := NewReadingLog()
			date := models.NewDate(2024, time.January, 1)
			for i, p := range tt.pages {
				require.NoError(t, log.SetEntry(date.AddDays(i), p))
			}
			assert.Equal(t, tt.want, log.Average())
		})
	}
}

func TestReadingLog_EntriesSorted(t *testing.T) {
	log := NewReadingLog()
	require.NoError(t, log.SetEntry(models.NewDate(2024, time.March, 5), 30))
	require.NoError(t, log.SetEntry(models.NewDate(2024, time.January, 20), 10))
	require.NoError(t, log.SetEntry(models.NewDate(2024, time.February, 1), 20))

	entries := log.Entries()

	require.Len(t, entries, 3)
	assert.Equal(t, models.NewDate(2024, time.January, 20), entries[0].Date)
	assert.Equal(t, models.NewDate(2024, time.February, 1), entries[1].Date)
	assert.Equal(t, models.NewDate(2024, time.March, 5), entries[2].Date)
}

func TestReadingLog_SnapshotRoundTrip(t *testing.T) {
	log := NewReadingLog()
	require.NoError(t, log.SetEntry(models.NewDate(2024, time.January, 1), 100))
	require.NoError(t, log.SetEntry(models.NewDate(2024, time.January, 2), 50))

	restored := ReadingLogFromSnapshot(log.Snapshot())

	assert.Equal(t, log.Total(), restored.Total())
	assert.Equal(t, log.Entries(), restored.Entries())
}
