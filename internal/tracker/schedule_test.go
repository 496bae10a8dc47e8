package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/internal/models"
)

func TestProject(t *testing.T) {
	start := models.NewDate(2024, time.January, 1)

	t.Run("exact multiple takes no extra day", func(t *testing.T) {
		queue := []models.Material{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", Pages: 150, StartDate: datePtr(start)},
		}

		schedule, err := Project(queue, 75)

		require.NoError(t, err)
		require.Len(t, schedule, 1)
		assert.Equal(t, 2, schedule[0].Days)
		assert.Equal(t, start, schedule[0].Start)
		assert.Equal(t, models.NewDate(2024, time.January, 2), schedule[0].Finish)
	})

	t.Run("remainder rounds up", func(t *testing.T) {
		queue := []models.Material{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", Pages: 151, StartDate: datePtr(start)},
		}

		schedule, err := Project(queue, 75)

		require.NoError(t, err)
		assert.Equal(t, 3, schedule[0].Days)
	})

	t.Run("short material still takes one day", func(t *testing.T) {
		queue := []models.Material{
			{ID: 1, Title: "Pamphlet", Author: "Anon", Pages: 3, StartDate: datePtr(start)},
		}

		schedule, err := Project(queue, 75)

		require.NoError(t, err)
		assert.Equal(t, 1, schedule[0].Days)
		assert.Equal(t, schedule[0].Start, schedule[0].Finish)
	})

	t.Run("ranges chain without gaps", func(t *testing.T) {
		queue := []models.Material{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", Pages: 150, StartDate: datePtr(start)},
			{ID: 2, Title: "Hyperion", Author: "Dan Simmons", Pages: 80},
		}

		schedule, err := Project(queue, 75)

		require.NoError(t, err)
		require.Len(t, schedule, 2)
		for i := 1; i < len(schedule); i++ {
			assert.Equal(t, schedule[i-1].Finish.AddDays(1), schedule[i].Start,
				"material %d must start the day after material %d finishes", i+1, i)
		}
		assert.Equal(t, models.NewDate(2024, time.January, 3), schedule[1].Start)
		assert.Equal(t, models.NewDate(2024, time.January, 4), schedule[1].Finish)
	})

	t.Run("empty queue projects to empty schedule", func(t *testing.T) {
		schedule, err := Project(nil, 75)

		require.NoError(t, err)
		assert.Empty(t, schedule)
	})

	t.Run("rejects non-positive pace", func(t *testing.T) {
		queue := []models.Material{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", Pages: 150, StartDate: datePtr(start)},
		}

		_, err := Project(queue, 0)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = Project(queue, -5)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("rejects unstarted head", func(t *testing.T) {
		queue := []models.Material{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", Pages: 150},
		}

		_, err := Project(queue, 75)

		assert.ErrorIs(t, err, ErrNotStarted)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		queue := []models.Material{
			{ID: 1, Title: "Dune", Author: "Frank Herbert", Pages: 150, StartDate: datePtr(start)},
			{ID: 2, Title: "Hyperion", Author: "Dan Simmons", Pages: 80},
		}

		_, err := Project(queue, 75)

		require.NoError(t, err)
		assert.Nil(t, queue[1].StartDate)
	})
}
