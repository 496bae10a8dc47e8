package tracker

import (
	"fmt"

	"tracker/internal/models"
)

// ScheduledMaterial is one queued material with its projected reading range.
type ScheduledMaterial struct {
	Material models.Material
	Start    models.Date
	Finish   models.Date
	Days     int
}

// Project computes the projected reading range of every queued material.
//
// Projection rules:
// 1. The head's start date opens the schedule, so the head must be started
// 2. A material takes its page count divided by the pace, rounded up,
//    never less than one day
// 3. Ranges are inclusive: finish = start + days - 1
// 4. Ranges chain without gaps: the next material starts the day after the
//    previous one finishes
// 5. An empty queue projects to an empty schedule
//
// Project never mutates the queue; callers pass a copy they own.
func Project(queue []models.Material, pace int) ([]ScheduledMaterial, error) {
	if pace <= 0 {
		return nil, fmt.Errorf("%w: pace must be positive, got %d", ErrInvalidArgument, pace)
	}
	if len(queue) == 0 {
		return []ScheduledMaterial{}, nil
	}
	if !queue[0].IsStarted() {
		return nil, fmt.Errorf("%w: «%s»", ErrNotStarted, queue[0].Title)
	}

	cursor := *queue[0].StartDate
	schedule := make([]ScheduledMaterial, 0, len(queue))
	for _, material := range queue {
		days := (material.Pages + pace - 1) / pace
		finish := cursor.AddDays(days - 1)
		schedule = append(schedule, ScheduledMaterial{
			Material: material.Clone(),
			Start:    cursor,
			Finish:   finish,
			Days:     days,
		})
		cursor = finish.AddDays(1)
	}
	return schedule, nil
}
