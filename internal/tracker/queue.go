package tracker

import (
	"fmt"
	"strings"

	"tracker/internal/models"
)

// MaterialQueue holds the reading order: materials waiting to be read, head
// first, and the processed materials in completion order. A material lives
// in exactly one of the two lists.
type MaterialQueue struct {
	queue     []models.Material
	processed []models.Material
}

// NewMaterialQueue returns an empty queue.
func NewMaterialQueue() *MaterialQueue {
	return &MaterialQueue{}
}

// MaterialQueueFromSnapshot builds a queue from its persisted form.
func MaterialQueueFromSnapshot(snap models.MaterialsSnapshot) *MaterialQueue {
	q := NewMaterialQueue()
	for _, m := range snap.Queue {
		q.queue = append(q.queue, m.Clone())
	}
	for _, m := range snap.Processed {
		q.processed = append(q.processed, m.Clone())
	}
	return q
}

// Add appends a new material to the tail of the queue. The id is one more
// than the highest id across both lists, starting from 1.
func (q *MaterialQueue) Add(title, author string, pages int) (models.Material, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" || author == "" {
		return models.Material{}, fmt.Errorf("%w: title and author must not be empty", ErrInvalidArgument)
	}
	if pages <= 0 {
		return models.Material{}, fmt.Errorf("%w: pages must be positive, got %d", ErrInvalidArgument, pages)
	}

	material := models.Material{
		ID:     q.nextID(),
		Title:  title,
		Author: author,
		Pages:  pages,
	}
	q.queue = append(q.queue, material)
	return material, nil
}

// Start assigns the start date to the head of the queue. The date must not
// be in the future and the head must not be started already.
func (q *MaterialQueue) Start(date models.Date) (models.Material, error) {
	if len(q.queue) == 0 {
		return models.Material{}, ErrEmptyQueue
	}
	if date.After(models.Today()) {
		return models.Material{}, fmt.Errorf("%w: %s", ErrFutureDate, date)
	}
	head := &q.queue[0]
	if head.IsStarted() {
		return models.Material{}, fmt.Errorf("%w: «%s» started on %s", ErrAlreadyStarted, head.Title, head.StartDate)
	}

	d := date
	head.StartDate = &d
	return head.Clone(), nil
}

// Complete moves the head of the queue to the processed list with the
// given end date. When another material is waiting, its reading starts the
// next day.
func (q *MaterialQueue) Complete(date models.Date) (models.Material, error) {
	if len(q.queue) == 0 {
		return models.Material{}, ErrEmptyQueue
	}
	head := q.queue[0]
	if !head.IsStarted() {
		return models.Material{}, fmt.Errorf("%w: «%s»", ErrNotStarted, head.Title)
	}
	if date.Before(*head.StartDate) {
		return models.Material{}, fmt.Errorf("%w: completed on %s, started on %s",
			ErrInvalidDateRange, date, head.StartDate)
	}

	d := date
	head.EndDate = &d
	q.queue = q.queue[1:]
	q.processed = append(q.processed, head)

	if len(q.queue) > 0 {
		next := date.AddDays(1)
		q.queue[0].StartDate = &next
	}
	return head.Clone(), nil
}

// ByID finds a material in either list.
func (q *MaterialQueue) ByID(id int) (models.Material, error) {
	for _, m := range q.queue {
		if m.ID == id {
			return m.Clone(), nil
		}
	}
	for _, m := range q.processed {
		if m.ID == id {
			return m.Clone(), nil
		}
	}
	return models.Material{}, fmt.Errorf("%w: id=%d", ErrNotFound, id)
}

// Queue returns a copy of the queued materials in reading order.
func (q *MaterialQueue) Queue() []models.Material {
	return cloneMaterials(q.queue)
}

// Processed returns a copy of the processed materials in completion order.
func (q *MaterialQueue) Processed() []models.Material {
	return cloneMaterials(q.processed)
}

// QueueWhere returns the queued materials matching pred, order preserved.
func (q *MaterialQueue) QueueWhere(pred func(models.Material) bool) []models.Material {
	return filterMaterials(q.queue, pred)
}

// ProcessedWhere returns the processed materials matching pred, order
// preserved.
func (q *MaterialQueue) ProcessedWhere(pred func(models.Material) bool) []models.Material {
	return filterMaterials(q.processed, pred)
}

// Head returns the next material to read, started or not.
func (q *MaterialQueue) Head() (models.Material, bool) {
	if len(q.queue) == 0 {
		return models.Material{}, false
	}
	return q.queue[0].Clone(), true
}

// Active returns the head of the queue if reading has begun.
func (q *MaterialQueue) Active() (models.Material, bool) {
	if len(q.queue) == 0 || !q.queue[0].IsStarted() {
		return models.Material{}, false
	}
	return q.queue[0].Clone(), true
}

// Len returns the number of queued materials.
func (q *MaterialQueue) Len() int {
	return len(q.queue)
}

// Snapshot returns the persisted form of both lists.
func (q *MaterialQueue) Snapshot() models.MaterialsSnapshot {
	return models.MaterialsSnapshot{
		Queue:     cloneMaterials(q.queue),
		Processed: cloneMaterials(q.processed),
	}
}

func (q *MaterialQueue) nextID() int {
	next := 1
	for _, m := range q.queue {
		if m.ID >= next {
			next = m.ID + 1
		}
	}
	for _, m := range q.processed {
		if m.ID >= next {
			next = m.ID + 1
		}
	}
	return next
}

func cloneMaterials(materials []models.Material) []models.Material {
	out := make([]models.Material, len(materials))
	for i, m := range materials {
		out[i] = m.Clone()
	}
	return out
}

func filterMaterials(materials []models.Material, pred func(models.Material) bool) []models.Material {
	var out []models.Material
	for _, m := range materials {
		if pred(m) {
			out = append(out, m.Clone())
		}
	}
	return out
}
