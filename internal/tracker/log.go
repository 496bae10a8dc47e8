package tracker

import (
	"fmt"
	"sort"

	"tracker/internal/models"
)

// LogEntry is one day's page count.
type LogEntry struct {
	Date  models.Date
	Pages int
}

// ReadingLog maps calendar days to pages read. It is append-only: an entry
// is written once and never updated or removed.
type ReadingLog struct {
	entries map[models.Date]int
}

// NewReadingLog returns an empty log.
func NewReadingLog() *ReadingLog {
	return &ReadingLog{entries: make(map[models.Date]int)}
}

// ReadingLogFromSnapshot builds a log from its persisted form.
func ReadingLogFromSnapshot(snap models.LogSnapshot) *ReadingLog {
	log := NewReadingLog()
	for date, pages := range snap {
		log.entries[date] = pages
	}
	return log
}

// SetEntry records pages read on date. The count must not be negative, the
// date must not be logged already and must not be after today.
func (l *ReadingLog) SetEntry(date models.Date, pages int) error {
	if pages < 0 {
		return fmt.Errorf("%w: pages must be >= 0, got %d", ErrInvalidArgument, pages)
	}
	if _, ok := l.entries[date]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDate, date)
	}
	if date.After(models.Today()) {
		return fmt.Errorf("%w: %s", ErrFutureDate, date)
	}
	l.entries[date] = pages
	return nil
}

// SetToday records today's page count.
func (l *ReadingLog) SetToday(pages int) error {
	return l.SetEntry(models.Today(), pages)
}

// SetYesterday records yesterday's page count.
func (l *ReadingLog) SetYesterday(pages int) error {
	return l.SetEntry(models.Yesterday(), pages)
}

// SetLastPage records an entry for date derived from the page the reader
// stopped on: the logged count is lastPage minus everything logged so far.
// It returns the count actually recorded.
func (l *ReadingLog) SetLastPage(date models.Date, lastPage int) (int, error) {
	pages := lastPage - l.Total()
	if pages < 0 {
		return 0, fmt.Errorf("%w: last page %d is before the %d pages already logged",
			ErrInvalidArgument, lastPage, l.Total())
	}
	if err := l.SetEntry(date, pages); err != nil {
		return 0, err
	}
	return pages, nil
}

// Pages returns the count logged for date.
func (l *ReadingLog) Pages(date models.Date) (int, bool) {
	pages, ok := l.entries[date]
	return pages, ok
}

// Len returns the number of logged days.
func (l *ReadingLog) Len() int {
	return len(l.entries)
}

// Total returns the sum of all logged pages.
func (l *ReadingLog) Total() int {
	total := 0
	for _, pages := range l.entries {
		total += pages
	}
	return total
}

// Average returns total pages over logged days, rounded down.
// An empty log averages to 0.
func (l *ReadingLog) Average() int {
	if len(l.entries) == 0 {
		return 0
	}
	return l.Total() / len(l.entries)
}

// Entries returns all entries sorted ascending by date.
func (l *ReadingLog) Entries() []LogEntry {
	entries := make([]LogEntry, 0, len(l.entries))
	for date, pages := range l.entries {
		entries = append(entries, LogEntry{Date: date, Pages: pages})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries
}

// Snapshot returns the persisted form of the log.
func (l *ReadingLog) Snapshot() models.LogSnapshot {
	snap := make(models.LogSnapshot, len(l.entries))
	for date, pages := range l.entries {
		snap[date] = pages
	}
	return snap
}
