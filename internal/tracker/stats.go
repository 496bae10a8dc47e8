package tracker

import "sort"

// Stats summarizes the reading log over the span between its first and
// last entry.
type Stats struct {
	Duration     int // days from first to last logged date, inclusive
	EmptyDays    int // days in that span without an entry
	Total        int
	Average      int
	Median       int
	Max          LogEntry // heaviest day; earliest wins ties
	Min          LogEntry // lightest day; earliest wins ties
	WouldBeTotal int      // total if empty days had been read at the average
}

// Stats computes the summary. ok is false when nothing has been logged.
func (l *ReadingLog) Stats() (Stats, bool) {
	entries := l.Entries()
	if len(entries) == 0 {
		return Stats{}, false
	}

	s := Stats{
		Total:   l.Total(),
		Average: l.Average(),
		Max:     entries[0],
		Min:     entries[0],
	}
	for _, e := range entries[1:] {
		if e.Pages > s.Max.Pages {
			s.Max = e
		}
		if e.Pages < s.Min.Pages {
			s.Min = e
		}
	}

	first, last := entries[0].Date, entries[len(entries)-1].Date
	s.Duration = first.DaysUntil(last) + 1
	s.EmptyDays = s.Duration - len(entries)
	s.Median = median(entries)
	s.WouldBeTotal = s.Total + s.Average*s.EmptyDays
	return s, true
}

func median(entries []LogEntry) int {
	counts := make([]int, len(entries))
	for i, e := range entries {
		counts[i] = e.Pages
	}
	sort.Ints(counts)

	mid := len(counts) / 2
	if len(counts)%2 == 0 {
		return (counts[mid-1] + counts[mid]) / 2
	}
	return counts[mid]
}
