package format

import (
	"fmt"
	"strings"

	"tracker/internal/models"
	"tracker/internal/tracker"
)

const separatorWidth = 70

// Renderer turns tracker state into the plain-text blocks shown by the
// CLI and the bot.
type Renderer struct {
	inflect Inflector
}

// NewRenderer builds a renderer on top of the given inflector.
func NewRenderer(inflect Inflector) *Renderer {
	return &Renderer{inflect: inflect}
}

// Inflect returns the underlying inflector for surfaces that build their
// own count-bearing phrases.
func (r *Renderer) Inflect() Inflector {
	return r.inflect
}

// Separator returns the rule drawn between report sections.
func (r *Renderer) Separator() string {
	return strings.Repeat("-", separatorWidth)
}

// MaterialLine renders one material header line.
func (r *Renderer) MaterialLine(m models.Material) string {
	return fmt.Sprintf("id=%d «%s» by %s, pages: %d", m.ID, m.Title, m.Author, m.Pages)
}

// Queue renders the projected schedule for the queue.
func (r *Renderer) Queue(schedule []tracker.ScheduledMaterial) string {
	if len(schedule) == 0 {
		return "No materials reading"
	}

	var b strings.Builder
	for i, item := range schedule {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.MaterialLine(item.Material))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Will be read from %s to %s in %s",
			item.Start, item.Finish, r.inflect.Days(item.Days))
	}
	return b.String()
}

// Processed renders the completed materials with their reading spans.
func (r *Renderer) Processed(materials []models.Material) string {
	if len(materials) == 0 {
		return "No materials have been read yet"
	}

	var b strings.Builder
	for i, m := range materials {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(r.MaterialLine(m))
		if m.StartDate != nil && m.EndDate != nil {
			days := m.StartDate.DaysUntil(*m.EndDate) + 1
			fmt.Fprintf(&b, "\nFrom %s to %s in %s", m.StartDate, m.EndDate, r.inflect.Days(days))
		}
	}
	return b.String()
}

// Log renders the reading log followed by the running average and how it
// compares to the daily goal.
func (r *Renderer) Log(entries []tracker.LogEntry, average, goal int) string {
	if len(entries) == 0 {
		return "Reading log is empty"
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s: %s\n", e.Date, r.inflect.Pages(e.Pages))
	}
	fmt.Fprintf(&b, "Average = %d pages per day\n", average)

	switch diff := goal - average; {
	case diff == 0:
		b.WriteString("That is right at the daily goal")
	case diff > 0:
		fmt.Fprintf(&b, "That is %s short of the daily goal", r.inflect.Pages(diff))
	default:
		fmt.Fprintf(&b, "That is %s over the daily goal", r.inflect.Pages(-diff))
	}
	return b.String()
}

// Total renders the all-time page count.
func (r *Renderer) Total(total int) string {
	return fmt.Sprintf("Total pages count: %d", total)
}

// Stats renders the reading statistics block.
func (r *Renderer) Stats(s tracker.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Duration: %s\n", r.inflect.Days(s.Duration))
	fmt.Fprintf(&b, "Empty days: %d\n", s.EmptyDays)
	fmt.Fprintf(&b, "Max: %s = %s\n", s.Max.Date, r.inflect.Pages(s.Max.Pages))
	fmt.Fprintf(&b, "Min: %s = %s\n", s.Min.Date, r.inflect.Pages(s.Min.Pages))
	fmt.Fprintf(&b, "Average: %d pages per day\n", s.Average)
	fmt.Fprintf(&b, "Median: %s\n", r.inflect.Pages(s.Median))
	fmt.Fprintf(&b, "Total pages count: %d\n", s.Total)
	fmt.Fprintf(&b, "Would be total: %d", s.WouldBeTotal)
	return b.String()
}

// Note renders one note with its optional chapter and page reference.
func (r *Renderer) Note(n models.Note) string {
	loc := ""
	if n.Chapter > 0 {
		loc += fmt.Sprintf(", ch. %d", n.Chapter)
	}
	if n.Page > 0 {
		loc += fmt.Sprintf(", p. %d", n.Page)
	}
	return fmt.Sprintf("[%d] %s%s: %s", n.ID, n.Date, loc, n.Content)
}

// All renders the full report: the log, the queue and the total, divided
// by separator rules.
func (r *Renderer) All(entries []tracker.LogEntry, average, goal int, schedule []tracker.ScheduledMaterial, total int) string {
	sections := []string{
		r.Log(entries, average, goal),
		r.Queue(schedule),
		r.Total(total),
	}
	sep := "\n" + r.Separator() + "\n"
	return strings.Join(sections, sep)
}
