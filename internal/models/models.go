package models

// Material is one unit of reading, queued or already processed. ID, Title,
// Author and Pages are fixed at creation; StartDate is set when reading
// begins and EndDate when the material is completed. A material is never
// deleted, only moved from the queue to the processed list.
type Material struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Pages     int    `json:"pages"`
	StartDate *Date  `json:"start_date,omitempty"`
	EndDate   *Date  `json:"end_date,omitempty"`
}

// IsStarted reports whether reading has begun.
func (m Material) IsStarted() bool {
	return m.StartDate != nil
}

// IsCompleted reports whether reading has finished.
func (m Material) IsCompleted() bool {
	return m.EndDate != nil
}

// Clone returns a copy of m that shares no pointers with the original.
func (m Material) Clone() Material {
	if m.StartDate != nil {
		d := *m.StartDate
		m.StartDate = &d
	}
	if m.EndDate != nil {
		d := *m.EndDate
		m.EndDate = &d
	}
	return m
}

// Note is a remark taken while reading a material.
type Note struct {
	ID         int    `json:"id"`
	MaterialID int    `json:"material_id"`
	Content    string `json:"content"`
	Chapter    int    `json:"chapter"`
	Page       int    `json:"page"`
	Date       Date   `json:"date"`
}

// MaterialsSnapshot is the persisted form of the queue and processed lists.
type MaterialsSnapshot struct {
	Queue     []Material `json:"queue"`
	Processed []Material `json:"processed"`
}

// LogSnapshot is the persisted form of the reading log, keyed by day.
type LogSnapshot map[Date]int
