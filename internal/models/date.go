package models

import (
	"errors"
	"fmt"
	"time"
)

// DateFormat is the wire format for every persisted and displayed date.
const DateFormat = "02.01.2006"

// ErrInvalidDate is returned when a date string does not match DateFormat.
var ErrInvalidDate = errors.New("invalid date format")

// Date is a calendar day without time or zone. Dates compare with == and
// work as map keys. The zero value means "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Today returns the current calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// Yesterday returns the previous calendar day.
func Yesterday() Date {
	return Today().AddDays(-1)
}

// ParseDate parses a DD.MM.YYYY string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// IsZero reports whether d is the empty date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns d at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats d as DD.MM.YYYY.
func (d Date) String() string {
	return d.Time().Format(DateFormat)
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// DaysUntil returns the number of days from d to other, negative when
// other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()) / (24 * time.Hour))
}

// MarshalText formats d as DD.MM.YYYY, which also makes Date usable as a
// JSON object key.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a DD.MM.YYYY string.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
