package internal

import (
	"fmt"
	"strings"
	"time"
)

const (
	// StorageDateLayout is the fixed textual form of dates in the data file.
	StorageDateLayout = "2006-01-02"
	// DisplayDateLayout is how dates are typed and shown to users (dd/mm/yyyy).
	DisplayDateLayout = "02/01/2006"
)

// Date is a calendar day. The wrapped time is always midnight UTC so two
// dates can be compared and subtracted without time-of-day noise.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseStorageDate parses a YYYY-MM-DD date.
func ParseStorageDate(s string) (Date, error) {
	t, err := time.Parse(StorageDateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// ParseDisplayDate parses a dd/mm/yyyy date.
func ParseDisplayDate(s string) (Date, error) {
	t, err := time.Parse(DisplayDateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsEmpty returns true for the zero date, used for absent optional dates.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// AddDays returns the date n calendar days later.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// DaysSince returns the whole number of days from other to d.
// Negative when other is after d.
func (d Date) DaysSince(other Date) int {
	return int(d.Time.Sub(other.Time).Hours() / 24)
}

// Equal reports calendar-day equality.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// StorageString renders the date as YYYY-MM-DD.
func (d Date) StorageString() string {
	return d.Format(StorageDateLayout)
}

// DisplayString renders the date as dd/mm/yyyy.
func (d Date) DisplayString() string {
	return d.Format(DisplayDateLayout)
}

func (d Date) String() string {
	if d.IsEmpty() {
		return "-"
	}
	return d.StorageString()
}
