// Package types implements value types shared by the ledger packages.
package types

import (
	"fmt"
	"time"
)

// Month is a calendar month. The underlying time is always 00:00 UTC on the first day.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year(), m.Month())
}

// Label returns the short human readable form used in trend series, e.g. "Oct 2026".
func (m Month) Label() string {
	return time.Time(m).Format("Jan 2006")
}

// Year returns the year of the month.
func (m Month) Year() int {
	return time.Time(m).Year()
}

// Month returns the month of the year.
func (m Month) Month() time.Month {
	return time.Time(m).Month()
}

// FirstDay returns 00:00 UTC of the first day of the month.
func (m Month) FirstDay() time.Time {
	return time.Time(m)
}

// LastDay returns 00:00 UTC of the last day of the month.
func (m Month) LastDay() time.Time {
	return time.Time(m).AddDate(0, 1, -1)
}

// Days returns the number of days in the month.
func (m Month) Days() int {
	return m.LastDay().Day()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Equal reports whether m and n represent the same month.
func (m Month) Equal(n Month) bool {
	return time.Time(m).Equal(time.Time(n))
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// Window returns n consecutive months ending with m, oldest first.
func (m Month) Window(n int) []Month {
	if n <= 0 {
		return []Month{}
	}

	months := make([]Month, n)
	for i := 0; i < n; i++ {
		months[i] = m.AddDate(0, i-n+1)
	}
	return months
}

// Day truncates t to 00:00 UTC of its calendar day.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
