package importer

import (
	"fmt"
	"strings"
	"time"
)

// Two-digit years below the cutoff are in the 2000s, all others in the 1900s.
const twoDigitYearCutoff = 50

var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"2006/01/02",
	"01-02-2006",
}

var twoDigitYearLayouts = []string{
	"01/02/06",
	"1/2/06",
}

// parseDate parses the date formats found in statements. Dates without
// a year ("06/23") are in the year of now.
func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return withCentury(t), nil
		}
	}

	if t, err := time.Parse("2006/1/2", fmt.Sprintf("%d/%s", now.Year(), s)); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid date format '%s'", s)
}

func withCentury(t time.Time) time.Time {
	yy := t.Year() % 100

	year := 1900 + yy
	if yy < twoDigitYearCutoff {
		year = 2000 + yy
	}

	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
