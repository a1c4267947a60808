// Package dateutil computes schedule due dates and distribution start ages.
package dateutil

import (
	"time"
)

// GetRMDAge returns the age required minimum distributions start at for a
// birth year (SECURE 2.0 schedule).
func GetRMDAge(birthYear int) int {
	switch {
	case birthYear <= 1950:
		return 72
	case birthYear >= 1951 && birthYear <= 1959:
		return 73
	default: // 1960 and later
		return 75
	}
}

// AddMonths moves date by months calendar months, clamping the day to the
// end of a shorter month (Jan 31 + 1 month is Feb 28, not Mar 3).
func AddMonths(date time.Time, months int) time.Time {
	y, m, d := date.Date()
	first := time.Date(y, m+time.Month(months), 1, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// PeriodDate returns the due date of the index-th period (1-based) for a
// schedule starting at start with periodsPerYear payments a year. Periods
// that divide a year into whole months step by calendar month; weekly and
// bi-weekly style frequencies step by whole days.
func PeriodDate(start time.Time, periodsPerYear, index int) time.Time {
	if periodsPerYear <= 0 || index <= 0 {
		return start
	}
	if 12%periodsPerYear == 0 {
		return AddMonths(start, index*(12/periodsPerYear))
	}
	switch periodsPerYear {
	case 52:
		return start.AddDate(0, 0, 7*index)
	case 26:
		return start.AddDate(0, 0, 14*index)
	case 24:
		// semi-monthly: 1st/16th style, two periods per calendar month
		months := index / 2
		d := AddMonths(start, months)
		if index%2 == 1 {
			d = d.AddDate(0, 0, 15)
		}
		return d
	default:
		days := float64(index) * 365.25 / float64(periodsPerYear)
		return start.AddDate(0, 0, int(days))
	}
}
