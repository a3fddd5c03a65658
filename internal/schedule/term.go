package schedule

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidTerm is returned for any term number outside {1, 2}.
var ErrInvalidTerm = errors.New("term number must be 1 or 2")

// MaxWeeksPerTerm caps the week-by-week attendance detail projection.
const MaxWeeksPerTerm = 16

// TermDateRange returns the inclusive [start, end] date range of an academic term.
// Term 1 runs March 1 through June 30; term 2 runs September 1 through December 31.
func TermDateRange(year, term int) (start, end time.Time, err error) {
	switch term {
	case 1:
		start = time.Date(year, time.March, 1, 0, 0, 0, 0, time.Local)
		end = time.Date(year, time.June, 30, 0, 0, 0, 0, time.Local)
	case 2:
		start = time.Date(year, time.September, 1, 0, 0, 0, 0, time.Local)
		end = time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)
	default:
		return time.Time{}, time.Time{}, ErrInvalidTerm
	}
	return start, end, nil
}

// CurrentWeekInTerm reports how many 7-day buckets the term spans and which
// bucket today falls into. A date outside the term clamps to the nearer
// boundary, so the result is always within [1, totalWeeks]. Used for progress
// displays only; attendance math never depends on it.
func CurrentWeekInTerm(termStart, termEnd, today time.Time) (totalWeeks, currentWeek int) {
	start := StartOfDay(termStart)
	end := StartOfDay(termEnd)
	day := StartOfDay(today)

	totalDays := daysBetween(start, end) + 1
	totalWeeks = (totalDays + 6) / 7

	if day.Before(start) {
		return totalWeeks, 1
	}
	if day.After(end) {
		return totalWeeks, totalWeeks
	}

	currentWeek = daysBetween(start, day)/7 + 1
	if currentWeek > totalWeeks {
		currentWeek = totalWeeks
	}
	return totalWeeks, currentWeek
}

// daysBetween counts calendar days from a to b. Rounding absorbs the odd hour
// a DST transition adds or removes between two local midnights.
func daysBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Hours() / 24))
}
