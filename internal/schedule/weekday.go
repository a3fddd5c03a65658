package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is the symbolic day-of-week code stored in subject_schedule.day_of_week.
type Weekday string

const (
	Monday    Weekday = "MON"
	Tuesday   Weekday = "TUE"
	Wednesday Weekday = "WED"
	Thursday  Weekday = "THU"
	Friday    Weekday = "FRI"
	Saturday  Weekday = "SAT"
	Sunday    Weekday = "SUN"
)

// Canonical ordering: Monday = 0 .. Sunday = 6.
var weekdayOrder = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayIndexes = map[Weekday]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3,
	Friday: 4, Saturday: 5, Sunday: 6,
}

// WeekdayIndex maps a symbolic weekday to its ordinal position (Monday = 0).
// Unknown symbols are an error, never a silent default.
func WeekdayIndex(w Weekday) (int, error) {
	idx, ok := weekdayIndexes[w]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", string(w))
	}
	return idx, nil
}

// WeekdayFromIndex is the inverse of WeekdayIndex.
func WeekdayFromIndex(idx int) (Weekday, error) {
	if idx < 0 || idx > 6 {
		return "", fmt.Errorf("weekday index %d out of range", idx)
	}
	return weekdayOrder[idx], nil
}

// ParseWeekday validates a raw string as a weekday code.
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := WeekdayIndex(w); err != nil {
		return "", err
	}
	return w, nil
}

// WeekdayOf converts a calendar date's Go weekday (Sunday = 0) to the
// Monday-first symbolic code.
func WeekdayOf(t time.Time) Weekday {
	return weekdayOrder[(int(t.Weekday())+6)%7]
}
