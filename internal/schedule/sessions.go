package schedule

import "time"

// EnumerateTermSessions lists every calendar date on which a weekly schedule
// occurs within [termStart, termEnd], inclusive at both ends. The first
// occurrence is the first date on or after termStart whose weekday matches;
// if termStart itself matches, it is the first occurrence. Subsequent
// occurrences step by exactly 7 days.
func EnumerateTermSessions(day Weekday, termStart, termEnd time.Time) ([]time.Time, error) {
	targetIdx, err := WeekdayIndex(day)
	if err != nil {
		return nil, err
	}

	start := StartOfDay(termStart)
	end := StartOfDay(termEnd)

	startIdx, _ := WeekdayIndex(WeekdayOf(start))
	daysAhead := (targetIdx - startIdx + 7) % 7

	var dates []time.Time
	for d := start.AddDate(0, 0, daysAhead); !d.After(end); d = d.AddDate(0, 0, 7) {
		dates = append(dates, d)
	}
	return dates, nil
}

// FirstOccurrence returns the first date on or after termStart falling on the
// given weekday. Used by the weekly detail view to anchor week 1 per schedule.
func FirstOccurrence(day Weekday, termStart time.Time) (time.Time, error) {
	targetIdx, err := WeekdayIndex(day)
	if err != nil {
		return time.Time{}, err
	}
	start := StartOfDay(termStart)
	startIdx, _ := WeekdayIndex(WeekdayOf(start))
	daysAhead := (targetIdx - startIdx + 7) % 7
	return start.AddDate(0, 0, daysAhead), nil
}
