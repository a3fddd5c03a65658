package schedule

import "time"

// DefaultWindowMinutes is the check-in window policy constant: self check-in
// is allowed from 10 minutes before class start until 10 minutes after.
const DefaultWindowMinutes = 10

// Window is the computed check-in time range for one class session.
type Window struct {
	From time.Time
	To   time.Time
	Open bool
}

// AttendanceWindow computes the inclusive check-in window around a session's
// start time and whether now falls inside it. Pure function; safe to call
// repeatedly per page render.
func AttendanceWindow(classDate time.Time, startTime string, windowMinutes int, now time.Time) (Window, error) {
	if windowMinutes <= 0 {
		windowMinutes = DefaultWindowMinutes
	}

	startAt, err := CombineDateTime(classDate, startTime)
	if err != nil {
		return Window{}, err
	}

	from := startAt.Add(-time.Duration(windowMinutes) * time.Minute)
	to := startAt.Add(time.Duration(windowMinutes) * time.Minute)

	return Window{
		From: from,
		To:   to,
		Open: !now.Before(from) && !now.After(to),
	}, nil
}
