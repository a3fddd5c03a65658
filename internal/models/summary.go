package models

import (
	"time"

	"campus-attendance/internal/schedule"
)

// SummaryPolicy carries the optional attendance accounting toggles.
type SummaryPolicy struct {
	// LateToAbsence converts every 3 recorded LATEs into one lost attendance
	// when computing the percentage (floor division). Off by default.
	LateToAbsence bool
}

// SessionOutcome pairs one of a subject's sessions with the student's
// recorded status for it, if any.
type SessionOutcome struct {
	Session   *Session
	Status    CheckinStatus
	HasRecord bool
}

// SubjectSummary is the per-student, per-subject attendance rollup.
type SubjectSummary struct {
	SubjectID         int64
	SubjectName       string
	PresentCount      int
	LateCount         int
	AbsentCount       int
	UnrecordedCount   int
	HeldSessions      int
	CancelledSessions int
	Percentage        float64
	Tier              StatusTier
}

// ComputeSummary rolls session outcomes up into attendance counts, a
// percentage, and a status tier. Cancelled sessions are excluded from both
// numerator and denominator: cancelled time is neither held against nor
// credited to the student. A held session with no record counts against the
// percentage like an absence but is reported separately from explicit
// ABSENT rows.
func ComputeSummary(outcomes []SessionOutcome, policy SummaryPolicy) SubjectSummary {
	var s SubjectSummary

	for _, o := range outcomes {
		if o.Session.IsCancelled {
			s.CancelledSessions++
			continue
		}
		s.HeldSessions++

		if !o.HasRecord {
			s.UnrecordedCount++
			continue
		}
		switch o.Status {
		case StatusPresent:
			s.PresentCount++
		case StatusLate:
			s.LateCount++
		case StatusAbsent:
			s.AbsentCount++
		}
	}

	// Late still counts as attendance of the class.
	numerator := s.PresentCount + s.LateCount
	if policy.LateToAbsence {
		numerator -= s.LateCount / 3
	}

	if s.HeldSessions == 0 {
		s.Percentage = 100.0
	} else {
		s.Percentage = 100.0 * float64(numerator) / float64(s.HeldSessions)
	}
	s.Tier = TierForPercentage(s.Percentage)

	return s
}

// Weekly detail status labels. "no information" covers future dates and
// weeks for which no session or check-in row exists yet.
const (
	WeeklyStatusCancelled = "cancelled"
	WeeklyStatusNoInfo    = "no information"
)

// WeekDetail is one row of the week-by-week attendance projection: one
// scheduled occurrence, its computed date, and the resolved status label.
type WeekDetail struct {
	Week       int
	ScheduleID int64
	Date       time.Time
	Status     string
}

// SessionKey identifies a session by its (schedule, date) pair for lookups.
type SessionKey struct {
	ScheduleID int64
	Date       string // YYYY-MM-DD
}

// ResolveWeeklyDetail projects a subject's schedules across the 16-week term
// grid and resolves each occurrence against the materialized sessions and the
// student's check-ins. Read-only; it carries no percentage semantics.
func ResolveWeeklyDetail(
	schedules []*Schedule,
	termStart time.Time,
	sessions map[SessionKey]*Session,
	checkins map[int64]CheckinStatus,
	now time.Time,
) ([]WeekDetail, error) {
	today := schedule.StartOfDay(now)

	var details []WeekDetail
	for week := 1; week <= schedule.MaxWeeksPerTerm; week++ {
		for _, sch := range schedules {
			first, err := schedule.FirstOccurrence(sch.DayOfWeek, termStart)
			if err != nil {
				return nil, err
			}
			date := first.AddDate(0, 0, 7*(week-1))

			detail := WeekDetail{Week: week, ScheduleID: sch.ID, Date: date}

			if date.After(today) {
				detail.Status = WeeklyStatusNoInfo
				details = append(details, detail)
				continue
			}

			sess, ok := sessions[SessionKey{ScheduleID: sch.ID, Date: date.Format("2006-01-02")}]
			if !ok {
				detail.Status = WeeklyStatusNoInfo
				details = append(details, detail)
				continue
			}
			if sess.IsCancelled {
				detail.Status = WeeklyStatusCancelled
				details = append(details, detail)
				continue
			}

			status, ok := checkins[sess.ID]
			if !ok {
				detail.Status = WeeklyStatusNoInfo
			} else {
				detail.Status = status.DisplayLabel()
			}
			details = append(details, detail)
		}
	}
	return details, nil
}
