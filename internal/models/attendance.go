package models

import (
	"database/sql"
	"fmt"
	"time"

	"campus-attendance/internal/db"
	"campus-attendance/internal/schedule"
)

// SummarizeSubject computes a student's attendance rollup for one subject
// across every session dated on or before asOf. The session rows are fetched
// with the student's check-in left-joined; the arithmetic itself lives in
// ComputeSummary.
func SummarizeSubject(studentID, subjectID int64, asOf time.Time, policy SummaryPolicy) (*SubjectSummary, error) {
	subject, err := GetSubjectByID(subjectID)
	if err != nil {
		return nil, err
	}

	rows, err := db.DB.Query(`
		SELECT cs.session_id, cs.schedule_id, cs.class_date, cs.is_cancelled, c.status
		FROM class_session cs
		JOIN subject_schedule ss ON cs.schedule_id = ss.schedule_id
		LEFT JOIN checkin c ON c.session_id = cs.session_id AND c.student_id = $1
		WHERE ss.subject_id = $2 AND cs.class_date <= $3
		ORDER BY cs.class_date
	`, studentID, subjectID, schedule.StartOfDay(asOf))
	if err != nil {
		return nil, fmt.Errorf("failed to query subject sessions: %w", err)
	}
	defer rows.Close()

	var outcomes []SessionOutcome
	for rows.Next() {
		sess := &Session{}
		var status sql.NullString
		if err := rows.Scan(&sess.ID, &sess.ScheduleID, &sess.ClassDate, &sess.IsCancelled, &status); err != nil {
			return nil, fmt.Errorf("failed to scan session outcome: %w", err)
		}
		outcome := SessionOutcome{Session: sess}
		if status.Valid {
			outcome.Status = CheckinStatus(status.String)
			outcome.HasRecord = true
		}
		outcomes = append(outcomes, outcome)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read session outcomes: %w", err)
	}

	summary := ComputeSummary(outcomes, policy)
	summary.SubjectID = subject.ID
	summary.SubjectName = subject.Name
	return &summary, nil
}

// SummarizeAllSubjects rolls up every subject the student is enrolled in.
func SummarizeAllSubjects(studentID int64, asOf time.Time, policy SummaryPolicy) ([]*SubjectSummary, error) {
	subjects, err := GetEnrolledSubjects(studentID)
	if err != nil {
		return nil, err
	}

	var summaries []*SubjectSummary
	for _, subject := range subjects {
		summary, err := SummarizeSubject(studentID, subject.ID, asOf, policy)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// WeeklyDetail builds the 16-week attendance projection for a student and
// subject: one row per scheduled occurrence per week, resolved against
// materialized sessions and the student's check-ins.
func WeeklyDetail(studentID, subjectID int64, now time.Time) ([]WeekDetail, error) {
	subject, err := GetSubjectByID(subjectID)
	if err != nil {
		return nil, err
	}

	termStart, _, err := schedule.TermDateRange(subject.Year, subject.Semester)
	if err != nil {
		return nil, err
	}

	schedules, err := GetSchedulesForSubject(subjectID)
	if err != nil {
		return nil, err
	}

	sessions, err := GetSessionsForSubject(subjectID)
	if err != nil {
		return nil, err
	}

	checkins, err := getCheckinStatuses(studentID, subjectID)
	if err != nil {
		return nil, err
	}

	return ResolveWeeklyDetail(schedules, termStart, sessions, checkins, now)
}

// getCheckinStatuses maps session id to the student's status for every
// check-in within one subject.
func getCheckinStatuses(studentID, subjectID int64) (map[int64]CheckinStatus, error) {
	rows, err := db.DB.Query(`
		SELECT c.session_id, c.status
		FROM checkin c
		JOIN class_session cs ON c.session_id = cs.session_id
		JOIN subject_schedule ss ON cs.schedule_id = ss.schedule_id
		WHERE c.student_id = $1 AND ss.subject_id = $2
	`, studentID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-ins: %w", err)
	}
	defer rows.Close()

	statuses := make(map[int64]CheckinStatus)
	for rows.Next() {
		var sessionID int64
		var status CheckinStatus
		if err := rows.Scan(&sessionID, &status); err != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", err)
		}
		statuses[sessionID] = status
	}
	return statuses, rows.Err()
}
