package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-attendance/internal/db"
)

// RecordSelfCheckin records a student's own check-in for a session as
// PRESENT. At most one record per (session, student) can exist; a duplicate
// submission (including a double-click race) observes ErrAlreadyCheckedIn
// instead of overwriting, and a professor-entered record is never replaced
// by the student path.
func RecordSelfCheckin(sessionID, studentID int64, now time.Time) error {
	var exists bool
	err := db.DB.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM class_session WHERE session_id = $1)
	`, sessionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to look up session: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	result, err := db.DB.Exec(`
		INSERT INTO checkin (session_id, student_id, status, check_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (session_id, student_id) DO NOTHING
	`, sessionID, studentID, StatusPresent, now)
	if err != nil {
		return fmt.Errorf("failed to record check-in: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check check-in result: %w", err)
	}
	if affected == 0 {
		return ErrAlreadyCheckedIn
	}
	return nil
}

// GetCheckin returns the student's record for a session, or ErrNotFound.
func GetCheckin(sessionID, studentID int64) (*Checkin, error) {
	c := &Checkin{}
	err := db.DB.QueryRow(`
		SELECT checkin_id, session_id, student_id, check_time, status
		FROM checkin WHERE session_id = $1 AND student_id = $2
	`, sessionID, studentID).Scan(&c.ID, &c.SessionID, &c.StudentID, &c.CheckTime, &c.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get check-in: %w", err)
	}
	return c, nil
}

// AttendanceMark is one (student, status) pair in a professor bulk update.
type AttendanceMark struct {
	StudentID int64
	Status    CheckinStatus
}

// UpsertAttendance applies a professor's bulk attendance update for one
// session in a single transaction. Unlike the student path this is a true
// upsert: the professor's status always wins regardless of prior state.
func UpsertAttendance(sessionID int64, marks []AttendanceMark, now time.Time) error {
	if _, err := GetSessionByID(sessionID); err != nil {
		return err
	}

	tx, err := db.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mark := range marks {
		_, err := tx.Exec(`
			INSERT INTO checkin (session_id, student_id, status, check_time)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (session_id, student_id) DO UPDATE SET
				status = EXCLUDED.status,
				check_time = EXCLUDED.check_time
		`, sessionID, mark.StudentID, mark.Status, now)
		if err != nil {
			return fmt.Errorf("failed to upsert attendance for student %d: %w", mark.StudentID, err)
		}
	}

	return tx.Commit()
}

// ReconcileDay inserts an explicit ABSENT record for every enrolled student
// lacking a check-in on each of the date's held sessions. Runs as one
// transaction and is idempotent: a second run for the same date inserts
// nothing.
func ReconcileDay(date, now time.Time) (sessionsProcessed, absencesInserted int, err error) {
	sessions, err := GetHeldSessionsForDate(date)
	if err != nil {
		return 0, 0, err
	}

	tx, err := db.DB.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, sess := range sessions {
		result, err := tx.Exec(`
			INSERT INTO checkin (session_id, student_id, status, check_time)
			SELECT $1, e.student_id, $2, $3
			FROM enrollment e
			JOIN subject_schedule ss ON e.subject_id = ss.subject_id
			WHERE ss.schedule_id = $4
			  AND NOT EXISTS (
				SELECT 1 FROM checkin c
				WHERE c.session_id = $1 AND c.student_id = e.student_id
			  )
		`, sess.ID, StatusAbsent, now, sess.ScheduleID)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to insert absences for session %d: %w", sess.ID, err)
		}
		inserted, err := result.RowsAffected()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to count absences for session %d: %w", sess.ID, err)
		}
		absencesInserted += int(inserted)
		sessionsProcessed++
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit reconciliation: %w", err)
	}
	return sessionsProcessed, absencesInserted, nil
}
