package models

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-attendance/internal/db"
)

func GetSessionByID(sessionID int64) (*Session, error) {
	s := &Session{}
	err := db.DB.QueryRow(`
		SELECT session_id, schedule_id, class_date, is_cancelled
		FROM class_session WHERE session_id = $1
	`, sessionID).Scan(&s.ID, &s.ScheduleID, &s.ClassDate, &s.IsCancelled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// EnsureSession looks up the session for (schedule, date) and creates it if
// absent. Safe under concurrent callers: the uniqueness constraint on
// (schedule_id, class_date) is the source of truth, and losing the insert
// race falls back to re-reading the winner's row.
func EnsureSession(scheduleID int64, classDate time.Time) (int64, error) {
	var sessionID int64
	err := db.DB.QueryRow(`
		SELECT session_id FROM class_session
		WHERE schedule_id = $1 AND class_date = $2
	`, scheduleID, classDate).Scan(&sessionID)
	if err == nil {
		return sessionID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up session: %w", err)
	}

	err = db.DB.QueryRow(`
		INSERT INTO class_session (schedule_id, class_date)
		VALUES ($1, $2)
		ON CONFLICT (schedule_id, class_date) DO NOTHING
		RETURNING session_id
	`, scheduleID, classDate).Scan(&sessionID)
	if err == nil {
		return sessionID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to create session: %w", err)
	}

	// Conflict: a concurrent caller created the row between our two statements.
	err = db.DB.QueryRow(`
		SELECT session_id FROM class_session
		WHERE schedule_id = $1 AND class_date = $2
	`, scheduleID, classDate).Scan(&sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to re-read session after conflict: %w", err)
	}
	return sessionID, nil
}

// SetSessionCancelled toggles a session's cancelled flag (professor action).
func SetSessionCancelled(sessionID int64, cancelled bool) error {
	result, err := db.DB.Exec(`
		UPDATE class_session SET is_cancelled = $1 WHERE session_id = $2
	`, cancelled, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check session update: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetHeldSessionsForDate returns the non-cancelled sessions on a date, for
// the end-of-day reconciler.
func GetHeldSessionsForDate(date time.Time) ([]*Session, error) {
	rows, err := db.DB.Query(`
		SELECT session_id, schedule_id, class_date, is_cancelled
		FROM class_session
		WHERE class_date = $1 AND is_cancelled = FALSE
		ORDER BY session_id
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions for date: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s := &Session{}
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.ClassDate, &s.IsCancelled); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// GetSessionsForSubject returns every materialized session of a subject's
// schedules, keyed for weekly detail lookups.
func GetSessionsForSubject(subjectID int64) (map[SessionKey]*Session, error) {
	rows, err := db.DB.Query(`
		SELECT cs.session_id, cs.schedule_id, cs.class_date, cs.is_cancelled
		FROM class_session cs
		JOIN subject_schedule ss ON cs.schedule_id = ss.schedule_id
		WHERE ss.subject_id = $1
	`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subject sessions: %w", err)
	}
	defer rows.Close()

	sessions := make(map[SessionKey]*Session)
	for rows.Next() {
		s := &Session{}
		if err := rows.Scan(&s.ID, &s.ScheduleID, &s.ClassDate, &s.IsCancelled); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions[SessionKey{ScheduleID: s.ScheduleID, Date: s.ClassDate.Format("2006-01-02")}] = s
	}
	return sessions, rows.Err()
}
