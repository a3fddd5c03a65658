package models

import (
	"database/sql"
	"fmt"

	"campus-attendance/internal/db"
	"campus-attendance/internal/schedule"
)

// Creation helpers for admin tooling and the development seeder. The web
// layer never exposes these directly.

func CreateStudent(name, studentNumber, major string, grade int) (int64, error) {
	var majorVal sql.NullString
	if major != "" {
		majorVal = sql.NullString{String: major, Valid: true}
	}

	var studentID int64
	err := db.DB.QueryRow(`
		INSERT INTO student (name, student_number, student_major, student_grade)
		VALUES ($1, $2, $3, $4)
		RETURNING student_id
	`, name, studentNumber, majorVal, grade).Scan(&studentID)
	if err != nil {
		return 0, fmt.Errorf("failed to create student: %w", err)
	}
	return studentID, nil
}

func CreateProfessor(name, major, email, officeLocation string) (int64, error) {
	var professorID int64
	err := db.DB.QueryRow(`
		INSERT INTO professor (name, major, email, office_location)
		VALUES ($1, $2, $3, $4)
		RETURNING professor_id
	`, name, nullableString(major), nullableString(email), nullableString(officeLocation)).Scan(&professorID)
	if err != nil {
		return 0, fmt.Errorf("failed to create professor: %w", err)
	}
	return professorID, nil
}

func CreateSubject(name string, professorID int64, year, semester int) (int64, error) {
	if _, _, err := schedule.TermDateRange(year, semester); err != nil {
		return 0, err
	}

	var profVal sql.NullInt64
	if professorID > 0 {
		profVal = sql.NullInt64{Int64: professorID, Valid: true}
	}

	var subjectID int64
	err := db.DB.QueryRow(`
		INSERT INTO subject (name, professor_id, subject_year, subject_semester)
		VALUES ($1, $2, $3, $4)
		RETURNING subject_id
	`, name, profVal, year, semester).Scan(&subjectID)
	if err != nil {
		return 0, fmt.Errorf("failed to create subject: %w", err)
	}
	return subjectID, nil
}

// CreateSchedule adds a weekly slot to a subject. The weekday symbol and the
// time range are validated before touching the store.
func CreateSchedule(subjectID int64, dayOfWeek, startTime, endTime, location string) (int64, error) {
	day, err := schedule.ParseWeekday(dayOfWeek)
	if err != nil {
		return 0, err
	}
	startHour, startMinute, err := schedule.ParseTimeOfDay(startTime)
	if err != nil {
		return 0, err
	}
	endHour, endMinute, err := schedule.ParseTimeOfDay(endTime)
	if err != nil {
		return 0, err
	}
	if startHour*60+startMinute >= endHour*60+endMinute {
		return 0, fmt.Errorf("schedule start time %s must be before end time %s", startTime, endTime)
	}

	var scheduleID int64
	err = db.DB.QueryRow(`
		INSERT INTO subject_schedule (subject_id, day_of_week, start_time, end_time, location)
		VALUES ($1, $2, $3::time, $4::time, $5)
		RETURNING schedule_id
	`, subjectID, day, startTime, endTime, nullableString(location)).Scan(&scheduleID)
	if err != nil {
		return 0, fmt.Errorf("failed to create schedule: %w", err)
	}
	return scheduleID, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
