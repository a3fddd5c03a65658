package models

import (
	"database/sql"
	"errors"
	"fmt"

	"campus-attendance/internal/db"
	"campus-attendance/internal/schedule"
)

func GetStudentByID(studentID int64) (*Student, error) {
	s := &Student{}
	err := db.DB.QueryRow(`
		SELECT student_id, name, student_number, student_major, student_grade, created_at
		FROM student WHERE student_id = $1
	`, studentID).Scan(&s.ID, &s.Name, &s.StudentNumber, &s.Major, &s.Grade, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return s, nil
}

func GetStudentByNumber(studentNumber string) (*Student, error) {
	s := &Student{}
	err := db.DB.QueryRow(`
		SELECT student_id, name, student_number, student_major, student_grade, created_at
		FROM student WHERE student_number = $1
	`, studentNumber).Scan(&s.ID, &s.Name, &s.StudentNumber, &s.Major, &s.Grade, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get student by number: %w", err)
	}
	return s, nil
}

func GetProfessorByID(professorID int64) (*Professor, error) {
	p := &Professor{}
	err := db.DB.QueryRow(`
		SELECT professor_id, name, major, email, office_location, created_at
		FROM professor WHERE professor_id = $1
	`, professorID).Scan(&p.ID, &p.Name, &p.Major, &p.Email, &p.OfficeLocation, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get professor: %w", err)
	}
	return p, nil
}

func GetSubjectByID(subjectID int64) (*Subject, error) {
	s := &Subject{}
	err := db.DB.QueryRow(`
		SELECT subject_id, professor_id, name, subject_year, subject_semester, created_at
		FROM subject WHERE subject_id = $1
	`, subjectID).Scan(&s.ID, &s.ProfessorID, &s.Name, &s.Year, &s.Semester, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}
	return s, nil
}

func GetScheduleByID(scheduleID int64) (*Schedule, error) {
	s := &Schedule{}
	err := db.DB.QueryRow(`
		SELECT schedule_id, subject_id, day_of_week,
		       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), location
		FROM subject_schedule WHERE schedule_id = $1
	`, scheduleID).Scan(&s.ID, &s.SubjectID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return s, nil
}

func GetSchedulesForSubject(subjectID int64) ([]*Schedule, error) {
	rows, err := db.DB.Query(`
		SELECT schedule_id, subject_id, day_of_week,
		       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), location
		FROM subject_schedule
		WHERE subject_id = $1
		ORDER BY schedule_id
	`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subject schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*Schedule
	for rows.Next() {
		s := &Schedule{}
		if err := rows.Scan(&s.ID, &s.SubjectID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.Location); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// ScheduleWithSubject is one weekly slot joined with its subject, for the
// student's check-in view.
type ScheduleWithSubject struct {
	Schedule      *Schedule
	SubjectID     int64
	SubjectName   string
	ProfessorName sql.NullString
}

// GetSchedulesForStudentOnDay returns the enrolled schedules falling on the
// given weekday, ordered by start time.
func GetSchedulesForStudentOnDay(studentID int64, day schedule.Weekday) ([]*ScheduleWithSubject, error) {
	rows, err := db.DB.Query(`
		SELECT ss.schedule_id, ss.subject_id, ss.day_of_week,
		       to_char(ss.start_time, 'HH24:MI'), to_char(ss.end_time, 'HH24:MI'), ss.location,
		       s.name, p.name
		FROM enrollment e
		JOIN subject s ON e.subject_id = s.subject_id
		JOIN subject_schedule ss ON s.subject_id = ss.subject_id
		LEFT JOIN professor p ON s.professor_id = p.professor_id
		WHERE e.student_id = $1 AND ss.day_of_week = $2
		ORDER BY ss.start_time
	`, studentID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query student schedules: %w", err)
	}
	defer rows.Close()

	var result []*ScheduleWithSubject
	for rows.Next() {
		item := &ScheduleWithSubject{Schedule: &Schedule{}}
		err := rows.Scan(
			&item.Schedule.ID, &item.Schedule.SubjectID, &item.Schedule.DayOfWeek,
			&item.Schedule.StartTime, &item.Schedule.EndTime, &item.Schedule.Location,
			&item.SubjectName, &item.ProfessorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student schedule: %w", err)
		}
		item.SubjectID = item.Schedule.SubjectID
		result = append(result, item)
	}
	return result, rows.Err()
}

// GetSchedulesForProfessorOnDay returns the professor's schedules falling on
// the given weekday, ordered by start time.
func GetSchedulesForProfessorOnDay(professorID int64, day schedule.Weekday) ([]*ScheduleWithSubject, error) {
	rows, err := db.DB.Query(`
		SELECT ss.schedule_id, ss.subject_id, ss.day_of_week,
		       to_char(ss.start_time, 'HH24:MI'), to_char(ss.end_time, 'HH24:MI'), ss.location,
		       s.name, p.name
		FROM subject s
		JOIN subject_schedule ss ON s.subject_id = ss.subject_id
		JOIN professor p ON s.professor_id = p.professor_id
		WHERE p.professor_id = $1 AND ss.day_of_week = $2
		ORDER BY ss.start_time
	`, professorID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query professor schedules: %w", err)
	}
	defer rows.Close()

	var result []*ScheduleWithSubject
	for rows.Next() {
		item := &ScheduleWithSubject{Schedule: &Schedule{}}
		err := rows.Scan(
			&item.Schedule.ID, &item.Schedule.SubjectID, &item.Schedule.DayOfWeek,
			&item.Schedule.StartTime, &item.Schedule.EndTime, &item.Schedule.Location,
			&item.SubjectName, &item.ProfessorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan professor schedule: %w", err)
		}
		item.SubjectID = item.Schedule.SubjectID
		result = append(result, item)
	}
	return result, rows.Err()
}

// GetEnrolledSubjects returns the subjects a student is registered for.
func GetEnrolledSubjects(studentID int64) ([]*Subject, error) {
	rows, err := db.DB.Query(`
		SELECT s.subject_id, s.professor_id, s.name, s.subject_year, s.subject_semester, s.created_at
		FROM enrollment e
		JOIN subject s ON e.subject_id = s.subject_id
		WHERE e.student_id = $1
		ORDER BY s.subject_id
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrolled subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*Subject
	for rows.Next() {
		s := &Subject{}
		if err := rows.Scan(&s.ID, &s.ProfessorID, &s.Name, &s.Year, &s.Semester, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// GetEnrolledSubjectSchedules returns the student's timetable: each enrolled
// subject with its professor's name and weekly slots.
func GetEnrolledSubjectSchedules(studentID int64) ([]*SubjectSchedules, error) {
	subjects, err := GetEnrolledSubjects(studentID)
	if err != nil {
		return nil, err
	}

	var result []*SubjectSchedules
	for _, subject := range subjects {
		item := &SubjectSchedules{Subject: subject}

		if subject.ProfessorID.Valid {
			prof, err := GetProfessorByID(subject.ProfessorID.Int64)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, err
			}
			if err == nil {
				item.ProfessorName = sql.NullString{String: prof.Name, Valid: true}
			}
		}

		item.Schedules, err = GetSchedulesForSubject(subject.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// GetSessionRoster returns every student enrolled in a session's subject with
// their recorded status, if any, for the professor's management view.
func GetSessionRoster(sessionID int64) ([]*RosterEntry, error) {
	rows, err := db.DB.Query(`
		SELECT st.student_id, st.name, st.student_number, st.student_major, st.student_grade, st.created_at,
		       c.status, c.check_time
		FROM class_session cs
		JOIN subject_schedule ss ON cs.schedule_id = ss.schedule_id
		JOIN enrollment e ON e.subject_id = ss.subject_id
		JOIN student st ON st.student_id = e.student_id
		LEFT JOIN checkin c ON c.session_id = cs.session_id AND c.student_id = st.student_id
		WHERE cs.session_id = $1
		ORDER BY st.student_number
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session roster: %w", err)
	}
	defer rows.Close()

	var roster []*RosterEntry
	for rows.Next() {
		entry := &RosterEntry{Student: &Student{}}
		var status sql.NullString
		err := rows.Scan(
			&entry.Student.ID, &entry.Student.Name, &entry.Student.StudentNumber,
			&entry.Student.Major, &entry.Student.Grade, &entry.Student.CreatedAt,
			&status, &entry.CheckTime,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		if status.Valid {
			entry.Status = CheckinStatus(status.String)
			entry.HasRecord = true
		}
		roster = append(roster, entry)
	}
	return roster, rows.Err()
}

// CreateEnrollment registers a student for a subject. A duplicate
// registration surfaces as AlreadyEnrolledError.
func CreateEnrollment(studentID, subjectID int64) error {
	_, err := db.DB.Exec(`
		INSERT INTO enrollment (student_id, subject_id) VALUES ($1, $2)
	`, studentID, subjectID)
	if err != nil {
		if enrollErr := IsEnrollmentConstraintError(err); enrollErr != nil {
			enrollErr.StudentID = studentID
			enrollErr.SubjectID = subjectID
			return enrollErr
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}
