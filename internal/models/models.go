package models

import (
	"database/sql"
	"time"

	"campus-attendance/internal/schedule"

	"github.com/google/uuid"
)

type Student struct {
	ID            int64
	Name          string
	StudentNumber string
	Major         sql.NullString
	Grade         sql.NullInt32
	CreatedAt     time.Time
}

type Professor struct {
	ID             int64
	Name           string
	Major          sql.NullString
	Email          sql.NullString
	OfficeLocation sql.NullString
	CreatedAt      time.Time
}

type Subject struct {
	ID          int64
	ProfessorID sql.NullInt64
	Name        string
	Year        int
	Semester    int
	CreatedAt   time.Time
}

// Schedule is one recurring weekly time slot of a subject. Times are held as
// "HH:MM" strings the way they leave the store boundary.
type Schedule struct {
	ID        int64
	SubjectID int64
	DayOfWeek schedule.Weekday
	StartTime string
	EndTime   string
	Location  sql.NullString
}

// Session is one concrete calendar occurrence of a Schedule.
type Session struct {
	ID          int64
	ScheduleID  int64
	ClassDate   time.Time
	IsCancelled bool
}

type Checkin struct {
	ID        int64
	SessionID int64
	StudentID int64
	CheckTime time.Time
	Status    CheckinStatus
}

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         string
	StudentID    sql.NullInt64
	ProfessorID  sql.NullInt64
	CreatedAt    time.Time
}

// SubjectSchedules bundles a subject with its weekly slots for list views.
type SubjectSchedules struct {
	Subject       *Subject
	ProfessorName sql.NullString
	Schedules     []*Schedule
}

// RosterEntry is one enrolled student's status for a single session, as shown
// on the professor's management view. Status is empty when no record exists.
type RosterEntry struct {
	Student   *Student
	Status    CheckinStatus
	HasRecord bool
	CheckTime sql.NullTime
}
