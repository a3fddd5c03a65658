package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a session, subject, or student id has no
// matching row. The web layer turns it into a user-facing message; it is
// never fatal to the process.
var ErrNotFound = errors.New("not found")

// ErrAlreadyCheckedIn is returned when a student self-check-in targets a
// (session, student) pair that already has a record. Self-check-in never
// overwrites, including professor-entered records.
var ErrAlreadyCheckedIn = errors.New("attendance already recorded for this session")

// AlreadyEnrolledError represents an enrollment uniqueness violation on
// (student, subject).
type AlreadyEnrolledError struct {
	StudentID int64
	SubjectID int64
	Message   string
}

func (e *AlreadyEnrolledError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("student %d is already enrolled in subject %d", e.StudentID, e.SubjectID)
}

// IsEnrollmentConstraintError checks if an error is a PostgreSQL unique
// constraint violation on the enrollment primary key. Returns the error
// wrapped as AlreadyEnrolledError if it matches, or nil otherwise.
func IsEnrollmentConstraintError(err error) *AlreadyEnrolledError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE 23505 = unique_violation
		if pgErr.Code == "23505" {
			constraintName := strings.ToLower(pgErr.ConstraintName)
			if strings.Contains(constraintName, "enrollment") {
				return &AlreadyEnrolledError{Message: "Student is already enrolled in this subject"}
			}
		}
	}

	// Fallback on the error message for non-pgx paths
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "enrollment") && (strings.Contains(errMsg, "unique") || strings.Contains(errMsg, "duplicate")) {
		return &AlreadyEnrolledError{Message: "Student is already enrolled in this subject"}
	}

	return nil
}
