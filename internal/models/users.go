package models

import (
	"database/sql"
	"errors"
	"fmt"

	"campus-attendance/internal/db"

	"github.com/google/uuid"
)

func GetUserByUsername(username string) (*User, error) {
	user := &User{}
	err := db.DB.QueryRow(`
		SELECT id, username, password_hash, role, student_id, professor_id, created_at
		FROM users WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role,
		&user.StudentID, &user.ProfessorID, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func CreateUser(username, passwordHash, role string, studentID, professorID sql.NullInt64) (*User, error) {
	userID := uuid.New()
	_, err := db.DB.Exec(`
		INSERT INTO users (id, username, password_hash, role, student_id, professor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
	`, userID, username, passwordHash, role, studentID, professorID)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &User{
		ID:           userID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		StudentID:    studentID,
		ProfessorID:  professorID,
	}, nil
}
