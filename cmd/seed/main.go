// Command seed populates a development database with a small campus: a few
// professors and students with login accounts, subjects with weekly
// schedules, enrollments, and every class session of the current term
// materialized up front.
package main

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"campus-attendance/internal/config"
	"campus-attendance/internal/db"
	"campus-attendance/internal/models"
	"campus-attendance/internal/schedule"

	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password123"

func main() {
	cfg := config.Load()

	if err := db.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	year, term := currentTerm(time.Now())
	log.Printf("Seeding for year %d, semester %d", year, term)

	// Professors
	profKim, err := models.CreateProfessor("Kim Minjun", "Computer Science", "kim.minjun@example.edu", "Eng 412")
	if err != nil {
		log.Fatalf("Failed to create professor: %v", err)
	}
	profLee, err := models.CreateProfessor("Lee Seoyeon", "Mathematics", "lee.seoyeon@example.edu", "Sci 108")
	if err != nil {
		log.Fatalf("Failed to create professor: %v", err)
	}

	// Students
	type seedStudent struct {
		name   string
		number string
		major  string
		grade  int
	}
	studentRows := []seedStudent{
		{"Park Jiho", "20250101", "Computer Science", 2},
		{"Choi Haeun", "20250102", "Computer Science", 2},
		{"Jung Woojin", "20250103", "Mathematics", 1},
		{"Kang Yuna", "20250104", "Mathematics", 3},
	}
	studentIDs := make([]int64, 0, len(studentRows))
	for _, s := range studentRows {
		// Rerunning the seeder against an existing database reuses the row.
		if existing, err := models.GetStudentByNumber(s.number); err == nil {
			studentIDs = append(studentIDs, existing.ID)
			continue
		}
		id, err := models.CreateStudent(s.name, s.number, s.major, s.grade)
		if err != nil {
			log.Fatalf("Failed to create student %s: %v", s.number, err)
		}
		studentIDs = append(studentIDs, id)
	}

	// Subjects with weekly schedules
	type seedSchedule struct {
		day      string
		start    string
		end      string
		location string
	}
	type seedSubject struct {
		name      string
		professor int64
		schedules []seedSchedule
	}
	subjectRows := []seedSubject{
		{"Data Structures", profKim, []seedSchedule{
			{"MON", "09:00", "10:30", "Eng 201"},
			{"WED", "09:00", "10:30", "Eng 201"},
		}},
		{"Operating Systems", profKim, []seedSchedule{
			{"TUE", "13:00", "14:30", "Eng 305"},
		}},
		{"Linear Algebra", profLee, []seedSchedule{
			{"THU", "10:00", "11:30", "Sci 120"},
			{"FRI", "10:00", "11:00", "Sci 120"},
		}},
	}

	termStart, termEnd, err := schedule.TermDateRange(year, term)
	if err != nil {
		log.Fatalf("Failed to resolve term range: %v", err)
	}

	subjectIDs := make([]int64, 0, len(subjectRows))
	for _, subj := range subjectRows {
		subjectID, err := models.CreateSubject(subj.name, subj.professor, year, term)
		if err != nil {
			log.Fatalf("Failed to create subject %s: %v", subj.name, err)
		}
		subjectIDs = append(subjectIDs, subjectID)

		for _, slot := range subj.schedules {
			scheduleID, err := models.CreateSchedule(subjectID, slot.day, slot.start, slot.end, slot.location)
			if err != nil {
				log.Fatalf("Failed to create schedule for %s: %v", subj.name, err)
			}

			// Materialize every occurrence of this slot across the term so the
			// weekly views have rows to resolve against from day one.
			dates, err := schedule.EnumerateTermSessions(schedule.Weekday(slot.day), termStart, termEnd)
			if err != nil {
				log.Fatalf("Failed to enumerate sessions for %s: %v", subj.name, err)
			}
			for _, date := range dates {
				if _, err := models.EnsureSession(scheduleID, date); err != nil {
					log.Fatalf("Failed to materialize session on %s: %v", date.Format("2006-01-02"), err)
				}
			}
			log.Printf("Materialized %d sessions for %s %s", len(dates), subj.name, slot.day)
		}
	}

	// Enrollments: every student takes the first two subjects, math majors
	// take Linear Algebra as well.
	for i, studentID := range studentIDs {
		for j, subjectID := range subjectIDs {
			if j == 2 && studentRows[i].major != "Mathematics" {
				continue
			}
			err := models.CreateEnrollment(studentID, subjectID)
			var already *models.AlreadyEnrolledError
			if errors.As(err, &already) {
				continue
			}
			if err != nil {
				log.Fatalf("Failed to enroll student %d in subject %d: %v", studentID, subjectID, err)
			}
		}
	}

	// Login accounts
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}
	for i, s := range studentRows {
		if _, err := models.GetUserByUsername(s.number); err == nil {
			continue
		}
		_, err := models.CreateUser(s.number, string(hash), "student",
			sql.NullInt64{Int64: studentIDs[i], Valid: true}, sql.NullInt64{})
		if err != nil {
			log.Fatalf("Failed to create student account %s: %v", s.number, err)
		}
	}
	for _, p := range []struct {
		username string
		id       int64
	}{
		{"prof.kim", profKim},
		{"prof.lee", profLee},
	} {
		if _, err := models.GetUserByUsername(p.username); err == nil {
			continue
		}
		_, err := models.CreateUser(p.username, string(hash), "professor",
			sql.NullInt64{}, sql.NullInt64{Int64: p.id, Valid: true})
		if err != nil {
			log.Fatalf("Failed to create professor account %s: %v", p.username, err)
		}
	}

	log.Printf("Seed complete: %d students, %d subjects (password for all accounts: %s)",
		len(studentIDs), len(subjectIDs), seedPassword)
}

// currentTerm picks the term containing now, falling back to the nearest one:
// dates before September map to term 1, the rest to term 2.
func currentTerm(now time.Time) (year, term int) {
	year = now.Year()
	if now.Month() >= time.September {
		return year, 2
	}
	return year, 1
}
