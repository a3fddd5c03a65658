package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"campus-attendance/internal/config"
	"campus-attendance/internal/db"
	"campus-attendance/internal/handlers"
	"campus-attendance/internal/middleware"
	"campus-attendance/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()

	// Connect to database
	if err := db.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed admin user if it doesn't exist
	if err := seedAdminUser(cfg); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	attendanceHandler := handlers.NewAttendanceHandler(cfg)
	professorHandler := handlers.NewProfessorHandler(cfg)

	// Setup routes
	mux := http.NewServeMux()

	requestLogMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cfg.Debugf("REQUEST: %s %s", r.Method, r.URL.Path)
			next(w, r)
		}
	}

	requireStudent := middleware.RequireRole([]string{"student", "admin"}, cfg.SessionSecret)
	requireProfessor := middleware.RequireRole([]string{"professor", "admin"}, cfg.SessionSecret)

	// Auth routes (public)
	mux.HandleFunc("/api/login", requestLogMiddleware(authHandler.Login))
	mux.HandleFunc("/api/logout", requestLogMiddleware(authHandler.Logout))
	mux.HandleFunc("/api/me", requestLogMiddleware(middleware.RequireAuth(authHandler.Me, cfg.SessionSecret)))

	// Student routes
	mux.HandleFunc("/api/student/today", requestLogMiddleware(requireStudent(attendanceHandler.Today)))
	mux.HandleFunc("/api/student/checkin", requestLogMiddleware(requireStudent(attendanceHandler.Checkin)))
	mux.HandleFunc("/api/student/subjects", requestLogMiddleware(requireStudent(attendanceHandler.Subjects)))
	mux.HandleFunc("/api/student/summary", requestLogMiddleware(requireStudent(attendanceHandler.Summary)))
	mux.HandleFunc("/api/student/weeks", requestLogMiddleware(requireStudent(attendanceHandler.WeeklyDetail)))

	// Professor routes
	mux.HandleFunc("/api/professor/sessions", requestLogMiddleware(requireProfessor(professorHandler.Sessions)))
	mux.HandleFunc("/api/professor/roster", requestLogMiddleware(requireProfessor(professorHandler.Roster)))
	mux.HandleFunc("/api/professor/attendance", requestLogMiddleware(requireProfessor(professorHandler.MarkAttendance)))
	mux.HandleFunc("/api/professor/cancel", requestLogMiddleware(requireProfessor(professorHandler.CancelSession)))

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	port := cfg.Port
	log.Printf("Server starting on http://localhost:%s", port)
	log.Printf("Default admin login: %s / %s", cfg.AdminUsername, cfg.AdminPassword)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func seedAdminUser(cfg *config.Config) error {
	// Check if admin user exists
	_, err := models.GetUserByUsername(cfg.AdminUsername)
	if err == nil {
		// User already exists
		return nil
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Create admin user
	_, err = models.CreateUser(cfg.AdminUsername, string(hashedPassword), "admin", sql.NullInt64{}, sql.NullInt64{})
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("Created default admin user: %s", cfg.AdminUsername)
	return nil
}
