package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"campus-attendance/internal/config"
	"campus-attendance/internal/middleware"
	"campus-attendance/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := models.GetUserByUsername(req.Username)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.Printf("ERROR: Failed to look up user %q: %v", req.Username, err)
		}
		jsonError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		jsonError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	cookie, err := middleware.CreateSessionCookie(user.ID.String(), user.Username, user.Role, h.cfg.SessionSecret)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	http.SetCookie(w, cookie)

	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"id":       user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
	})
}

// POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, middleware.ClearSessionCookie())
	jsonResponse(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// GET /api/me - returns current user info
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		jsonError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	resp := map[string]interface{}{
		"id":       user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
	}
	if user.StudentID.Valid {
		resp["student_id"] = user.StudentID.Int64
		if student, err := models.GetStudentByID(user.StudentID.Int64); err == nil {
			resp["name"] = student.Name
			resp["student_number"] = student.StudentNumber
		}
	}
	if user.ProfessorID.Valid {
		resp["professor_id"] = user.ProfessorID.Int64
	}
	jsonResponse(w, http.StatusOK, resp)
}
