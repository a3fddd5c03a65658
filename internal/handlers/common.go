package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"campus-attendance/internal/middleware"
	"campus-attendance/internal/models"
)

// JSON response helpers
func jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: Failed to encode JSON response: %v", err)
	}
}

func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// currentUser loads the full user row behind the session cookie. The cookie
// only carries id/username/role; the linked student or professor id lives in
// the users table.
func currentUser(r *http.Request) (*models.User, error) {
	username := middleware.GetUsername(r)
	if username == "" {
		return nil, models.ErrNotFound
	}
	return models.GetUserByUsername(username)
}

// queryID reads a required int64 query parameter.
func queryID(r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
