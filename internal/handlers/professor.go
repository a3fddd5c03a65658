package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"campus-attendance/internal/config"
	"campus-attendance/internal/models"
	"campus-attendance/internal/schedule"
)

// ProfessorHandler serves the teaching-side views: the day's sessions with
// rosters, bulk attendance marking, and session cancellation.
type ProfessorHandler struct {
	cfg *config.Config
}

func NewProfessorHandler(cfg *config.Config) *ProfessorHandler {
	return &ProfessorHandler{cfg: cfg}
}

func (h *ProfessorHandler) requireProfessor(w http.ResponseWriter, r *http.Request) (int64, bool) {
	user, err := currentUser(r)
	if err != nil {
		jsonError(w, http.StatusUnauthorized, "Not authenticated")
		return 0, false
	}
	if !user.ProfessorID.Valid {
		jsonError(w, http.StatusForbidden, "Account is not linked to a professor")
		return 0, false
	}
	return user.ProfessorID.Int64, true
}

// ownsSession verifies the session belongs to one of the professor's
// subjects before allowing a mutation.
func (h *ProfessorHandler) ownsSession(professorID, sessionID int64) (*models.Session, error) {
	sess, err := models.GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	sched, err := models.GetScheduleByID(sess.ScheduleID)
	if err != nil {
		return nil, err
	}
	subject, err := models.GetSubjectByID(sched.SubjectID)
	if err != nil {
		return nil, err
	}
	if !subject.ProfessorID.Valid || subject.ProfessorID.Int64 != professorID {
		return nil, models.ErrNotFound
	}
	return sess, nil
}

// GET /api/professor/sessions?date=YYYY-MM-DD - the professor's classes on a
// date with their materialized sessions. Defaults to today.
func (h *ProfessorHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	professorID, ok := h.requireProfessor(w, r)
	if !ok {
		return
	}

	date := schedule.StartOfDay(time.Now())
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := schedule.ParseDateLocal(raw)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	schedules, err := models.GetSchedulesForProfessorOnDay(professorID, schedule.WeekdayOf(date))
	if err != nil {
		log.Printf("ERROR: Failed to get schedules for professor %d: %v", professorID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to load sessions")
		return
	}

	type SessionResponse struct {
		SessionID   int64  `json:"session_id"`
		ScheduleID  int64  `json:"schedule_id"`
		SubjectID   int64  `json:"subject_id"`
		SubjectName string `json:"subject_name"`
		StartTime   string `json:"start_time"`
		EndTime     string `json:"end_time"`
		Location    string `json:"location,omitempty"`
		Cancelled   bool   `json:"cancelled"`
	}

	sessions := make([]SessionResponse, 0, len(schedules))
	for _, item := range schedules {
		sessionID, err := models.EnsureSession(item.Schedule.ID, date)
		if err != nil {
			log.Printf("ERROR: Failed to ensure session for schedule %d: %v", item.Schedule.ID, err)
			jsonError(w, http.StatusInternalServerError, "Failed to load sessions")
			return
		}
		sess, err := models.GetSessionByID(sessionID)
		if err != nil {
			log.Printf("ERROR: Failed to get session %d: %v", sessionID, err)
			jsonError(w, http.StatusInternalServerError, "Failed to load sessions")
			return
		}

		resp := SessionResponse{
			SessionID:   sessionID,
			ScheduleID:  item.Schedule.ID,
			SubjectID:   item.SubjectID,
			SubjectName: item.SubjectName,
			StartTime:   item.Schedule.StartTime,
			EndTime:     item.Schedule.EndTime,
			Cancelled:   sess.IsCancelled,
		}
		if item.Schedule.Location.Valid {
			resp.Location = item.Schedule.Location.String
		}
		sessions = append(sessions, resp)
	}

	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"date":     date.Format("2006-01-02"),
		"sessions": sessions,
	})
}

// GET /api/professor/roster?session_id=N - the enrolled students of a session
// with their current status.
func (h *ProfessorHandler) Roster(w http.ResponseWriter, r *http.Request) {
	professorID, ok := h.requireProfessor(w, r)
	if !ok {
		return
	}
	sessionID, given := queryID(r, "session_id")
	if !given {
		jsonError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	sess, err := h.ownsSession(professorID, sessionID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("ERROR: Failed to verify session %d ownership: %v", sessionID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to load roster")
		return
	}

	roster, err := models.GetSessionRoster(sessionID)
	if err != nil {
		log.Printf("ERROR: Failed to get roster for session %d: %v", sessionID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to load roster")
		return
	}

	type RosterResponse struct {
		StudentID     int64  `json:"student_id"`
		Name          string `json:"name"`
		StudentNumber string `json:"student_number"`
		Status        string `json:"status,omitempty"`
		CheckTime     string `json:"check_time,omitempty"`
	}

	students := make([]RosterResponse, 0, len(roster))
	for _, entry := range roster {
		row := RosterResponse{
			StudentID:     entry.Student.ID,
			Name:          entry.Student.Name,
			StudentNumber: entry.Student.StudentNumber,
		}
		if entry.HasRecord {
			row.Status = entry.Status.DisplayLabel()
		}
		if entry.CheckTime.Valid {
			row.CheckTime = entry.CheckTime.Time.Format(time.RFC3339)
		}
		students = append(students, row)
	}

	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"session_id": sessionID,
		"date":       sess.ClassDate.Format("2006-01-02"),
		"cancelled":  sess.IsCancelled,
		"students":   students,
	})
}

// POST /api/professor/attendance - bulk status update for one session. The
// professor's marks always overwrite existing records.
func (h *ProfessorHandler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	professorID, ok := h.requireProfessor(w, r)
	if !ok {
		return
	}

	var req struct {
		SessionID int64 `json:"session_id"`
		Marks     []struct {
			StudentID int64  `json:"student_id"`
			Status    string `json:"status"`
		} `json:"marks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.SessionID <= 0 || len(req.Marks) == 0 {
		jsonError(w, http.StatusBadRequest, "session_id and marks are required")
		return
	}

	marks := make([]models.AttendanceMark, 0, len(req.Marks))
	for _, m := range req.Marks {
		status, err := models.ParseCheckinStatus(m.Status)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "Invalid status for student")
			return
		}
		marks = append(marks, models.AttendanceMark{StudentID: m.StudentID, Status: status})
	}

	if _, err := h.ownsSession(professorID, req.SessionID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("ERROR: Failed to verify session %d ownership: %v", req.SessionID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to save attendance")
		return
	}

	if err := models.UpsertAttendance(req.SessionID, marks, time.Now()); err != nil {
		log.Printf("ERROR: Failed to upsert attendance for session %d: %v", req.SessionID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to save attendance")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"session_id": req.SessionID,
		"updated":    len(marks),
	})
}

// POST /api/professor/cancel - cancel or restore a session.
func (h *ProfessorHandler) CancelSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	professorID, ok := h.requireProfessor(w, r)
	if !ok {
		return
	}

	var req struct {
		SessionID int64 `json:"session_id"`
		Cancelled *bool `json:"cancelled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID <= 0 || req.Cancelled == nil {
		jsonError(w, http.StatusBadRequest, "session_id and cancelled are required")
		return
	}

	if _, err := h.ownsSession(professorID, req.SessionID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("ERROR: Failed to verify session %d ownership: %v", req.SessionID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to update session")
		return
	}

	if err := models.SetSessionCancelled(req.SessionID, *req.Cancelled); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("ERROR: Failed to update session %d: %v", req.SessionID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to update session")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"session_id": req.SessionID,
		"cancelled":  *req.Cancelled,
	})
}
