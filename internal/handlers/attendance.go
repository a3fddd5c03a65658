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

// AttendanceHandler serves the student-facing views: today's classes with
// their check-in windows, the self check-in action, the per-subject rollup
// and the week-by-week detail.
type AttendanceHandler struct {
	cfg *config.Config
}

func NewAttendanceHandler(cfg *config.Config) *AttendanceHandler {
	return &AttendanceHandler{cfg: cfg}
}

func (h *AttendanceHandler) policy() models.SummaryPolicy {
	return models.SummaryPolicy{LateToAbsence: h.cfg.LateToAbsence}
}

// requireStudent resolves the logged-in user's student id.
func (h *AttendanceHandler) requireStudent(w http.ResponseWriter, r *http.Request) (int64, bool) {
	user, err := currentUser(r)
	if err != nil {
		jsonError(w, http.StatusUnauthorized, "Not authenticated")
		return 0, false
	}
	if !user.StudentID.Valid {
		jsonError(w, http.StatusForbidden, "Account is not linked to a student")
		return 0, false
	}
	return user.StudentID.Int64, true
}

// GET /api/student/today - today's classes with materialized sessions, the
// student's recorded status, and whether the check-in window is open.
func (h *AttendanceHandler) Today(w http.ResponseWriter, r *http.Request) {
	studentID, ok := h.requireStudent(w, r)
	if !ok {
		return
	}

	now := time.Now()
	today := schedule.StartOfDay(now)

	schedules, err := models.GetSchedulesForStudentOnDay(studentID, schedule.WeekdayOf(now))
	if err != nil {
		log.Printf("ERROR: Failed to get schedules for student %d: %v", studentID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to load today's classes")
		return
	}

	type TodayClass struct {
		SessionID     int64  `json:"session_id"`
		ScheduleID    int64  `json:"schedule_id"`
		SubjectID     int64  `json:"subject_id"`
		SubjectName   string `json:"subject_name"`
		ProfessorName string `json:"professor_name,omitempty"`
		StartTime     string `json:"start_time"`
		EndTime       string `json:"end_time"`
		Location      string `json:"location,omitempty"`
		Cancelled     bool   `json:"cancelled"`
		WindowFrom    string `json:"window_from"`
		WindowTo      string `json:"window_to"`
		WindowOpen    bool   `json:"window_open"`
		Status        string `json:"status,omitempty"`
	}

	classes := make([]TodayClass, 0, len(schedules))
	for _, item := range schedules {
		sessionID, err := models.EnsureSession(item.Schedule.ID, today)
		if err != nil {
			log.Printf("ERROR: Failed to ensure session for schedule %d: %v", item.Schedule.ID, err)
			jsonError(w, http.StatusInternalServerError, "Failed to load today's classes")
			return
		}
		sess, err := models.GetSessionByID(sessionID)
		if err != nil {
			log.Printf("ERROR: Failed to get session %d: %v", sessionID, err)
			jsonError(w, http.StatusInternalServerError, "Failed to load today's classes")
			return
		}

		win, err := schedule.AttendanceWindow(today, item.Schedule.StartTime, h.cfg.AttendanceWindowMinutes, now)
		if err != nil {
			log.Printf("ERROR: Failed to compute window for schedule %d: %v", item.Schedule.ID, err)
			jsonError(w, http.StatusInternalServerError, "Failed to load today's classes")
			return
		}

		class := TodayClass{
			SessionID:   sessionID,
			ScheduleID:  item.Schedule.ID,
			SubjectID:   item.SubjectID,
			SubjectName: item.SubjectName,
			StartTime:   item.Schedule.StartTime,
			EndTime:     item.Schedule.EndTime,
			Cancelled:   sess.IsCancelled,
			WindowFrom:  win.From.Format(time.RFC3339),
			WindowTo:    win.To.Format(time.RFC3339),
			WindowOpen:  win.Open && !sess.IsCancelled,
		}
		if item.ProfessorName.Valid {
			class.ProfessorName = item.ProfessorName.String
		}
		if item.Schedule.Location.Valid {
			class.Location = item.Schedule.Location.String
		}

		checkin, err := models.GetCheckin(sessionID, studentID)
		if err == nil {
			class.Status = checkin.Status.DisplayLabel()
		} else if !errors.Is(err, models.ErrNotFound) {
			log.Printf("ERROR: Failed to get check-in for session %d: %v", sessionID, err)
			jsonError(w, http.StatusInternalServerError, "Failed to load today's classes")
			return
		}

		classes = append(classes, class)
	}

	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"date":    today.Format("2006-01-02"),
		"classes": classes,
	})
}

// POST /api/student/checkin - self check-in to a session. The window is
// re-validated server side; the client's view of it is advisory only.
func (h *AttendanceHandler) Checkin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	studentID, ok := h.requireStudent(w, r)
	if !ok {
		return
	}

	var req struct {
		SessionID int64 `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID <= 0 {
		jsonError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	sess, err := models.GetSessionByID(req.SessionID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "Session not found")
			return
		}
		log.Printf("ERROR: Failed to get session %d: %v", req.SessionID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to check in")
		return
	}
	if sess.IsCancelled {
		jsonError(w, http.StatusConflict, "Class session is cancelled")
		return
	}

	sched, err := models.GetScheduleByID(sess.ScheduleID)
	if err != nil {
		log.Printf("ERROR: Failed to get schedule %d: %v", sess.ScheduleID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to check in")
		return
	}

	now := time.Now()
	win, err := schedule.AttendanceWindow(sess.ClassDate, sched.StartTime, h.cfg.AttendanceWindowMinutes, now)
	if err != nil {
		log.Printf("ERROR: Failed to compute window for session %d: %v", req.SessionID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to check in")
		return
	}
	if !win.Open {
		jsonError(w, http.StatusForbidden, "Check-in window is closed")
		return
	}

	err = models.RecordSelfCheckin(req.SessionID, studentID, now)
	if errors.Is(err, models.ErrAlreadyCheckedIn) {
		jsonError(w, http.StatusConflict, "Already checked in")
		return
	}
	if errors.Is(err, models.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		log.Printf("ERROR: Failed to record check-in for session %d, student %d: %v", req.SessionID, studentID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to check in")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"session_id": req.SessionID,
		"status":     models.StatusPresent.DisplayLabel(),
		"check_time": now.Format(time.RFC3339),
	})
}

// GET /api/student/subjects - the student's timetable: enrolled subjects with
// their weekly slots.
func (h *AttendanceHandler) Subjects(w http.ResponseWriter, r *http.Request) {
	studentID, ok := h.requireStudent(w, r)
	if !ok {
		return
	}

	timetable, err := models.GetEnrolledSubjectSchedules(studentID)
	if err != nil {
		log.Printf("ERROR: Failed to get timetable for student %d: %v", studentID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to load subjects")
		return
	}

	type SlotResponse struct {
		ScheduleID int64  `json:"schedule_id"`
		DayOfWeek  string `json:"day_of_week"`
		StartTime  string `json:"start_time"`
		EndTime    string `json:"end_time"`
		Location   string `json:"location,omitempty"`
	}
	type SubjectResponse struct {
		SubjectID     int64          `json:"subject_id"`
		Name          string         `json:"name"`
		Year          int            `json:"year"`
		Semester      int            `json:"semester"`
		ProfessorName string         `json:"professor_name,omitempty"`
		Slots         []SlotResponse `json:"slots"`
	}

	resp := make([]SubjectResponse, 0, len(timetable))
	for _, item := range timetable {
		row := SubjectResponse{
			SubjectID: item.Subject.ID,
			Name:      item.Subject.Name,
			Year:      item.Subject.Year,
			Semester:  item.Subject.Semester,
			Slots:     make([]SlotResponse, 0, len(item.Schedules)),
		}
		if item.ProfessorName.Valid {
			row.ProfessorName = item.ProfessorName.String
		}
		for _, sch := range item.Schedules {
			slot := SlotResponse{
				ScheduleID: sch.ID,
				DayOfWeek:  string(sch.DayOfWeek),
				StartTime:  sch.StartTime,
				EndTime:    sch.EndTime,
			}
			if sch.Location.Valid {
				slot.Location = sch.Location.String
			}
			row.Slots = append(row.Slots, slot)
		}
		resp = append(resp, row)
	}

	jsonResponse(w, http.StatusOK, map[string]interface{}{"subjects": resp})
}

// GET /api/student/summary - attendance rollup for every enrolled subject,
// or one subject when subject_id is given.
func (h *AttendanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	studentID, ok := h.requireStudent(w, r)
	if !ok {
		return
	}

	now := time.Now()
	var summaries []*models.SubjectSummary
	var err error
	if subjectID, given := queryID(r, "subject_id"); given {
		var summary *models.SubjectSummary
		summary, err = models.SummarizeSubject(studentID, subjectID, now, h.policy())
		if summary != nil {
			summaries = append(summaries, summary)
		}
	} else {
		summaries, err = models.SummarizeAllSubjects(studentID, now, h.policy())
	}
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "Subject not found")
			return
		}
		log.Printf("ERROR: Failed to summarize attendance for student %d: %v", studentID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to load attendance summary")
		return
	}

	type SummaryResponse struct {
		SubjectID   int64   `json:"subject_id"`
		SubjectName string  `json:"subject_name"`
		Held        int     `json:"held"`
		Present     int     `json:"present"`
		Late        int     `json:"late"`
		Absent      int     `json:"absent"`
		Unrecorded  int     `json:"unrecorded"`
		Cancelled   int     `json:"cancelled"`
		Percentage  float64 `json:"percentage"`
		Tier        string  `json:"tier"`
	}

	resp := make([]SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, SummaryResponse{
			SubjectID:   s.SubjectID,
			SubjectName: s.SubjectName,
			Held:        s.HeldSessions,
			Present:     s.PresentCount,
			Late:        s.LateCount,
			Absent:      s.AbsentCount,
			Unrecorded:  s.UnrecordedCount,
			Cancelled:   s.CancelledSessions,
			Percentage:  s.Percentage,
			Tier:        string(s.Tier),
		})
	}
	jsonResponse(w, http.StatusOK, map[string]interface{}{"subjects": resp})
}

// GET /api/student/weeks?subject_id=N - the week-by-week attendance grid for
// one subject across the term.
func (h *AttendanceHandler) WeeklyDetail(w http.ResponseWriter, r *http.Request) {
	studentID, ok := h.requireStudent(w, r)
	if !ok {
		return
	}
	subjectID, given := queryID(r, "subject_id")
	if !given {
		jsonError(w, http.StatusBadRequest, "subject_id is required")
		return
	}

	now := time.Now()
	weeks, err := models.WeeklyDetail(studentID, subjectID, now)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			jsonError(w, http.StatusNotFound, "Subject not found")
			return
		}
		log.Printf("ERROR: Failed to build weekly detail for student %d, subject %d: %v", studentID, subjectID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to load weekly detail")
		return
	}

	subject, err := models.GetSubjectByID(subjectID)
	if err != nil {
		log.Printf("ERROR: Failed to get subject %d: %v", subjectID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to load weekly detail")
		return
	}
	termStart, termEnd, err := schedule.TermDateRange(subject.Year, subject.Semester)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "Failed to load weekly detail")
		return
	}
	_, currentWeek := schedule.CurrentWeekInTerm(termStart, termEnd, now)

	schedules, err := models.GetSchedulesForSubject(subjectID)
	if err != nil {
		log.Printf("ERROR: Failed to get schedules for subject %d: %v", subjectID, err)
		jsonError(w, http.StatusInternalServerError, "Failed to load weekly detail")
		return
	}
	schedulesByID := make(map[int64]*models.Schedule, len(schedules))
	for _, sch := range schedules {
		schedulesByID[sch.ID] = sch
	}

	type WeekResponse struct {
		Week      int    `json:"week"`
		Date      string `json:"date"`
		DayOfWeek string `json:"day_of_week"`
		StartTime string `json:"start_time"`
		Status    string `json:"status"`
	}

	resp := make([]WeekResponse, 0, len(weeks))
	for _, wk := range weeks {
		row := WeekResponse{
			Week:   wk.Week,
			Date:   wk.Date.Format("2006-01-02"),
			Status: wk.Status,
		}
		if sch, ok := schedulesByID[wk.ScheduleID]; ok {
			row.DayOfWeek = string(sch.DayOfWeek)
			row.StartTime = sch.StartTime
		}
		resp = append(resp, row)
	}
	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"subject_id":   subjectID,
		"current_week": currentWeek,
		"weeks":        resp,
	})
}
