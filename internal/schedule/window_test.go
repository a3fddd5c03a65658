package schedule

import (
	"testing"
	"time"
)

func TestAttendanceWindow(t *testing.T) {
	classDate := time.Date(2025, 9, 8, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		now      time.Time
		wantOpen bool
	}{
		{
			name:     "exactly ten minutes before start",
			now:      time.Date(2025, 9, 8, 8, 50, 0, 0, time.Local),
			wantOpen: true,
		},
		{
			name:     "one second too early",
			now:      time.Date(2025, 9, 8, 8, 49, 59, 0, time.Local),
			wantOpen: false,
		},
		{
			name:     "exactly ten minutes after start",
			now:      time.Date(2025, 9, 8, 9, 10, 0, 0, time.Local),
			wantOpen: true,
		},
		{
			name:     "one second too late",
			now:      time.Date(2025, 9, 8, 9, 10, 1, 0, time.Local),
			wantOpen: false,
		},
		{
			name:     "at class start",
			now:      time.Date(2025, 9, 8, 9, 0, 0, 0, time.Local),
			wantOpen: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := AttendanceWindow(classDate, "09:00", 10, tt.now)
			if err != nil {
				t.Fatalf("AttendanceWindow() error = %v", err)
			}
			if w.Open != tt.wantOpen {
				t.Errorf("Open = %v, want %v (now = %v)", w.Open, tt.wantOpen, tt.now)
			}
		})
	}
}

func TestAttendanceWindowBounds(t *testing.T) {
	classDate := time.Date(2025, 9, 8, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 9, 8, 9, 0, 0, 0, time.Local)

	w, err := AttendanceWindow(classDate, "09:00:00", 10, now)
	if err != nil {
		t.Fatalf("AttendanceWindow() error = %v", err)
	}
	if !w.From.Equal(time.Date(2025, 9, 8, 8, 50, 0, 0, time.Local)) {
		t.Errorf("From = %v, want 08:50", w.From)
	}
	if !w.To.Equal(time.Date(2025, 9, 8, 9, 10, 0, 0, time.Local)) {
		t.Errorf("To = %v, want 09:10", w.To)
	}
}

func TestAttendanceWindowDefaultsMinutes(t *testing.T) {
	classDate := time.Date(2025, 9, 8, 0, 0, 0, 0, time.Local)
	now := time.Date(2025, 9, 8, 8, 50, 0, 0, time.Local)

	// Non-positive window falls back to the 10-minute policy default.
	w, err := AttendanceWindow(classDate, "09:00", 0, now)
	if err != nil {
		t.Fatalf("AttendanceWindow() error = %v", err)
	}
	if !w.Open {
		t.Error("window with defaulted minutes should be open at 08:50")
	}
}

func TestAttendanceWindowBadTime(t *testing.T) {
	classDate := time.Date(2025, 9, 8, 0, 0, 0, 0, time.Local)
	if _, err := AttendanceWindow(classDate, "25:99", 10, time.Now()); err == nil {
		t.Error("expected error for out-of-range time")
	}
	if _, err := AttendanceWindow(classDate, "nine", 10, time.Now()); err == nil {
		t.Error("expected error for malformed time")
	}
}
