package models

import (
	"testing"
	"time"

	"campus-attendance/internal/schedule"
)

func outcomes(present, late, absent, unrecorded, cancelled int) []SessionOutcome {
	var out []SessionOutcome
	id := int64(1)
	add := func(n int, status CheckinStatus, hasRecord, isCancelled bool) {
		for i := 0; i < n; i++ {
			out = append(out, SessionOutcome{
				Session:   &Session{ID: id, ScheduleID: 1, IsCancelled: isCancelled},
				Status:    status,
				HasRecord: hasRecord,
			})
			id++
		}
	}
	add(present, StatusPresent, true, false)
	add(late, StatusLate, true, false)
	add(absent, StatusAbsent, true, false)
	add(unrecorded, "", false, false)
	add(cancelled, "", false, true)
	return out
}

func TestComputeSummary(t *testing.T) {
	tests := []struct {
		name           string
		outcomes       []SessionOutcome
		policy         SummaryPolicy
		wantPercentage float64
		wantTier       StatusTier
		wantUnrecorded int
	}{
		{
			name:           "late counts as attendance",
			outcomes:       outcomes(7, 2, 1, 0, 0),
			wantPercentage: 90.0,
			wantTier:       TierSafe,
		},
		{
			name:           "zero held sessions reports full attendance",
			outcomes:       nil,
			wantPercentage: 100.0,
			wantTier:       TierSafe,
		},
		{
			name:           "only cancelled sessions reports full attendance",
			outcomes:       outcomes(0, 0, 0, 0, 3),
			wantPercentage: 100.0,
			wantTier:       TierSafe,
		},
		{
			name:           "unrecorded sessions count as implicit absences",
			outcomes:       outcomes(6, 0, 0, 4, 0),
			wantPercentage: 60.0,
			wantTier:       TierDanger,
			wantUnrecorded: 4,
		},
		{
			name:           "cancelled sessions excluded from denominator",
			outcomes:       outcomes(8, 0, 2, 0, 5),
			wantPercentage: 80.0,
			wantTier:       TierCaution,
		},
		{
			name:           "late conversion off by default",
			outcomes:       outcomes(4, 6, 0, 0, 0),
			wantPercentage: 100.0,
			wantTier:       TierSafe,
		},
		{
			name:           "late conversion removes one per three lates",
			outcomes:       outcomes(4, 6, 0, 0, 0),
			policy:         SummaryPolicy{LateToAbsence: true},
			wantPercentage: 80.0,
			wantTier:       TierCaution,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSummary(tt.outcomes, tt.policy)
			if got.Percentage != tt.wantPercentage {
				t.Errorf("Percentage = %v, want %v", got.Percentage, tt.wantPercentage)
			}
			if got.Tier != tt.wantTier {
				t.Errorf("Tier = %v, want %v", got.Tier, tt.wantTier)
			}
			if got.UnrecordedCount != tt.wantUnrecorded {
				t.Errorf("UnrecordedCount = %d, want %d", got.UnrecordedCount, tt.wantUnrecorded)
			}
		})
	}
}

func TestComputeSummaryCounts(t *testing.T) {
	got := ComputeSummary(outcomes(7, 2, 1, 3, 2), SummaryPolicy{})
	if got.PresentCount != 7 || got.LateCount != 2 || got.AbsentCount != 1 {
		t.Errorf("counts = (%d, %d, %d), want (7, 2, 1)", got.PresentCount, got.LateCount, got.AbsentCount)
	}
	if got.HeldSessions != 13 {
		t.Errorf("HeldSessions = %d, want 13", got.HeldSessions)
	}
	if got.CancelledSessions != 2 {
		t.Errorf("CancelledSessions = %d, want 2", got.CancelledSessions)
	}
}

func TestTierForPercentage(t *testing.T) {
	tests := []struct {
		pct  float64
		want StatusTier
	}{
		{100.0, TierSafe},
		{85.0, TierSafe},
		{84.99, TierCaution},
		{70.0, TierCaution},
		{69.99, TierDanger},
		{0.0, TierDanger},
	}
	for _, tt := range tests {
		if got := TierForPercentage(tt.pct); got != tt.want {
			t.Errorf("TierForPercentage(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestResolveWeeklyDetail(t *testing.T) {
	// Term starts Monday 2025-09-01; schedule meets Mondays at 09:00.
	termStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	sch := &Schedule{ID: 1, SubjectID: 1, DayOfWeek: schedule.Monday, StartTime: "09:00", EndTime: "10:30"}

	sessions := map[SessionKey]*Session{
		{ScheduleID: 1, Date: "2025-09-01"}: {ID: 10, ScheduleID: 1, ClassDate: termStart},
		{ScheduleID: 1, Date: "2025-09-08"}: {ID: 11, ScheduleID: 1, ClassDate: termStart.AddDate(0, 0, 7)},
		{ScheduleID: 1, Date: "2025-09-15"}: {ID: 12, ScheduleID: 1, ClassDate: termStart.AddDate(0, 0, 14), IsCancelled: true},
	}
	checkins := map[int64]CheckinStatus{
		10: StatusPresent,
		11: StatusLate,
	}
	now := time.Date(2025, 9, 16, 12, 0, 0, 0, time.Local)

	details, err := ResolveWeeklyDetail([]*Schedule{sch}, termStart, sessions, checkins, now)
	if err != nil {
		t.Fatalf("ResolveWeeklyDetail() error = %v", err)
	}
	if len(details) != schedule.MaxWeeksPerTerm {
		t.Fatalf("got %d rows, want %d", len(details), schedule.MaxWeeksPerTerm)
	}

	wantStatuses := map[int]string{
		1: "present",
		2: "late",
		3: WeeklyStatusCancelled,
		4: WeeklyStatusNoInfo, // future
	}
	for week, want := range wantStatuses {
		got := details[week-1]
		if got.Week != week {
			t.Fatalf("row %d has week %d", week-1, got.Week)
		}
		if got.Status != want {
			t.Errorf("week %d status = %q, want %q", week, got.Status, want)
		}
	}

	// A past week with no materialized session resolves to "no information".
	past := time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local)
	details, err = ResolveWeeklyDetail([]*Schedule{sch}, termStart, sessions, checkins, past)
	if err != nil {
		t.Fatalf("ResolveWeeklyDetail() error = %v", err)
	}
	if details[3].Status != WeeklyStatusNoInfo {
		t.Errorf("week 4 without session = %q, want %q", details[3].Status, WeeklyStatusNoInfo)
	}
}

func TestParseCheckinStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    CheckinStatus
		wantErr bool
	}{
		{"PRESENT", StatusPresent, false},
		{"late", StatusLate, false},
		{" absent ", StatusAbsent, false},
		{"EXCUSED", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseCheckinStatus(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCheckinStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCheckinStatus(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDisplayLabel(t *testing.T) {
	if StatusPresent.DisplayLabel() != "present" || StatusLate.DisplayLabel() != "late" || StatusAbsent.DisplayLabel() != "absent" {
		t.Error("display labels should be lower-case status names")
	}
}
