package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestTermDateRange(t *testing.T) {
	tests := []struct {
		name      string
		term      int
		wantStart time.Time
		wantEnd   time.Time
		wantErr   bool
	}{
		{
			name:      "first term",
			term:      1,
			wantStart: time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local),
		},
		{
			name:      "second term",
			term:      2,
			wantStart: time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local),
			wantEnd:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local),
		},
		{name: "term zero rejected", term: 0, wantErr: true},
		{name: "term three rejected", term: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := TermDateRange(2025, tt.term)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TermDateRange(2025, %d) error = %v, wantErr %v", tt.term, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTerm) {
					t.Errorf("error = %v, want ErrInvalidTerm", err)
				}
				return
			}
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("TermDateRange(2025, %d) = (%v, %v), want (%v, %v)",
					tt.term, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCurrentWeekInTerm(t *testing.T) {
	termStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	termEnd := time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		today    time.Time
		wantWeek int
	}{
		{name: "first day is week 1", today: termStart, wantWeek: 1},
		{name: "sixth day still week 1", today: termStart.AddDate(0, 0, 6), wantWeek: 1},
		{name: "seventh day starts week 2", today: termStart.AddDate(0, 0, 7), wantWeek: 2},
		{name: "before term clamps to 1", today: termStart.AddDate(0, 0, -30), wantWeek: 1},
		{name: "after term clamps to last week", today: termEnd.AddDate(0, 0, 30), wantWeek: 18},
		{name: "last day is last week", today: termEnd, wantWeek: 18},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totalWeeks, currentWeek := CurrentWeekInTerm(termStart, termEnd, tt.today)
			if totalWeeks != 18 {
				t.Errorf("totalWeeks = %d, want 18", totalWeeks)
			}
			if currentWeek != tt.wantWeek {
				t.Errorf("currentWeek = %d, want %d", currentWeek, tt.wantWeek)
			}
		})
	}
}
