package schedule

import (
	"testing"
	"time"
)

func TestEnumerateTermSessions(t *testing.T) {
	// 2025-09-01 is a Monday.
	termStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)
	termEnd := time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local)

	t.Run("start matching weekday is first occurrence", func(t *testing.T) {
		dates, err := EnumerateTermSessions(Monday, termStart, termEnd)
		if err != nil {
			t.Fatalf("EnumerateTermSessions() error = %v", err)
		}
		if len(dates) != 18 {
			t.Fatalf("got %d Mondays, want 18", len(dates))
		}
		want := []time.Time{
			time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local),
			time.Date(2025, 9, 8, 0, 0, 0, 0, time.Local),
			time.Date(2025, 9, 15, 0, 0, 0, 0, time.Local),
		}
		for i, w := range want {
			if !dates[i].Equal(w) {
				t.Errorf("dates[%d] = %v, want %v", i, dates[i], w)
			}
		}
		last := dates[len(dates)-1]
		if !last.Equal(time.Date(2025, 12, 29, 0, 0, 0, 0, time.Local)) {
			t.Errorf("last Monday = %v, want 2025-12-29", last)
		}
	})

	t.Run("mid-week weekday starts later the same week", func(t *testing.T) {
		dates, err := EnumerateTermSessions(Wednesday, termStart, termEnd)
		if err != nil {
			t.Fatalf("EnumerateTermSessions() error = %v", err)
		}
		if !dates[0].Equal(time.Date(2025, 9, 3, 0, 0, 0, 0, time.Local)) {
			t.Errorf("first Wednesday = %v, want 2025-09-03", dates[0])
		}
		for i := 1; i < len(dates); i++ {
			if !dates[i].Equal(dates[i-1].AddDate(0, 0, 7)) {
				t.Errorf("gap between dates[%d] and dates[%d] is not 7 days", i-1, i)
			}
		}
	})

	t.Run("term end is inclusive", func(t *testing.T) {
		// 2025-12-31 is a Wednesday.
		dates, err := EnumerateTermSessions(Wednesday, termStart, termEnd)
		if err != nil {
			t.Fatalf("EnumerateTermSessions() error = %v", err)
		}
		last := dates[len(dates)-1]
		if !last.Equal(time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local)) {
			t.Errorf("last Wednesday = %v, want 2025-12-31", last)
		}
	})

	t.Run("unknown weekday rejected", func(t *testing.T) {
		if _, err := EnumerateTermSessions(Weekday("XYZ"), termStart, termEnd); err == nil {
			t.Error("expected error for unknown weekday")
		}
	})
}

func TestFirstOccurrence(t *testing.T) {
	termStart := time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local) // Monday

	tests := []struct {
		day  Weekday
		want time.Time
	}{
		{Monday, time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)},
		{Wednesday, time.Date(2025, 9, 3, 0, 0, 0, 0, time.Local)},
		{Sunday, time.Date(2025, 9, 7, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, err := FirstOccurrence(tt.day, termStart)
		if err != nil {
			t.Fatalf("FirstOccurrence(%s) error = %v", tt.day, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("FirstOccurrence(%s) = %v, want %v", tt.day, got, tt.want)
		}
	}
}
