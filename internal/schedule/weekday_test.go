package schedule

import (
	"testing"
	"time"
)

func TestWeekdayIndexRoundTrip(t *testing.T) {
	for _, w := range []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday} {
		idx, err := WeekdayIndex(w)
		if err != nil {
			t.Fatalf("WeekdayIndex(%s) error = %v", w, err)
		}
		back, err := WeekdayFromIndex(idx)
		if err != nil {
			t.Fatalf("WeekdayFromIndex(%d) error = %v", idx, err)
		}
		if back != w {
			t.Errorf("round trip %s -> %d -> %s", w, idx, back)
		}
	}
}

func TestWeekdayIndexOrdering(t *testing.T) {
	tests := []struct {
		day  Weekday
		want int
	}{
		{Monday, 0},
		{Wednesday, 2},
		{Sunday, 6},
	}
	for _, tt := range tests {
		got, err := WeekdayIndex(tt.day)
		if err != nil {
			t.Fatalf("WeekdayIndex(%s) error = %v", tt.day, err)
		}
		if got != tt.want {
			t.Errorf("WeekdayIndex(%s) = %d, want %d", tt.day, got, tt.want)
		}
	}
}

func TestWeekdayIndexUnknown(t *testing.T) {
	if _, err := WeekdayIndex(Weekday("MONDAY")); err == nil {
		t.Error("WeekdayIndex should reject unknown symbol")
	}
	if _, err := WeekdayFromIndex(7); err == nil {
		t.Error("WeekdayFromIndex should reject out-of-range index")
	}
	if _, err := WeekdayFromIndex(-1); err == nil {
		t.Error("WeekdayFromIndex should reject negative index")
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Weekday
		wantErr bool
	}{
		{name: "uppercase code", input: "MON", want: Monday},
		{name: "lowercase code", input: "fri", want: Friday},
		{name: "surrounding spaces", input: " SAT ", want: Saturday},
		{name: "full name rejected", input: "Monday", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekday(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekday(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseWeekday(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2025-09-01 is a Monday, 2025-09-07 a Sunday.
	if got := WeekdayOf(time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local)); got != Monday {
		t.Errorf("WeekdayOf(2025-09-01) = %s, want MON", got)
	}
	if got := WeekdayOf(time.Date(2025, 9, 7, 0, 0, 0, 0, time.Local)); got != Sunday {
		t.Errorf("WeekdayOf(2025-09-07) = %s, want SUN", got)
	}
}
