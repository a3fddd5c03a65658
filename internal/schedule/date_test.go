package schedule

import (
	"testing"
	"time"
)

func TestParseDateLocal(t *testing.T) {
	tests := []struct {
		name    string
		dateStr string
		wantErr bool
	}{
		{name: "valid date string", dateStr: "2025-09-08", wantErr: false},
		{name: "invalid date string", dateStr: "invalid", wantErr: true},
		{name: "empty string", dateStr: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateLocal(tt.dateStr)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDateLocal() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	parsed, err := ParseDateLocal("2025-09-08")
	if err != nil {
		t.Fatalf("ParseDateLocal() failed: %v", err)
	}
	if parsed.Location() != time.Local {
		t.Errorf("ParseDateLocal() location = %v, want %v", parsed.Location(), time.Local)
	}
	if parsed.Hour() != 0 || parsed.Minute() != 0 || parsed.Second() != 0 {
		t.Errorf("ParseDateLocal() should return start of day (00:00:00)")
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "hour and minute", input: "09:00", wantHour: 9, wantMinute: 0},
		{name: "seconds discarded", input: "13:30:45", wantHour: 13, wantMinute: 30},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "09:60", wantErr: true},
		{name: "not a time", input: "morning", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, err := ParseTimeOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && (hour != tt.wantHour || minute != tt.wantMinute) {
				t.Errorf("ParseTimeOfDay(%q) = (%d, %d), want (%d, %d)",
					tt.input, hour, minute, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2025, 9, 8, 0, 0, 0, 0, time.Local)
	combined, err := CombineDateTime(date, "09:00")
	if err != nil {
		t.Fatalf("CombineDateTime() error = %v", err)
	}
	want := time.Date(2025, 9, 8, 9, 0, 0, 0, time.Local)
	if !combined.Equal(want) {
		t.Errorf("CombineDateTime() = %v, want %v", combined, want)
	}
}

func TestStartOfDay(t *testing.T) {
	now := time.Now()
	midnight := StartOfDay(now)

	if midnight.Hour() != 0 || midnight.Minute() != 0 || midnight.Second() != 0 {
		t.Errorf("StartOfDay() should return 00:00:00")
	}
	if midnight.Year() != now.Year() || midnight.Month() != now.Month() || midnight.Day() != now.Day() {
		t.Errorf("StartOfDay() should preserve date")
	}
	if midnight.Location() != time.Local {
		t.Errorf("StartOfDay() location = %v, want %v", midnight.Location(), time.Local)
	}
}
