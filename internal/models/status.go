package models

import (
	"fmt"
	"strings"
)

// CheckinStatus is the persisted attendance status code.
type CheckinStatus string

const (
	StatusPresent CheckinStatus = "PRESENT"
	StatusLate    CheckinStatus = "LATE"
	StatusAbsent  CheckinStatus = "ABSENT"
)

// ParseCheckinStatus validates a raw status value from a form or API body.
func ParseCheckinStatus(s string) (CheckinStatus, error) {
	switch CheckinStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPresent:
		return StatusPresent, nil
	case StatusLate:
		return StatusLate, nil
	case StatusAbsent:
		return StatusAbsent, nil
	}
	return "", fmt.Errorf("unknown attendance status %q", s)
}

// DisplayLabel returns the lower-case label shown in detail views.
func (s CheckinStatus) DisplayLabel() string {
	switch s {
	case StatusPresent:
		return "present"
	case StatusLate:
		return "late"
	case StatusAbsent:
		return "absent"
	}
	return string(s)
}

// StatusTier classifies an attendance percentage for summary views.
type StatusTier string

const (
	TierSafe    StatusTier = "safe"
	TierCaution StatusTier = "caution"
	TierDanger  StatusTier = "danger"
)

// Tier thresholds: safe >= 85, caution >= 70, danger below.
const (
	safeThreshold    = 85.0
	cautionThreshold = 70.0
)

func TierForPercentage(pct float64) StatusTier {
	switch {
	case pct >= safeThreshold:
		return TierSafe
	case pct >= cautionThreshold:
		return TierCaution
	default:
		return TierDanger
	}
}
