package attendance

import (
	"fmt"
	"strings"
)

// Status is the closed set of daily attendance states. Older records may
// still hold free-text variants ("Half Day", "ON LEAVE"); those are
// normalized on read with NormalizeStatus, while every write path goes
// through ParseStatus and only ever stores canonical values.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusOnLeave Status = "on_leave"
)

// NormalizeStatus lower-cases a raw status string and collapses internal
// whitespace runs to single underscores, so "Half Day" and "half_day"
// compare equal.
func NormalizeStatus(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), "_")
}

// ParseStatus canonicalizes raw input into a Status. Unrecognized values
// are rejected rather than stored as-is.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(NormalizeStatus(raw)); s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay, StatusOnLeave:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
}

// IsPresentEquivalent reports whether a raw status counts toward the
// attendance percentage.
func IsPresentEquivalent(raw string) bool {
	switch Status(NormalizeStatus(raw)) {
	case StatusPresent, StatusLate, StatusHalfDay:
		return true
	}
	return false
}

// WorkFrom records where the employee worked that day.
type WorkFrom string

const (
	WorkFromOffice WorkFrom = "office"
	WorkFromRemote WorkFrom = "remote"
)

// ParseWorkFrom canonicalizes raw input into a WorkFrom value. Empty
// input falls back to the office default.
func ParseWorkFrom(raw string) (WorkFrom, error) {
	switch w := WorkFrom(strings.ToLower(strings.TrimSpace(raw))); w {
	case "":
		return WorkFromOffice, nil
	case WorkFromOffice, WorkFromRemote:
		return w, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidWorkFrom, raw)
	}
}
