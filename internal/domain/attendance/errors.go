package attendance

import "errors"

// Attendance domain errors
var (
	// Presence (clock) errors
	ErrNoRecordToday = errors.New("no attendance record for today, clock in first")
	ErrNotClockedIn  = errors.New("no clock-in recorded for today")

	// General errors
	ErrRecordNotFound  = errors.New("attendance record not found")
	ErrDuplicateRecord = errors.New("attendance record already exists for this employee and date")
	ErrUnknownStatus   = errors.New("unrecognized attendance status")
	ErrInvalidWorkFrom = errors.New("work_from must be office or remote")
)
