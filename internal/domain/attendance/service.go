package attendance

import (
	"context"
)

// PresenceService governs self-service clock-in/clock-out for "today".
// Both mutations are idempotent: repeating a call returns the existing
// record instead of overwriting the first timestamp.
type PresenceService interface {
	// CheckIn creates or completes today's record with check_in = now
	CheckIn(ctx context.Context, companyID, userID string) (AttendanceResponse, error)

	// CheckOut stamps check_out = now on today's clocked-in record
	CheckOut(ctx context.Context, companyID, userID string) (AttendanceResponse, error)

	// GetTodayStatus is a pure read of today's derived presence state
	GetTodayStatus(ctx context.Context, companyID, userID string) (TodayStatusResponse, error)
}

// RecordService is the admin-facing path for historical/manual records.
type RecordService interface {
	// Mark upserts one record for (employee, date); markedBy is the
	// admin user performing the edit
	Mark(ctx context.Context, companyID, markedBy string, req MarkAttendanceRequest) (MarkAttendanceResult, error)

	// BulkMark processes each row independently inside one transaction;
	// rows referencing unknown employees are tallied, never fatal
	BulkMark(ctx context.Context, companyID, markedBy string, req BulkMarkRequest) (BulkMarkResult, error)

	// Get fetches one record by id
	Get(ctx context.Context, companyID, id string) (AttendanceResponse, error)

	// Delete removes a record explicitly; records are never deleted
	// implicitly by any other operation
	Delete(ctx context.Context, companyID, id string) error
}
