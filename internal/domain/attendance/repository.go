package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// All methods include companyID to prevent cross-company data access.
type AttendanceRepository interface {
	// Create inserts a new record. Returns ErrDuplicateRecord when the
	// natural key (company_id, user_id, date) already exists.
	Create(ctx context.Context, record Attendance) (Attendance, error)

	// GetByID retrieves a record by surrogate id with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// GetByUserAndDate retrieves the record for one employee on one
	// calendar day, or nil when none exists
	GetByUserAndDate(ctx context.Context, companyID, userID string, date time.Time) (*Attendance, error)

	// SetCheckIn stamps the clock-in time and status on an existing record
	SetCheckIn(ctx context.Context, id, companyID string, checkIn time.Time, status Status) error

	// SetCheckOut stamps the clock-out time on an existing record
	SetCheckOut(ctx context.Context, id, companyID string, checkOut time.Time) error

	// UpsertByKey atomically inserts a record or, when the natural key
	// already exists, overwrites the editable fields. Reports whether a
	// new row was created. Used by admin marks and the bulk importer so
	// they never race against concurrent clock events.
	UpsertByKey(ctx context.Context, record Attendance) (id string, created bool, err error)

	// ListByMonth retrieves every record for a tenant in one month
	ListByMonth(ctx context.Context, companyID string, month, year int) ([]Attendance, error)

	// ListByUserMonth retrieves one employee's records for one month
	ListByUserMonth(ctx context.Context, companyID, userID string, month, year int) ([]Attendance, error)

	// Delete removes a record by id with company isolation
	Delete(ctx context.Context, id string, companyID string) error
}
