package attendance

import (
	"time"
)

// Attendance is one employee's presence record for one calendar day.
// The natural key is (company_id, user_id, date); the store enforces a
// unique constraint on that triple so concurrent writers cannot produce
// two records for the same day.
type Attendance struct {
	ID         string
	CompanyID  string
	UserID     string
	Date       time.Time // calendar day, truncated to midnight
	Status     Status
	CheckIn    *time.Time
	CheckOut   *time.Time
	LateReason *string
	WorkFrom   WorkFrom
	Notes      *string
	MarkedBy   *string // admin user who last edited; nil for self-service clock events
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}
