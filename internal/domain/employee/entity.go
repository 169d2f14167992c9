package employee

import (
	"time"
)

// Employee is the directory view this engine needs: enough identity to
// resolve employee -> user and to enrich rosters. The directory itself
// is owned by another service; this engine never mutates it.
type Employee struct {
	ID               string
	CompanyID        string
	UserID           string
	DepartmentID     *string
	PositionID       *string
	FullName         string
	EmploymentStatus EmploymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusResigned EmploymentStatus = "resigned"
)
