package employee

import "context"

// RosterFilter narrows a tenant roster by organizational unit.
type RosterFilter struct {
	DepartmentID *string
	PositionID   *string
}

// EmployeeRepository is a read-only view of the employee directory.
// All methods include companyID to prevent cross-company data access.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string, filter RosterFilter) ([]Employee, error)
}
