package summary

import (
	"context"

	"github.com/nimbuscrm/presence-backend-go/internal/domain/employee"
)

// SummaryService builds monthly views over raw attendance records. All
// reads are best-effort snapshots; they are not isolated from concurrent
// clock events or admin edits.
type SummaryService interface {
	// GetSummary returns the tenant roster, each entry annotated with a
	// day-indexed status map for the month
	GetSummary(ctx context.Context, companyID string, month, year int, filter employee.RosterFilter) (SummaryResponse, error)

	// GetEmployeeAttendance returns one employee's month map plus
	// per-category counts
	GetEmployeeAttendance(ctx context.Context, companyID, employeeID string, month, year int) (EmployeeMonthResponse, error)

	// GetMonthlyCalendar returns one user's normalized day map
	GetMonthlyCalendar(ctx context.Context, companyID, userID string, month, year int) (CalendarResponse, error)

	// GetAttendancePercentage computes present-equivalent days over total
	// calendar days for the month
	GetAttendancePercentage(ctx context.Context, companyID, userID string, month, year int) (PercentageResponse, error)
}
