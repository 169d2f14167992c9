package response

import (
	"errors"
	"net/http"

	"github.com/nimbuscrm/presence-backend-go/internal/domain/attendance"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/employee"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/summary"
	"github.com/nimbuscrm/presence-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrNoRecordToday):
		NotFound(w, "No attendance record for today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		BadRequest(w, "Not clocked in yet", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrUnknownStatus):
		BadRequest(w, "Unknown attendance status", nil)
	case errors.Is(err, attendance.ErrInvalidWorkFrom):
		BadRequest(w, "Invalid work location", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Summary domain errors
	case errors.Is(err, summary.ErrInvalidMonth):
		BadRequest(w, "Month must be between 1 and 12", nil)
	case errors.Is(err, summary.ErrInvalidYear):
		BadRequest(w, "Year is out of range", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
