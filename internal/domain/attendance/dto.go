package attendance

import (
	"time"

	"github.com/nimbuscrm/presence-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Status     string  `json:"status"`
	CheckIn    *string `json:"check_in,omitempty"`  // HH:MM:SS or RFC3339
	CheckOut   *string `json:"check_out,omitempty"` // HH:MM:SS or RFC3339
	LateReason *string `json:"late_reason,omitempty"`
	WorkFrom   *string `json:"work_from,omitempty"` // office (default) or remote
	Notes      *string `json:"notes,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if _, err := ParseStatus(r.Status); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of present, absent, late, half_day, on_leave",
		})
	}

	if r.WorkFrom != nil {
		if _, err := ParseWorkFrom(*r.WorkFrom); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "work_from",
				Message: "work_from must be office or remote",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MarkAttendanceResult struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
}

type BulkMarkRow struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Status     string  `json:"status"`
	WorkFrom   *string `json:"work_from,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type BulkMarkRequest struct {
	Records []BulkMarkRow `json:"records"`
}

func (r *BulkMarkRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Records) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "records",
			Message: "records must contain at least one row",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BulkMarkResult reports best-effort batch semantics: rows that failed
// content checks are counted, not propagated.
type BulkMarkResult struct {
	SuccessCount int `json:"success_count"`
	ErrorCount   int `json:"error_count"`
}

type TodayStatusResponse struct {
	IsClockedIn bool    `json:"is_clocked_in"`
	CheckIn     *string `json:"check_in"`
	CheckOut    *string `json:"check_out"`
	Status      *string `json:"status"`
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	LateReason   *string `json:"late_reason,omitempty"`
	WorkFrom     string  `json:"work_from"`
	Notes        *string `json:"notes,omitempty"`
	MarkedBy     *string `json:"marked_by,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// ToResponse converts an Attendance entity to AttendanceResponse
func (a Attendance) ToResponse() AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format("2006-01-02"),
		Status:       string(a.Status),
		CheckIn:      timePtrToString(a.CheckIn),
		CheckOut:     timePtrToString(a.CheckOut),
		LateReason:   a.LateReason,
		WorkFrom:     string(a.WorkFrom),
		Notes:        a.Notes,
		MarkedBy:     a.MarkedBy,
		CreatedAt:    a.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    a.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
