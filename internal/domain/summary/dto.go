package summary

import (
	"github.com/nimbuscrm/presence-backend-go/internal/domain/attendance"
)

// Meta describes the month a summary covers. DaysInMonth is total
// calendar days, which is also the percentage denominator.
type Meta struct {
	Month       int `json:"month"`
	Year        int `json:"year"`
	DaysInMonth int `json:"days_in_month"`
}

// DayStatuses maps day-of-month (1..DaysInMonth) to a normalized status
// string. A nil slot means "no record" and is distinct from an explicit
// "absent" status; consumers rely on that distinction.
type DayStatuses map[int]*string

type EmployeeSummary struct {
	EmployeeID   string      `json:"employee_id"`
	UserID       string      `json:"user_id"`
	FullName     string      `json:"full_name"`
	DepartmentID *string     `json:"department_id,omitempty"`
	PositionID   *string     `json:"position_id,omitempty"`
	Days         DayStatuses `json:"days"`
}

type SummaryResponse struct {
	Employees []EmployeeSummary `json:"employees"`
	Meta      Meta              `json:"meta"`
}

// CategoryCounts holds exact-match counts per canonical status.
type CategoryCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	HalfDay int `json:"half_day"`
	OnLeave int `json:"on_leave"`
}

type EmployeeMonthResponse struct {
	EmployeeID string                                `json:"employee_id"`
	Days       map[int]*attendance.AttendanceResponse `json:"days"`
	Counts     CategoryCounts                        `json:"counts"`
	Meta       Meta                                  `json:"meta"`
}

type CalendarResponse struct {
	UserID string      `json:"user_id"`
	Days   DayStatuses `json:"days"`
	Meta   Meta        `json:"meta"`
}

type PercentageResponse struct {
	UserID      string  `json:"user_id"`
	PresentDays int     `json:"present_days"`
	Percentage  float64 `json:"attendance_percentage"`
	Meta        Meta    `json:"meta"`
}
