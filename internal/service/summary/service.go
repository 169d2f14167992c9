package summary

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/nimbuscrm/presence-backend-go/internal/domain/attendance"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/employee"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/summary"
	"github.com/nimbuscrm/presence-backend-go/internal/pkg/validator"
)

type SummaryServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
}

func NewSummaryService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) summary.SummaryService {
	return &SummaryServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
	}
}

func validateMonthYear(companyID string, month, year int) error {
	if validator.IsEmpty(companyID) {
		return validator.ValidationErrors{
			{Field: "company_id", Message: "company_id is required"},
		}
	}
	if !validator.IsValidMonth(month) {
		return summary.ErrInvalidMonth
	}
	if !validator.IsValidYear(year) {
		return summary.ErrInvalidYear
	}
	return nil
}

func daysInMonth(month, year int) int {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1).Day()
}

func buildMeta(month, year int) summary.Meta {
	return summary.Meta{
		Month:       month,
		Year:        year,
		DaysInMonth: daysInMonth(month, year),
	}
}

// GetSummary implements summary.SummaryService. One roster query plus one
// attendance scan for the whole month; everything else is an in-memory
// join keyed on (user, day).
func (s *SummaryServiceImpl) GetSummary(ctx context.Context, companyID string, month, year int, filter employee.RosterFilter) (summary.SummaryResponse, error) {
	if err := validateMonthYear(companyID, month, year); err != nil {
		return summary.SummaryResponse{}, err
	}

	employees, err := s.EmployeeRepository.GetActiveByCompanyID(ctx, companyID, filter)
	if err != nil {
		return summary.SummaryResponse{}, fmt.Errorf("failed to load roster: %w", err)
	}

	records, err := s.AttendanceRepository.ListByMonth(ctx, companyID, month, year)
	if err != nil {
		return summary.SummaryResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	type dayKey struct {
		userID string
		day    int
	}
	statusByDay := make(map[dayKey]string, len(records))
	for _, rec := range records {
		statusByDay[dayKey{rec.UserID, rec.Date.Day()}] = string(rec.Status)
	}

	meta := buildMeta(month, year)
	result := summary.SummaryResponse{
		Employees: make([]summary.EmployeeSummary, 0, len(employees)),
		Meta:      meta,
	}

	for _, emp := range employees {
		days := make(summary.DayStatuses, meta.DaysInMonth)
		for day := 1; day <= meta.DaysInMonth; day++ {
			if status, ok := statusByDay[dayKey{emp.UserID, day}]; ok {
				days[day] = &status
			} else {
				days[day] = nil
			}
		}
		result.Employees = append(result.Employees, summary.EmployeeSummary{
			EmployeeID:   emp.ID,
			UserID:       emp.UserID,
			FullName:     emp.FullName,
			DepartmentID: emp.DepartmentID,
			PositionID:   emp.PositionID,
			Days:         days,
		})
	}

	return result, nil
}

// GetEmployeeAttendance implements summary.SummaryService.
func (s *SummaryServiceImpl) GetEmployeeAttendance(ctx context.Context, companyID, employeeID string, month, year int) (summary.EmployeeMonthResponse, error) {
	if err := validateMonthYear(companyID, month, year); err != nil {
		return summary.EmployeeMonthResponse{}, err
	}
	if validator.IsEmpty(employeeID) {
		return summary.EmployeeMonthResponse{}, validator.ValidationErrors{
			{Field: "employee_id", Message: "employee_id is required"},
		}
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return summary.EmployeeMonthResponse{}, employee.ErrEmployeeNotFound
		}
		return summary.EmployeeMonthResponse{}, fmt.Errorf("failed to resolve employee: %w", err)
	}

	records, err := s.AttendanceRepository.ListByUserMonth(ctx, companyID, emp.UserID, month, year)
	if err != nil {
		return summary.EmployeeMonthResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	meta := buildMeta(month, year)
	result := summary.EmployeeMonthResponse{
		EmployeeID: emp.ID,
		Days:       make(map[int]*attendance.AttendanceResponse, meta.DaysInMonth),
		Meta:       meta,
	}

	byDay := make(map[int]attendance.Attendance, len(records))
	for _, rec := range records {
		byDay[rec.Date.Day()] = rec
	}

	for day := 1; day <= meta.DaysInMonth; day++ {
		rec, ok := byDay[day]
		if !ok {
			result.Days[day] = nil
			continue
		}
		resp := rec.ToResponse()
		result.Days[day] = &resp

		switch attendance.Status(attendance.NormalizeStatus(string(rec.Status))) {
		case attendance.StatusPresent:
			result.Counts.Present++
		case attendance.StatusAbsent:
			result.Counts.Absent++
		case attendance.StatusLate:
			result.Counts.Late++
		case attendance.StatusHalfDay:
			result.Counts.HalfDay++
		case attendance.StatusOnLeave:
			result.Counts.OnLeave++
		}
	}

	return result, nil
}

// GetMonthlyCalendar implements summary.SummaryService. Statuses are
// normalized so "Half Day" and "half_day" collapse to the same bucket.
func (s *SummaryServiceImpl) GetMonthlyCalendar(ctx context.Context, companyID, userID string, month, year int) (summary.CalendarResponse, error) {
	if err := validateMonthYear(companyID, month, year); err != nil {
		return summary.CalendarResponse{}, err
	}
	if validator.IsEmpty(userID) {
		return summary.CalendarResponse{}, validator.ValidationErrors{
			{Field: "user_id", Message: "user_id is required"},
		}
	}

	records, err := s.AttendanceRepository.ListByUserMonth(ctx, companyID, userID, month, year)
	if err != nil {
		return summary.CalendarResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	meta := buildMeta(month, year)
	days := make(summary.DayStatuses, meta.DaysInMonth)
	for day := 1; day <= meta.DaysInMonth; day++ {
		days[day] = nil
	}
	for _, rec := range records {
		normalized := attendance.NormalizeStatus(string(rec.Status))
		days[rec.Date.Day()] = &normalized
	}

	return summary.CalendarResponse{
		UserID: userID,
		Days:   days,
		Meta:   meta,
	}, nil
}

// GetAttendancePercentage implements summary.SummaryService. The
// denominator is total calendar days, not working days, and the result
// is rounded to one decimal place.
func (s *SummaryServiceImpl) GetAttendancePercentage(ctx context.Context, companyID, userID string, month, year int) (summary.PercentageResponse, error) {
	if err := validateMonthYear(companyID, month, year); err != nil {
		return summary.PercentageResponse{}, err
	}
	if validator.IsEmpty(userID) {
		return summary.PercentageResponse{}, validator.ValidationErrors{
			{Field: "user_id", Message: "user_id is required"},
		}
	}

	records, err := s.AttendanceRepository.ListByUserMonth(ctx, companyID, userID, month, year)
	if err != nil {
		return summary.PercentageResponse{}, fmt.Errorf("failed to load attendance: %w", err)
	}

	presentDays := 0
	for _, rec := range records {
		if attendance.IsPresentEquivalent(string(rec.Status)) {
			presentDays++
		}
	}

	meta := buildMeta(month, year)
	percentage := float64(presentDays) / float64(meta.DaysInMonth) * 100
	percentage = math.Round(percentage*10) / 10

	return summary.PercentageResponse{
		UserID:      userID,
		PresentDays: presentDays,
		Percentage:  percentage,
		Meta:        meta,
	}, nil
}
