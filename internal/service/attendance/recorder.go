package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/attendance"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/employee"
	"github.com/nimbuscrm/presence-backend-go/internal/pkg/database"
	"github.com/nimbuscrm/presence-backend-go/internal/pkg/validator"
	"github.com/nimbuscrm/presence-backend-go/internal/repository/postgresql"
)

// RecordServiceImpl is the admin path for historical and manual records.
// Every write is a single atomic upsert on the natural key, so it cannot
// race a concurrent self-service clock-in on the same day.
type RecordServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository

	// runTx wraps fn in one transaction boundary; the bulk path commits
	// written rows together and rolls back only on infrastructure failure.
	runTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewRecordService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.RecordService {
	s := &RecordServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
	}
	s.runTx = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
			return fn(postgresql.WithTx(ctx, tx))
		})
	}
	return s
}

// parseClockTime accepts "HH:MM:SS" (combined with the record date) or a
// full RFC3339 timestamp.
func parseClockTime(raw string, date time.Time) (time.Time, error) {
	if t, err := time.Parse("15:04:05", raw); err == nil {
		return time.Date(date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid clock time %q", raw)
}

func buildRecord(companyID, userID, markedBy string, date time.Time, status attendance.Status, workFrom attendance.WorkFrom, lateReason, notes *string) attendance.Attendance {
	return attendance.Attendance{
		CompanyID:  companyID,
		UserID:     userID,
		Date:       date,
		Status:     status,
		LateReason: lateReason,
		WorkFrom:   workFrom,
		Notes:      notes,
		MarkedBy:   &markedBy,
	}
}

// Mark implements attendance.RecordService.
func (s *RecordServiceImpl) Mark(ctx context.Context, companyID, markedBy string, req attendance.MarkAttendanceRequest) (attendance.MarkAttendanceResult, error) {
	if validator.IsEmpty(companyID) {
		return attendance.MarkAttendanceResult{}, validator.ValidationErrors{
			{Field: "company_id", Message: "company_id is required"},
		}
	}
	if err := req.Validate(); err != nil {
		return attendance.MarkAttendanceResult{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.MarkAttendanceResult{}, employee.ErrEmployeeNotFound
		}
		return attendance.MarkAttendanceResult{}, fmt.Errorf("failed to resolve employee: %w", err)
	}

	date, _ := validator.IsValidDate(req.Date)
	status, _ := attendance.ParseStatus(req.Status)

	workFrom := attendance.WorkFromOffice
	if req.WorkFrom != nil {
		workFrom, _ = attendance.ParseWorkFrom(*req.WorkFrom)
	}

	rec := buildRecord(companyID, emp.UserID, markedBy, date, status, workFrom, req.LateReason, req.Notes)

	if req.CheckIn != nil && *req.CheckIn != "" {
		t, err := parseClockTime(*req.CheckIn, date)
		if err != nil {
			return attendance.MarkAttendanceResult{}, validator.ValidationErrors{
				{Field: "check_in", Message: "check_in must be HH:MM:SS or RFC3339"},
			}
		}
		rec.CheckIn = &t
	}
	if req.CheckOut != nil && *req.CheckOut != "" {
		t, err := parseClockTime(*req.CheckOut, date)
		if err != nil {
			return attendance.MarkAttendanceResult{}, validator.ValidationErrors{
				{Field: "check_out", Message: "check_out must be HH:MM:SS or RFC3339"},
			}
		}
		rec.CheckOut = &t
	}

	id, created, err := s.AttendanceRepository.UpsertByKey(ctx, rec)
	if err != nil {
		return attendance.MarkAttendanceResult{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return attendance.MarkAttendanceResult{ID: id, Created: created}, nil
}

// BulkMark implements attendance.RecordService. Rows are processed
// independently: a row that fails validation or employee resolution is
// tallied and skipped, never fatal. Only an infrastructure failure
// (lost connection, failed commit) aborts the whole batch.
func (s *RecordServiceImpl) BulkMark(ctx context.Context, companyID, markedBy string, req attendance.BulkMarkRequest) (attendance.BulkMarkResult, error) {
	if validator.IsEmpty(companyID) {
		return attendance.BulkMarkResult{}, validator.ValidationErrors{
			{Field: "company_id", Message: "company_id is required"},
		}
	}
	if err := req.Validate(); err != nil {
		return attendance.BulkMarkResult{}, err
	}

	var result attendance.BulkMarkResult

	err := s.runTx(ctx, func(txCtx context.Context) error {
		for _, row := range req.Records {
			rec, ok := s.resolveRow(txCtx, companyID, markedBy, row)
			if !ok {
				result.ErrorCount++
				continue
			}

			if _, _, err := s.AttendanceRepository.UpsertByKey(txCtx, rec); err != nil {
				// Store-level failure is fatal for the batch.
				return fmt.Errorf("failed to upsert attendance for employee %s: %w", row.EmployeeID, err)
			}
			result.SuccessCount++
		}
		return nil
	})
	if err != nil {
		return attendance.BulkMarkResult{}, err
	}

	return result, nil
}

// resolveRow turns one bulk input row into a writable record. Content
// problems are logged and reported as not-ok.
func (s *RecordServiceImpl) resolveRow(ctx context.Context, companyID, markedBy string, row attendance.BulkMarkRow) (attendance.Attendance, bool) {
	date, ok := validator.IsValidDate(row.Date)
	if !ok {
		slog.Warn("bulk mark: bad date", "employee_id", row.EmployeeID, "date", row.Date)
		return attendance.Attendance{}, false
	}

	status, err := attendance.ParseStatus(row.Status)
	if err != nil {
		slog.Warn("bulk mark: bad status", "employee_id", row.EmployeeID, "status", row.Status)
		return attendance.Attendance{}, false
	}

	workFrom := attendance.WorkFromOffice
	if row.WorkFrom != nil {
		if workFrom, err = attendance.ParseWorkFrom(*row.WorkFrom); err != nil {
			slog.Warn("bulk mark: bad work_from", "employee_id", row.EmployeeID, "work_from", *row.WorkFrom)
			return attendance.Attendance{}, false
		}
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, row.EmployeeID, companyID)
	if err != nil {
		slog.Warn("bulk mark: employee not resolved", "employee_id", row.EmployeeID, "error", err)
		return attendance.Attendance{}, false
	}

	return buildRecord(companyID, emp.UserID, markedBy, date, status, workFrom, nil, row.Notes), true
}

// Get implements attendance.RecordService.
func (s *RecordServiceImpl) Get(ctx context.Context, companyID, id string) (attendance.AttendanceResponse, error) {
	if validator.IsEmpty(companyID) || validator.IsEmpty(id) {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{
			{Field: "id", Message: "company_id and id are required"},
		}
	}

	rec, err := s.AttendanceRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return rec.ToResponse(), nil
}

// Delete implements attendance.RecordService.
func (s *RecordServiceImpl) Delete(ctx context.Context, companyID, id string) error {
	if validator.IsEmpty(companyID) || validator.IsEmpty(id) {
		return validator.ValidationErrors{
			{Field: "id", Message: "company_id and id are required"},
		}
	}

	if err := s.AttendanceRepository.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	return nil
}
