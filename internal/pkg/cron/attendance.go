package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nimbuscrm/presence-backend-go/internal/domain/attendance"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/employee"
	"github.com/nimbuscrm/presence-backend-go/internal/pkg/database"
)

// AttendanceJobs backfills explicit absence records for employees who
// produced no record on the previous day. It only ever inserts; existing
// records, whatever their status, are left untouched.
type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	db             *database.DB

	now func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	db *database.DB,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		db:             db,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees inserts an "absent" record for yesterday for every
// active employee with no record on that day. Runs hourly but only does
// work during the first hour after midnight UTC.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	if j.now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job")

	companyIDs, err := j.activeCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get companies: %w", err)
	}

	yesterday := j.now().UTC().AddDate(0, 0, -1)
	yesterday = time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)

	totalAbsent := 0

	for _, companyID := range companyIDs {
		employees, err := j.employeeRepo.GetActiveByCompanyID(ctx, companyID, employee.RosterFilter{})
		if err != nil {
			slog.Error("Cron: Failed to get employees", "company_id", companyID, "error", err)
			continue
		}

		for _, emp := range employees {
			record := attendance.Attendance{
				CompanyID: companyID,
				UserID:    emp.UserID,
				Date:      yesterday,
				Status:    attendance.StatusAbsent,
				WorkFrom:  attendance.WorkFromOffice,
			}

			if _, err := j.attendanceRepo.Create(ctx, record); err != nil {
				// A record already exists for that day; nothing to backfill.
				if errors.Is(err, attendance.ErrDuplicateRecord) {
					continue
				}
				slog.Error("Cron: Failed to create absence",
					"company_id", companyID,
					"user_id", emp.UserID,
					"error", err)
				continue
			}
			totalAbsent++
		}
	}

	slog.Info("Cron: Marked absent employees", "count", totalAbsent)
	return nil
}

func (j *AttendanceJobs) activeCompanyIDs(ctx context.Context) ([]string, error) {
	rows, err := j.db.Pool.Query(ctx, `
		SELECT DISTINCT company_id FROM employees
		WHERE employment_status = 'active' AND deleted_at IS NULL
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companyIDs []string
	for rows.Next() {
		var companyID string
		if err := rows.Scan(&companyID); err != nil {
			return nil, err
		}
		companyIDs = append(companyIDs, companyID)
	}

	return companyIDs, rows.Err()
}
