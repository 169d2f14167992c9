package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/attendance"
	"github.com/nimbuscrm/presence-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	id, company_id, user_id, date, status,
	check_in, check_out, late_reason, work_from, notes,
	marked_by, created_at, updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var rec attendance.Attendance
	err := row.Scan(
		&rec.ID, &rec.CompanyID, &rec.UserID, &rec.Date, &rec.Status,
		&rec.CheckIn, &rec.CheckOut, &rec.LateReason, &rec.WorkFrom, &rec.Notes,
		&rec.MarkedBy, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.WorkFrom == "" {
		rec.WorkFrom = attendance.WorkFromOffice
	}

	query := `
		INSERT INTO attendances (
			id, company_id, user_id, date, status,
			check_in, check_out, late_reason, work_from, notes, marked_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.CompanyID,
		rec.UserID,
		rec.Date,
		rec.Status,
		rec.CheckIn,
		rec.CheckOut,
		rec.LateReason,
		rec.WorkFrom,
		rec.Notes,
		rec.MarkedBy,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		if database.IsUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateRecord
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return rec, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE id = $1 AND company_id = $2
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrRecordNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return rec, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByUserAndDate(ctx context.Context, companyID, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE company_id = $1
		  AND user_id = $2
		  AND date = $3
		LIMIT 1
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, companyID, userID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No record for that day
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &rec, nil
}

// SetCheckIn implements attendance.AttendanceRepository. The check_in IS
// NULL guard keeps the first clock-in immutable even when two callers
// race past the application-level existence check.
func (a *attendanceRepository) SetCheckIn(ctx context.Context, id, companyID string, checkIn time.Time, status attendance.Status) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_in = $1, status = $2, updated_at = $3
		WHERE id = $4 AND company_id = $5 AND check_in IS NULL
	`

	tag, err := q.Exec(ctx, query, checkIn, status, time.Now(), id, companyID)
	if err != nil {
		return fmt.Errorf("failed to set check-in: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrDuplicateRecord
	}

	return nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetCheckOut(ctx context.Context, id, companyID string, checkOut time.Time) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET check_out = $1, updated_at = $2
		WHERE id = $3 AND company_id = $4
		  AND check_in IS NOT NULL AND check_out IS NULL
	`

	tag, err := q.Exec(ctx, query, checkOut, time.Now(), id, companyID)
	if err != nil {
		return fmt.Errorf("failed to set check-out: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrDuplicateRecord
	}

	return nil
}

// UpsertByKey implements attendance.AttendanceRepository. One atomic
// conditional write on the natural key, so admin marks and bulk imports
// never do a select-then-branch that could race a concurrent clock-in.
// Clock times already on the row survive a status-only overwrite.
func (a *attendanceRepository) UpsertByKey(ctx context.Context, rec attendance.Attendance) (string, bool, error) {
	q := GetQuerier(ctx, a.db)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.WorkFrom == "" {
		rec.WorkFrom = attendance.WorkFromOffice
	}

	query := `
		INSERT INTO attendances (
			id, company_id, user_id, date, status,
			check_in, check_out, late_reason, work_from, notes, marked_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
		ON CONFLICT (company_id, user_id, date) DO UPDATE SET
			status      = EXCLUDED.status,
			check_in    = COALESCE(EXCLUDED.check_in, attendances.check_in),
			check_out   = COALESCE(EXCLUDED.check_out, attendances.check_out),
			late_reason = COALESCE(EXCLUDED.late_reason, attendances.late_reason),
			work_from   = EXCLUDED.work_from,
			notes       = COALESCE(EXCLUDED.notes, attendances.notes),
			marked_by   = EXCLUDED.marked_by,
			updated_at  = NOW()
		RETURNING id, (xmax = 0) AS created
	`

	var id string
	var created bool
	err := q.QueryRow(ctx, query,
		rec.ID,
		rec.CompanyID,
		rec.UserID,
		rec.Date,
		rec.Status,
		rec.CheckIn,
		rec.CheckOut,
		rec.LateReason,
		rec.WorkFrom,
		rec.Notes,
		rec.MarkedBy,
	).Scan(&id, &created)

	if err != nil {
		return "", false, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return id, created, nil
}

// ListByMonth implements attendance.AttendanceRepository. One query per
// tenant per month; callers build in-memory lookups from the result
// instead of issuing per-employee-per-day reads.
func (a *attendanceRepository) ListByMonth(ctx context.Context, companyID string, month, year int) ([]attendance.Attendance, error) {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)
	return a.listRange(ctx, companyID, "", periodStart, periodEnd)
}

// ListByUserMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByUserMonth(ctx context.Context, companyID, userID string, month, year int) ([]attendance.Attendance, error) {
	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)
	return a.listRange(ctx, companyID, userID, periodStart, periodEnd)
}

func (a *attendanceRepository) listRange(ctx context.Context, companyID, userID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "company_id = $1 AND date >= $2 AND date < $3"
	args := []interface{}{companyID, start, end}
	if userID != "" {
		baseWhere += " AND user_id = $4"
		args = append(args, userID)
	}

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE ` + baseWhere + `
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return records, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, a.db)

	query := `DELETE FROM attendances WHERE id = $1 AND company_id = $2`

	commandTag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}
