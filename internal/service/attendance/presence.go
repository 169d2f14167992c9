package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nimbuscrm/presence-backend-go/internal/domain/attendance"
	"github.com/nimbuscrm/presence-backend-go/internal/pkg/database"
	"github.com/nimbuscrm/presence-backend-go/internal/pkg/validator"
)

// PresenceServiceImpl drives the daily presence state machine:
// NO_RECORD -> CLOCKED_IN -> CLOCKED_OUT_TODAY. The state is derived
// from check_in/check_out on today's record, never stored.
type PresenceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository

	// now is server wall-clock; "today" has no per-tenant timezone.
	now func() time.Time
}

func NewPresenceService(db *database.DB, attendanceRepo attendance.AttendanceRepository) attendance.PresenceService {
	return &PresenceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		now:                  time.Now,
	}
}

// dateOf truncates a timestamp to its calendar day.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func validateIdentity(companyID, userID string) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(companyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: "company_id is required",
		})
	}
	if validator.IsEmpty(userID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CheckIn implements attendance.PresenceService. Calling it twice on the
// same day is a no-op that returns the record created by the first call.
func (s *PresenceServiceImpl) CheckIn(ctx context.Context, companyID, userID string) (attendance.AttendanceResponse, error) {
	if err := validateIdentity(companyID, userID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := dateOf(now)

	existing, err := s.AttendanceRepository.GetByUserAndDate(ctx, companyID, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if existing != nil {
		if existing.CheckIn != nil {
			// Already clocked in; never overwrite the first timestamp.
			return existing.ToResponse(), nil
		}

		// Record exists without a clock-in (admin pre-marked the day).
		err := s.AttendanceRepository.SetCheckIn(ctx, existing.ID, companyID, now, attendance.StatusPresent)
		if err != nil && !errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to set check-in: %w", err)
		}
		return s.rereadToday(ctx, companyID, userID, today)
	}

	rec := attendance.Attendance{
		CompanyID: companyID,
		UserID:    userID,
		Date:      today,
		Status:    attendance.StatusPresent,
		CheckIn:   &now,
		WorkFrom:  attendance.WorkFromOffice,
	}

	created, err := s.AttendanceRepository.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			// Lost a create race against a concurrent clock-in or bulk
			// import; the caller is already clocked in, return the
			// winner's record.
			return s.rereadToday(ctx, companyID, userID, today)
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return created.ToResponse(), nil
}

// CheckOut implements attendance.PresenceService.
func (s *PresenceServiceImpl) CheckOut(ctx context.Context, companyID, userID string) (attendance.AttendanceResponse, error) {
	if err := validateIdentity(companyID, userID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.now()
	today := dateOf(now)

	existing, err := s.AttendanceRepository.GetByUserAndDate(ctx, companyID, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if existing == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoRecordToday
	}
	if existing.CheckIn == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	}
	if existing.CheckOut != nil {
		// Already clocked out; keep the first timestamp.
		return existing.ToResponse(), nil
	}

	if err := s.AttendanceRepository.SetCheckOut(ctx, existing.ID, companyID, now); err != nil {
		if !errors.Is(err, attendance.ErrDuplicateRecord) {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to set check-out: %w", err)
		}
	}

	return s.rereadToday(ctx, companyID, userID, today)
}

// GetTodayStatus implements attendance.PresenceService.
func (s *PresenceServiceImpl) GetTodayStatus(ctx context.Context, companyID, userID string) (attendance.TodayStatusResponse, error) {
	if err := validateIdentity(companyID, userID); err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	today := dateOf(s.now())

	rec, err := s.AttendanceRepository.GetByUserAndDate(ctx, companyID, userID, today)
	if err != nil {
		return attendance.TodayStatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	if rec == nil {
		return attendance.TodayStatusResponse{}, nil
	}

	resp := rec.ToResponse()
	status := resp.Status
	return attendance.TodayStatusResponse{
		IsClockedIn: rec.CheckIn != nil && rec.CheckOut == nil,
		CheckIn:     resp.CheckIn,
		CheckOut:    resp.CheckOut,
		Status:      &status,
	}, nil
}

func (s *PresenceServiceImpl) rereadToday(ctx context.Context, companyID, userID string, today time.Time) (attendance.AttendanceResponse, error) {
	rec, err := s.AttendanceRepository.GetByUserAndDate(ctx, companyID, userID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to re-read today's attendance: %w", err)
	}
	if rec == nil {
		return attendance.AttendanceResponse{}, attendance.ErrRecordNotFound
	}
	return rec.ToResponse(), nil
}
