package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/attendance"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/employee"
)

func newTestRecordService(attendanceRepo *fakeAttendanceRepo, employeeRepo *fakeEmployeeRepo) *RecordServiceImpl {
	return &RecordServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		runTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

func testEmployee(id, userID string) employee.Employee {
	return employee.Employee{
		ID:               id,
		CompanyID:        testCompanyID,
		UserID:           userID,
		FullName:         "Employee " + id,
		EmploymentStatus: employee.EmploymentStatusActive,
	}
}

func TestMark_CreatesRecord(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAttendanceRepo()
	svc := newTestRecordService(repo, newFakeEmployeeRepo(testEmployee("emp-1", "user-1")))

	result, err := svc.Mark(ctx, testCompanyID, "admin-1", attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-09",
		Status:     "Half Day",
	})
	require.NoError(t, err)
	assert.True(t, result.Created)

	rec, err := repo.GetByUserAndDate(ctx, testCompanyID, "user-1", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusHalfDay, rec.Status, "status stored canonicalized")
	require.NotNil(t, rec.MarkedBy)
	assert.Equal(t, "admin-1", *rec.MarkedBy)
}

func TestMark_OverwritesExistingDay(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAttendanceRepo()
	svc := newTestRecordService(repo, newFakeEmployeeRepo(testEmployee("emp-1", "user-1")))

	first, err := svc.Mark(ctx, testCompanyID, "admin-1", attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-09",
		Status:     "absent",
	})
	require.NoError(t, err)
	require.True(t, first.Created)

	second, err := svc.Mark(ctx, testCompanyID, "admin-1", attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-09",
		Status:     "on_leave",
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.ID, second.ID, "same natural key resolves to the same row")

	rec, err := repo.GetByUserAndDate(ctx, testCompanyID, "user-1", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusOnLeave, rec.Status)
	assert.Equal(t, 1, repo.count())
}

func TestMark_WithClockTimes(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAttendanceRepo()
	svc := newTestRecordService(repo, newFakeEmployeeRepo(testEmployee("emp-1", "user-1")))

	checkIn := "09:15:00"
	checkOut := "17:30:00"
	remote := "remote"
	_, err := svc.Mark(ctx, testCompanyID, "admin-1", attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-09",
		Status:     "late",
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		WorkFrom:   &remote,
	})
	require.NoError(t, err)

	rec, err := repo.GetByUserAndDate(ctx, testCompanyID, "user-1", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rec.CheckIn)
	assert.Equal(t, time.Date(2026, 3, 9, 9, 15, 0, 0, time.UTC), *rec.CheckIn)
	require.NotNil(t, rec.CheckOut)
	assert.Equal(t, time.Date(2026, 3, 9, 17, 30, 0, 0, time.UTC), *rec.CheckOut)
	assert.Equal(t, attendance.WorkFromRemote, rec.WorkFrom)
}

func TestMark_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	svc := newTestRecordService(newFakeAttendanceRepo(), newFakeEmployeeRepo())

	_, err := svc.Mark(ctx, testCompanyID, "admin-1", attendance.MarkAttendanceRequest{
		EmployeeID: "emp-missing",
		Date:       "2026-03-09",
		Status:     "present",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestMark_CrossCompanyEmployeeRejected(t *testing.T) {
	ctx := context.Background()
	other := testEmployee("emp-1", "user-1")
	other.CompanyID = "company-2"
	svc := newTestRecordService(newFakeAttendanceRepo(), newFakeEmployeeRepo(other))

	_, err := svc.Mark(ctx, testCompanyID, "admin-1", attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-09",
		Status:     "present",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestBulkMark_PartialFailure(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAttendanceRepo()
	svc := newTestRecordService(repo, newFakeEmployeeRepo(
		testEmployee("emp-1", "user-1"),
		testEmployee("emp-2", "user-2"),
	))

	result, err := svc.BulkMark(ctx, testCompanyID, "admin-1", attendance.BulkMarkRequest{
		Records: []attendance.BulkMarkRow{
			{EmployeeID: "emp-1", Date: "2026-03-09", Status: "present"},
			{EmployeeID: "emp-missing", Date: "2026-03-09", Status: "present"},
			{EmployeeID: "emp-2", Date: "2026-03-09", Status: "vacation"},
			{EmployeeID: "emp-2", Date: "2026-03-09", Status: "absent"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 2, result.ErrorCount)
	assert.Equal(t, 2, repo.count())
}

func TestBulkMark_EmptyRequest(t *testing.T) {
	ctx := context.Background()
	svc := newTestRecordService(newFakeAttendanceRepo(), newFakeEmployeeRepo())

	_, err := svc.BulkMark(ctx, testCompanyID, "admin-1", attendance.BulkMarkRequest{})
	assert.Error(t, err)
}

func TestBulkMark_SameDayAsClockIn(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAttendanceRepo()
	presence := newTestPresenceService(repo, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	recorder := newTestRecordService(repo, newFakeEmployeeRepo(testEmployee("emp-1", testUserID)))

	_, err := presence.CheckIn(ctx, testCompanyID, testUserID)
	require.NoError(t, err)

	result, err := recorder.BulkMark(ctx, testCompanyID, "admin-1", attendance.BulkMarkRequest{
		Records: []attendance.BulkMarkRow{
			{EmployeeID: "emp-1", Date: "2026-03-10", Status: "late"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)

	rec, err := repo.GetByUserAndDate(ctx, testCompanyID, testUserID, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)
	assert.NotNil(t, rec.CheckIn, "clock-in from the employee is preserved")
	assert.Equal(t, 1, repo.count(), "upsert lands on the existing row")
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAttendanceRepo()
	svc := newTestRecordService(repo, newFakeEmployeeRepo(testEmployee("emp-1", "user-1")))

	result, err := svc.Mark(ctx, testCompanyID, "admin-1", attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-09",
		Status:     "present",
	})
	require.NoError(t, err)

	resp, err := svc.Get(ctx, testCompanyID, result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.ID, resp.ID)
	assert.Equal(t, "present", resp.Status)

	_, err = svc.Get(ctx, "company-2", result.ID)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAttendanceRepo()
	svc := newTestRecordService(repo, newFakeEmployeeRepo(testEmployee("emp-1", "user-1")))

	result, err := svc.Mark(ctx, testCompanyID, "admin-1", attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-09",
		Status:     "present",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, testCompanyID, result.ID))
	assert.Equal(t, 0, repo.count())

	err = svc.Delete(ctx, testCompanyID, result.ID)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestDelete_CrossCompanyIsolation(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAttendanceRepo()
	svc := newTestRecordService(repo, newFakeEmployeeRepo(testEmployee("emp-1", "user-1")))

	result, err := svc.Mark(ctx, testCompanyID, "admin-1", attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       "2026-03-09",
		Status:     "present",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, "company-2", result.ID)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
	assert.Equal(t, 1, repo.count())
}
