package attendance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nimbuscrm/presence-backend-go/internal/domain/attendance"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/employee"
)

// fakeAttendanceRepo mirrors the store's natural-key and guard semantics
// in memory so the state machine can be tested without a database.
type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]*attendance.Attendance // keyed by natural key
	nextID  int

	failCreateWith error // when set, next Create returns this once
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: make(map[string]*attendance.Attendance),
	}
}

func naturalKey(companyID, userID string, date time.Time) string {
	return companyID + "|" + userID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreateWith != nil {
		err := f.failCreateWith
		f.failCreateWith = nil
		return attendance.Attendance{}, err
	}

	key := naturalKey(record.CompanyID, record.UserID, record.Date)
	if _, ok := f.records[key]; ok {
		return attendance.Attendance{}, attendance.ErrDuplicateRecord
	}

	f.nextID++
	record.ID = fmt.Sprintf("rec-%d", f.nextID)
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	if record.WorkFrom == "" {
		record.WorkFrom = attendance.WorkFromOffice
	}
	f.records[key] = &record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id, companyID string) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range f.records {
		if rec.ID == id && rec.CompanyID == companyID {
			return *rec, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) GetByUserAndDate(_ context.Context, companyID, userID string, date time.Time) (*attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[naturalKey(companyID, userID, date)]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeAttendanceRepo) SetCheckIn(_ context.Context, id, companyID string, checkIn time.Time, status attendance.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range f.records {
		if rec.ID == id && rec.CompanyID == companyID {
			if rec.CheckIn != nil {
				return attendance.ErrDuplicateRecord
			}
			rec.CheckIn = &checkIn
			rec.Status = status
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) SetCheckOut(_ context.Context, id, companyID string, checkOut time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, rec := range f.records {
		if rec.ID == id && rec.CompanyID == companyID {
			if rec.CheckIn == nil || rec.CheckOut != nil {
				return attendance.ErrDuplicateRecord
			}
			rec.CheckOut = &checkOut
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) UpsertByKey(_ context.Context, record attendance.Attendance) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := naturalKey(record.CompanyID, record.UserID, record.Date)
	if existing, ok := f.records[key]; ok {
		existing.Status = record.Status
		if record.CheckIn != nil {
			existing.CheckIn = record.CheckIn
		}
		if record.CheckOut != nil {
			existing.CheckOut = record.CheckOut
		}
		existing.LateReason = record.LateReason
		existing.WorkFrom = record.WorkFrom
		existing.Notes = record.Notes
		existing.MarkedBy = record.MarkedBy
		existing.UpdatedAt = time.Now()
		return existing.ID, false, nil
	}

	f.nextID++
	record.ID = fmt.Sprintf("rec-%d", f.nextID)
	record.CreatedAt = time.Now()
	record.UpdatedAt = record.CreatedAt
	f.records[key] = &record
	return record.ID, true, nil
}

func (f *fakeAttendanceRepo) ListByMonth(_ context.Context, companyID string, month, year int) ([]attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []attendance.Attendance
	for _, rec := range f.records {
		if rec.CompanyID == companyID && int(rec.Date.Month()) == month && rec.Date.Year() == year {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func (f *fakeAttendanceRepo) ListByUserMonth(_ context.Context, companyID, userID string, month, year int) ([]attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []attendance.Attendance
	for _, rec := range f.records {
		if rec.CompanyID == companyID && rec.UserID == userID &&
			int(rec.Date.Month()) == month && rec.Date.Year() == year {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id, companyID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for key, rec := range f.records {
		if rec.ID == id && rec.CompanyID == companyID {
			delete(f.records, key)
			return nil
		}
	}
	return attendance.ErrRecordNotFound
}

func (f *fakeAttendanceRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

// fakeEmployeeRepo is a fixed in-memory roster.
type fakeEmployeeRepo struct {
	employees map[string]employee.Employee // keyed by employee id
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, emp := range employees {
		f.employees[emp.ID] = emp
	}
	return f
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id, companyID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(_ context.Context, companyID string, filter employee.RosterFilter) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		if emp.CompanyID != companyID {
			continue
		}
		if filter.DepartmentID != nil && (emp.DepartmentID == nil || *emp.DepartmentID != *filter.DepartmentID) {
			continue
		}
		if filter.PositionID != nil && (emp.PositionID == nil || *emp.PositionID != *filter.PositionID) {
			continue
		}
		result = append(result, emp)
	}
	return result, nil
}
