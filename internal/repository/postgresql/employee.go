package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nimbuscrm/presence-backend-go/internal/domain/employee"
	"github.com/nimbuscrm/presence-backend-go/internal/pkg/database"
)

// employeeRepository reads the employee directory tables owned by the
// CRM core. This engine never writes to them.
type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, company_id, user_id, department_id, position_id,
		       full_name, employment_status, created_at, updated_at
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&emp.ID, &emp.CompanyID, &emp.UserID, &emp.DepartmentID, &emp.PositionID,
		&emp.FullName, &emp.EmploymentStatus, &emp.CreatedAt, &emp.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// GetActiveByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepository) GetActiveByCompanyID(ctx context.Context, companyID string, filter employee.RosterFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	baseWhere := "company_id = $1 AND employment_status = 'active' AND deleted_at IS NULL"
	args := []interface{}{companyID}
	argIdx := 2

	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		baseWhere += fmt.Sprintf(" AND department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.PositionID != nil && *filter.PositionID != "" {
		baseWhere += fmt.Sprintf(" AND position_id = $%d", argIdx)
		args = append(args, *filter.PositionID)
		argIdx++
	}

	query := `
		SELECT id, company_id, user_id, department_id, position_id,
		       full_name, employment_status, created_at, updated_at
		FROM employees
		WHERE ` + baseWhere + `
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.CompanyID, &emp.UserID, &emp.DepartmentID, &emp.PositionID,
			&emp.FullName, &emp.EmploymentStatus, &emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return employees, nil
}
