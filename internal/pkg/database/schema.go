package database

import "context"

// Schema is the DDL this engine owns. The employees table is a read
// replica of the directory service; attendances is the source of truth
// for presence. The natural-key constraint on (company_id, user_id, date)
// backs the atomic upsert and the duplicate detection on create.
const Schema = `
CREATE TABLE IF NOT EXISTS employees (
    id UUID PRIMARY KEY,
    company_id UUID NOT NULL,
    user_id UUID NOT NULL,
    department_id UUID,
    position_id UUID,
    full_name VARCHAR(255) NOT NULL,
    employment_status VARCHAR(20) NOT NULL DEFAULT 'active',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    deleted_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_employees_company ON employees (company_id)
    WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS attendances (
    id UUID PRIMARY KEY,
    company_id UUID NOT NULL,
    user_id UUID NOT NULL,
    date DATE NOT NULL,
    status VARCHAR(20) NOT NULL,
    check_in TIMESTAMPTZ,
    check_out TIMESTAMPTZ,
    late_reason TEXT,
    work_from VARCHAR(10) NOT NULL DEFAULT 'office',
    notes TEXT,
    marked_by UUID,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (company_id, user_id, date)
);

CREATE INDEX IF NOT EXISTS idx_attendances_company_date ON attendances (company_id, date);
`

// EnsureSchema applies the DDL. Everything is IF NOT EXISTS, so calling
// it on every boot is safe.
func EnsureSchema(ctx context.Context, db *DB) error {
	_, err := db.Exec(ctx, Schema)
	return err
}
