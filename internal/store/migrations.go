package store

import "database/sql"

const createDepartmentsTable = `
CREATE TABLE IF NOT EXISTS departments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP,
    is_active BOOLEAN NOT NULL DEFAULT 1,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    code TEXT NOT NULL UNIQUE
);
`

const createJobPositionsTable = `
CREATE TABLE IF NOT EXISTS job_positions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP,
    is_active BOOLEAN NOT NULL DEFAULT 1,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    level INTEGER NOT NULL DEFAULT 0,
    min_salary REAL NOT NULL DEFAULT 0,
    max_salary REAL NOT NULL DEFAULT 0,
    department_id INTEGER NOT NULL REFERENCES departments(id)
);
`

const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP,
    is_active BOOLEAN NOT NULL DEFAULT 1,
    document_number TEXT NOT NULL,
    document_type TEXT NOT NULL DEFAULT 'CC',
    first_name TEXT NOT NULL,
    middle_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL,
    second_last_name TEXT NOT NULL DEFAULT '',
    date_of_birth TIMESTAMP NOT NULL,
    gender TEXT NOT NULL DEFAULT '',
    personal_email TEXT NOT NULL,
    corporate_email TEXT NOT NULL DEFAULT '',
    phone_number TEXT NOT NULL DEFAULT '',
    alternative_phone_number TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    city TEXT NOT NULL DEFAULT '',
    country TEXT NOT NULL DEFAULT 'Colombia',
    hire_date TIMESTAMP NOT NULL,
    termination_date TIMESTAMP,
    salary REAL NOT NULL DEFAULT 0,
    status INTEGER NOT NULL DEFAULT 1,
    professional_profile TEXT NOT NULL DEFAULT '',
    department_id INTEGER NOT NULL REFERENCES departments(id),
    job_position_id INTEGER NOT NULL REFERENCES job_positions(id),
    password_hash TEXT NOT NULL DEFAULT '',
    last_login TIMESTAMP
);
`

// The unique indexes back the application-level duplicate checks; a
// concurrent insert that slips past them fails here.
var createIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_document_number ON employees(document_number);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_personal_email ON employees(personal_email);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_corporate_email ON employees(corporate_email) WHERE corporate_email <> '';`,
	`CREATE INDEX IF NOT EXISTS idx_employees_department ON employees(department_id);`,
	`CREATE INDEX IF NOT EXISTS idx_job_positions_department ON job_positions(department_id);`,
}

// Migrate creates the schema when it does not exist yet
func Migrate(db *sql.DB) error {
	for _, stmt := range []string{createDepartmentsTable, createJobPositionsTable, createEmployeesTable} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	for _, stmt := range createIndexes {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
