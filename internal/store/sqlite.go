package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/talentoplus/talentoplus/internal/models"
)

// SqliteStore implements Store over database/sql with the sqlite3 driver.
// A store tracks at most one staging session and is not safe for concurrent
// use: create one per request or unit of work over the shared *sql.DB.
type SqliteStore struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSqliteStore wraps an open sqlite database
func NewSqliteStore(db *sql.DB) *SqliteStore {
	return &SqliteStore{db: db}
}

// pending returns the staging transaction, opening one on first use
func (s *SqliteStore) pending() (*sql.Tx, error) {
	if s.tx == nil {
		tx, err := s.db.Begin()
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}
		s.tx = tx
	}
	return s.tx, nil
}

// SaveChanges commits staged changes; a no-op when nothing is staged
func (s *SqliteStore) SaveChanges() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Commit()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("failed to commit changes: %w", err)
	}
	return nil
}

// ClearPendingChanges discards staged changes; a no-op when nothing is staged
func (s *SqliteStore) ClearPendingChanges() error {
	if s.tx == nil {
		return nil
	}
	err := s.tx.Rollback()
	s.tx = nil
	if err != nil {
		return fmt.Errorf("failed to roll back changes: %w", err)
	}
	return nil
}

// discardPending rolls back the staging transaction after a failed statement,
// so a broken session never lingers into the next SaveChanges
func (s *SqliteStore) discardPending() {
	if s.tx == nil {
		return
	}
	s.tx.Rollback()
	s.tx = nil
}

const employeeColumns = `e.id, e.created_at, e.updated_at, e.is_active,
	e.document_number, e.document_type, e.first_name, e.middle_name, e.last_name, e.second_last_name,
	e.date_of_birth, e.gender, e.personal_email, e.corporate_email, e.phone_number,
	e.alternative_phone_number, e.address, e.city, e.country,
	e.hire_date, e.termination_date, e.salary, e.status, e.professional_profile,
	e.department_id, e.job_position_id, e.password_hash, e.last_login,
	d.name, j.title`

const employeeJoins = `FROM employees e
	JOIN departments d ON d.id = e.department_id
	JOIN job_positions j ON j.id = e.job_position_id`

func scanEmployee(row interface{ Scan(...interface{}) error }) (*models.Employee, error) {
	var e models.Employee
	var updatedAt, terminationDate, lastLogin sql.NullTime
	var status int

	err := row.Scan(&e.ID, &e.CreatedAt, &updatedAt, &e.IsActive,
		&e.DocumentNumber, &e.DocumentType, &e.FirstName, &e.MiddleName, &e.LastName, &e.SecondLastName,
		&e.DateOfBirth, &e.Gender, &e.PersonalEmail, &e.CorporateEmail, &e.PhoneNumber,
		&e.AlternativePhoneNumber, &e.Address, &e.City, &e.Country,
		&e.HireDate, &terminationDate, &e.Salary, &status, &e.ProfessionalProfile,
		&e.DepartmentID, &e.JobPositionID, &e.PasswordHash, &lastLogin,
		&e.Department, &e.JobPosition)
	if err != nil {
		return nil, err
	}

	e.Status = models.EmployeeStatus(status)
	if updatedAt.Valid {
		e.UpdatedAt = &updatedAt.Time
	}
	if terminationDate.Valid {
		e.TerminationDate = &terminationDate.Time
	}
	if lastLogin.Valid {
		e.LastLogin = &lastLogin.Time
	}
	return &e, nil
}

func (s *SqliteStore) queryEmployees(where string, args ...interface{}) ([]models.Employee, error) {
	query := "SELECT " + employeeColumns + " " + employeeJoins
	if where != "" {
		query += " WHERE " + where
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, *e)
	}
	return employees, rows.Err()
}

// GetAllEmployees returns all active employees with department and position resolved
func (s *SqliteStore) GetAllEmployees() ([]models.Employee, error) {
	return s.queryEmployees("e.is_active = 1 ORDER BY e.id")
}

// GetEmployeeByID returns one employee regardless of active flag
func (s *SqliteStore) GetEmployeeByID(id int) (*models.Employee, error) {
	row := s.db.QueryRow("SELECT "+employeeColumns+" "+employeeJoins+" WHERE e.id = ?", id)
	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query employee %d: %w", id, err)
	}
	return e, nil
}

// GetEmployeeByEmail matches either the personal or the corporate email
func (s *SqliteStore) GetEmployeeByEmail(email string) (*models.Employee, error) {
	row := s.db.QueryRow("SELECT "+employeeColumns+" "+employeeJoins+
		" WHERE e.personal_email = ? OR e.corporate_email = ?", email, email)
	e, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query employee by email: %w", err)
	}
	return e, nil
}

// SearchEmployees matches document number, names or personal email
func (s *SqliteStore) SearchEmployees(term string) ([]models.Employee, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	return s.queryEmployees(`e.is_active = 1 AND (
		lower(e.document_number) LIKE ? OR
		lower(e.first_name) LIKE ? OR
		lower(e.last_name) LIKE ? OR
		lower(e.personal_email) LIKE ?) ORDER BY e.id`,
		pattern, pattern, pattern, pattern)
}

// DocumentNumberExists checks across active and inactive employees
func (s *SqliteStore) DocumentNumberExists(documentNumber string, excludeID int) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM employees WHERE document_number = ? AND id != ?",
		documentNumber, excludeID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check document number: %w", err)
	}
	return count > 0, nil
}

// EmailExists checks both personal and corporate emails across all employees
func (s *SqliteStore) EmailExists(email string, excludeID int) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM employees WHERE (personal_email = ? OR corporate_email = ?) AND id != ?",
		email, email, excludeID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// AddEmployee stages a new employee and fills in its generated id
func (s *SqliteStore) AddEmployee(e *models.Employee) error {
	tx, err := s.pending()
	if err != nil {
		return err
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	res, err := tx.Exec(`INSERT INTO employees (
		created_at, is_active, document_number, document_type,
		first_name, middle_name, last_name, second_last_name,
		date_of_birth, gender, personal_email, corporate_email,
		phone_number, alternative_phone_number, address, city, country,
		hire_date, termination_date, salary, status, professional_profile,
		department_id, job_position_id, password_hash
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.CreatedAt, e.IsActive, e.DocumentNumber, e.DocumentType,
		e.FirstName, e.MiddleName, e.LastName, e.SecondLastName,
		e.DateOfBirth, e.Gender, e.PersonalEmail, e.CorporateEmail,
		e.PhoneNumber, e.AlternativePhoneNumber, e.Address, e.City, e.Country,
		e.HireDate, e.TerminationDate, e.Salary, int(e.Status), e.ProfessionalProfile,
		e.DepartmentID, e.JobPositionID, e.PasswordHash)
	if err != nil {
		s.discardPending()
		return fmt.Errorf("failed to insert employee: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		s.discardPending()
		return fmt.Errorf("failed to read employee id: %w", err)
	}
	e.ID = int(id)
	return nil
}

// AddDepartment stages a new department and fills in its generated id
func (s *SqliteStore) AddDepartment(d *models.Department) error {
	tx, err := s.pending()
	if err != nil {
		return err
	}

	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	res, err := tx.Exec(
		"INSERT INTO departments (created_at, is_active, name, description, code) VALUES (?, ?, ?, ?, ?)",
		d.CreatedAt, d.IsActive, d.Name, d.Description, d.Code)
	if err != nil {
		s.discardPending()
		return fmt.Errorf("failed to insert department: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		s.discardPending()
		return fmt.Errorf("failed to read department id: %w", err)
	}
	d.ID = int(id)
	return nil
}

// AddJobPosition stages a new job position and fills in its generated id
func (s *SqliteStore) AddJobPosition(p *models.JobPosition) error {
	tx, err := s.pending()
	if err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	res, err := tx.Exec(`INSERT INTO job_positions
		(created_at, is_active, title, description, level, min_salary, max_salary, department_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.CreatedAt, p.IsActive, p.Title, p.Description, p.Level, p.MinSalary, p.MaxSalary, p.DepartmentID)
	if err != nil {
		s.discardPending()
		return fmt.Errorf("failed to insert job position: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		s.discardPending()
		return fmt.Errorf("failed to read job position id: %w", err)
	}
	p.ID = int(id)
	return nil
}

// UpdateEmployee stages an update of every mutable employee field
func (s *SqliteStore) UpdateEmployee(e *models.Employee) error {
	tx, err := s.pending()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	e.UpdatedAt = &now
	_, err = tx.Exec(`UPDATE employees SET
		updated_at = ?, is_active = ?, document_number = ?, document_type = ?,
		first_name = ?, middle_name = ?, last_name = ?, second_last_name = ?,
		date_of_birth = ?, gender = ?, personal_email = ?, corporate_email = ?,
		phone_number = ?, alternative_phone_number = ?, address = ?, city = ?, country = ?,
		hire_date = ?, termination_date = ?, salary = ?, status = ?, professional_profile = ?,
		department_id = ?, job_position_id = ?, password_hash = ?, last_login = ?
		WHERE id = ?`,
		e.UpdatedAt, e.IsActive, e.DocumentNumber, e.DocumentType,
		e.FirstName, e.MiddleName, e.LastName, e.SecondLastName,
		e.DateOfBirth, e.Gender, e.PersonalEmail, e.CorporateEmail,
		e.PhoneNumber, e.AlternativePhoneNumber, e.Address, e.City, e.Country,
		e.HireDate, e.TerminationDate, e.Salary, int(e.Status), e.ProfessionalProfile,
		e.DepartmentID, e.JobPositionID, e.PasswordHash, e.LastLogin, e.ID)
	if err != nil {
		s.discardPending()
		return fmt.Errorf("failed to update employee %d: %w", e.ID, err)
	}
	return nil
}

// DeleteAllEmployees removes every employee row; used by the bulk-reset endpoint
func (s *SqliteStore) DeleteAllEmployees() error {
	tx, err := s.pending()
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM employees"); err != nil {
		s.discardPending()
		return fmt.Errorf("failed to delete employees: %w", err)
	}
	return nil
}

// GetAllDepartments returns all active departments
func (s *SqliteStore) GetAllDepartments() ([]models.Department, error) {
	rows, err := s.db.Query(`SELECT id, created_at, updated_at, is_active, name, description, code
		FROM departments WHERE is_active = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var d models.Department
		var updatedAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.CreatedAt, &updatedAt, &d.IsActive, &d.Name, &d.Description, &d.Code); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		if updatedAt.Valid {
			d.UpdatedAt = &updatedAt.Time
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

// GetAllJobPositions returns all active job positions
func (s *SqliteStore) GetAllJobPositions() ([]models.JobPosition, error) {
	rows, err := s.db.Query(`SELECT id, created_at, updated_at, is_active, title, description,
		level, min_salary, max_salary, department_id
		FROM job_positions WHERE is_active = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query job positions: %w", err)
	}
	defer rows.Close()

	var positions []models.JobPosition
	for rows.Next() {
		var p models.JobPosition
		var updatedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.CreatedAt, &updatedAt, &p.IsActive, &p.Title, &p.Description,
			&p.Level, &p.MinSalary, &p.MaxSalary, &p.DepartmentID); err != nil {
			return nil, fmt.Errorf("failed to scan job position: %w", err)
		}
		if updatedAt.Valid {
			p.UpdatedAt = &updatedAt.Time
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// CountEmployeesByDepartment groups active employees by department id
func (s *SqliteStore) CountEmployeesByDepartment() (map[int]int, error) {
	rows, err := s.db.Query(
		"SELECT department_id, COUNT(*) FROM employees WHERE is_active = 1 GROUP BY department_id")
	if err != nil {
		return nil, fmt.Errorf("failed to count by department: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var id, count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

// CountEmployeesByStatus groups active employees by status
func (s *SqliteStore) CountEmployeesByStatus() (map[models.EmployeeStatus]int, error) {
	rows, err := s.db.Query(
		"SELECT status, COUNT(*) FROM employees WHERE is_active = 1 GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.EmployeeStatus]int)
	for rows.Next() {
		var status, count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[models.EmployeeStatus(status)] = count
	}
	return counts, rows.Err()
}
