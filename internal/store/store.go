package store

import (
	"errors"

	"github.com/talentoplus/talentoplus/internal/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Store is the data-access boundary shared by the importer, the assistant
// and the HR services. Add/Update calls stage changes; SaveChanges commits
// them and ClearPendingChanges discards them, so a failed row never leaks
// into the next one.
type Store interface {
	GetAllEmployees() ([]models.Employee, error)
	GetAllDepartments() ([]models.Department, error)
	GetAllJobPositions() ([]models.JobPosition, error)

	GetEmployeeByID(id int) (*models.Employee, error)
	GetEmployeeByEmail(email string) (*models.Employee, error)
	SearchEmployees(term string) ([]models.Employee, error)

	// excludeID ignores one employee when checking, for updates; 0 means none
	DocumentNumberExists(documentNumber string, excludeID int) (bool, error)
	EmailExists(email string, excludeID int) (bool, error)

	AddEmployee(e *models.Employee) error
	AddDepartment(d *models.Department) error
	AddJobPosition(p *models.JobPosition) error
	UpdateEmployee(e *models.Employee) error
	DeleteAllEmployees() error

	CountEmployeesByDepartment() (map[int]int, error)
	CountEmployeesByStatus() (map[models.EmployeeStatus]int, error)

	SaveChanges() error
	ClearPendingChanges() error
}
