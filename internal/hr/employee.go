package hr

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/talentoplus/talentoplus/internal/auth"
	"github.com/talentoplus/talentoplus/internal/mailer"
	"github.com/talentoplus/talentoplus/internal/models"
	"github.com/talentoplus/talentoplus/internal/store"
)

// EmployeeService implements employee CRUD, search, registration and the
// dashboard aggregates
type EmployeeService struct {
	store  store.Store
	mailer mailer.Mailer
}

// NewEmployeeService creates an employee service
func NewEmployeeService(st store.Store, m mailer.Mailer) *EmployeeService {
	return &EmployeeService{store: st, mailer: m}
}

// List returns the condensed view of all active employees
func (s *EmployeeService) List() ([]models.EmployeeListItem, error) {
	employees, err := s.store.GetAllEmployees()
	if err != nil {
		return nil, err
	}
	return toListItems(employees), nil
}

// Search returns employees matching the term by document, name or email
func (s *EmployeeService) Search(term string) ([]models.EmployeeListItem, error) {
	employees, err := s.store.SearchEmployees(term)
	if err != nil {
		return nil, err
	}
	return toListItems(employees), nil
}

func toListItems(employees []models.Employee) []models.EmployeeListItem {
	items := make([]models.EmployeeListItem, 0, len(employees))
	for i := range employees {
		e := &employees[i]
		items = append(items, models.EmployeeListItem{
			ID:             e.ID,
			FullName:       e.FullName(),
			DocumentNumber: e.DocumentNumber,
			PersonalEmail:  e.PersonalEmail,
			CorporateEmail: e.CorporateEmail,
			Department:     e.Department,
			JobPosition:    e.JobPosition,
			Status:         e.Status,
			StatusName:     e.Status.String(),
			HireDate:       e.HireDate,
		})
	}
	return items
}

// Get returns one employee with department and position resolved
func (s *EmployeeService) Get(id int) (*models.Employee, error) {
	employee, err := s.store.GetEmployeeByID(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	return employee, err
}

// Create validates duplicates and persists a new employee
func (s *EmployeeService) Create(e *models.Employee) (*models.Employee, error) {
	if err := s.checkDuplicates(e.DocumentNumber, e.PersonalEmail, 0); err != nil {
		return nil, err
	}

	e.IsActive = true
	if e.Status == 0 {
		e.Status = models.StatusActivo
	}
	if strings.TrimSpace(e.Country) == "" {
		e.Country = "Colombia"
	}

	if err := s.store.AddEmployee(e); err != nil {
		return nil, err
	}
	if err := s.store.SaveChanges(); err != nil {
		return nil, err
	}

	return s.Get(e.ID)
}

// Update replaces an existing employee's mutable fields
func (s *EmployeeService) Update(id int, e *models.Employee) error {
	if e.ID != 0 && e.ID != id {
		return fmt.Errorf("%w: el ID no coincide", ErrInvalidInput)
	}

	current, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.checkDuplicates(e.DocumentNumber, e.PersonalEmail, id); err != nil {
		return err
	}

	e.ID = id
	e.CreatedAt = current.CreatedAt
	e.IsActive = current.IsActive
	e.PasswordHash = current.PasswordHash
	e.LastLogin = current.LastLogin

	if err := s.store.UpdateEmployee(e); err != nil {
		return err
	}
	return s.store.SaveChanges()
}

// Delete performs a soft delete: the record stays, flagged inactive and
// retired with a termination date
func (s *EmployeeService) Delete(id int) error {
	employee, err := s.Get(id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	employee.IsActive = false
	employee.Status = models.StatusRetirado
	employee.TerminationDate = &now

	if err := s.store.UpdateEmployee(employee); err != nil {
		return err
	}
	if err := s.store.SaveChanges(); err != nil {
		return err
	}

	log.Printf("Employee %d soft-deleted", id)
	return nil
}

// DeleteAll removes every employee record; used by the admin bulk reset
func (s *EmployeeService) DeleteAll() error {
	if err := s.store.DeleteAllEmployees(); err != nil {
		return err
	}
	return s.store.SaveChanges()
}

func (s *EmployeeService) checkDuplicates(documentNumber, email string, excludeID int) error {
	exists, err := s.store.DocumentNumberExists(documentNumber, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDocument, documentNumber)
	}

	exists, err = s.store.EmailExists(email, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEmail, email)
	}
	return nil
}

// DashboardStats aggregates headcounts for the admin dashboard
func (s *EmployeeService) DashboardStats() (*models.DashboardStats, error) {
	byDept, err := s.store.CountEmployeesByDepartment()
	if err != nil {
		return nil, err
	}
	byStatus, err := s.store.CountEmployeesByStatus()
	if err != nil {
		return nil, err
	}
	departments, err := s.store.GetAllDepartments()
	if err != nil {
		return nil, err
	}

	deptNames := make(map[int]string, len(departments))
	for _, d := range departments {
		deptNames[d.ID] = d.Name
	}

	stats := &models.DashboardStats{
		ByDepartment: make(map[string]int, len(byDept)),
		ByStatus:     make(map[string]int, len(byStatus)),
	}

	for id, count := range byDept {
		name, ok := deptNames[id]
		if !ok {
			name = "Sin Departamento"
		}
		stats.ByDepartment[name] = count
	}

	for status, count := range byStatus {
		stats.ByStatus[status.String()] = count
		stats.TotalEmployees += count
	}

	stats.ActiveEmployees = byStatus[models.StatusActivo]
	stats.EmployeesOnVacation = byStatus[models.StatusVacaciones]
	stats.InactiveEmployees = stats.TotalEmployees - stats.ActiveEmployees - stats.EmployeesOnVacation

	return stats, nil
}

// Register creates an employee from the public API and sends a welcome
// email; delivery failures never fail the registration
func (s *EmployeeService) Register(ctx context.Context, req *models.RegisterRequest) error {
	if req.DocumentNumber == "" || req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return fmt.Errorf("%w: faltan campos obligatorios", ErrInvalidInput)
	}
	if len(req.Password) < 6 {
		return fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", ErrInvalidInput)
	}

	if err := s.checkDuplicates(req.DocumentNumber, req.Email, 0); err != nil {
		return err
	}

	now := time.Now().UTC()
	employee := models.Employee{
		DocumentNumber: req.DocumentNumber,
		DocumentType:   "CC",
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		PersonalEmail:  req.Email,
		DepartmentID:   req.DepartmentID,
		JobPositionID:  req.JobPositionID,
		HireDate:       now,
		DateOfBirth:    now.AddDate(-20, 0, 0),
		Country:        "Colombia",
		IsActive:       true,
		Status:         models.StatusActivo,
		PasswordHash:   auth.HashPassword(req.Password),
	}

	if err := s.store.AddEmployee(&employee); err != nil {
		return err
	}
	if err := s.store.SaveChanges(); err != nil {
		return err
	}

	subject := "Bienvenido a TalentoPlus - Registro Exitoso"
	body := fmt.Sprintf(`<h2>Hola %s,</h2>
<p>Tu registro en <strong>TalentoPlus</strong> ha sido exitoso.</p>
<p>Tus datos han sido recibidos correctamente. Podrás autenticarte en la plataforma una vez que tu cuenta sea habilitada por el administrador.</p>
<br>
<p>Atentamente,<br>El equipo de TalentoPlus</p>`, employee.FirstName)

	if err := s.mailer.Send(ctx, employee.PersonalEmail, subject, body); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", employee.PersonalEmail, err)
	}

	return nil
}
