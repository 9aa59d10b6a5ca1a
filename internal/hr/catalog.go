package hr

import (
	"fmt"
	"strings"

	"github.com/talentoplus/talentoplus/internal/models"
	"github.com/talentoplus/talentoplus/internal/store"
)

// CatalogService manages the department and job-position catalogs
type CatalogService struct {
	store store.Store
}

// NewCatalogService creates a catalog service
func NewCatalogService(st store.Store) *CatalogService {
	return &CatalogService{store: st}
}

// ListDepartments returns all active departments
func (s *CatalogService) ListDepartments() ([]models.Department, error) {
	return s.store.GetAllDepartments()
}

// CreateDepartment persists a new department
func (s *CatalogService) CreateDepartment(d *models.Department) (*models.Department, error) {
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Code) == "" {
		return nil, fmt.Errorf("%w: nombre y código son obligatorios", ErrInvalidInput)
	}

	existing, err := s.store.GetAllDepartments()
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if strings.EqualFold(other.Name, d.Name) || strings.EqualFold(other.Code, d.Code) {
			return nil, fmt.Errorf("%w: ya existe un departamento %s", ErrInvalidInput, d.Name)
		}
	}

	d.IsActive = true
	if err := s.store.AddDepartment(d); err != nil {
		return nil, err
	}
	if err := s.store.SaveChanges(); err != nil {
		return nil, err
	}
	return d, nil
}

// ListJobPositions returns all active job positions, optionally scoped to a
// department
func (s *CatalogService) ListJobPositions(departmentID int) ([]models.JobPosition, error) {
	positions, err := s.store.GetAllJobPositions()
	if err != nil {
		return nil, err
	}
	if departmentID == 0 {
		return positions, nil
	}

	scoped := positions[:0:0]
	for _, p := range positions {
		if p.DepartmentID == departmentID {
			scoped = append(scoped, p)
		}
	}
	return scoped, nil
}

// CreateJobPosition persists a new job position
func (s *CatalogService) CreateJobPosition(p *models.JobPosition) (*models.JobPosition, error) {
	if strings.TrimSpace(p.Title) == "" || p.DepartmentID == 0 {
		return nil, fmt.Errorf("%w: título y departamento son obligatorios", ErrInvalidInput)
	}
	if p.MaxSalary < p.MinSalary {
		return nil, fmt.Errorf("%w: el salario máximo no puede ser menor al mínimo", ErrInvalidInput)
	}

	p.IsActive = true
	if err := s.store.AddJobPosition(p); err != nil {
		return nil, err
	}
	if err := s.store.SaveChanges(); err != nil {
		return nil, err
	}
	return p, nil
}
