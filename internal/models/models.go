package models

import (
	"strings"
	"time"
)

// EmployeeStatus represents the employment state of an employee
type EmployeeStatus int

const (
	StatusActivo EmployeeStatus = iota + 1
	StatusInactivo
	StatusVacaciones
	StatusLicenciaMedica
	StatusRetirado
)

var statusNames = map[EmployeeStatus]string{
	StatusActivo:         "Activo",
	StatusInactivo:       "Inactivo",
	StatusVacaciones:     "Vacaciones",
	StatusLicenciaMedica: "LicenciaMedica",
	StatusRetirado:       "Retirado",
}

// String returns the display name of the status
func (s EmployeeStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Desconocido"
}

// Employee represents an employee of the company
type Employee struct {
	ID        int        `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	IsActive  bool       `json:"is_active"`

	// Personal information
	DocumentNumber string    `json:"document_number"`
	DocumentType   string    `json:"document_type"`
	FirstName      string    `json:"first_name"`
	MiddleName     string    `json:"middle_name,omitempty"`
	LastName       string    `json:"last_name"`
	SecondLastName string    `json:"second_last_name,omitempty"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Gender         string    `json:"gender,omitempty"`

	// Contact information
	PersonalEmail          string `json:"personal_email"`
	CorporateEmail         string `json:"corporate_email,omitempty"`
	PhoneNumber            string `json:"phone_number"`
	AlternativePhoneNumber string `json:"alternative_phone_number,omitempty"`
	Address                string `json:"address,omitempty"`
	City                   string `json:"city,omitempty"`
	Country                string `json:"country"`

	// Employment information
	HireDate            time.Time      `json:"hire_date"`
	TerminationDate     *time.Time     `json:"termination_date,omitempty"`
	Salary              float64        `json:"salary"`
	Status              EmployeeStatus `json:"status"`
	ProfessionalProfile string         `json:"professional_profile,omitempty"`

	// Relations; Department and JobPosition carry the resolved names on reads
	DepartmentID  int    `json:"department_id"`
	JobPositionID int    `json:"job_position_id"`
	Department    string `json:"department,omitempty"`
	JobPosition   string `json:"job_position,omitempty"`

	// API authentication
	PasswordHash string     `json:"-"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// FullName joins the non-empty name parts
func (e *Employee) FullName() string {
	parts := []string{e.FirstName, e.MiddleName, e.LastName, e.SecondLastName}
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

// Age returns the employee's age in full years as of today
func (e *Employee) Age() int {
	today := time.Now()
	age := today.Year() - e.DateOfBirth.Year()
	if today.YearDay() < e.DateOfBirth.YearDay() {
		age--
	}
	return age
}

// YearsOfService returns the years worked, using the termination date when set
func (e *Employee) YearsOfService() float64 {
	end := time.Now()
	if e.TerminationDate != nil {
		end = *e.TerminationDate
	}
	return end.Sub(e.HireDate).Hours() / 24 / 365.25
}

// IsCurrentlyActive reports whether the employee is active and still employed
func (e *Employee) IsCurrentlyActive() bool {
	return e.Status == StatusActivo && e.IsActive && e.TerminationDate == nil
}

// Department represents a company department
type Department struct {
	ID          int        `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	IsActive    bool       `json:"is_active"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Code        string     `json:"code"`
}

// JobPosition represents a job role within a department
type JobPosition struct {
	ID           int        `json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	IsActive     bool       `json:"is_active"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Level        int        `json:"level"`
	MinSalary    float64    `json:"min_salary"`
	MaxSalary    float64    `json:"max_salary"`
	DepartmentID int        `json:"department_id"`
}
