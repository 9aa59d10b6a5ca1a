package models

import "time"

// ImportResult summarizes a spreadsheet import run
type ImportResult struct {
	TotalProcessed    int      `json:"total_processed"`
	SuccessfulImports int      `json:"successful_imports"`
	FailedImports     int      `json:"failed_imports"`
	Errors            []string `json:"errors"`
}

// AssistantResponse is the answer to a natural-language question
type AssistantResponse struct {
	Answer    string      `json:"answer"`
	Data      interface{} `json:"data,omitempty"`
	ChartType string      `json:"chart_type"` // "bar", "pie" or "none"
	Success   bool        `json:"success"`
}

// LoginRequest is the payload for API authentication
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token
type LoginResponse struct {
	Token      string    `json:"token"`
	Expiration time.Time `json:"expiration"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
}

// RegisterRequest is the payload for public employee self-registration
type RegisterRequest struct {
	DocumentNumber string `json:"document_number"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	DepartmentID   int    `json:"department_id"`
	JobPositionID  int    `json:"job_position_id"`
}

// EmployeeListItem is the condensed employee view for list endpoints
type EmployeeListItem struct {
	ID             int            `json:"id"`
	FullName       string         `json:"full_name"`
	DocumentNumber string         `json:"document_number"`
	PersonalEmail  string         `json:"personal_email"`
	CorporateEmail string         `json:"corporate_email,omitempty"`
	Department     string         `json:"department"`
	JobPosition    string         `json:"job_position"`
	Status         EmployeeStatus `json:"status"`
	StatusName     string         `json:"status_name"`
	HireDate       time.Time      `json:"hire_date"`
}

// DashboardStats holds the aggregate counters for the admin dashboard
type DashboardStats struct {
	TotalEmployees      int            `json:"total_employees"`
	ActiveEmployees     int            `json:"active_employees"`
	InactiveEmployees   int            `json:"inactive_employees"`
	EmployeesOnVacation int            `json:"employees_on_vacation"`
	ByDepartment        map[string]int `json:"by_department"`
	ByStatus            map[string]int `json:"by_status"`
}
