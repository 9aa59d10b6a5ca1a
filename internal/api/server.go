package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/talentoplus/talentoplus/internal/assistant"
	"github.com/talentoplus/talentoplus/internal/auth"
	"github.com/talentoplus/talentoplus/internal/hr"
	"github.com/talentoplus/talentoplus/internal/importer"
	"github.com/talentoplus/talentoplus/internal/mailer"
	"github.com/talentoplus/talentoplus/internal/models"
	"github.com/talentoplus/talentoplus/internal/resume"
	"github.com/talentoplus/talentoplus/internal/store"
)

// maxImportSize caps uploaded spreadsheets at 10 MB
const maxImportSize = 10 << 20

// Server handles HTTP requests. Every handler works on its own store (and so
// its own staging session) over the shared database; the staging session is
// never shared between request goroutines.
type Server struct {
	stores func() store.Store
	mail   mailer.Mailer
	llm    *assistant.GeminiClient
	tokens *auth.Manager
}

// NewServer creates a new API server. stores must return a fresh store on
// every call.
func NewServer(stores func() store.Store, mail mailer.Mailer, llm *assistant.GeminiClient, tokens *auth.Manager) *Server {
	return &Server{
		stores: stores,
		mail:   mail,
		llm:    llm,
		tokens: tokens,
	}
}

func (s *Server) employeeService() *hr.EmployeeService {
	return hr.NewEmployeeService(s.stores(), s.mail)
}

func (s *Server) catalogService() *hr.CatalogService {
	return hr.NewCatalogService(s.stores())
}

func (s *Server) authService() *hr.AuthService {
	return hr.NewAuthService(s.stores(), s.tokens)
}

func (s *Server) newImporter() *importer.Importer {
	return importer.New(s.stores())
}

func (s *Server) newAssistant() *assistant.Assistant {
	return assistant.New(s.stores(), s.llm)
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)

	mux.Handle("GET /api/employees", s.requireAuth(s.handleListEmployees))
	mux.Handle("GET /api/employees/{id}", s.requireAuth(s.handleGetEmployee))
	mux.Handle("POST /api/employees", s.requireAuth(s.handleCreateEmployee))
	mux.Handle("PUT /api/employees/{id}", s.requireAuth(s.handleUpdateEmployee))
	mux.Handle("DELETE /api/employees/{id}", s.requireAuth(s.handleDeleteEmployee))
	mux.Handle("DELETE /api/employees", s.requireAuth(s.handleDeleteAllEmployees))
	mux.Handle("GET /api/employees/{id}/resume", s.requireAuth(s.handleResume))

	mux.Handle("POST /api/import", s.requireAuth(s.handleImport))
	mux.Handle("GET /api/import/template", s.requireAuth(s.handleImportTemplate))
	mux.Handle("POST /api/assistant", s.requireAuth(s.handleAssistant))
	mux.Handle("GET /api/dashboard", s.requireAuth(s.handleDashboard))

	mux.Handle("GET /api/departments", s.requireAuth(s.handleListDepartments))
	mux.Handle("POST /api/departments", s.requireAuth(s.handleCreateDepartment))
	mux.Handle("GET /api/positions", s.requireAuth(s.handleListPositions))
	mux.Handle("POST /api/positions", s.requireAuth(s.handleCreatePosition))

	return s.loggingMiddleware(mux)
}

// handleRoot provides API information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "TalentoPlus API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"POST /api/auth/login":           "Authenticate and obtain a token",
			"POST /api/auth/register":        "Register a new employee",
			"GET /api/employees":             "List employees (optional ?q= search)",
			"POST /api/import":               "Upload an .xlsx employee spreadsheet",
			"GET /api/import/template":       "Download the import template",
			"POST /api/assistant":            "Ask a question about the employees",
			"GET /api/dashboard":             "Headcount statistics",
			"GET /api/employees/{id}/resume": "Download an employee resume as PDF",
			"GET /health":                    "Health check",
		},
	})
}

// handleHealth provides a health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := s.authService().Login(&req)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.employeeService().Register(r.Context(), &req); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Registro exitoso",
	})
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	svc := s.employeeService()
	var (
		items []models.EmployeeListItem
		err   error
	)
	if term != "" {
		items, err = svc.Search(term)
	} else {
		items, err = svc.List()
	}
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	employee, err := s.employeeService().Get(id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, employee)
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var employee models.Employee
	if err := json.NewDecoder(r.Body).Decode(&employee); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := s.employeeService().Create(&employee)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	var employee models.Employee
	if err := json.NewDecoder(r.Body).Decode(&employee); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.employeeService().Update(id, &employee); err != nil {
		s.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	if err := s.employeeService().Delete(id); err != nil {
		s.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAllEmployees(w http.ResponseWriter, r *http.Request) {
	if err := s.employeeService().DeleteAll(); err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Todos los empleados fueron eliminados",
	})
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	employee, err := s.employeeService().Get(id)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}

	pdf, err := resume.Generate(employee)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("HojaDeVida_%s.pdf", employee.DocumentNumber)))
	w.Write(pdf)
}

// handleImport ingests an uploaded .xlsx spreadsheet of employees
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "A 'file' form field is required")
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".xlsx" {
		s.respondError(w, http.StatusBadRequest, "Only .xlsx files are supported")
		return
	}

	result := s.newImporter().Import(file)
	log.Printf("Import of %s: %d processed, %d ok, %d failed", header.Filename, result.TotalProcessed, result.SuccessfulImports, result.FailedImports)
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	template, err := importer.GenerateTemplate()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="Plantilla_Empleados.xlsx"`)
	w.Write(template)
}

func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		s.respondError(w, http.StatusBadRequest, "A 'question' field is required")
		return
	}

	response, err := s.newAssistant().ProcessQuestion(r.Context(), req.Question)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.employeeService().DashboardStats()
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := s.catalogService().ListDepartments()
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, departments)
}

func (s *Server) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var department models.Department
	if err := json.NewDecoder(r.Body).Decode(&department); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := s.catalogService().CreateDepartment(&department)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	departmentID := 0
	if raw := r.URL.Query().Get("department_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid department_id")
			return
		}
		departmentID = id
	}

	positions, err := s.catalogService().ListJobPositions(departmentID)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, positions)
}

func (s *Server) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var position models.JobPosition
	if err := json.NewDecoder(r.Body).Decode(&position); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := s.catalogService().CreateJobPosition(&position)
	if err != nil {
		s.respondServiceError(w, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) pathID(r *http.Request) (int, error) {
	return strconv.Atoi(r.PathValue("id"))
}

// requireAuth rejects requests without a valid bearer token
func (s *Server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.respondError(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		if _, err := s.tokens.VerifyToken(token); err != nil {
			s.respondError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// respondServiceError maps service errors to HTTP status codes
func (s *Server) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, hr.ErrNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, hr.ErrDuplicateDocument), errors.Is(err, hr.ErrDuplicateEmail):
		s.respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, hr.ErrInvalidInput):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, hr.ErrInvalidCredentials):
		s.respondError(w, http.StatusUnauthorized, err.Error())
	default:
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// respondJSON sends a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}

// respondError sends an error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("%s %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}
