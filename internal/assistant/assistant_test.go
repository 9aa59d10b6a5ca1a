package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/talentoplus/talentoplus/internal/models"
)

// stubStore serves a fixed employee snapshot; the assistant only reads
type stubStore struct {
	employees []models.Employee
}

func (s *stubStore) GetAllEmployees() ([]models.Employee, error) { return s.employees, nil }

func (s *stubStore) GetAllDepartments() ([]models.Department, error)   { return nil, nil }
func (s *stubStore) GetAllJobPositions() ([]models.JobPosition, error) { return nil, nil }
func (s *stubStore) GetEmployeeByID(int) (*models.Employee, error)     { return nil, nil }
func (s *stubStore) GetEmployeeByEmail(string) (*models.Employee, error) {
	return nil, nil
}
func (s *stubStore) SearchEmployees(string) ([]models.Employee, error) { return nil, nil }
func (s *stubStore) DocumentNumberExists(string, int) (bool, error)    { return false, nil }
func (s *stubStore) EmailExists(string, int) (bool, error)             { return false, nil }
func (s *stubStore) AddEmployee(*models.Employee) error                { return nil }
func (s *stubStore) AddDepartment(*models.Department) error            { return nil }
func (s *stubStore) AddJobPosition(*models.JobPosition) error          { return nil }
func (s *stubStore) UpdateEmployee(*models.Employee) error             { return nil }
func (s *stubStore) DeleteAllEmployees() error                         { return nil }
func (s *stubStore) CountEmployeesByDepartment() (map[int]int, error)  { return nil, nil }
func (s *stubStore) CountEmployeesByStatus() (map[models.EmployeeStatus]int, error) {
	return nil, nil
}
func (s *stubStore) SaveChanges() error         { return nil }
func (s *stubStore) ClearPendingChanges() error { return nil }

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestAssistant(employees []models.Employee) *Assistant {
	a := New(&stubStore{employees: employees}, nil)
	a.now = func() time.Time { return testNow }
	return a
}

func sampleEmployees() []models.Employee {
	return []models.Employee{
		{
			FirstName: "Ana", LastName: "García", Gender: "Femenino",
			Department: "Tecnología", JobPosition: "Desarrolladora",
			Salary:      6000000,
			HireDate:    testNow.AddDate(0, 0, -10),
			DateOfBirth: time.Date(1995, 6, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			FirstName: "Luis", LastName: "Pérez", Gender: "Masculino",
			Department: "Ventas", JobPosition: "Vendedor",
			Salary:      2000000,
			HireDate:    testNow.AddDate(0, -6, 0),
			DateOfBirth: time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			FirstName: "Marta", LastName: "Ruiz", Gender: "Femenino",
			Department: "Tecnología", JobPosition: "Analista",
			Salary:      4000000,
			HireDate:    testNow.AddDate(-2, 0, 0),
			DateOfBirth: time.Date(1988, 11, 25, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestProcessQuestionCount(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "¿Cuántos empleados hay?")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	if !resp.Success {
		t.Errorf("expected success")
	}
	if resp.Data != 3 {
		t.Errorf("Data = %v, want 3", resp.Data)
	}
	if resp.Answer != "Hay un total de 3 empleados encontrados." {
		t.Errorf("Answer = %q", resp.Answer)
	}
}

func TestProcessQuestionCountWomen(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "¿cuántas mujeres trabajan aquí?")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	if resp.Data != 2 {
		t.Errorf("Data = %v, want 2", resp.Data)
	}
}

func TestProcessQuestionAverage(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "¿cuál es el salario promedio?")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	if resp.Data != 4000000.0 {
		t.Errorf("Data = %v, want 4000000", resp.Data)
	}
	if !strings.HasPrefix(resp.Answer, "El salario promedio es de ") {
		t.Errorf("Answer = %q", resp.Answer)
	}
}

func TestProcessQuestionSum(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "¿cuánto cuesta la nómina?")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	if resp.Data != 12000000.0 {
		t.Errorf("Data = %v, want 12000000", resp.Data)
	}
}

func TestProcessQuestionMax(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "¿quién tiene el mayor salario?")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	top, ok := resp.Data.(*models.Employee)
	if !ok {
		t.Fatalf("Data is %T, want *models.Employee", resp.Data)
	}
	if top.FirstName != "Ana" {
		t.Errorf("top earner = %s, want Ana", top.FirstName)
	}
	if !strings.Contains(resp.Answer, "Ana García") {
		t.Errorf("Answer = %q", resp.Answer)
	}
}

func TestProcessQuestionMin(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "¿quién gana menos?")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	bottom, ok := resp.Data.(*models.Employee)
	if !ok {
		t.Fatalf("Data is %T, want *models.Employee", resp.Data)
	}
	if bottom.FirstName != "Luis" {
		t.Errorf("lowest earner = %s, want Luis", bottom.FirstName)
	}
}

func TestProcessQuestionList(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "dame la lista de empleados")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	names, ok := resp.Data.([]string)
	if !ok {
		t.Fatalf("Data is %T, want []string", resp.Data)
	}
	if len(names) != 3 || names[0] != "Ana García" {
		t.Errorf("names = %v", names)
	}
}

func TestProcessQuestionListCapsAtTen(t *testing.T) {
	var employees []models.Employee
	for i := 0; i < 15; i++ {
		employees = append(employees, models.Employee{
			FirstName: "Empleado", LastName: strings.Repeat("X", i+1),
		})
	}
	a := newTestAssistant(employees)

	resp, err := a.ProcessQuestion(context.Background(), "lista de empleados")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	names := resp.Data.([]string)
	if len(names) != 10 {
		t.Errorf("expected 10 names, got %d", len(names))
	}
	if !strings.Contains(resp.Answer, "Encontré 15 empleados") {
		t.Errorf("Answer = %q", resp.Answer)
	}
}

func TestProcessQuestionDepartmentFilter(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "¿cuántos empleados hay en sistemas?")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	if resp.Data != 2 {
		t.Errorf("Data = %v, want 2", resp.Data)
	}
}

func TestProcessQuestionRecentFilter(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "¿cuántos ingresaron el último mes?")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	if resp.Data != 1 {
		t.Errorf("Data = %v, want 1 (only Ana joined within 30 days)", resp.Data)
	}
}

func TestProcessQuestionBirthdayFilter(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "¿quiénes cumplen años este mes?")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	names := resp.Data.([]string)
	if len(names) != 1 || names[0] != "Ana García" {
		t.Errorf("names = %v, want [Ana García]", names)
	}
}

func TestProcessQuestionNoMatches(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "¿cuántos empleados hay en logística?")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	if !resp.Success {
		t.Errorf("zero matches is still a successful answer")
	}
	if resp.Answer != "No encontré ningún empleado que coincida con esos criterios." {
		t.Errorf("Answer = %q", resp.Answer)
	}
	if resp.Data != nil {
		t.Errorf("Data = %v, want nil", resp.Data)
	}
}

func TestProcessQuestionRetiredNote(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "¿cuántos empleados retirados hay?")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	if !strings.HasPrefix(resp.Answer, "Nota: Actualmente solo consulto empleados activos. ") {
		t.Errorf("Answer = %q", resp.Answer)
	}
}

func TestProcessQuestionChartTypeDefault(t *testing.T) {
	a := newTestAssistant(sampleEmployees())

	resp, err := a.ProcessQuestion(context.Background(), "¿cuántos empleados hay?")
	if err != nil {
		t.Fatalf("ProcessQuestion: %v", err)
	}
	if resp.ChartType != "none" {
		t.Errorf("ChartType = %q, want none", resp.ChartType)
	}
}

func TestFormatCurrency(t *testing.T) {
	got := formatCurrency(1500000)
	// es-CO groups with dots and uses a decimal comma
	if !strings.HasPrefix(got, "$") || !strings.Contains(got, "1.500.000") {
		t.Errorf("formatCurrency(1500000) = %q", got)
	}
}
