package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/talentoplus/talentoplus/internal/models"
	"github.com/talentoplus/talentoplus/internal/store"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var currencyPrinter = message.NewPrinter(language.MustParse("es-CO"))

func formatCurrency(v float64) string {
	return currencyPrinter.Sprintf("$%v", number.Decimal(v, number.Scale(2)))
}

// Assistant answers natural-language questions about the employee data.
// When a Gemini client is present it interprets the question; the local rule
// engine is the default path and the fallback on any Gemini failure.
type Assistant struct {
	store store.Store
	llm   *GeminiClient
	now   func() time.Time
}

// New creates an assistant; llm may be nil
func New(st store.Store, llm *GeminiClient) *Assistant {
	return &Assistant{
		store: st,
		llm:   llm,
		now:   time.Now,
	}
}

// ProcessQuestion interprets the question and executes the resulting intent
// against the current employee snapshot
func (a *Assistant) ProcessQuestion(ctx context.Context, question string) (*models.AssistantResponse, error) {
	var intent *Intent

	if a.llm != nil {
		extracted, err := a.llm.ExtractIntent(ctx, question)
		if err != nil {
			log.Printf("Gemini interpretation failed, using local interpreter: %v", err)
		} else {
			intent = extracted
		}
	}

	if intent == nil {
		intent = InterpretQuestion(question)
	}

	return a.execute(intent)
}

// execute applies the intent's filters and operation over the employee set
func (a *Assistant) execute(intent *Intent) (*models.AssistantResponse, error) {
	response := &models.AssistantResponse{ChartType: "none", Success: true}

	employees, err := a.store.GetAllEmployees()
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}

	if intent.Filters.Department != "" {
		employees = filter(employees, func(e *models.Employee) bool {
			return containsFold(e.Department, intent.Filters.Department)
		})
	}

	// Store reads only cover active employees; flag the gap instead of
	// silently answering about data we do not have
	if intent.Filters.Status == "Retirado" {
		response.Answer = "Nota: Actualmente solo consulto empleados activos. "
	}

	if intent.Filters.Gender != "" {
		employees = filter(employees, func(e *models.Employee) bool {
			return e.Gender != "" && strings.EqualFold(e.Gender, intent.Filters.Gender)
		})
	}

	if intent.Filters.IsRecent {
		limit := a.now().AddDate(0, 0, -30)
		employees = filter(employees, func(e *models.Employee) bool {
			return !e.HireDate.Before(limit)
		})
	}

	if intent.Filters.IsBirthdayMonth {
		month := a.now().Month()
		employees = filter(employees, func(e *models.Employee) bool {
			return e.DateOfBirth.Month() == month
		})
	}

	if len(employees) == 0 {
		response.Answer += "No encontré ningún empleado que coincida con esos criterios."
		return response, nil
	}

	switch intent.QueryType {
	case "count":
		response.Answer += fmt.Sprintf("Hay un total de %d empleados encontrados.", len(employees))
		response.Data = len(employees)

	case "average":
		if intent.TargetField == "salary" {
			avg := sumSalaries(employees) / float64(len(employees))
			response.Answer += fmt.Sprintf("El salario promedio es de %s.", formatCurrency(avg))
			response.Data = avg
		}

	case "sum":
		if intent.TargetField == "salary" {
			total := sumSalaries(employees)
			response.Answer += fmt.Sprintf("El costo total de nómina mensual para estos empleados es %s.", formatCurrency(total))
			response.Data = total
		}

	case "max":
		if intent.TargetField == "salary" {
			top := extremeBySalary(employees, func(a, b float64) bool { return a > b })
			response.Answer += fmt.Sprintf("El empleado con mayor salario es %s (%s) con %s.",
				top.FullName(), top.JobPosition, formatCurrency(top.Salary))
			response.Data = top
		}

	case "min":
		if intent.TargetField == "salary" {
			bottom := extremeBySalary(employees, func(a, b float64) bool { return a < b })
			response.Answer += fmt.Sprintf("El empleado con menor salario es %s (%s) con %s.",
				bottom.FullName(), bottom.JobPosition, formatCurrency(bottom.Salary))
			response.Data = bottom
		}

	case "list":
		names := make([]string, 0, 10)
		for i := range employees {
			if i == 10 {
				break
			}
			names = append(names, employees[i].FirstName+" "+employees[i].LastName)
		}
		response.Answer += fmt.Sprintf("Encontré %d empleados. Aquí tienes los primeros: %s.",
			len(employees), strings.Join(names, ", "))
		response.Data = names

	default:
		response.Answer = "Entendí la pregunta, pero no supe qué operación matemática realizar."
	}

	return response, nil
}

func filter(employees []models.Employee, keep func(*models.Employee) bool) []models.Employee {
	out := employees[:0:0]
	for i := range employees {
		if keep(&employees[i]) {
			out = append(out, employees[i])
		}
	}
	return out
}

func sumSalaries(employees []models.Employee) float64 {
	var total float64
	for i := range employees {
		total += employees[i].Salary
	}
	return total
}

func extremeBySalary(employees []models.Employee, better func(a, b float64) bool) *models.Employee {
	best := &employees[0]
	for i := 1; i < len(employees); i++ {
		if better(employees[i].Salary, best.Salary) {
			best = &employees[i]
		}
	}
	return best
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
