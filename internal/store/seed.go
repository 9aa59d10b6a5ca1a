package store

import (
	"fmt"
	"log"

	"github.com/talentoplus/talentoplus/internal/models"
)

var seedDepartments = []models.Department{
	{Name: "Recursos Humanos", Code: "RRHH", Description: "Gestión del talento humano"},
	{Name: "Tecnología", Code: "TI", Description: "Desarrollo y soporte TI"},
	{Name: "Marketing", Code: "MKT", Description: "Mercadeo y Publicidad"},
	{Name: "Ventas", Code: "VEN", Description: "Equipo comercial"},
	{Name: "Logística", Code: "LOG", Description: "Cadena de suministro y distribución"},
	{Name: "Finanzas", Code: "FIN", Description: "Contabilidad y finanzas"},
	{Name: "Operaciones", Code: "OPS", Description: "Operaciones generales"},
}

var seedPositions = map[string][]string{
	"Recursos Humanos": {"Analista de Selección", "Gerente de RRHH", "Especialista en Nómina", "Psicólogo Organizacional"},
	"Tecnología":       {"Desarrollador Backend", "Desarrollador Frontend", "Arquitecto de Software", "Soporte Técnico", "DevOps Engineer"},
	"Marketing":        {"Community Manager", "Diseñador Gráfico", "Analista de Marketing", "Director de Marketing"},
	"Ventas":           {"Ejecutivo de Ventas", "Director Comercial", "Asesor Comercial", "Key Account Manager"},
	"Logística":        {"Coordinador de Logística", "Jefe de Bodega", "Auxiliar de Despacho", "Conductor"},
	"Finanzas":         {"Contador", "Analista Financiero", "Tesorero", "Director Financiero"},
	"Operaciones":      {"Gerente de Operaciones", "Supervisor de Planta", "Operario", "Ingeniero de Procesos"},
}

// Seed inserts the initial department and position catalog. It is a no-op
// when departments already exist.
func Seed(s Store) error {
	existing, err := s.GetAllDepartments()
	if err != nil {
		return fmt.Errorf("failed to check existing departments: %w", err)
	}
	if len(existing) > 0 {
		log.Printf("Departments already present, skipping seed")
		return nil
	}

	for i := range seedDepartments {
		dept := seedDepartments[i]
		dept.IsActive = true
		if err := s.AddDepartment(&dept); err != nil {
			return fmt.Errorf("failed to seed department %s: %w", dept.Name, err)
		}

		for _, title := range seedPositions[dept.Name] {
			position := models.JobPosition{
				Title:        title,
				Description:  fmt.Sprintf("Cargo de %s en el área de %s", title, dept.Name),
				DepartmentID: dept.ID,
				IsActive:     true,
				MinSalary:    1500000,
				MaxSalary:    8000000,
			}
			if err := s.AddJobPosition(&position); err != nil {
				return fmt.Errorf("failed to seed position %s: %w", title, err)
			}
		}
	}

	if err := s.SaveChanges(); err != nil {
		return fmt.Errorf("failed to save seed data: %w", err)
	}

	log.Printf("Seeded %d departments with their positions", len(seedDepartments))
	return nil
}
