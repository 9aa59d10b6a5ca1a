package importer

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/talentoplus/talentoplus/internal/models"
	"github.com/talentoplus/talentoplus/internal/store"
	"github.com/xuri/excelize/v2"
)

// headerScanLimit caps how many populated rows are inspected while looking
// for the header row; real-world files often carry title banners above it.
const headerScanLimit = 10

// emailSynonyms identifies the header row: any cell matching one of these
// marks its row as the header.
var emailSynonyms = []string{"email", "correo", "mail"}

// columnRule maps header-cell keywords to a logical field. Rules are
// evaluated in order and the first match wins, so more specific fields
// must come before fields with overlapping keywords.
type columnRule struct {
	field    string
	keywords []string
}

var columnRules = []columnRule{
	{"FirstName", []string{"nombre", "nombres", "first name"}},
	{"LastName", []string{"apellido", "apellidos", "last name"}},
	{"DocumentType", []string{"tipo", "doc type"}},
	{"DocumentNumber", []string{"número", "numero", "num", "cédula", "cedula", "documento", "document number"}},
	{"Email", []string{"email", "correo", "mail"}},
	{"Department", []string{"departamento", "department", "área", "area"}},
	{"JobPosition", []string{"cargo", "puesto", "job", "rol", "position"}},
	{"Salary", []string{"salario", "sueldo", "salary"}},
	{"HireDate", []string{"ingreso", "inicio", "hire"}},
	{"PhoneNumber", []string{"teléfono", "telefono", "celular", "phone"}},
}

// Importer loads employees from uploaded spreadsheets, creating missing
// departments and job positions on the fly
type Importer struct {
	store store.Store
	rng   *rand.Rand
	now   func() time.Time
}

// New creates an importer with ambient randomness and clock
func New(st store.Store) *Importer {
	return &Importer{
		store: st,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

type importState struct {
	departments []models.Department
	positions   []models.JobPosition
}

// Import reads one worksheet from the stream and persists its employee rows.
// Failures are reported through the result, never as a returned error: a bad
// row fails alone and the batch continues.
func (imp *Importer) Import(r io.Reader) *models.ImportResult {
	result := &models.ImportResult{Errors: []string{}}

	f, err := excelize.OpenReader(r)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Error crítico leyendo el archivo: %v", err))
		return result
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Error crítico leyendo el archivo: %v", err))
		return result
	}

	headerIdx, ok := findHeaderRow(rows)
	if !ok {
		result.Errors = append(result.Errors, "El archivo está vacío.")
		return result
	}

	columns := mapColumns(rows[headerIdx])
	if _, ok := columns["Email"]; !ok {
		result.Errors = append(result.Errors, "No se encontró una columna de 'Email' o 'Correo' en la cabecera.")
		return result
	}

	state := &importState{}
	if state.departments, err = imp.store.GetAllDepartments(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Error crítico de base de datos: %v", err))
		return result
	}
	if state.positions, err = imp.store.GetAllJobPositions(); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Error crítico de base de datos: %v", err))
		return result
	}

	for i := headerIdx + 1; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		rowNumber := i + 1
		result.TotalProcessed++

		if err := imp.importRow(rows[i], columns, state, result, rowNumber); err != nil {
			// Discard staged writes so the failure cannot poison later rows
			if clearErr := imp.store.ClearPendingChanges(); clearErr != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Error crítico de base de datos: %v", clearErr))
				return result
			}
			result.FailedImports++
			result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: Error - %v", rowNumber, err))
		}
	}

	return result
}

// importRow validates and persists a single data row. Validation failures are
// recorded on the result directly; unexpected errors are returned so the
// caller can isolate them.
func (imp *Importer) importRow(row []string, columns map[string]int, state *importState, result *models.ImportResult, rowNumber int) error {
	getVal := func(field string) string {
		idx, ok := columns[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	email := getVal("Email")
	docNumber := getVal("DocumentNumber")

	if email == "" {
		result.FailedImports++
		result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: Email vacío.", rowNumber))
		return nil
	}

	if docNumber != "" {
		exists, err := imp.store.DocumentNumberExists(docNumber, 0)
		if err != nil {
			return err
		}
		if exists {
			result.FailedImports++
			result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: Documento %s ya existe.", rowNumber, docNumber))
			return nil
		}
	}

	exists, err := imp.store.EmailExists(email, 0)
	if err != nil {
		return err
	}
	if exists {
		result.FailedImports++
		result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: Email %s ya existe.", rowNumber, email))
		return nil
	}

	department, err := imp.resolveDepartment(getVal("Department"), state)
	if err != nil {
		return err
	}

	position, err := imp.resolveJobPosition(getVal("JobPosition"), department.ID, state)
	if err != nil {
		return err
	}

	employee := models.Employee{
		DocumentType:   defaultIfEmpty(getVal("DocumentType"), "CC"),
		DocumentNumber: docNumber,
		FirstName:      defaultIfEmpty(getVal("FirstName"), "Sin Nombre"),
		LastName:       defaultIfEmpty(getVal("LastName"), "Sin Apellido"),
		PersonalEmail:  email,
		DepartmentID:   department.ID,
		JobPositionID:  position.ID,
		Salary:         parseSalary(getVal("Salary")),
		HireDate:       imp.parseDate(getVal("HireDate")),
		PhoneNumber:    defaultIfEmpty(getVal("PhoneNumber"), "0000000000"),
		Country:        "Colombia",
		Status:         models.StatusActivo,
		IsActive:       true,
		// No birth date column is read; a placeholder keeps age math sane
		DateOfBirth: imp.now().AddDate(-20, 0, 0),
	}
	if employee.DocumentNumber == "" {
		employee.DocumentNumber = "SIN-DOC-" + fmt.Sprintf("%08x", imp.rng.Uint32())
	}

	if err := imp.store.AddEmployee(&employee); err != nil {
		return err
	}
	if err := imp.store.SaveChanges(); err != nil {
		return err
	}

	result.SuccessfulImports++
	return nil
}

// resolveDepartment finds a department by case-insensitive name, creating it
// with a generated code when absent
func (imp *Importer) resolveDepartment(name string, state *importState) (*models.Department, error) {
	if strings.TrimSpace(name) == "" {
		name = "General"
	}

	for i := range state.departments {
		if strings.EqualFold(state.departments[i].Name, name) {
			return &state.departments[i], nil
		}
	}

	department := models.Department{
		Name:        name,
		Code:        imp.generateDepartmentCode(name),
		Description: "Creado automáticamente por importación",
		IsActive:    true,
	}
	if err := imp.store.AddDepartment(&department); err != nil {
		return nil, err
	}
	if err := imp.store.SaveChanges(); err != nil {
		return nil, err
	}

	refreshed, err := imp.store.GetAllDepartments()
	if err != nil {
		return nil, err
	}
	state.departments = refreshed
	return &department, nil
}

// resolveJobPosition finds a position by case-insensitive title within the
// department, creating a zero-band one when absent
func (imp *Importer) resolveJobPosition(title string, departmentID int, state *importState) (*models.JobPosition, error) {
	if strings.TrimSpace(title) == "" {
		title = "Empleado General"
	}

	for i := range state.positions {
		if state.positions[i].DepartmentID == departmentID && strings.EqualFold(state.positions[i].Title, title) {
			return &state.positions[i], nil
		}
	}

	position := models.JobPosition{
		Title:        title,
		Description:  "Creado automáticamente por importación",
		DepartmentID: departmentID,
		IsActive:     true,
	}
	if err := imp.store.AddJobPosition(&position); err != nil {
		return nil, err
	}
	if err := imp.store.SaveChanges(); err != nil {
		return nil, err
	}

	refreshed, err := imp.store.GetAllJobPositions()
	if err != nil {
		return nil, err
	}
	state.positions = refreshed
	return &position, nil
}

func (imp *Importer) generateDepartmentCode(name string) string {
	prefix := strings.ToUpper(name)
	if runes := []rune(prefix); len(runes) > 3 {
		prefix = string(runes[:3])
	}
	return fmt.Sprintf("%s-%d", prefix, 100+imp.rng.Intn(900))
}

// findHeaderRow scans up to headerScanLimit populated rows for an email
// synonym cell; the first populated row is the fallback header
func findHeaderRow(rows [][]string) (int, bool) {
	firstPopulated := -1
	populated := 0

	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if firstPopulated == -1 {
			firstPopulated = i
		}
		populated++

		for _, cell := range row {
			normalized := strings.ToLower(strings.TrimSpace(cell))
			for _, synonym := range emailSynonyms {
				if strings.Contains(normalized, synonym) {
					return i, true
				}
			}
		}

		if populated >= headerScanLimit {
			break
		}
	}

	if firstPopulated == -1 {
		return 0, false
	}
	return firstPopulated, true
}

// mapColumns assigns logical fields to column indexes using the rule table;
// the bare header "id" also counts as the document number
func mapColumns(headerRow []string) map[string]int {
	mapping := make(map[string]int)

	for idx, cell := range headerRow {
		header := strings.ToLower(strings.TrimSpace(cell))
		if header == "" {
			continue
		}

		if header == "id" {
			mapping["DocumentNumber"] = idx
			continue
		}

		for _, rule := range columnRules {
			if matchesAny(header, rule.keywords) {
				mapping[rule.field] = idx
				break
			}
		}
	}

	return mapping
}

func matchesAny(header string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(header, k) {
			return true
		}
	}
	return false
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func defaultIfEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// parseSalary parses a salary cell, tolerating currency symbols and
// thousands separators; anything unparseable becomes 0
func parseSalary(value string) float64 {
	if value == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(value, 64); err == nil {
		return v
	}

	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(value)
	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return v
	}
	return 0
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"01-02-2006",
	"2006-01-02 15:04:05",
}

// parseDate parses a hire-date cell; anything unparseable becomes today
func (imp *Importer) parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t
			}
		}
	}
	now := imp.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
