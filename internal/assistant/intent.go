package assistant

import "strings"

// Intent is the structured query extracted from a free-text question
type Intent struct {
	QueryType   string  `json:"query_type"` // count, list, average, sum, max, min
	Entity      string  `json:"entity"`
	TargetField string  `json:"target_field"`
	Explanation string  `json:"explanation"`
	Filters     Filters `json:"filters"`
}

// Filters narrow the employee set before the operation runs. They are
// independent and compose.
type Filters struct {
	Department      string `json:"department,omitempty"`
	JobPosition     string `json:"job_position,omitempty"`
	Status          string `json:"status,omitempty"`
	Name            string `json:"name,omitempty"`
	Gender          string `json:"gender,omitempty"`
	IsRecent        bool   `json:"is_recent,omitempty"`
	IsBirthdayMonth bool   `json:"is_birthday_month,omitempty"`
}

// intentRule maps question keywords to an operation; rules are evaluated in
// order and the first match wins
type intentRule struct {
	keywords    []string
	queryType   string
	targetField string
	explanation string
}

var intentRules = []intentRule{
	{[]string{"mayor salario", "gana mas", "gana más", "sueldo mas alto", "sueldo más alto", "mejor pagado"}, "max", "salary", "Buscar salario más alto"},
	{[]string{"menor salario", "gana menos", "sueldo mas bajo", "sueldo más bajo", "peor pagado"}, "min", "salary", "Buscar salario más bajo"},
	{[]string{"promedio", "media"}, "average", "salary", "Calcular promedio de salario"},
	{[]string{"suma", "total salario", "costo", "nomina", "nómina"}, "sum", "salary", "Sumar salarios"},
	{[]string{"cuantos", "cuántos", "cuantas", "cuántas", "cantidad", "numero", "número", "total"}, "count", "", "Contar empleados"},
	{[]string{"lista", "quienes", "quiénes", "mostrar", "cuales", "cuáles"}, "list", "", "Listar empleados"},
}

type statusRule struct {
	keywords []string
	status   string
}

// Later rules override earlier ones, so "inactivo" wins over its "activo"
// substring match.
var statusRules = []statusRule{
	{[]string{"activo"}, "Activo"},
	{[]string{"inactivo", "retirado"}, "Retirado"},
}

type genderRule struct {
	keywords []string
	gender   string
}

var genderRules = []genderRule{
	{[]string{"mujer", "femenino", "chicas"}, "Femenino"},
	{[]string{"hombre", "masculino", "chicos"}, "Masculino"},
}

var recentKeywords = []string{"nuevo", "reciente", "ingresaron", "ultimo mes", "último mes"}

var birthdayKeywords = []string{"cumple", "cumpleaños", "santo"}

type departmentRule struct {
	keywords   []string
	department string
}

// Department keywords match on whole words: short aliases like "ti" would
// otherwise fire inside unrelated words ("activos").
var departmentRules = []departmentRule{
	{[]string{"sistemas", "ti", "tecnologia", "tecnología", "it"}, "Tecnología"},
	{[]string{"rrhh", "humanos"}, "Recursos Humanos"},
	{[]string{"ventas", "comercial"}, "Ventas"},
	{[]string{"marketing", "mercadeo"}, "Marketing"},
	{[]string{"logistica", "logística"}, "Logística"},
	{[]string{"contabilidad", "financiera", "finanzas"}, "Finanzas"},
}

// InterpretQuestion classifies a question into an intent using the local
// rule tables. Unrecognized questions default to counting employees; the
// explanation marks the default so callers can tell.
func InterpretQuestion(question string) *Intent {
	q := strings.ToLower(question)
	intent := &Intent{Entity: "employee"}

	for _, rule := range intentRules {
		if containsAny(q, rule.keywords) {
			intent.QueryType = rule.queryType
			intent.TargetField = rule.targetField
			intent.Explanation = rule.explanation
			break
		}
	}
	if intent.QueryType == "" {
		intent.QueryType = "count"
		intent.Explanation = "Contar empleados (por defecto)"
	}

	for _, rule := range statusRules {
		if containsAny(q, rule.keywords) {
			intent.Filters.Status = rule.status
		}
	}

	for _, rule := range genderRules {
		if containsAny(q, rule.keywords) {
			intent.Filters.Gender = rule.gender
		}
	}

	if containsAny(q, recentKeywords) {
		intent.Filters.IsRecent = true
	}
	if containsAny(q, birthdayKeywords) {
		intent.Filters.IsBirthdayMonth = true
	}

	words := tokenize(q)
	for _, rule := range departmentRules {
		if containsAnyWord(words, q, rule.keywords) {
			intent.Filters.Department = rule.department
		}
	}

	return intent
}

func containsAny(q string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

// containsAnyWord matches single-word keywords against tokens and multi-word
// keywords as substrings
func containsAnyWord(words map[string]bool, q string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(k, " ") {
			if strings.Contains(q, k) {
				return true
			}
		} else if words[k] {
			return true
		}
	}
	return false
}

func tokenize(q string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(q, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r < 0x80
	}) {
		words[w] = true
	}
	return words
}
