package resume

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/talentoplus/talentoplus/internal/models"
)

// Generate renders an employee resume as an A4 PDF
func Generate(e *models.Employee) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Generado por TalentoPlus - %d", pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	composeHeader(pdf, tr, e)
	composeContent(pdf, tr, e)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render resume: %w", err)
	}
	return buf.Bytes(), nil
}

func composeHeader(pdf *fpdf.Fpdf, tr func(string) string, e *models.Employee) {
	top := pdf.GetY()

	// Initial block on the right
	pdf.SetFillColor(238, 238, 238)
	pdf.Rect(155, top, 35, 35, "F")
	pdf.SetFont("Arial", "B", 36)
	pdf.SetTextColor(97, 97, 97)
	initial := "?"
	if name := e.FullName(); name != "" {
		initial = string([]rune(name)[0])
	}
	pdf.SetXY(155, top+8)
	pdf.CellFormat(35, 18, tr(initial), "", 0, "C", false, 0, "")

	pdf.SetXY(20, top)
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(33, 150, 243)
	pdf.CellFormat(130, 10, tr(e.FullName()), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 14)
	pdf.SetTextColor(97, 97, 97)
	pdf.CellFormat(130, 8, tr(e.JobPosition), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(117, 117, 117)
	pdf.CellFormat(130, 7, tr(e.Department), "", 1, "L", false, 0, "")

	pdf.SetY(top + 42)
}

func composeContent(pdf *fpdf.Fpdf, tr func(string) string, e *models.Employee) {
	section(pdf, tr, "Información Personal")
	row(pdf, tr, "Documento:", fmt.Sprintf("%s %s", e.DocumentType, e.DocumentNumber))
	row(pdf, tr, "Fecha Nacimiento:", fmt.Sprintf("%s (%d años)", e.DateOfBirth.Format("02/01/2006"), e.Age()))
	row(pdf, tr, "Género:", orNA(e.Gender))

	section(pdf, tr, "Contacto")
	row(pdf, tr, "Email Personal:", e.PersonalEmail)
	row(pdf, tr, "Email Corporativo:", orNA(e.CorporateEmail))
	row(pdf, tr, "Teléfono:", e.PhoneNumber)
	row(pdf, tr, "Dirección:", fmt.Sprintf("%s, %s, %s", orNA(e.Address), orNA(e.City), e.Country))

	section(pdf, tr, "Información Laboral")
	row(pdf, tr, "Fecha Ingreso:", e.HireDate.Format("02/01/2006"))
	row(pdf, tr, "Antigüedad:", fmt.Sprintf("%.1f años", e.YearsOfService()))
	row(pdf, tr, "Salario:", fmt.Sprintf("$%.0f", e.Salary))
	row(pdf, tr, "Estado:", e.Status.String())

	if e.ProfessionalProfile != "" {
		section(pdf, tr, "Perfil Profesional")
		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.MultiCell(0, 6, tr(e.ProfessionalProfile), "", "J", false)
	}
}

func section(pdf *fpdf.Fpdf, tr func(string) string, title string) {
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(33, 150, 243)
	pdf.CellFormat(0, 9, tr(title), "", 1, "L", false, 0, "")

	x, y := pdf.GetX(), pdf.GetY()
	pdf.SetDrawColor(224, 224, 224)
	pdf.Line(x, y, 190, y)
	pdf.Ln(3)
}

func row(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(97, 97, 97)
	pdf.CellFormat(45, 7, tr(label), "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
