package importer

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

var templateHeaders = []string{
	"Nombre", "Apellido", "Tipo Documento", "Número Documento", "Email",
	"Departamento", "Cargo", "Salario", "Fecha Ingreso", "Teléfono",
}

var templateExample = []interface{}{
	"Ana", "García", "CC", "1012345678", "ana.garcia@example.com",
	"Tecnología", "Desarrollador Backend", 4500000, "2024-03-15", "3001234567",
}

// GenerateTemplate builds an empty import workbook whose headers match the
// importer's column synonyms, with one example row
func GenerateTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Empleados"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range templateHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for col, value := range templateExample {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, value)
	}

	f.SetColWidth(sheet, "A", "J", 20)
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write template: %w", err)
	}
	return buf.Bytes(), nil
}
