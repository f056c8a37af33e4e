// Package export writes the duty-calculation history to files a broker
// can hand off: a spreadsheet with one row per entry, or a paginated
// PDF listing every field as "key: value" lines.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/tradedesk/htsagent/internal/models"
)

var dutyColumns = []string{
	"HTS Code",
	"Product Cost",
	"Freight",
	"Insurance",
	"Duty Cost",
	"Total Landed Cost",
}

func dutyValues(e models.DutyEntry) []interface{} {
	return []interface{}{
		e.HTSCode,
		e.ProductCost,
		e.Freight,
		e.Insurance,
		e.DutyCost,
		e.TotalLandedCost,
	}
}

// ToExcel writes entries to an xlsx workbook at path, header row first.
func ToExcel(entries []models.DutyEntry, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(dutyColumns))
	for i, name := range dutyColumns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, entry := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := dutyValues(entry)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// ToPDF writes entries to a PDF at path, one "key: value" line per
// field. Page breaks are automatic.
func ToPDF(entries []models.DutyEntry, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	for _, entry := range entries {
		values := dutyValues(entry)
		for i, name := range dutyColumns {
			pdf.CellFormat(190, 10, fmt.Sprintf("%s: %v", name, values[i]), "", 1, "", false, 0, "")
		}
		pdf.Ln(4)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("save pdf: %w", err)
	}
	return nil
}
