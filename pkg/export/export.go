// Package export renders a record collection as rows, for terminals and spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/docsync/userdocs/pkg/models"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "Documents"

// Header is the column order of Row.
var Header = []string{
	"ID",
	"Company signed",
	"Company signatory",
	"Document",
	"Status",
	"Type",
	"Employee no.",
	"Employee signed",
	"Employee signatory",
}

var columnWidths = []float64{24, 14, 22, 28, 14, 16, 12, 14, 22}

// Row formats r in Header order. Dates are shown as calendar dates.
func Row(r models.Record) []string {
	return []string{
		r.ID,
		r.CompanySigDate.CalendarDate(),
		r.CompanySignatureName,
		r.DocumentName,
		r.DocumentStatus,
		r.DocumentType,
		r.EmployeeNumber,
		r.EmployeeSigDate.CalendarDate(),
		r.EmployeeSignatureName,
	}
}

// Rows formats every record.
func Rows(records []models.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row(r))
	}
	return rows
}

// WriteXLSX writes records as a single-sheet workbook to w.
func WriteXLSX(w io.Writer, records []models.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("remove default sheet: %w", err)
	}

	if err := setRow(f, 1, Header); err != nil {
		return err
	}
	for i, row := range Rows(records) {
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}

	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, row int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, value); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
