package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ErrNoSheets = errors.New("workbook needs at least one sheet")

// Sheet is one tab of a workbook. Rows are written below the header row in
// order; a nil cell is left blank.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// WriteWorkbook renders sheets into a single XLSX document on w.
func WriteWorkbook(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return ErrNoSheets
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	header := make([]interface{}, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet.Name, err)
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+1, sheet.Name, err)
		}
	}

	if len(sheet.Headers) > 0 {
		last, err := excelize.ColumnNumberToName(len(sheet.Headers))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet.Name, "A", last, 22); err != nil {
			return err
		}
	}
	return nil
}
