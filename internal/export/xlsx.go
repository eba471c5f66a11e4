package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet is one named table of a workbook.
type Sheet struct {
	Name  string
	Table Table
}

// WriteWorkbook writes one worksheet per sheet, in order. Every sheet gets
// its header row even when it has no data rows.
func WriteWorkbook(w io.Writer, sheets []Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			// Reuse the default sheet so no empty Sheet1 is left behind.
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	header := make([]any, len(sheet.Table.Header))
	for i, h := range sheet.Table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet.Name, err)
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %q: %w", sheet.Name, err)
	}

	if err := f.SetPanes(sheet.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header of %q: %w", sheet.Name, err)
	}

	for i, row := range sheet.Table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		row := row
		if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+2, sheet.Name, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("failed to convert column number: %w", err)
	}
	if err := f.SetColWidth(sheet.Name, "A", lastCol, 16); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return nil
}
