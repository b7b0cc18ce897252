package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// maxColumnWidth caps autofit so one long comment does not blow up the
// whole sheet.
const maxColumnWidth = 50

// Sheet is a simple tabular worksheet definition.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Build renders the sheets into a workbook. Every sheet gets a bold
// header row on a grey fill and columns sized to their content.
func Build(sheets ...Sheet) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return nil, fmt.Errorf("renaming sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.Name); err != nil {
				return nil, fmt.Errorf("adding sheet: %w", err)
			}
		}
		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	widths := make([]int, len(sheet.Headers))

	for col, header := range sheet.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet.Name, cell, header); err != nil {
			return err
		}
		widths[col] = len(header)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	for row, values := range sheet.Rows {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, value); err != nil {
				return err
			}
			if col < len(widths) {
				if w := len(fmt.Sprint(value)); w > widths[col] {
					widths[col] = w
				}
			}
		}
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		w := width + 2
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if err := f.SetColWidth(sheet.Name, name, name, float64(w)); err != nil {
			return err
		}
	}
	return nil
}
