package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Students"

// XLSXExporter renders Dataset records into an Office Open XML workbook.
type XLSXExporter struct{}

// NewXLSXExporter builds an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render produces a single-sheet workbook with a header row followed by one
// row per dataset record.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	index, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	for col, header := range data.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("resolve header cell: %w", err)
		}
		if err := f.SetCellValue(xlsxSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("write header cell: %w", err)
		}
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, fmt.Errorf("resolve column name: %w", err)
		}
		if err := f.SetColWidth(xlsxSheetName, colName, colName, 20); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	for i, row := range data.Rows {
		for col, header := range data.Headers {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("resolve data cell: %w", err)
			}
			if err := f.SetCellValue(xlsxSheetName, cell, row[header]); err != nil {
				return nil, fmt.Errorf("write data cell: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
