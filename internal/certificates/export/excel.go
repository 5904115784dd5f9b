package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet used for certificate workbooks.
const SheetName = "Certificates"

// WriteExcel writes a styled workbook with the bulk column set and one row
// per record.
func WriteExcel(w io.Writer, rows []Row) error {
	file := excelize.NewFile()
	defer file.Close()

	file.SetSheetName("Sheet1", SheetName)

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(SheetName, cell, col)
		file.SetCellStyle(SheetName, cell, cell, headerStyle)
	}

	for rowIdx, row := range rows {
		for colIdx, val := range row.values() {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			file.SetCellValue(SheetName, cell, val)
		}
	}

	file.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return file.Write(w)
}

// ReadExcel parses an Excel import workbook. Rows are read from the first
// sheet; the first row must be a header containing all bulk columns.
func ReadExcel(r io.Reader) (rows []Row, errs []string, err error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	records, err := file.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("workbook has no header row")
	}

	index, err := headerIndex(records[0])
	if err != nil {
		return nil, nil, err
	}

	for i, record := range records[1:] {
		row, rowErr := rowFromCells(reorder(record, index))
		if rowErr != nil {
			errs = append(errs, fmt.Sprintf("row %d: %v", i+2, rowErr))
			continue
		}
		rows = append(rows, row)
	}

	return rows, errs, nil
}
