package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes the header row followed by one record per row.
func WriteCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row.values()); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSV parses a CSV import file. The first record must be a header
// containing all bulk columns, in any order. Rows that fail to parse are
// reported in errs with their line number; valid rows are still returned.
func ReadCSV(r io.Reader) (rows []Row, errs []string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	index, err := headerIndex(header)
	if err != nil {
		return nil, nil, err
	}

	line := 1
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		line++
		if readErr != nil {
			errs = append(errs, fmt.Sprintf("line %d: %v", line, readErr))
			continue
		}

		row, rowErr := rowFromCells(reorder(record, index))
		if rowErr != nil {
			errs = append(errs, fmt.Sprintf("line %d: %v", line, rowErr))
			continue
		}
		rows = append(rows, row)
	}

	return rows, errs, nil
}
