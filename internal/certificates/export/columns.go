// Package export implements the bulk spreadsheet formats for certificate
// records: CSV and Excel, one row per record.
package export

import (
	"fmt"
	"strings"
	"time"
)

// Columns is the exact bulk format column set, shared by import and export.
var Columns = []string{
	"serial_no",
	"name",
	"course_name",
	"city",
	"country",
	"certificate_no",
	"date_of_certificate",
	"photo",
	"website",
}

// DateFormat is how dates are written and preferred on read.
const DateFormat = "2006-01-02"

// dateLayouts are the accepted input layouts, most specific first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// Row is one spreadsheet row of certificate data.
type Row struct {
	SerialNo          string
	Name              string
	CourseName        string
	City              string
	Country           string
	CertificateNo     string
	DateOfCertificate time.Time
	Photo             string
	Website           string
}

// values returns the row cells in Columns order.
func (r Row) values() []string {
	date := ""
	if !r.DateOfCertificate.IsZero() {
		date = r.DateOfCertificate.Format(DateFormat)
	}
	return []string{
		r.SerialNo,
		r.Name,
		r.CourseName,
		r.City,
		r.Country,
		r.CertificateNo,
		date,
		r.Photo,
		r.Website,
	}
}

// rowFromCells maps one record of cells, already aligned to Columns order,
// into a Row.
func rowFromCells(cells []string) (Row, error) {
	get := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	row := Row{
		SerialNo:      get(0),
		Name:          get(1),
		CourseName:    get(2),
		City:          get(3),
		Country:       get(4),
		CertificateNo: get(5),
		Photo:         get(7),
		Website:       get(8),
	}

	dateCell := get(6)
	if dateCell == "" {
		return row, fmt.Errorf("date_of_certificate is required")
	}
	date, err := parseDate(dateCell)
	if err != nil {
		return row, err
	}
	row.DateOfCertificate = date

	if row.CertificateNo == "" {
		return row, fmt.Errorf("certificate_no is required")
	}
	return row, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// headerIndex maps a header record to column positions, tolerating reordered
// columns. Returns an error when a required column is missing.
func headerIndex(header []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.ToLower(strings.TrimSpace(name))] = i
	}

	index := make([]int, len(Columns))
	for i, col := range Columns {
		j, ok := pos[col]
		if !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
		index[i] = j
	}
	return index, nil
}

// reorder aligns a raw record to Columns order using a header index.
func reorder(record []string, index []int) []string {
	cells := make([]string, len(index))
	for i, j := range index {
		if j < len(record) {
			cells[i] = record[j]
		}
	}
	return cells
}
