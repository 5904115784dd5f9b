package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []Row {
	return []Row{
		{
			SerialNo:          "SR-001",
			Name:              "Jane Doe",
			CourseName:        "Advanced Welding",
			City:              "Austin",
			Country:           "USA",
			CertificateNo:     "X-100",
			DateOfCertificate: time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC),
			Photo:             "photos/jane.png",
			Website:           "example.com",
		},
		{
			SerialNo:          "SR-002",
			Name:              "John Roe",
			CourseName:        "Pipe Fitting",
			City:              "Dallas",
			Country:           "USA",
			CertificateNo:     "X-101",
			DateOfCertificate: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			Website:           "example.com",
		},
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	rows, errs, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, rows, 2)
	assert.Equal(t, "X-100", rows[0].CertificateNo)
	assert.Equal(t, "photos/jane.png", rows[0].Photo)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), rows[1].DateOfCertificate)
}

func TestReadCSVToleratesReorderedColumns(t *testing.T) {
	in := strings.Join([]string{
		"certificate_no,serial_no,name,course_name,city,country,date_of_certificate,website,photo",
		"X-100,SR-001,Jane Doe,Welding,Austin,USA,2024-05-17,example.com,",
	}, "\n")

	rows, errs, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, rows, 1)
	assert.Equal(t, "X-100", rows[0].CertificateNo)
	assert.Equal(t, "SR-001", rows[0].SerialNo)
}

func TestReadCSVMissingColumnFails(t *testing.T) {
	in := "serial_no,name\nSR-001,Jane Doe\n"
	_, _, err := ReadCSV(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestReadCSVCollectsRowErrors(t *testing.T) {
	in := strings.Join([]string{
		"serial_no,name,course_name,city,country,certificate_no,date_of_certificate,photo,website",
		"SR-001,Jane Doe,Welding,Austin,USA,X-100,2024-05-17,,example.com",
		"SR-002,John Roe,Welding,Dallas,USA,X-101,not a date,,example.com",
		"SR-003,Ann Poe,Welding,Waco,USA,,2024-05-18,,example.com",
	}, "\n")

	rows, errs, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "X-100", rows[0].CertificateNo)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "line 3")
	assert.Contains(t, errs[1], "certificate_no is required")
}

func TestReadCSVAcceptsAlternateDateLayouts(t *testing.T) {
	in := strings.Join([]string{
		"serial_no,name,course_name,city,country,certificate_no,date_of_certificate,photo,website",
		"SR-001,Jane Doe,Welding,Austin,USA,X-100,05/17/2024,,example.com",
		"SR-002,John Roe,Welding,Dallas,USA,X-101,2024-05-17 00:00:00,,example.com",
	}, "\n")

	rows, errs, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Empty(t, errs)
	require.Len(t, rows, 2)
	want := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, rows[0].DateOfCertificate)
	assert.Equal(t, want, rows[1].DateOfCertificate)
}
