package file_parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stafflane/backoffice-backend/models"
)

func TestParseCsv(t *testing.T) {
	input := "email,first_name,last_name\n" +
		"alice@acme.com,Alice,Martin\n" +
		"bob@acme.com,Bob,Diallo\n"

	headers, rows, err := Parse(strings.NewReader(input), "text/csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "first_name", "last_name"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"alice@acme.com", "Alice", "Martin"}, rows[0])
	assert.Equal(t, []string{"bob@acme.com", "Bob", "Diallo"}, rows[1])
}

func TestParseCsvContentTypeAliases(t *testing.T) {
	for _, contentType := range []string{
		"text/csv; charset=utf-8",
		"application/csv",
		"text/plain",
	} {
		_, _, err := Parse(strings.NewReader("a,b\n1,2\n"), contentType)
		assert.NoError(t, err, contentType)
	}
}

func TestParseCsvShortAndLongRows(t *testing.T) {
	input := "email,first_name,last_name\n" +
		"alice@acme.com,Alice\n" +
		"bob@acme.com,Bob,Diallo,EXTRA\n"

	headers, rows, err := Parse(strings.NewReader(input), "text/csv")
	require.NoError(t, err)
	require.Len(t, headers, 3)

	// short row padded, long row truncated to the header width
	assert.Equal(t, []string{"alice@acme.com", "Alice", ""}, rows[0])
	assert.Equal(t, []string{"bob@acme.com", "Bob", "Diallo"}, rows[1])
}

func TestParseCsvHeaderOnly(t *testing.T) {
	headers, rows, err := Parse(strings.NewReader("email,first_name\n"), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "first_name"}, headers)
	assert.Empty(t, rows)
}

func TestParseEmptyFile(t *testing.T) {
	_, _, err := Parse(strings.NewReader(""), "text/csv")
	assert.ErrorIs(t, err, models.ErrEmptyFile)
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, _, err := Parse(strings.NewReader("{}"), "application/json")
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
	assert.ErrorIs(t, err, models.BadParameterError)
}

func TestParseMalformedCsv(t *testing.T) {
	_, _, err := Parse(strings.NewReader("a,\"b\nno closing quote"), "text/csv")
	assert.ErrorIs(t, err, models.ErrUnsupportedFormat)
}

func TestParseXlsx(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"email", "first_name"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"alice@acme.com", "Alice"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"bob@acme.com", "Bob"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	headers, rows, err := Parse(&buf,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	require.NoError(t, err)

	assert.Equal(t, []string{"email", "first_name"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"alice@acme.com", "Alice"}, rows[0])
}

func TestParseXlsxGarbage(t *testing.T) {
	_, _, err := Parse(strings.NewReader("not a zip archive"),
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	assert.True(t, errors.Is(err, models.ErrUnsupportedFormat))
}
