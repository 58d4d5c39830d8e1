package file_parser

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/stafflane/backoffice-backend/models"
)

const (
	ContentTypeCsv  = "text/csv"
	ContentTypeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Parse decodes an uploaded spreadsheet into a header row plus a rectangular
// table of raw string cells. Cells keep their literal display text: any type
// interpretation happens later, against the field mapping, never here.
func Parse(r io.Reader, contentType string) (headers []string, rows [][]string, err error) {
	switch normalizeContentType(contentType) {
	case ContentTypeCsv:
		headers, rows, err = parseCsv(r)
	case ContentTypeXlsx:
		headers, rows, err = parseXlsx(r)
	default:
		return nil, nil, errors.Wrapf(models.ErrUnsupportedFormat, "content type %s", contentType)
	}
	if err != nil {
		return nil, nil, err
	}

	if len(headers) == 0 {
		return nil, nil, models.ErrEmptyFile
	}

	return headers, normalizeRowWidth(rows, len(headers)), nil
}

func normalizeContentType(contentType string) string {
	// strip parameters like "; charset=utf-8"
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = contentType[:idx]
	}
	contentType = strings.TrimSpace(strings.ToLower(contentType))

	// common aliases browsers send for csv files
	switch contentType {
	case "application/csv", "text/plain":
		return ContentTypeCsv
	case "application/vnd.ms-excel":
		return ContentTypeXlsx
	}
	return contentType
}

func parseCsv(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	// accept ragged rows: width normalization happens against the header
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Wrap(models.ErrUnsupportedFormat, err.Error())
	}
	if len(records) == 0 {
		return nil, nil, models.ErrEmptyFile
	}

	return records[0], records[1:], nil
}

func parseXlsx(r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, errors.Wrap(models.ErrUnsupportedFormat, err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, models.ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to read sheet")
	}
	if len(rows) == 0 {
		return nil, nil, models.ErrEmptyFile
	}

	return rows[0], rows[1:], nil
}

// normalizeRowWidth pads short rows with empty strings and truncates long
// ones, so a single malformed row never blocks ingestion of the rest.
func normalizeRowWidth(rows [][]string, width int) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		switch {
		case len(row) == width:
			out[i] = row
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			out[i] = padded
		default:
			out[i] = row[:width]
		}
	}
	return out
}
