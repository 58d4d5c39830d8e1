package file_parser

const (
	DefaultPreviewRows = 5
	MaxPreviewRows     = 10
)

type Sample struct {
	Headers     []string
	PreviewRows [][]string
	TotalRows   int
}

// SampleColumns returns the headers unchanged and a bounded preview of the
// first rows for operator review. The authoritative rows are left untouched.
func SampleColumns(headers []string, rows [][]string, previewSize int) Sample {
	if previewSize <= 0 {
		previewSize = DefaultPreviewRows
	}
	if previewSize > MaxPreviewRows {
		previewSize = MaxPreviewRows
	}
	if previewSize > len(rows) {
		previewSize = len(rows)
	}

	return Sample{
		Headers:     headers,
		PreviewRows: rows[:previewSize],
		TotalRows:   len(rows),
	}
}
