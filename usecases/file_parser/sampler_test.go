package file_parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleColumns(t *testing.T) {
	headers := []string{"email", "name"}
	rows := make([][]string, 42)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("user%d@acme.com", i), fmt.Sprintf("User %d", i)}
	}

	sample := SampleColumns(headers, rows, 0)
	assert.Equal(t, headers, sample.Headers)
	assert.Len(t, sample.PreviewRows, DefaultPreviewRows)
	assert.Equal(t, 42, sample.TotalRows)

	sample = SampleColumns(headers, rows, 100)
	assert.Len(t, sample.PreviewRows, MaxPreviewRows)

	sample = SampleColumns(headers, rows[:3], 5)
	assert.Len(t, sample.PreviewRows, 3)
	assert.Equal(t, 3, sample.TotalRows)
}
