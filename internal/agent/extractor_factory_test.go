package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/file-extractor/internal/models"
	"github.com/feichai0017/file-extractor/pkg/logger"
)

func TestClassifyByExtension(t *testing.T) {
	tests := []struct {
		filename string
		hint     string
		want     models.FileType
	}{
		{"report.xlsx", "", models.Spreadsheet},
		{"report.XLS", "", models.Spreadsheet},
		{"scan.pdf", "", models.PDF},
		{"scan.PDF", "", models.PDF},
		{"data.bin", "xlsx", models.Spreadsheet},
		{"data.bin", "excel", models.Spreadsheet},
		{"", "pdf", models.PDF},
		{"report.xlsx", "pdf", models.PDF}, // hint wins over extension
	}

	for _, tt := range tests {
		got, err := Classify(tt.filename, tt.hint)
		require.NoError(t, err, "filename=%q hint=%q", tt.filename, tt.hint)
		assert.Equal(t, tt.want, got)
	}
}

func TestClassifyUnsupported(t *testing.T) {
	for _, tt := range []struct{ filename, hint string }{
		{"notes.txt", ""},
		{"archive.zip", "archive"},
		{"", ""},
		{"noextension", ""},
	} {
		_, err := Classify(tt.filename, tt.hint)
		require.ErrorIs(t, err, models.ErrUnsupportedFormat, "filename=%q hint=%q", tt.filename, tt.hint)
	}
}

func TestFactoryBuildsChainPerFormat(t *testing.T) {
	f := NewExtractorFactory(logger.NewTestLogger())

	for _, fileType := range []models.FileType{models.Spreadsheet, models.PDF} {
		chain, err := f.GetChain(fileType)
		require.NoError(t, err)
		assert.NotNil(t, chain)
	}

	_, err := f.GetChain(models.FileType("word"))
	assert.Error(t, err)
}
