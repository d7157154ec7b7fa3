package textscan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/file-extractor/internal/models"
)

func TestReconstructCommaSeparated(t *testing.T) {
	text := "A,B,C\n1,2,3\n4,5,6"

	tables := Reconstruct(text)
	require.Len(t, tables, 1)

	table := tables[0]
	assert.Equal(t, models.TextExtractionPage, table.Page)
	assert.Equal(t, 1, table.Index)
	assert.Equal(t, []string{"A", "B", "C"}, table.Headers)
	require.Len(t, table.Data, 2)
	assert.Equal(t, models.Record{"A": "1", "B": "2", "C": "3"}, table.Data[0])
	assert.Equal(t, models.Record{"A": "4", "B": "5", "C": "6"}, table.Data[1])
}

func TestReconstructProseYieldsNothing(t *testing.T) {
	text := strings.Join([]string{
		"This is the first sentence of a paragraph.",
		"It continues with more plain prose text.",
		"Nothing here resembles a delimited table.",
	}, "\n")

	assert.Empty(t, Reconstruct(text))
}

func TestReconstructTooFewCandidates(t *testing.T) {
	assert.Empty(t, Reconstruct("A,B,C\n1,2,3"))
	assert.Empty(t, Reconstruct(""))
}

func TestReconstructPipeSeparator(t *testing.T) {
	text := "Name | City | Score\nAlice | Rome | 10\nBob | Milan | 7\nCara | Turin | 9"

	tables := Reconstruct(text)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"Name", "City", "Score"}, tables[0].Headers)
	assert.Len(t, tables[0].Data, 3)
	assert.Equal(t, "Milan", tables[0].Data[1]["City"])
}

func TestReconstructDropsShortRows(t *testing.T) {
	// The second data line has fewer fields than the header count and must
	// be dropped entirely, not padded.
	text := "A;B;C;D\n1;2;3;4\n5;6;7\n8;9;10;11"

	tables := Reconstruct(text)
	require.Len(t, tables, 1)
	require.Len(t, tables[0].Data, 2)
	assert.Equal(t, "1", tables[0].Data[0]["A"])
	assert.Equal(t, "8", tables[0].Data[1]["A"])
}

func TestReconstructIgnoresExtraFields(t *testing.T) {
	text := "A,B,C\n1,2,3,4\n5,6,7,8"

	tables := Reconstruct(text)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"A", "B", "C"}, tables[0].Headers)
	assert.Equal(t, models.Record{"A": "1", "B": "2", "C": "3"}, tables[0].Data[0])
}

func TestReconstructSynthesizesBlankHeaders(t *testing.T) {
	text := "A,,C\n1,2,3\n4,5,6"

	tables := Reconstruct(text)
	require.Len(t, tables, 1)
	assert.Equal(t, []string{"A", "Col_2", "C"}, tables[0].Headers)
}

func TestBestSeparatorPrefersHighestFieldCount(t *testing.T) {
	// Commas dominate: each line splits into 3 comma fields but at most 2
	// semicolon fields.
	lines := []string{"a,b,c;x", "d,e,f;y", "g,h,i;z"}
	assert.Equal(t, ",", bestSeparator(lines))
}

func TestBestSeparatorRequiresMinimumAverage(t *testing.T) {
	lines := []string{"one two three", "four five six", "seven eight nine"}
	assert.Equal(t, "", bestSeparator(lines))
}

func TestCandidateLinesClassification(t *testing.T) {
	text := strings.Join([]string{
		"plain short line.",             // prose, trailing period
		"a,b,c",                         // two delimiters
		"alpha beta gamma",              // three tokens, no period
		"",                              // blank
		"word",                          // single token
		"ends with period one two.",     // period suffix
	}, "\n")

	got := candidateLines(text)
	assert.Equal(t, []string{"a,b,c", "alpha beta gamma"}, got)
}
