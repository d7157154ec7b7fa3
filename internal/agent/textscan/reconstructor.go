package textscan

import (
	"strings"

	"github.com/feichai0017/file-extractor/internal/agent/document"
	"github.com/feichai0017/file-extractor/internal/models"
)

// Separator candidates, in preference order for ties.
var separators = []string{"\t", "|", ",", ";"}

const (
	// minCandidates is the smallest number of table-ish lines worth trying.
	minCandidates = 3
	// sampleLines bounds the separator scoring sample.
	sampleLines = 5
	// minAvgFields is the lowest average field count a separator may score.
	minAvgFields = 2.0
)

// Reconstruct attempts to recover a single table from plain text using
// delimiter and whitespace heuristics. It returns no tables when the text
// does not look tabular; rows with fewer fields than the header count are
// dropped rather than padded, reflecting the lower confidence of
// heuristically recovered lines.
func Reconstruct(text string) []models.Table {
	candidates := candidateLines(text)
	if len(candidates) < minCandidates {
		return nil
	}

	sep := bestSeparator(candidates)
	if sep == "" {
		return nil
	}

	headers := document.SynthesizeHeaders(splitTrimmed(candidates[0], sep))
	data := make([]models.Record, 0, len(candidates)-1)
	for _, line := range candidates[1:] {
		fields := splitTrimmed(line, sep)
		if len(fields) < len(headers) {
			continue
		}
		record := make(models.Record, len(headers))
		for i, h := range headers {
			record[h] = fields[i]
		}
		if record.IsBlank() {
			continue
		}
		data = append(data, record)
	}
	if len(data) == 0 {
		return nil
	}

	return []models.Table{{
		Page:    models.TextExtractionPage,
		Index:   1,
		Headers: headers,
		Data:    data,
	}}
}

// candidateLines keeps lines that look tabular: at least two delimiter
// characters, or at least three whitespace tokens without a trailing period
// (which usually marks prose).
func candidateLines(text string) []string {
	var candidates []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if countDelimiters(trimmed) >= 2 {
			candidates = append(candidates, trimmed)
		} else if len(strings.Fields(trimmed)) >= 3 && !strings.HasSuffix(trimmed, ".") {
			candidates = append(candidates, trimmed)
		}
	}
	return candidates
}

func countDelimiters(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case '\t', '|', ',', ';':
			n++
		}
	}
	return n
}

// bestSeparator scores each candidate separator by the average number of
// fields it produces over the first few candidate lines and returns the
// highest-scoring one, or "" when none reaches the minimum.
func bestSeparator(candidates []string) string {
	sample := candidates
	if len(sample) > sampleLines {
		sample = sample[:sampleLines]
	}

	best := ""
	bestAvg := 0.0
	for _, sep := range separators {
		total := 0
		for _, line := range sample {
			total += len(strings.Split(line, sep))
		}
		avg := float64(total) / float64(len(sample))
		if avg > bestAvg && avg >= minAvgFields {
			bestAvg = avg
			best = sep
		}
	}
	return best
}

func splitTrimmed(line, sep string) []string {
	parts := strings.Split(line, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
