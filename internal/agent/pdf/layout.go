package pdf

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// rowTolerance is the Y distance (points) within which glyphs belong to
	// the same visual row.
	rowTolerance = 3.0
	// minCellGap is the smallest X gap (points) treated as a cell boundary.
	minCellGap = 12.0
	// wordGapFactor times the font size separates words inside one cell.
	wordGapFactor = 0.35
	// cellGapFactor times the font size separates cells.
	cellGapFactor = 1.8
)

// textRow is one visual row of a page, both as cell slices (for table
// detection) and as a flat line (for accumulated page text).
type textRow struct {
	cells []string
	line  string
}

// pageRows groups the positioned glyphs of one page into visual rows,
// top to bottom, and splits each row into cells at large horizontal gaps.
func pageRows(texts []pdf.Text) []textRow {
	filtered := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	// PDF Y grows upward: sort top to bottom, then left to right.
	sort.SliceStable(filtered, func(i, j int) bool {
		if absDiff(filtered[i].Y, filtered[j].Y) > rowTolerance {
			return filtered[i].Y > filtered[j].Y
		}
		return filtered[i].X < filtered[j].X
	})

	var rows []textRow
	var current []pdf.Text
	currentY := filtered[0].Y

	flush := func() {
		if len(current) > 0 {
			rows = append(rows, splitCells(current))
			current = nil
		}
	}

	for _, t := range filtered {
		if absDiff(t.Y, currentY) > rowTolerance {
			flush()
			currentY = t.Y
		}
		current = append(current, t)
	}
	flush()

	return rows
}

// splitCells merges adjacent glyphs of one row into cells. A gap wider than
// cellGapFactor times the font size (but at least minCellGap) starts a new
// cell; smaller gaps insert a word space.
func splitCells(glyphs []pdf.Text) textRow {
	var cells []string
	var cell strings.Builder

	prevEnd := glyphs[0].X
	for i, g := range glyphs {
		gap := g.X - prevEnd
		if i > 0 {
			if gap > cellBoundary(g.FontSize) {
				cells = append(cells, strings.TrimSpace(cell.String()))
				cell.Reset()
			} else if gap > g.FontSize*wordGapFactor {
				cell.WriteString(" ")
			}
		}
		cell.WriteString(g.S)
		if end := g.X + g.W; end > prevEnd {
			prevEnd = end
		}
	}
	if s := strings.TrimSpace(cell.String()); s != "" {
		cells = append(cells, s)
	}

	return textRow{
		cells: cells,
		line:  strings.Join(cells, " "),
	}
}

func cellBoundary(fontSize float64) float64 {
	boundary := fontSize * cellGapFactor
	if boundary < minCellGap {
		boundary = minCellGap
	}
	return boundary
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
