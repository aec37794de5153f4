// Package report renders name records and summaries as plain text.
package report

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/namepick/internal/model"
)

// FavoriteMark flags favorite names in tables.
const FavoriteMark = "★"

// Columns are the table headers in display order.
var Columns = []string{"Name", "Sex", "Year", "Total", "Fav"}

// Row formats one record as table cells.
func Row(r model.NameRecord, favorite bool) []string {
	mark := ""
	if favorite {
		mark = FavoriteMark
	}
	return []string{r.Name, string(r.Sex), r.Year, strconv.Itoa(r.CumulativeTotal), mark}
}

// Table renders records as aligned lines. isFavorite may be nil.
func Table(records []model.NameRecord, isFavorite func(string) bool) []string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, Row(r, isFavorite != nil && isFavorite(r.Name)))
	}
	return formatTable(Columns, rows, map[int]bool{3: true})
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return strings.TrimRight(b.String(), " ")
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := runewidth.StringWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

// Truncate shortens s to at most width cells, ending with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
