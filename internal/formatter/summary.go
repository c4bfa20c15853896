// Package formatter renders human-readable reports of scrape results.
package formatter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"brandscraper/internal/models"
	"brandscraper/pkg/utils"
)

const (
	emptyCell     = "-"
	statusOK      = "ok"
	maxCellWidth  = 40
	minColumnSize = 3
)

var summaryHeader = []string{"TOKEN", "NAME", "COUNTRY", "ACTIVE", "LEAD TIME", "LAST ADDED", "STATUS"}

// SummaryTable renders one markdown table row per record, padded by display
// width so wide characters line up in a terminal.
func SummaryTable(records []models.MergedRecord) string {
	table := make([][]string, 0, len(records)+1)
	table = append(table, summaryHeader)

	for i := range records {
		table = append(table, summaryRow(&records[i]))
	}

	return renderTable(table)
}

func summaryRow(r *models.MergedRecord) []string {
	status := statusOK
	if r.SourceError != nil {
		status = *r.SourceError
	}

	return []string{
		r.Token,
		stringCell(r.Name),
		stringCell(r.Country),
		intCell(r.ActiveProductsCount),
		intCell(r.LeadTimeDays),
		stringCell(r.LastProductAddedAt),
		cell(status),
	}
}

func stringCell(s *string) string {
	if s == nil {
		return emptyCell
	}

	return cell(*s)
}

func intCell(n *int) string {
	if n == nil {
		return emptyCell
	}

	return strconv.Itoa(*n)
}

// cell flattens whitespace, escapes pipes and truncates long values.
func cell(s string) string {
	s = utils.NormalizeWhitespace(s)
	if s == "" {
		return emptyCell
	}

	s = utils.TruncateString(s, maxCellWidth)

	return strings.ReplaceAll(s, "|", `\|`)
}

// renderTable writes the header, a separator row and the body rows.
func renderTable(table [][]string) string {
	colWidths := make([]int, len(table[0]))

	for _, row := range table {
		for i, c := range row {
			if width := runewidth.StringWidth(c); width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	for i := range colWidths {
		if colWidths[i] < minColumnSize {
			colWidths[i] = minColumnSize
		}
	}

	var sb strings.Builder

	writeRow := func(row []string) {
		sb.WriteString("|")

		for j, content := range row {
			sb.WriteString(" ")
			sb.WriteString(content)

			if padding := colWidths[j] - runewidth.StringWidth(content); padding > 0 {
				sb.WriteString(strings.Repeat(" ", padding))
			}

			sb.WriteString(" |")
		}

		sb.WriteString("\n")
	}

	writeRow(table[0])

	separator := make([]string, len(colWidths))
	for i, width := range colWidths {
		separator[i] = strings.Repeat("-", width)
	}

	writeRow(separator)

	for _, row := range table[1:] {
		writeRow(row)
	}

	return sb.String()
}
