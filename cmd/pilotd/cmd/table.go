package cmd

import (
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func writeTable(w io.Writer, columns []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	defer table.Close()

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = formatColumnHeader(col)
	}
	table.Header(headers)

	for _, row := range rows {
		_ = table.Append(row)
	}

	_ = table.Render()
}

// formatColumnHeader turns snake_case column names into Title Case.
func formatColumnHeader(col string) string {
	words := strings.FieldsFunc(col, func(r rune) bool {
		return r == '_' || r == '-'
	})

	for i, word := range words {
		words[i] = cases.Title(language.English).String(strings.ToLower(word))
	}

	return strings.Join(words, " ")
}
