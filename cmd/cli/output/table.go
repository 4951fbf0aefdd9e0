package output

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable writes a formatted table to stdout.
func RenderTable(headers []string, rows [][]interface{}) {
	w := table.NewWriter()
	w.SetOutputMirror(os.Stdout)

	head := make(table.Row, 0, len(headers))
	for _, h := range headers {
		head = append(head, h)
	}
	w.AppendHeader(head)

	for _, row := range rows {
		w.AppendRow(table.Row(row))
	}
	w.Render()
}
