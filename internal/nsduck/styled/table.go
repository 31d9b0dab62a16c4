package styled

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/nsqlite/nsduck/rowset"
)

// NewTableWriter returns a table.Writer with the nsduck shell style.
func NewTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgYellow, text.Bold}
	tw.Style().Color.Footer = text.Colors{text.FgYellow, text.Bold}

	return tw
}

// ResultTable renders res with one column per result column. NULL values
// are shown dimmed.
func ResultTable(res rowset.ResultSet) table.Writer {
	tw := NewTableWriter()

	header := make(table.Row, 0, len(res.Columns))
	for _, col := range res.Columns {
		header = append(header, col)
	}
	tw.AppendHeader(header)

	for _, row := range res.Rows {
		tr := make(table.Row, 0, row.Len())
		for _, v := range row.Values() {
			if v.IsNull() {
				tr = append(tr, text.Faint.Sprint(v.String()))
				continue
			}
			tr = append(tr, v.String())
		}
		tw.AppendRow(tr)
	}

	return tw
}
