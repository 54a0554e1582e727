package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableFormatter renders reports as a rounded ASCII table.
type TableFormatter struct{}

// Format renders the report rows as Quantity | Value | Unit.
func (f *TableFormatter) Format(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	if report.Title != "" {
		t.SetTitle(report.Title)
	}
	t.AppendHeader(table.Row{"Quantity", "Value", "Unit"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})

	for _, row := range report.Rows {
		t.AppendRow(table.Row{row.Label, row.Value, row.Unit})
	}

	return t.Render(), nil
}
