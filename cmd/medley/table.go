package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// newTableWriter returns the rounded-style writer shared by the scan and
// history views. Numeric columns are named by position and right-aligned;
// everything else stays left-aligned.
func newTableWriter(numericColumns ...int) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	configs := make([]table.ColumnConfig, 0, len(numericColumns))
	for _, number := range numericColumns {
		configs = append(configs, table.ColumnConfig{
			Number:      number,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw
}
