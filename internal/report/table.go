package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"stackstats/internal/stats"
)

// WriteTable renders the report as an aligned text table. Each company name
// is merged across the columns of its group.
func WriteTable(w io.Writer, t stats.Table, companies []string) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false

	groups := make(table.Row, 0, stats.RowWidth(len(companies)))
	groups = append(groups, "", "")
	for _, company := range companies {
		for range stats.CellsPerCompany {
			groups = append(groups, company)
		}
	}
	_, fields := Headers(companies)
	tbl.AppendHeader(groups, table.RowConfig{AutoMerge: true})
	tbl.AppendHeader(toRow(fields))

	for _, row := range t {
		tbl.AppendRow(toRow(row))
	}

	configs := make([]table.ColumnConfig, 0, stats.RowWidth(len(companies)))
	for i := 3; i <= stats.RowWidth(len(companies)); i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight})
	}
	tbl.SetColumnConfigs(configs)

	if _, err := fmt.Fprintln(w, tbl.Render()); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}
	return nil
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
