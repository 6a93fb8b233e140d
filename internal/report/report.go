package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"stackstats/internal/stats"
)

// Format selects how the report is rendered.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want csv or table)", s)
}

// FieldLabels name the columns of one company group.
var FieldLabels = []string{
	"#commits",
	"#dBP",
	"#cBP",
	"#fBugs",
	"#rBugs",
	"#reviews",
	"#trans",
}

// Headers returns the two header rows: company names spanning their groups,
// then the per-column labels.
func Headers(companies []string) (groups, fields []string) {
	groups = []string{"", ""}
	fields = []string{"release", "module"}
	for _, company := range companies {
		groups = append(groups, company)
		for range stats.CellsPerCompany - 1 {
			groups = append(groups, "")
		}
		fields = append(fields, FieldLabels...)
	}
	return groups, fields
}

// Write renders the table in the given format.
func Write(w io.Writer, format Format, table stats.Table, companies []string) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, table, companies)
	case FormatTable:
		return WriteTable(w, table, companies)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// WriteCSV writes both header rows followed by the data rows.
func WriteCSV(w io.Writer, table stats.Table, companies []string) error {
	groups, fields := Headers(companies)

	cw := csv.NewWriter(w)
	if err := cw.Write(groups); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.Write(fields); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range table {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
