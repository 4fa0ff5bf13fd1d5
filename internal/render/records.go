package render

import (
	"github.com/roach88/tckview/internal/markup"
	"github.com/roach88/tckview/internal/scenario"
)

// Records renders a tabular value-record set into a markup table: one
// header row, then one row per record row. Each data cell is the canonical
// string form of the value the row holds under the current header column,
// wrapped as an inline code span.
//
// Cells are looked up by header column name, never by the row's own
// iteration order, so column order always follows the header. A row that
// lacks a header column fails with MissingColumnError - never a blank cell.
func Records(records scenario.ValueRecords) (markup.Table, error) {
	header := markup.Row{Cells: make([]markup.Cell, len(records.Header))}
	for i, name := range records.Header {
		header.Cells[i] = markup.HeaderCell(name)
	}

	rows := make([]markup.Row, 0, len(records.Rows)+1)
	rows = append(rows, header)

	for i, record := range records.Rows {
		row := markup.Row{Cells: make([]markup.Cell, len(records.Header))}
		for j, name := range records.Header {
			value, ok := record[name]
			if !ok {
				return markup.Table{}, &MissingColumnError{Column: name, Row: i}
			}
			row.Cells[j] = markup.Cell{Children: []markup.Node{markup.Code(value.String())}}
		}
		rows = append(rows, row)
	}

	return markup.Table{Class: "values", Rows: rows}, nil
}
