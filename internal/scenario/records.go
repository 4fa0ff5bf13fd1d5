package scenario

import "github.com/roach88/tckview/internal/cypher"

// ValueRecords is a tabular result set: named columns plus ordered rows.
//
// Invariant: every row must supply a value for every column listed in
// Header. Renderers reject a row that lacks a header column rather than
// substituting a blank cell, so malformed fixtures surface immediately.
type ValueRecords struct {
	// Header lists the column names, in order. Names are unique.
	Header []string

	// Rows maps each header column name to its value, one map per row.
	Rows []map[string]cypher.Value
}
